// Package routers 组装 HTTP 与 WebSocket 路由
package routers

import (
	"embed"
	"net/http"
	"time"

	"github.com/artifacts-oss/daylog/internal/app"
	"github.com/artifacts-oss/daylog/internal/middleware"
	"github.com/artifacts-oss/daylog/internal/routers/api_router"
	"github.com/artifacts-oss/daylog/internal/routers/websocket_router"
	pkgapp "github.com/artifacts-oss/daylog/pkg/app"
	"github.com/artifacts-oss/daylog/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"github.com/lxzan/gws"
)

// 登录注册接口使用独立令牌桶, 防止暴力尝试
var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/user/login",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
	limiter.BucketRule{
		Key:          "/api/user/register",
		FillInterval: time.Second,
		Capacity:     5,
		Quantum:      5,
	},
)

// NewRouter 创建主路由
func NewRouter(frontendFiles embed.FS, appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	cfg := appContainer.Config()

	wss := pkgapp.NewWebsocketServer(pkgapp.WebsocketServerConfig{
		GWSOption: gws.ServerOption{
			CheckUtf8Enabled:    true,
			ParallelEnabled:     true,
			Recovery:            gws.Recovery,
			PermessageDeflate:   gws.PermessageDeflate{Enabled: true},
			ParallelGolimit:     8,
			ReadMaxPayloadSize:  1024 * 1024 * 16,
			WriteMaxPayloadSize: 1024 * 1024 * 16,
		},
	})
	wss.TokenParserUse(func(token string) (*pkgapp.UserEntity, error) {
		return appContainer.TokenManager().Parse(token)
	})

	noteWSHandler := websocket_router.NewNoteWSHandler(appContainer)
	wss.UserDataSelectUse(noteWSHandler.UserInfo)
	wss.Use("NoteModify", noteWSHandler.NoteModify)
	wss.Use("NoteGet", noteWSHandler.NoteGet)
	wss.Use("ChangeList", noteWSHandler.ChangeList)

	frontendIndexContent, _ := frontendFiles.ReadFile("frontend/index.html")

	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", frontendIndexContent)
	})

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfoWithConfig(app.Name, appContainer.Version().Version))
		api.Use(gin.Logger())
		api.Use(middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header))
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		userHandler := api_router.NewUserHandler(appContainer)
		boardHandler := api_router.NewBoardHandler(appContainer)
		noteHandler := api_router.NewNoteHandler(appContainer, wss)
		changeHandler := api_router.NewChangeHandler(appContainer, wss)
		pictureHandler := api_router.NewPictureHandler(appContainer)
		adminHandler := api_router.NewAdminHandler(appContainer)
		versionHandler := api_router.NewVersionHandler(appContainer)

		api.POST("/user/register", userHandler.Register)
		api.POST("/user/login", userHandler.Login)
		api.POST("/user/password/forget", userHandler.PasswordForget)
		api.POST("/user/password/reset", userHandler.PasswordReset)
		api.GET("/version", versionHandler.Get)
		api.GET("/user/sync", wss.Run())

		authKey := cfg.Security.AuthTokenKey
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).GET("/user", userHandler.Info)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).PUT("/user/password", userHandler.ChangePassword)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).PUT("/user/profile", userHandler.UpdateProfile)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).POST("/user/totp/setup", userHandler.TotpSetup)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).POST("/user/totp", userHandler.TotpEnable)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).DELETE("/user/totp", userHandler.TotpDisable)

		api.Use(middleware.UserAuthTokenWithConfig(authKey)).POST("/board", boardHandler.Create)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).PUT("/board", boardHandler.Update)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).DELETE("/board", boardHandler.Delete)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).GET("/boards", boardHandler.List)

		api.Use(middleware.UserAuthTokenWithConfig(authKey)).POST("/note", noteHandler.Create)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).GET("/note", noteHandler.Get)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).PUT("/note", noteHandler.Modify)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).DELETE("/note", noteHandler.Delete)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).PUT("/note/pin", noteHandler.Pin)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).GET("/notes", noteHandler.List)

		api.Use(middleware.UserAuthTokenWithConfig(authKey)).GET("/change", changeHandler.Get)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).GET("/changes", changeHandler.List)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).DELETE("/change", changeHandler.Delete)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).DELETE("/changes", changeHandler.Clear)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).POST("/change/restore", changeHandler.Restore)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).POST("/change/comment", changeHandler.CommentAdd)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).GET("/change/comments", changeHandler.CommentList)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).DELETE("/change/comment", changeHandler.CommentDelete)

		api.Use(middleware.UserAuthTokenWithConfig(authKey)).POST("/picture", pictureHandler.Upload)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).GET("/pictures", pictureHandler.List)
		api.Use(middleware.UserAuthTokenWithConfig(authKey)).DELETE("/picture", pictureHandler.Delete)

		api.Use(middleware.UserAuthTokenWithConfig(authKey)).GET("/admin/stats", adminHandler.Stats)
	}

	// 本地存储文件直出
	if cfg.LocalFS.HttpfsIsEnable && cfg.LocalFS.SavePath != "" {
		r.StaticFS("/storage", http.Dir(cfg.LocalFS.SavePath))
	}
	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}
