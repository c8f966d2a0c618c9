// Package api_router 提供 HTTP API 路由处理器
package api_router

import (
	"context"

	"github.com/artifacts-oss/daylog/global"
	"github.com/artifacts-oss/daylog/internal/app"
	"github.com/artifacts-oss/daylog/internal/middleware"
	pkgapp "github.com/artifacts-oss/daylog/pkg/app"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 基础 Handler 结构体，封装 App Container
// 所有 API Handler 都应该嵌入此结构体以获得依赖注入能力
type Handler struct {
	App *app.App
	WSS *pkgapp.WebsocketServer
}

// NewHandler 创建基础 Handler 实例
func NewHandler(a *app.App) *Handler {
	return &Handler{App: a}
}

// NewHandlerWithWSS 创建带 WebSocket 服务的 Handler 实例
func NewHandlerWithWSS(a *app.App, wss *pkgapp.WebsocketServer) *Handler {
	return &Handler{App: a, WSS: wss}
}

// clientName 读取客户端标识, 缺省为 Web 端
func (h *Handler) clientName(c *gin.Context) string {
	if name := c.GetHeader("X-Client-Name"); name != "" {
		return name
	}
	return global.WebClientName
}

// logError 记录错误日志，包含 Trace ID
func (h *Handler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String("traceId", traceID),
	)
}
