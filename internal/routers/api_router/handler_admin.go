package api_router

import (
	"github.com/artifacts-oss/daylog/internal/app"
	pkgapp "github.com/artifacts-oss/daylog/pkg/app"
	"github.com/artifacts-oss/daylog/pkg/code"
	apperrors "github.com/artifacts-oss/daylog/pkg/errors"

	"github.com/gin-gonic/gin"
)

// AdminHandler 管理端 API 路由处理器
type AdminHandler struct {
	*Handler
}

// NewAdminHandler 创建 AdminHandler 实例
func NewAdminHandler(a *app.App) *AdminHandler {
	return &AdminHandler{Handler: NewHandler(a)}
}

// Stats 获取服务运行统计
// @Summary 获取服务统计
// @Tags 管理
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.AdminStatsDTO} "成功"
// @Router /api/admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	if err := h.App.AdminService.RequireAdmin(ctx, uid); err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}

	stats, err := h.App.AdminService.Stats(ctx)
	if err != nil {
		h.logError(ctx, "AdminHandler.Stats", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	stats.QueueCount = h.App.WriteQueueCount()
	stats.ActiveOps = h.App.ActiveOperations()
	response.ToResponse(code.Success.WithData(stats))
}
