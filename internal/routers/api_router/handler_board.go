package api_router

import (
	"github.com/artifacts-oss/daylog/internal/app"
	"github.com/artifacts-oss/daylog/internal/dto"
	pkgapp "github.com/artifacts-oss/daylog/pkg/app"
	"github.com/artifacts-oss/daylog/pkg/code"
	apperrors "github.com/artifacts-oss/daylog/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BoardHandler 看板 API 路由处理器
type BoardHandler struct {
	*Handler
}

// NewBoardHandler 创建 BoardHandler 实例
func NewBoardHandler(a *app.App) *BoardHandler {
	return &BoardHandler{Handler: NewHandler(a)}
}

// Create 创建看板
// @Summary 创建看板
// @Tags 看板
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param params body dto.BoardCreateRequest true "看板参数"
// @Success 200 {object} pkgapp.Res{data=dto.BoardDTO} "成功"
// @Router /api/board [post]
func (h *BoardHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.BoardCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("BoardHandler.Create.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	board, err := h.App.BoardService.Create(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "BoardHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(board))
}

// Update 更新看板
// @Summary 更新看板
// @Tags 看板
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param params body dto.BoardUpdateRequest true "看板参数"
// @Success 200 {object} pkgapp.Res{data=dto.BoardDTO} "成功"
// @Router /api/board [put]
func (h *BoardHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.BoardUpdateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("BoardHandler.Update.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	board, err := h.App.BoardService.Update(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "BoardHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(board))
}

// Delete 删除看板
// @Summary 删除看板
// @Description 删除看板, 下属笔记一并标记删除
// @Tags 看板
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param id body int64 true "看板 ID"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/board [delete]
func (h *BoardHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.BoardDeleteRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("BoardHandler.Delete.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	if err := h.App.BoardService.Delete(ctx, uid, params.ID); err != nil {
		h.logError(ctx, "BoardHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// List 获取看板列表
// @Summary 获取看板列表
// @Tags 看板
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Success 200 {object} pkgapp.Res{data=[]dto.BoardDTO} "成功"
// @Router /api/boards [get]
func (h *BoardHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	boards, err := h.App.BoardService.List(ctx, uid)
	if err != nil {
		h.logError(ctx, "BoardHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(boards))
}
