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

// ChangeHandler 笔记修改历史 API 路由处理器
type ChangeHandler struct {
	*Handler
}

// NewChangeHandler 创建 ChangeHandler 实例
func NewChangeHandler(a *app.App, wss *pkgapp.WebsocketServer) *ChangeHandler {
	return &ChangeHandler{Handler: NewHandlerWithWSS(a, wss)}
}

// Get 获取单条修改历史详情
// @Summary 获取修改历史详情
// @Description 根据历史记录 ID 获取补丁正文与修改前内容快照
// @Tags 修改历史
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param id query int64 true "历史记录 ID"
// @Success 200 {object} pkgapp.Res{data=dto.ChangeDetailDTO} "成功"
// @Router /api/change [get]
func (h *ChangeHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ChangeDeleteRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("ChangeHandler.Get.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	change, err := h.App.NoteChangeService.Get(ctx, uid, params.ID)
	if err != nil {
		h.logError(ctx, "ChangeHandler.Get", err)
		apperrors.ErrorResponse(c, code.ErrorChangeNotExist)
		return
	}

	response.ToResponse(code.Success.WithData(change))
}

// List 获取笔记的修改历史列表
// @Summary 获取修改历史列表
// @Description 分页获取笔记的修改历史, 新记录在前; 笔记不存在或无权访问时返回空列表
// @Tags 修改历史
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param params query dto.ChangeListRequest true "查询参数"
// @Success 200 {object} pkgapp.Res{data=[]dto.ChangeDTO} "成功"
// @Router /api/changes [get]
func (h *ChangeHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ChangeListRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("ChangeHandler.List.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	pager := pkgapp.NewPager(c, 0)
	list, count := h.App.NoteChangeService.List(c.Request.Context(), uid, params, pager)
	response.ToResponseList(code.Success, list, int(count))
}

// Delete 删除单条修改历史
// @Summary 删除修改历史
// @Description 删除单条修改历史记录, 返回是否删除成功
// @Tags 修改历史
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param id body int64 true "历史记录 ID"
// @Success 200 {object} pkgapp.Res{data=bool} "成功"
// @Router /api/change [delete]
func (h *ChangeHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ChangeDeleteRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("ChangeHandler.Delete.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ok := h.App.NoteChangeService.Delete(c.Request.Context(), uid, params.ID)
	response.ToResponse(code.Success.WithData(ok))
}

// Clear 清空笔记的全部修改历史
// @Summary 清空修改历史
// @Description 清空指定笔记的全部修改历史, 返回是否清空成功
// @Tags 修改历史
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param noteId body int64 true "笔记 ID"
// @Success 200 {object} pkgapp.Res{data=bool} "成功"
// @Router /api/changes [delete]
func (h *ChangeHandler) Clear(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ChangeClearRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("ChangeHandler.Clear.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ok := h.App.NoteChangeService.Clear(c.Request.Context(), uid, params.NoteID)
	response.ToResponse(code.Success.WithData(ok))
}

// Restore 恢复笔记到历史版本
// @Summary 恢复历史版本
// @Description 将笔记内容恢复到指定历史记录修改前的内容, 恢复动作本身会生成新的历史记录
// @Tags 修改历史
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param id body int64 true "历史记录 ID"
// @Success 200 {object} pkgapp.Res{data=dto.RestoreResultDTO} "成功"
// @Router /api/change/restore [post]
func (h *ChangeHandler) Restore(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ChangeRestoreRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("ChangeHandler.Restore.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	result := h.App.NoteChangeService.Restore(c.Request.Context(), uid, params.ID, h.clientName(c))

	// 通知该用户的其他在线客户端刷新
	if result.Success && h.WSS != nil {
		h.WSS.PushToUser(uid, "note.restored", code.Success.WithData(params.ID))
	}
	response.ToResponse(code.Success.WithData(result))
}

// CommentAdd 为修改历史添加评论
// @Summary 添加评论
// @Description 为指定修改历史记录添加评论, 历史不可见时返回空数据
// @Tags 修改历史
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param params body dto.CommentAddRequest true "评论参数"
// @Success 200 {object} pkgapp.Res{data=dto.CommentDTO} "成功"
// @Router /api/change/comment [post]
func (h *ChangeHandler) CommentAdd(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.CommentAddRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("ChangeHandler.CommentAdd.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	comment := h.App.NoteChangeService.AddComment(c.Request.Context(), uid, params)
	response.ToResponse(code.Success.WithData(comment))
}

// CommentList 获取修改历史的评论列表
// @Summary 获取评论列表
// @Tags 修改历史
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param changeId query int64 true "历史记录 ID"
// @Success 200 {object} pkgapp.Res{data=[]dto.CommentDTO} "成功"
// @Router /api/change/comments [get]
func (h *ChangeHandler) CommentList(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	type listParams struct {
		ChangeID int64 `json:"changeId" form:"changeId" binding:"required"`
	}
	lp := &listParams{}
	valid, errs := pkgapp.BindAndValid(c, lp)
	if !valid {
		h.App.Logger().Error("ChangeHandler.CommentList.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	comments := h.App.NoteChangeService.ListComments(c.Request.Context(), uid, lp.ChangeID)
	response.ToResponse(code.Success.WithData(comments))
}

// CommentDelete 删除评论
// @Summary 删除评论
// @Description 删除评论, 仅评论作者本人可删, 返回是否删除成功
// @Tags 修改历史
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param id body int64 true "评论 ID"
// @Success 200 {object} pkgapp.Res{data=bool} "成功"
// @Router /api/change/comment [delete]
func (h *ChangeHandler) CommentDelete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.CommentDeleteRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("ChangeHandler.CommentDelete.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ok := h.App.NoteChangeService.DeleteComment(c.Request.Context(), uid, params.ID)
	response.ToResponse(code.Success.WithData(ok))
}
