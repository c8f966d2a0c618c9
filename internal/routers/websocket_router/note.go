package websocket_router

import (
	"context"

	"github.com/artifacts-oss/daylog/internal/app"
	"github.com/artifacts-oss/daylog/internal/dto"
	pkgapp "github.com/artifacts-oss/daylog/pkg/app"
	"github.com/artifacts-oss/daylog/pkg/code"

	"go.uber.org/zap"
)

// NoteWSHandler 笔记 WebSocket 路由处理器
// 支持在线客户端直接编辑笔记并广播变更
type NoteWSHandler struct {
	*Handler
}

// NewNoteWSHandler 创建 NoteWSHandler 实例
func NewNoteWSHandler(a *app.App) *NoteWSHandler {
	return &NoteWSHandler{Handler: NewHandler(a)}
}

// UserInfo WebSocket 授权时的用户有效性验证
func (h *NoteWSHandler) UserInfo(c *pkgapp.WebsocketClient, uid int64) (*pkgapp.UserSelectEntity, error) {
	user, err := h.App.UserService.GetInfo(context.Background(), uid)
	if err != nil {
		return nil, err
	}
	return &pkgapp.UserSelectEntity{
		UID:      user.UID,
		Email:    user.Email,
		Nickname: user.Nickname,
		Avatar:   user.Avatar,
	}, nil
}

// NoteModify 修改笔记内容, 内容变化时自动记录修改历史
// 修改成功后广播给该用户的其他在线客户端
func (h *NoteWSHandler) NoteModify(c *pkgapp.WebsocketClient, msg *pkgapp.WebSocketMessage) {
	params := &dto.NoteModifyRequest{}
	valid, errs := c.BindAndValid(msg.Data, params)
	if !valid {
		c.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()), msg.Type)
		return
	}

	note, err := h.App.NoteService.Modify(context.Background(), c.User.UID, params, c.User.Nickname)
	if err != nil {
		h.App.Logger().Error("NoteWSHandler.NoteModify",
			zap.Int64("uid", c.User.UID),
			zap.Error(err))
		c.ToResponse(code.ErrorNoteUpdateFail, msg.Type)
		return
	}

	c.ToResponse(code.Success.WithData(note), msg.Type)
	c.BroadcastResponse(code.Success.WithData(note), true, "NoteModified")
}

// NoteGet 获取单条笔记
func (h *NoteWSHandler) NoteGet(c *pkgapp.WebsocketClient, msg *pkgapp.WebSocketMessage) {
	params := &dto.NoteGetRequest{}
	valid, errs := c.BindAndValid(msg.Data, params)
	if !valid {
		c.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()), msg.Type)
		return
	}

	note, err := h.App.NoteService.Get(context.Background(), c.User.UID, params.ID)
	if err != nil {
		c.ToResponse(code.ErrorNoteNotExist, msg.Type)
		return
	}
	c.ToResponse(code.Success.WithData(note), msg.Type)
}

// ChangeList 获取笔记的修改历史列表
// 笔记不可见时返回空列表
func (h *NoteWSHandler) ChangeList(c *pkgapp.WebsocketClient, msg *pkgapp.WebSocketMessage) {
	params := &dto.ChangeListRequest{}
	valid, errs := c.BindAndValid(msg.Data, params)
	if !valid {
		c.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()), msg.Type)
		return
	}

	pager := &pkgapp.Pager{Page: params.Page, PageSize: params.PageSize}
	if pager.Page <= 0 {
		pager.Page = 1
	}
	if pager.PageSize <= 0 {
		pager.PageSize = 20
	}

	list, _ := h.App.NoteChangeService.List(context.Background(), c.User.UID, params, pager)
	c.ToResponse(code.Success.WithData(list), msg.Type)
}
