// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import (
	"time"

	"github.com/artifacts-oss/daylog/internal/domain"
)

// NoteCreateRequest 创建笔记请求参数
type NoteCreateRequest struct {
	BoardID int64  `json:"boardId" form:"boardId" binding:"required"`
	Title   string `json:"title" form:"title" binding:"required,notblank,max=200"`
	Content string `json:"content" form:"content"`
}

// NoteModifyRequest 修改笔记内容请求参数
type NoteModifyRequest struct {
	ID      int64  `json:"id" form:"id" binding:"required"`
	Title   string `json:"title" form:"title" binding:"required,notblank,max=200"`
	Content string `json:"content" form:"content"`
}

// NoteGetRequest 获取单条笔记请求参数
type NoteGetRequest struct {
	ID int64 `json:"id" form:"id" binding:"required"`
}

// NoteDeleteRequest 删除笔记请求参数
type NoteDeleteRequest struct {
	ID int64 `json:"id" form:"id" binding:"required"`
}

// NotePinRequest 置顶笔记请求参数
type NotePinRequest struct {
	ID       int64 `json:"id" form:"id" binding:"required"`
	IsPinned bool  `json:"isPinned" form:"isPinned"`
}

// NoteListRequest 笔记列表请求参数
type NoteListRequest struct {
	BoardID  int64  `json:"boardId" form:"boardId" binding:"required"`
	Keyword  string `json:"keyword" form:"keyword"`
	Page     int    `json:"page" form:"page"`
	PageSize int    `json:"pageSize" form:"pageSize"`
}

// NoteDTO 笔记数据传输对象
type NoteDTO struct {
	ID          int64     `json:"id"`
	BoardID     int64     `json:"boardId"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHash string    `json:"contentHash"`
	Size        int64     `json:"size"`
	Version     int64     `json:"version"`
	Sort        int64     `json:"sort"`
	IsPinned    bool      `json:"isPinned"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NoteToDTO 领域模型转换为 DTO
func NoteToDTO(n *domain.Note) *NoteDTO {
	if n == nil {
		return nil
	}
	return &NoteDTO{
		ID:          n.ID,
		BoardID:     n.BoardID,
		Title:       n.Title,
		Content:     n.Content,
		ContentHash: n.ContentHash,
		Size:        n.Size,
		Version:     n.Version,
		Sort:        n.Sort,
		IsPinned:    n.IsPinned,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}
