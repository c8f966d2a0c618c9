// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import (
	"time"

	"github.com/artifacts-oss/daylog/internal/domain"
)

// ChangeListRequest 历史记录列表请求参数
type ChangeListRequest struct {
	NoteID   int64 `json:"noteId" form:"noteId" binding:"required"`
	Page     int   `json:"page" form:"page"`
	PageSize int   `json:"pageSize" form:"pageSize"`
}

// ChangeDeleteRequest 删除单条历史记录请求参数
type ChangeDeleteRequest struct {
	ID int64 `json:"id" form:"id" binding:"required"`
}

// ChangeClearRequest 清空笔记全部历史记录请求参数
type ChangeClearRequest struct {
	NoteID int64 `json:"noteId" form:"noteId" binding:"required"`
}

// ChangeRestoreRequest 恢复笔记到指定历史版本请求参数
type ChangeRestoreRequest struct {
	ID int64 `json:"id" form:"id" binding:"required"`
}

// CommentAddRequest 添加评论请求参数
type CommentAddRequest struct {
	ChangeID int64  `json:"changeId" form:"changeId" binding:"required"`
	Content  string `json:"content" form:"content" binding:"required,notblank,max=2000"`
}

// CommentDeleteRequest 删除评论请求参数
type CommentDeleteRequest struct {
	ID int64 `json:"id" form:"id" binding:"required"`
}

// ChangeDTO 历史记录数据传输对象, 不含补丁正文和内容快照
type ChangeDTO struct {
	ID             int64         `json:"id"`
	NoteID         int64         `json:"noteId"`
	Summary        string        `json:"summary"`
	Preview        string        `json:"preview"`
	Size           int64         `json:"size"`
	Version        int64         `json:"version"`
	ClientName     string        `json:"clientName"`
	AuthorUID      int64         `json:"authorUid"`
	AuthorNickname string        `json:"authorNickname"`
	Comments       []*CommentDTO `json:"comments"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// ChangeDetailDTO 历史记录详情, 含补丁正文与修改前内容
type ChangeDetailDTO struct {
	ChangeDTO
	DiffPatch   string `json:"diffPatch"`
	PrevContent string `json:"prevContent"`
	PrevHash    string `json:"prevHash"`
}

// CommentDTO 评论数据传输对象
type CommentDTO struct {
	ID             int64     `json:"id"`
	ChangeID       int64     `json:"changeId"`
	NoteID         int64     `json:"noteId"`
	UID            int64     `json:"uid"`
	AuthorNickname string    `json:"authorNickname"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
}

// RestoreResultDTO 恢复操作结果
type RestoreResultDTO struct {
	Success bool   `json:"success"`
	Err     string `json:"err,omitempty"`
}

// ChangeToDTO 领域模型转换为列表 DTO
func ChangeToDTO(c *domain.NoteChange) *ChangeDTO {
	if c == nil {
		return nil
	}
	return &ChangeDTO{
		ID:         c.ID,
		NoteID:     c.NoteID,
		Summary:    c.Summary,
		Preview:    c.Preview,
		Size:       c.Size,
		Version:    c.Version,
		ClientName: c.ClientName,
		AuthorUID:  c.UID,
		Comments:   []*CommentDTO{},
		CreatedAt:  c.CreatedAt,
	}
}

// ChangeToDetailDTO 领域模型转换为详情 DTO
func ChangeToDetailDTO(c *domain.NoteChange) *ChangeDetailDTO {
	if c == nil {
		return nil
	}
	return &ChangeDetailDTO{
		ChangeDTO:   *ChangeToDTO(c),
		DiffPatch:   c.DiffPatch,
		PrevContent: c.PrevContent,
		PrevHash:    c.PrevHash,
	}
}

// CommentToDTO 领域模型转换为 DTO
func CommentToDTO(c *domain.ChangeComment) *CommentDTO {
	if c == nil {
		return nil
	}
	return &CommentDTO{
		ID:        c.ID,
		ChangeID:  c.ChangeID,
		NoteID:    c.NoteID,
		UID:       c.UID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}
