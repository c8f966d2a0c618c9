// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import (
	"time"

	"github.com/artifacts-oss/daylog/internal/domain"
)

// BoardCreateRequest 创建看板请求参数
type BoardCreateRequest struct {
	Name  string `json:"name" form:"name" binding:"required,notblank,max=60"`
	Color string `json:"color" form:"color"`
	Icon  string `json:"icon" form:"icon"`
	Sort  int64  `json:"sort" form:"sort"`
}

// BoardUpdateRequest 更新看板请求参数
type BoardUpdateRequest struct {
	ID    int64  `json:"id" form:"id" binding:"required"`
	Name  string `json:"name" form:"name" binding:"required,notblank,max=60"`
	Color string `json:"color" form:"color"`
	Icon  string `json:"icon" form:"icon"`
	Sort  int64  `json:"sort" form:"sort"`
}

// BoardDeleteRequest 删除看板请求参数
type BoardDeleteRequest struct {
	ID int64 `json:"id" form:"id" binding:"required"`
}

// BoardDTO 看板数据传输对象
type BoardDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	Sort      int64     `json:"sort"`
	NoteCount int64     `json:"noteCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BoardToDTO 领域模型转换为 DTO
func BoardToDTO(b *domain.Board) *BoardDTO {
	if b == nil {
		return nil
	}
	return &BoardDTO{
		ID:        b.ID,
		Name:      b.Name,
		Color:     b.Color,
		Icon:      b.Icon,
		Sort:      b.Sort,
		NoteCount: b.NoteCount,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
