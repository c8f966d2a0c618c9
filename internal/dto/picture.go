// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import (
	"time"

	"github.com/artifacts-oss/daylog/internal/domain"
)

// PictureListRequest 图片列表请求参数
type PictureListRequest struct {
	Page     int `json:"page" form:"page"`
	PageSize int `json:"pageSize" form:"pageSize"`
}

// PictureDeleteRequest 删除图片请求参数
type PictureDeleteRequest struct {
	ID int64 `json:"id" form:"id" binding:"required"`
}

// PictureDTO 图片数据传输对象
type PictureDTO struct {
	ID        int64     `json:"id"`
	URL       string    `json:"url"`
	MimeType  string    `json:"mimeType"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

// PictureToDTO 领域模型转换为 DTO
func PictureToDTO(p *domain.Picture) *PictureDTO {
	if p == nil {
		return nil
	}
	return &PictureDTO{
		ID:        p.ID,
		URL:       p.URL,
		MimeType:  p.MimeType,
		Size:      p.Size,
		CreatedAt: p.CreatedAt,
	}
}
