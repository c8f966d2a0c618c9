// Package dao 实现数据访问层
package dao

import (
	"context"
	"time"

	"github.com/artifacts-oss/daylog/internal/domain"
	"github.com/artifacts-oss/daylog/internal/model"
	"github.com/artifacts-oss/daylog/pkg/app"
	"github.com/artifacts-oss/daylog/pkg/timex"

	"gorm.io/gorm"
)

// pictureRepository 实现 domain.PictureRepository 接口
type pictureRepository struct {
	dao *Dao
}

// NewPictureRepository 创建 PictureRepository 实例
func NewPictureRepository(dao *Dao) domain.PictureRepository {
	return &pictureRepository{dao: dao}
}

func (r *pictureRepository) toDomain(m *model.Picture) *domain.Picture {
	if m == nil {
		return nil
	}
	return &domain.Picture{
		ID:        m.ID,
		UID:       m.UID,
		FileKey:   m.FileKey,
		URL:       m.URL,
		MimeType:  m.MimeType,
		Size:      m.Size,
		CreatedAt: time.Time(m.CreatedAt),
	}
}

// GetByID 根据ID获取图片
func (r *pictureRepository) GetByID(ctx context.Context, id, uid int64) (*domain.Picture, error) {
	var m model.Picture
	err := r.dao.DB().WithContext(ctx).Where("id = ? AND uid = ?", id, uid).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建图片记录
func (r *pictureRepository) Create(ctx context.Context, picture *domain.Picture, uid int64) (*domain.Picture, error) {
	m := &model.Picture{
		UID:       uid,
		FileKey:   picture.FileKey,
		URL:       picture.URL,
		MimeType:  picture.MimeType,
		Size:      picture.Size,
		CreatedAt: timex.Now(),
	}

	err := r.dao.ExecuteWrite(ctx, uid, func(db *gorm.DB) error {
		return db.Create(m).Error
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// List 获取用户图片列表
func (r *pictureRepository) List(ctx context.Context, uid int64, page, pageSize int) ([]*domain.Picture, int64, error) {
	q := r.dao.DB().WithContext(ctx).Model(&model.Picture{}).Where("uid = ?", uid)

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var models []*model.Picture
	err := q.Order("id DESC").
		Limit(pageSize).
		Offset(app.GetPageOffset(page, pageSize)).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	var results []*domain.Picture
	for _, m := range models {
		results = append(results, r.toDomain(m))
	}
	return results, count, nil
}

// Delete 物理删除图片记录
func (r *pictureRepository) Delete(ctx context.Context, id, uid int64) error {
	return r.dao.ExecuteWrite(ctx, uid, func(db *gorm.DB) error {
		return db.Where("id = ? AND uid = ?", id, uid).Delete(&model.Picture{}).Error
	})
}

// 确保 pictureRepository 实现了 domain.PictureRepository 接口
var _ domain.PictureRepository = (*pictureRepository)(nil)
