// Package dao 实现数据访问层
package dao

import (
	"context"
	"time"

	"github.com/artifacts-oss/daylog/internal/domain"
	"github.com/artifacts-oss/daylog/internal/model"
	"github.com/artifacts-oss/daylog/pkg/timex"

	"gorm.io/gorm"
)

// boardRepository 实现 domain.BoardRepository 接口
type boardRepository struct {
	dao *Dao
}

// NewBoardRepository 创建 BoardRepository 实例
func NewBoardRepository(dao *Dao) domain.BoardRepository {
	return &boardRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *boardRepository) toDomain(m *model.Board) *domain.Board {
	if m == nil {
		return nil
	}
	return &domain.Board{
		ID:        m.ID,
		UID:       m.UID,
		Name:      m.Name,
		Color:     m.Color,
		Icon:      m.Icon,
		Sort:      m.Sort,
		NoteCount: m.NoteCount,
		IsDeleted: m.IsDeleted == 1,
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
}

func (r *boardRepository) query(ctx context.Context, uid int64) *gorm.DB {
	return r.dao.DB().WithContext(ctx).Model(&model.Board{}).Where("uid = ? AND is_deleted = 0", uid)
}

// GetByID 根据ID获取看板
func (r *boardRepository) GetByID(ctx context.Context, id, uid int64) (*domain.Board, error) {
	var m model.Board
	if err := r.query(ctx, uid).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByName 根据名称获取看板
func (r *boardRepository) GetByName(ctx context.Context, name string, uid int64) (*domain.Board, error) {
	var m model.Board
	if err := r.query(ctx, uid).Where("name = ?", name).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建看板
func (r *boardRepository) Create(ctx context.Context, board *domain.Board, uid int64) (*domain.Board, error) {
	m := &model.Board{
		UID:       uid,
		Name:      board.Name,
		Color:     board.Color,
		Icon:      board.Icon,
		Sort:      board.Sort,
		CreatedAt: timex.Now(),
		UpdatedAt: timex.Now(),
	}

	err := r.dao.ExecuteWrite(ctx, uid, func(db *gorm.DB) error {
		return db.Create(m).Error
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Update 更新看板
func (r *boardRepository) Update(ctx context.Context, board *domain.Board, uid int64) error {
	return r.dao.ExecuteWrite(ctx, uid, func(db *gorm.DB) error {
		return db.Model(&model.Board{}).
			Where("id = ? AND uid = ? AND is_deleted = 0", board.ID, uid).
			Updates(map[string]any{
				"name":       board.Name,
				"color":      board.Color,
				"icon":       board.Icon,
				"sort":       board.Sort,
				"updated_at": timex.Now(),
			}).Error
	})
}

// UpdateNoteCount 更新看板的笔记数量
func (r *boardRepository) UpdateNoteCount(ctx context.Context, noteCount, id, uid int64) error {
	return r.dao.ExecuteWrite(ctx, uid, func(db *gorm.DB) error {
		return db.Model(&model.Board{}).
			Where("id = ? AND uid = ?", id, uid).
			Update("note_count", noteCount).Error
	})
}

// List 获取看板列表
func (r *boardRepository) List(ctx context.Context, uid int64) ([]*domain.Board, error) {
	var models []*model.Board
	if err := r.query(ctx, uid).Order("sort ASC, id ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	var results []*domain.Board
	for _, m := range models {
		results = append(results, r.toDomain(m))
	}
	return results, nil
}

// Delete 删除看板（软删除）
func (r *boardRepository) Delete(ctx context.Context, id, uid int64) error {
	return r.dao.ExecuteWrite(ctx, uid, func(db *gorm.DB) error {
		return db.Model(&model.Board{}).
			Where("id = ? AND uid = ?", id, uid).
			Updates(map[string]any{
				"is_deleted": 1,
				"updated_at": timex.Now(),
			}).Error
	})
}

// 确保 boardRepository 实现了 domain.BoardRepository 接口
var _ domain.BoardRepository = (*boardRepository)(nil)
