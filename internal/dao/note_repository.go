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

// noteRepository 实现 domain.NoteRepository 接口
type noteRepository struct {
	dao *Dao
}

// NewNoteRepository 创建 NoteRepository 实例
func NewNoteRepository(dao *Dao) domain.NoteRepository {
	return &noteRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *noteRepository) toDomain(m *model.Note) *domain.Note {
	if m == nil {
		return nil
	}
	return &domain.Note{
		ID:          m.ID,
		UID:         m.UID,
		BoardID:     m.BoardID,
		Title:       m.Title,
		Content:     m.Content,
		ContentHash: m.ContentHash,
		Size:        m.Size,
		Version:     m.Version,
		Sort:        m.Sort,
		IsPinned:    m.IsPinned == 1,
		IsDeleted:   m.IsDeleted == 1,
		CreatedAt:   time.Time(m.CreatedAt),
		UpdatedAt:   time.Time(m.UpdatedAt),
	}
}

// query 构造归属链过滤查询, note -> board -> user
// 找不到和无权访问返回同样的结果
func (r *noteRepository) query(ctx context.Context, uid int64) *gorm.DB {
	return r.dao.DB().WithContext(ctx).Model(&model.Note{}).
		Joins("JOIN board ON board.id = note.board_id AND board.uid = ? AND board.is_deleted = 0", uid).
		Where("note.is_deleted = 0")
}

// GetByID 根据ID获取笔记
func (r *noteRepository) GetByID(ctx context.Context, id, uid int64) (*domain.Note, error) {
	var m model.Note
	if err := r.query(ctx, uid).Where("note.id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建笔记
func (r *noteRepository) Create(ctx context.Context, note *domain.Note, uid int64) (*domain.Note, error) {
	m := &model.Note{
		UID:         uid,
		BoardID:     note.BoardID,
		Title:       note.Title,
		Content:     note.Content,
		ContentHash: note.ContentHash,
		Size:        int64(len(note.Content)),
		Version:     note.Version,
		Sort:        note.Sort,
		CreatedAt:   timex.Now(),
		UpdatedAt:   timex.Now(),
	}
	if note.IsPinned {
		m.IsPinned = 1
	}

	err := r.dao.ExecuteWrite(ctx, uid, func(db *gorm.DB) error {
		return db.Create(m).Error
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Update 更新笔记
func (r *noteRepository) Update(ctx context.Context, note *domain.Note, uid int64) (*domain.Note, error) {
	isPinned := int64(0)
	if note.IsPinned {
		isPinned = 1
	}
	updates := map[string]any{
		"title":        note.Title,
		"content":      note.Content,
		"content_hash": note.ContentHash,
		"size":         int64(len(note.Content)),
		"version":      note.Version,
		"sort":         note.Sort,
		"is_pinned":    isPinned,
		"updated_at":   timex.Now(),
	}

	err := r.dao.ExecuteWrite(ctx, uid, func(db *gorm.DB) error {
		return db.Model(&model.Note{}).
			Where("id = ? AND uid = ? AND is_deleted = 0", note.ID, uid).
			Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, note.ID, uid)
}

// UpdateDelete 更新笔记为删除状态
func (r *noteRepository) UpdateDelete(ctx context.Context, id, uid int64) error {
	return r.dao.ExecuteWrite(ctx, uid, func(db *gorm.DB) error {
		return db.Model(&model.Note{}).
			Where("id = ? AND uid = ?", id, uid).
			Updates(map[string]any{
				"is_deleted": 1,
				"updated_at": timex.Now(),
			}).Error
	})
}

// Delete 物理删除笔记
func (r *noteRepository) Delete(ctx context.Context, id, uid int64) error {
	return r.dao.ExecuteWrite(ctx, uid, func(db *gorm.DB) error {
		return db.Where("id = ? AND uid = ?", id, uid).Delete(&model.Note{}).Error
	})
}

// DeletePhysicalByTime 根据时间物理删除已标记删除的笔记
func (r *noteRepository) DeletePhysicalByTime(ctx context.Context, timestamp int64) error {
	cutoff := timex.Time(time.UnixMilli(timestamp))
	return r.dao.ExecuteWrite(ctx, 0, func(db *gorm.DB) error {
		return db.Where("is_deleted = 1 AND updated_at < ?", cutoff).Delete(&model.Note{}).Error
	})
}

// List 分页获取看板下的笔记列表
func (r *noteRepository) List(ctx context.Context, boardID int64, page, pageSize int, uid int64, keyword string) ([]*domain.Note, error) {
	q := r.query(ctx, uid)
	if boardID > 0 {
		q = q.Where("note.board_id = ?", boardID)
	}
	if keyword != "" {
		q = q.Where("note.title LIKE ? OR note.content LIKE ?", "%"+keyword+"%", "%"+keyword+"%")
	}

	q = q.Order("note.is_pinned DESC, note.sort ASC, note.updated_at DESC")
	// pageSize 为 0 表示不分页
	if pageSize > 0 {
		q = q.Limit(pageSize).Offset(app.GetPageOffset(page, pageSize))
	}

	var models []*model.Note
	err := q.Find(&models).Error
	if err != nil {
		return nil, err
	}

	var results []*domain.Note
	for _, m := range models {
		results = append(results, r.toDomain(m))
	}
	return results, nil
}

// ListCount 获取笔记数量
func (r *noteRepository) ListCount(ctx context.Context, boardID, uid int64, keyword string) (int64, error) {
	q := r.query(ctx, uid)
	if boardID > 0 {
		q = q.Where("note.board_id = ?", boardID)
	}
	if keyword != "" {
		q = q.Where("note.title LIKE ? OR note.content LIKE ?", "%"+keyword+"%", "%"+keyword+"%")
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountSizeSum 获取笔记数量和大小总和
func (r *noteRepository) CountSizeSum(ctx context.Context, boardID, uid int64) (*domain.CountSizeResult, error) {
	q := r.query(ctx, uid)
	if boardID > 0 {
		q = q.Where("note.board_id = ?", boardID)
	}

	var result struct {
		Count int64
		Size  int64
	}
	err := q.Select("COUNT(*) AS count, COALESCE(SUM(note.size), 0) AS size").Scan(&result).Error
	if err != nil {
		return nil, err
	}
	return &domain.CountSizeResult{Count: result.Count, Size: result.Size}, nil
}

// 确保 noteRepository 实现了 domain.NoteRepository 接口
var _ domain.NoteRepository = (*noteRepository)(nil)
