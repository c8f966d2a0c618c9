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

// noteChangeRepository 实现 domain.NoteChangeRepository 接口
type noteChangeRepository struct {
	dao *Dao
}

// NewNoteChangeRepository 创建 NoteChangeRepository 实例
func NewNoteChangeRepository(dao *Dao) domain.NoteChangeRepository {
	return &noteChangeRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *noteChangeRepository) toDomain(m *model.NoteChange) *domain.NoteChange {
	if m == nil {
		return nil
	}
	return &domain.NoteChange{
		ID:          m.ID,
		NoteID:      m.NoteID,
		BoardID:     m.BoardID,
		UID:         m.UID,
		DiffPatch:   m.DiffPatch,
		PrevContent: m.PrevContent,
		PrevHash:    m.PrevHash,
		Summary:     m.Summary,
		Preview:     m.Preview,
		Size:        m.Size,
		Version:     m.Version,
		ClientName:  m.ClientName,
		CreatedAt:   time.Time(m.CreatedAt),
	}
}

func (r *noteChangeRepository) commentToDomain(m *model.ChangeComment) *domain.ChangeComment {
	if m == nil {
		return nil
	}
	return &domain.ChangeComment{
		ID:        m.ID,
		ChangeID:  m.ChangeID,
		NoteID:    m.NoteID,
		UID:       m.UID,
		Content:   m.Content,
		CreatedAt: time.Time(m.CreatedAt),
	}
}

// query 构造归属链过滤查询, note_change -> note -> board -> user
// 不存在的记录和他人的记录对调用方不可区分
func (r *noteChangeRepository) query(ctx context.Context, uid int64) *gorm.DB {
	return r.dao.DB().WithContext(ctx).Model(&model.NoteChange{}).
		Joins("JOIN note ON note.id = note_change.note_id").
		Joins("JOIN board ON board.id = note.board_id AND board.uid = ? AND board.is_deleted = 0", uid)
}

func (r *noteChangeRepository) toModel(change *domain.NoteChange) *model.NoteChange {
	m := &model.NoteChange{
		NoteID:      change.NoteID,
		BoardID:     change.BoardID,
		UID:         change.UID,
		DiffPatch:   change.DiffPatch,
		PrevContent: change.PrevContent,
		PrevHash:    change.PrevHash,
		Summary:     change.Summary,
		Preview:     change.Preview,
		Size:        change.Size,
		Version:     change.Version,
		ClientName:  change.ClientName,
		CreatedAt:   timex.Time(change.CreatedAt),
	}
	if change.CreatedAt.IsZero() {
		m.CreatedAt = timex.Now()
	}
	return m
}

// GetByID 根据ID获取历史记录
func (r *noteChangeRepository) GetByID(ctx context.Context, id, uid int64) (*domain.NoteChange, error) {
	var m model.NoteChange
	if err := r.query(ctx, uid).Where("note_change.id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建历史记录
func (r *noteChangeRepository) Create(ctx context.Context, change *domain.NoteChange, uid int64) (*domain.NoteChange, error) {
	m := r.toModel(change)
	m.UID = uid

	err := r.dao.ExecuteWrite(ctx, uid, func(db *gorm.DB) error {
		return db.Create(m).Error
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// AppendWithNoteUpdate 在同一事务中追加历史记录并更新笔记内容
// 历史追加与笔记更新要么都生效要么都回滚
// note.Version 为期望写入的新版本, 笔记当前版本不等于 note.Version-1 时
// 返回 domain.ErrNoteVersionConflict
func (r *noteChangeRepository) AppendWithNoteUpdate(ctx context.Context, change *domain.NoteChange, note *domain.Note, uid int64) (*domain.NoteChange, error) {
	m := r.toModel(change)
	m.UID = uid

	err := r.dao.Transaction(ctx, uid, func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		// 乐观锁: 仅当笔记仍处于调用方读到的版本时才更新, 否则整个事务回滚
		res := tx.Model(&model.Note{}).
			Where("id = ? AND uid = ? AND is_deleted = 0 AND version = ?", note.ID, uid, note.Version-1).
			Updates(map[string]any{
				"title":        note.Title,
				"content":      note.Content,
				"content_hash": note.ContentHash,
				"size":         int64(len(note.Content)),
				"version":      note.Version,
				"updated_at":   timex.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNoteVersionConflict
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// ListByNoteID 根据笔记ID获取历史记录列表, 新记录在前
func (r *noteChangeRepository) ListByNoteID(ctx context.Context, noteID int64, page, pageSize int, uid int64) ([]*domain.NoteChange, int64, error) {
	q := r.query(ctx, uid).Where("note_change.note_id = ?", noteID)

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var models []*model.NoteChange
	err := q.Order("note_change.version DESC, note_change.id DESC").
		Limit(pageSize).
		Offset(app.GetPageOffset(page, pageSize)).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	var results []*domain.NoteChange
	for _, m := range models {
		results = append(results, r.toDomain(m))
	}
	return results, count, nil
}

// GetLatestVersion 获取笔记的最新版本号
func (r *noteChangeRepository) GetLatestVersion(ctx context.Context, noteID, uid int64) (int64, error) {
	var m model.NoteChange
	err := r.query(ctx, uid).
		Where("note_change.note_id = ?", noteID).
		Order("note_change.version DESC").
		First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, err
	}
	return m.Version, nil
}

// ownedChangeIDs 查询归属于 uid 的历史记录ID
func (r *noteChangeRepository) ownedChangeIDs(ctx context.Context, uid int64, cond string, args ...any) ([]int64, error) {
	var ids []int64
	err := r.query(ctx, uid).Where(cond, args...).Pluck("note_change.id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Delete 删除指定ID的历史记录, 返回删除的行数
func (r *noteChangeRepository) Delete(ctx context.Context, id, uid int64) (int64, error) {
	// 先经归属链确认记录可见, 再删除
	ids, err := r.ownedChangeIDs(ctx, uid, "note_change.id = ?", id)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	var rows int64
	err = r.dao.ExecuteWrite(ctx, uid, func(db *gorm.DB) error {
		res := db.Where("id IN ?", ids).Delete(&model.NoteChange{})
		if res.Error != nil {
			return res.Error
		}
		rows = res.RowsAffected
		return db.Where("change_id IN ?", ids).Delete(&model.ChangeComment{}).Error
	})
	if err != nil {
		return 0, err
	}
	return rows, nil
}

// DeleteByNoteID 删除指定笔记的全部历史记录, 返回删除的行数
func (r *noteChangeRepository) DeleteByNoteID(ctx context.Context, noteID, uid int64) (int64, error) {
	ids, err := r.ownedChangeIDs(ctx, uid, "note_change.note_id = ?", noteID)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	var rows int64
	err = r.dao.ExecuteWrite(ctx, uid, func(db *gorm.DB) error {
		res := db.Where("id IN ?", ids).Delete(&model.NoteChange{})
		if res.Error != nil {
			return res.Error
		}
		rows = res.RowsAffected
		return db.Where("change_id IN ?", ids).Delete(&model.ChangeComment{}).Error
	})
	if err != nil {
		return 0, err
	}
	return rows, nil
}

// GetNoteIDsWithOldChanges 获取有旧历史记录的笔记ID列表
func (r *noteChangeRepository) GetNoteIDsWithOldChanges(ctx context.Context, cutoffTime int64) ([]int64, error) {
	cutoffTimeValue := timex.Time(time.UnixMilli(cutoffTime))
	var noteIDs []int64
	err := r.dao.DB().WithContext(ctx).Model(&model.NoteChange{}).
		Where("created_at < ?", cutoffTimeValue).
		Distinct("note_id").
		Pluck("note_id", &noteIDs).Error
	if err != nil {
		return nil, err
	}
	return noteIDs, nil
}

// DeleteOldVersions 删除旧版本历史记录，保留最近 N 个版本, 返回删除的行数
func (r *noteChangeRepository) DeleteOldVersions(ctx context.Context, noteID int64, cutoffTime int64, keepVersions int, uid int64) (int64, error) {
	// 先取需要保留的最近 N 个版本的最小版本号
	var minKeepVersion int64
	if keepVersions > 0 {
		var versions []int64
		err := r.query(ctx, uid).
			Where("note_change.note_id = ?", noteID).
			Order("note_change.version DESC").
			Limit(keepVersions).
			Pluck("note_change.version", &versions).Error
		if err != nil {
			return 0, err
		}
		if len(versions) > 0 {
			minKeepVersion = versions[len(versions)-1]
		}
	}

	cutoffTimeValue := timex.Time(time.UnixMilli(cutoffTime))

	cond := "note_change.note_id = ? AND note_change.created_at < ?"
	args := []any{noteID, cutoffTimeValue}
	if minKeepVersion > 0 {
		cond += " AND note_change.version < ?"
		args = append(args, minKeepVersion)
	}

	ids, err := r.ownedChangeIDs(ctx, uid, cond, args...)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	var rows int64
	err = r.dao.ExecuteWrite(ctx, uid, func(db *gorm.DB) error {
		res := db.Where("id IN ?", ids).Delete(&model.NoteChange{})
		if res.Error != nil {
			return res.Error
		}
		rows = res.RowsAffected
		return db.Where("change_id IN ?", ids).Delete(&model.ChangeComment{}).Error
	})
	if err != nil {
		return 0, err
	}
	return rows, nil
}

// GetCommentByID 根据ID获取评论
func (r *noteChangeRepository) GetCommentByID(ctx context.Context, id int64) (*domain.ChangeComment, error) {
	var m model.ChangeComment
	err := r.dao.DB().WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.commentToDomain(&m), nil
}

// CreateComment 创建评论
func (r *noteChangeRepository) CreateComment(ctx context.Context, comment *domain.ChangeComment) (*domain.ChangeComment, error) {
	m := &model.ChangeComment{
		ChangeID:  comment.ChangeID,
		NoteID:    comment.NoteID,
		UID:       comment.UID,
		Content:   comment.Content,
		CreatedAt: timex.Now(),
	}

	err := r.dao.ExecuteWrite(ctx, comment.UID, func(db *gorm.DB) error {
		return db.Create(m).Error
	})
	if err != nil {
		return nil, err
	}
	return r.commentToDomain(m), nil
}

// ListCommentsByChangeID 获取历史记录的评论列表
func (r *noteChangeRepository) ListCommentsByChangeID(ctx context.Context, changeID int64) ([]*domain.ChangeComment, error) {
	var models []*model.ChangeComment
	err := r.dao.DB().WithContext(ctx).
		Where("change_id = ?", changeID).
		Order("created_at ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	var results []*domain.ChangeComment
	for _, m := range models {
		results = append(results, r.commentToDomain(m))
	}
	return results, nil
}

// ListCommentsByChangeIDs 批量获取多条历史记录的评论, 供列表页一次性装配
func (r *noteChangeRepository) ListCommentsByChangeIDs(ctx context.Context, changeIDs []int64) ([]*domain.ChangeComment, error) {
	if len(changeIDs) == 0 {
		return nil, nil
	}

	var models []*model.ChangeComment
	err := r.dao.DB().WithContext(ctx).
		Where("change_id IN ?", changeIDs).
		Order("created_at ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	var results []*domain.ChangeComment
	for _, m := range models {
		results = append(results, r.commentToDomain(m))
	}
	return results, nil
}

// DeleteComment 删除评论, 仅作者本人可删, 返回删除的行数
func (r *noteChangeRepository) DeleteComment(ctx context.Context, id, uid int64) (int64, error) {
	var rows int64
	err := r.dao.ExecuteWrite(ctx, uid, func(db *gorm.DB) error {
		res := db.Where("id = ? AND uid = ?", id, uid).Delete(&model.ChangeComment{})
		if res.Error != nil {
			return res.Error
		}
		rows = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return rows, nil
}

// 确保 noteChangeRepository 实现了 domain.NoteChangeRepository 接口
var _ domain.NoteChangeRepository = (*noteChangeRepository)(nil)
