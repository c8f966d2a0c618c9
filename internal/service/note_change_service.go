// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/artifacts-oss/daylog/internal/domain"
	"github.com/artifacts-oss/daylog/internal/dto"
	"github.com/artifacts-oss/daylog/pkg/app"
	"github.com/artifacts-oss/daylog/pkg/diff"
	"github.com/artifacts-oss/daylog/pkg/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NoteChangeService defines the note change history business service interface
// 列表在无权访问时返回空, 删除类操作返回是否生效, 恢复返回带原因的结果
// NoteChangeService 定义笔记修改历史业务服务接口
type NoteChangeService interface {
	// Get 获取单条历史记录详情（含补丁正文与修改前内容）
	Get(ctx context.Context, uid int64, id int64) (*dto.ChangeDetailDTO, error)

	// List 获取笔记的历史记录列表, 新记录在前
	// 笔记不存在或无权访问时返回空列表
	List(ctx context.Context, uid int64, params *dto.ChangeListRequest, pager *app.Pager) ([]*dto.ChangeDTO, int64)

	// Delete 删除单条历史记录, 返回是否删除成功
	Delete(ctx context.Context, uid int64, id int64) bool

	// Clear 清空笔记的全部历史记录, 返回是否清空成功
	// 历史本就为空的笔记视为清空成功
	Clear(ctx context.Context, uid int64, noteID int64) bool

	// Restore 将笔记恢复到指定历史版本修改前的内容
	Restore(ctx context.Context, uid int64, changeID int64, clientName string) *dto.RestoreResultDTO

	// AddComment 为历史记录添加评论, 失败时返回 nil
	AddComment(ctx context.Context, uid int64, params *dto.CommentAddRequest) *dto.CommentDTO

	// ListComments 获取历史记录的评论列表
	ListComments(ctx context.Context, uid int64, changeID int64) []*dto.CommentDTO

	// DeleteComment 删除评论, 仅评论作者本人可删, 返回是否删除成功
	DeleteComment(ctx context.Context, uid int64, id int64) bool

	// CleanupByTime 按截止时间清理历史记录, 每条笔记保留最近 N 个版本
	CleanupByTime(ctx context.Context, cutoffTime int64, keepVersions int) error
}

// noteChangeService implementation of NoteChangeService interface
// noteChangeService 实现 NoteChangeService 接口
type noteChangeService struct {
	changeRepo domain.NoteChangeRepository
	noteRepo   domain.NoteRepository
	userRepo   domain.UserRepository
	logger     *zap.Logger
	config     *AppServiceConfig
}

// NewNoteChangeService creates NoteChangeService instance
// NewNoteChangeService 创建 NoteChangeService 实例
func NewNoteChangeService(changeRepo domain.NoteChangeRepository, noteRepo domain.NoteRepository, userRepo domain.UserRepository, logger *zap.Logger, config *AppServiceConfig) NoteChangeService {
	if config == nil {
		config = &AppServiceConfig{ChangeKeepVersions: 100}
	}
	return &noteChangeService{
		changeRepo: changeRepo,
		noteRepo:   noteRepo,
		userRepo:   userRepo,
		logger:     logger,
		config:     config,
	}
}

// ensureValidUTF8 清理无效的 UTF-8 字节序列
func (s *noteChangeService) ensureValidUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}
	return strings.ToValidUTF8(text, "�")
}

// nicknameOf 获取用户昵称, 查询失败时返回空昵称而不是错误
func (s *noteChangeService) nicknameOf(ctx context.Context, cache map[int64]string, uid int64) string {
	if nickname, ok := cache[uid]; ok {
		return nickname
	}
	nickname := ""
	if user, err := s.userRepo.GetByUID(ctx, uid); err == nil {
		nickname = user.Nickname
	}
	cache[uid] = nickname
	return nickname
}

// Get 获取单条历史记录详情
func (s *noteChangeService) Get(ctx context.Context, uid int64, id int64) (*dto.ChangeDetailDTO, error) {
	change, err := s.changeRepo.GetByID(ctx, id, uid)
	if err != nil {
		return nil, err
	}
	detail := dto.ChangeToDetailDTO(change)
	detail.AuthorNickname = s.nicknameOf(ctx, map[int64]string{}, change.UID)
	return detail, nil
}

// List 获取笔记的历史记录列表
// 笔记不存在或无权访问时返回空列表而不是错误
func (s *noteChangeService) List(ctx context.Context, uid int64, params *dto.ChangeListRequest, pager *app.Pager) ([]*dto.ChangeDTO, int64) {
	if _, err := s.noteRepo.GetByID(ctx, params.NoteID, uid); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("failed to load note for change list",
				zap.Int64("noteId", params.NoteID),
				zap.Error(err))
		}
		return []*dto.ChangeDTO{}, 0
	}

	changes, count, err := s.changeRepo.ListByNoteID(ctx, params.NoteID, pager.Page, pager.PageSize, uid)
	if err != nil {
		s.logger.Error("failed to list note changes",
			zap.Int64("noteId", params.NoteID),
			zap.Error(err))
		return []*dto.ChangeDTO{}, 0
	}

	changeIDs := make([]int64, 0, len(changes))
	for _, c := range changes {
		changeIDs = append(changeIDs, c.ID)
	}
	comments, err := s.changeRepo.ListCommentsByChangeIDs(ctx, changeIDs)
	if err != nil {
		s.logger.Error("failed to list change comments for note",
			zap.Int64("noteId", params.NoteID),
			zap.Error(err))
		comments = nil
	}

	nicknames := make(map[int64]string)
	commentsByChange := make(map[int64][]*dto.CommentDTO, len(changes))
	for _, c := range comments {
		d := dto.CommentToDTO(c)
		d.AuthorNickname = s.nicknameOf(ctx, nicknames, c.UID)
		commentsByChange[c.ChangeID] = append(commentsByChange[c.ChangeID], d)
	}

	results := make([]*dto.ChangeDTO, 0, len(changes))
	for _, c := range changes {
		d := dto.ChangeToDTO(c)
		d.AuthorNickname = s.nicknameOf(ctx, nicknames, c.UID)
		if list := commentsByChange[c.ID]; list != nil {
			d.Comments = list
		}
		results = append(results, d)
	}
	return results, count
}

// Delete 删除单条历史记录
// 记录不存在、无权访问或数据库错误都返回 false
func (s *noteChangeService) Delete(ctx context.Context, uid int64, id int64) bool {
	rows, err := s.changeRepo.Delete(ctx, id, uid)
	if err != nil {
		s.logger.Error("failed to delete note change",
			zap.Int64("changeId", id),
			zap.Error(err))
		return false
	}
	return rows > 0
}

// Clear 清空笔记的全部历史记录
// 历史本就为空的笔记也视为清空成功, 笔记不存在或无权访问返回 false
func (s *noteChangeService) Clear(ctx context.Context, uid int64, noteID int64) bool {
	if _, err := s.noteRepo.GetByID(ctx, noteID, uid); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("failed to load note for clear",
				zap.Int64("noteId", noteID),
				zap.Error(err))
		}
		return false
	}

	if _, err := s.changeRepo.DeleteByNoteID(ctx, noteID, uid); err != nil {
		s.logger.Error("failed to clear note changes",
			zap.Int64("noteId", noteID),
			zap.Error(err))
		return false
	}
	return true
}

// Restore 将笔记恢复到指定历史版本修改前的内容
// 恢复前会先为当前内容追加一条历史记录, 保证恢复操作本身可回溯
func (s *noteChangeService) Restore(ctx context.Context, uid int64, changeID int64, clientName string) *dto.RestoreResultDTO {
	change, err := s.changeRepo.GetByID(ctx, changeID, uid)
	if err != nil {
		return &dto.RestoreResultDTO{Success: false, Err: "change record not found"}
	}

	note, err := s.noteRepo.GetByID(ctx, change.NoteID, uid)
	if err != nil {
		return &dto.RestoreResultDTO{Success: false, Err: "note not found"}
	}

	restoredContent := s.ensureValidUTF8(change.PrevContent)
	if diff.TextsIdentical(note.Content, restoredContent) {
		return &dto.RestoreResultDTO{Success: true}
	}

	// 补丁方向为恢复目标到当前内容, 对恢复后的内容应用补丁可还原恢复前的内容
	patchText := diff.Compute(restoredContent, note.Content)
	summary := diff.GetSummary(patchText)

	record := &domain.NoteChange{
		NoteID:      note.ID,
		BoardID:     note.BoardID,
		DiffPatch:   patchText,
		PrevContent: note.Content,
		PrevHash:    note.ContentHash,
		Summary:     summary.String(),
		Preview:     diff.GetPreview(patchText, s.previewLength()),
		Size:        int64(len(restoredContent)),
		Version:     note.Version + 1,
		ClientName:  clientName,
	}

	note.Content = restoredContent
	note.ContentHash = util.EncodeHash32(restoredContent)
	note.Version = note.Version + 1

	if _, err := s.changeRepo.AppendWithNoteUpdate(ctx, record, note, uid); err != nil {
		if errors.Is(err, domain.ErrNoteVersionConflict) {
			return &dto.RestoreResultDTO{Success: false, Err: "note was modified by another client, reload and retry"}
		}
		s.logger.Error("failed to restore note from change",
			zap.Int64("changeId", changeID),
			zap.Int64("noteId", note.ID),
			zap.Error(err))
		return &dto.RestoreResultDTO{Success: false, Err: "failed to apply restore"}
	}

	s.logger.Info("note restored from change history",
		zap.Int64("changeId", changeID),
		zap.Int64("noteId", note.ID),
		zap.Int64("version", note.Version))
	return &dto.RestoreResultDTO{Success: true}
}

// AddComment 为历史记录添加评论
// 历史记录不存在、无权访问或数据库错误时返回 nil
func (s *noteChangeService) AddComment(ctx context.Context, uid int64, params *dto.CommentAddRequest) *dto.CommentDTO {
	change, err := s.changeRepo.GetByID(ctx, params.ChangeID, uid)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("failed to load change for comment",
				zap.Int64("changeId", params.ChangeID),
				zap.Error(err))
		}
		return nil
	}

	comment := &domain.ChangeComment{
		ChangeID: change.ID,
		NoteID:   change.NoteID,
		UID:      uid,
		Content:  params.Content,
	}
	created, err := s.changeRepo.CreateComment(ctx, comment)
	if err != nil {
		s.logger.Error("failed to create change comment",
			zap.Int64("changeId", params.ChangeID),
			zap.Error(err))
		return nil
	}
	result := dto.CommentToDTO(created)
	result.AuthorNickname = s.nicknameOf(ctx, map[int64]string{}, uid)
	return result
}

// ListComments 获取历史记录的评论列表
// 历史记录不可见时返回空列表
func (s *noteChangeService) ListComments(ctx context.Context, uid int64, changeID int64) []*dto.CommentDTO {
	if _, err := s.changeRepo.GetByID(ctx, changeID, uid); err != nil {
		return []*dto.CommentDTO{}
	}

	comments, err := s.changeRepo.ListCommentsByChangeID(ctx, changeID)
	if err != nil {
		s.logger.Error("failed to list change comments",
			zap.Int64("changeId", changeID),
			zap.Error(err))
		return []*dto.CommentDTO{}
	}

	nicknames := make(map[int64]string)
	results := make([]*dto.CommentDTO, 0, len(comments))
	for _, c := range comments {
		d := dto.CommentToDTO(c)
		d.AuthorNickname = s.nicknameOf(ctx, nicknames, c.UID)
		results = append(results, d)
	}
	return results
}

// DeleteComment 删除评论, 仅评论作者本人可删
func (s *noteChangeService) DeleteComment(ctx context.Context, uid int64, id int64) bool {
	rows, err := s.changeRepo.DeleteComment(ctx, id, uid)
	if err != nil {
		s.logger.Error("failed to delete change comment",
			zap.Int64("commentId", id),
			zap.Error(err))
		return false
	}
	return rows > 0
}

// CleanupByTime 按截止时间清理历史记录, 每条笔记保留最近 N 个版本
func (s *noteChangeService) CleanupByTime(ctx context.Context, cutoffTime int64, keepVersions int) error {
	uids, err := s.userRepo.GetAllUIDs(ctx)
	if err != nil {
		return err
	}

	noteIDs, err := s.changeRepo.GetNoteIDsWithOldChanges(ctx, cutoffTime)
	if err != nil {
		return err
	}

	var notesCleaned, rowsDeleted int64
	for i, uid := range uids {
		// 错峰执行, 避免瞬间触发大量写事务
		if i > 0 {
			time.Sleep(500 * time.Millisecond)
		}
		for _, noteID := range noteIDs {
			rows, err := s.changeRepo.DeleteOldVersions(ctx, noteID, cutoffTime, keepVersions, uid)
			if err != nil {
				s.logger.Error("failed to cleanup note changes",
					zap.Int64("uid", uid),
					zap.Int64("noteId", noteID),
					zap.Error(err))
				continue
			}
			if rows > 0 {
				notesCleaned++
				rowsDeleted += rows
			}
		}
	}

	s.logger.Info("note change cleanup completed",
		zap.Int64("cutoffTime", cutoffTime),
		zap.Int("keepVersions", keepVersions),
		zap.Int64("notesCleaned", notesCleaned),
		zap.Int64("changesDeleted", rowsDeleted))
	return nil
}

func (s *noteChangeService) previewLength() int {
	if s.config.PreviewLength > 0 {
		return s.config.PreviewLength
	}
	return diff.DefaultPreviewLength
}
