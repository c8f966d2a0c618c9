// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"

	"github.com/artifacts-oss/daylog/internal/domain"
	"github.com/artifacts-oss/daylog/internal/dto"
	"github.com/artifacts-oss/daylog/pkg/app"
	"github.com/artifacts-oss/daylog/pkg/code"
	"github.com/artifacts-oss/daylog/pkg/diff"
	"github.com/artifacts-oss/daylog/pkg/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NoteService defines the note business service interface
// NoteService 定义笔记业务服务接口
type NoteService interface {
	// Create 在看板下创建笔记
	Create(ctx context.Context, uid int64, params *dto.NoteCreateRequest) (*dto.NoteDTO, error)

	// Get 获取单条笔记
	Get(ctx context.Context, uid int64, id int64) (*dto.NoteDTO, error)

	// Modify 修改笔记标题和内容, 内容变化时自动记录修改历史
	Modify(ctx context.Context, uid int64, params *dto.NoteModifyRequest, clientName string) (*dto.NoteDTO, error)

	// Delete 删除笔记（软删除）并清空其修改历史
	Delete(ctx context.Context, uid int64, id int64) error

	// Pin 设置或取消笔记置顶
	Pin(ctx context.Context, uid int64, id int64, pinned bool) error

	// List 分页获取看板下的笔记列表
	List(ctx context.Context, uid int64, params *dto.NoteListRequest, pager *app.Pager) ([]*dto.NoteDTO, int64, error)

	// CleanupSoftDeleted 物理清除超过保留时间的已删除笔记
	CleanupSoftDeleted(ctx context.Context, cutoffTime int64) error
}

// noteService implementation of NoteService interface
// noteService 实现 NoteService 接口
type noteService struct {
	noteRepo   domain.NoteRepository
	boardRepo  domain.BoardRepository
	changeRepo domain.NoteChangeRepository
	logger     *zap.Logger
	config     *AppServiceConfig
}

// NewNoteService creates NoteService instance
// NewNoteService 创建 NoteService 实例
func NewNoteService(noteRepo domain.NoteRepository, boardRepo domain.BoardRepository, changeRepo domain.NoteChangeRepository, logger *zap.Logger, config *AppServiceConfig) NoteService {
	if config == nil {
		config = &AppServiceConfig{ChangeKeepVersions: 100}
	}
	return &noteService{
		noteRepo:   noteRepo,
		boardRepo:  boardRepo,
		changeRepo: changeRepo,
		logger:     logger,
		config:     config,
	}
}

// Create 在看板下创建笔记
func (s *noteService) Create(ctx context.Context, uid int64, params *dto.NoteCreateRequest) (*dto.NoteDTO, error) {
	board, err := s.boardRepo.GetByID(ctx, params.BoardID, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorBoardNotExist
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	note := &domain.Note{
		BoardID:     board.ID,
		Title:       params.Title,
		Content:     params.Content,
		ContentHash: util.EncodeHash32(params.Content),
		Version:     1,
	}
	created, err := s.noteRepo.Create(ctx, note, uid)
	if err != nil {
		return nil, code.ErrorNoteCreateFail.WithDetails(err.Error())
	}

	if err := s.boardRepo.UpdateNoteCount(ctx, board.NoteCount+1, board.ID, uid); err != nil {
		s.logger.Warn("failed to bump board note count",
			zap.Int64("boardId", board.ID),
			zap.Error(err))
	}
	return dto.NoteToDTO(created), nil
}

// Get 获取单条笔记
func (s *noteService) Get(ctx context.Context, uid int64, id int64) (*dto.NoteDTO, error) {
	note, err := s.noteRepo.GetByID(ctx, id, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNoteNotExist
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return dto.NoteToDTO(note), nil
}

// Modify 修改笔记标题和内容
// 内容有实际变化时, 在同一事务中追加修改历史并更新笔记
// 事务带版本校验, 读取后被其他写入者抢先修改时返回版本冲突错误
// 内容未变时只更新标题, 不产生历史记录
func (s *noteService) Modify(ctx context.Context, uid int64, params *dto.NoteModifyRequest, clientName string) (*dto.NoteDTO, error) {
	note, err := s.noteRepo.GetByID(ctx, params.ID, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNoteNotExist
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	if diff.TextsIdentical(note.Content, params.Content) {
		if note.Title == params.Title {
			return dto.NoteToDTO(note), nil
		}
		note.Title = params.Title
		updated, err := s.noteRepo.Update(ctx, note, uid)
		if err != nil {
			return nil, code.ErrorNoteUpdateFail.WithDetails(err.Error())
		}
		return dto.NoteToDTO(updated), nil
	}

	patchText := diff.Compute(note.Content, params.Content)
	summary := diff.GetSummary(patchText)

	change := &domain.NoteChange{
		NoteID:      note.ID,
		BoardID:     note.BoardID,
		DiffPatch:   patchText,
		PrevContent: note.Content,
		PrevHash:    note.ContentHash,
		Summary:     summary.String(),
		Preview:     diff.GetPreview(patchText, s.previewLength()),
		Size:        int64(len(params.Content)),
		Version:     note.Version + 1,
		ClientName:  clientName,
	}

	note.Title = params.Title
	note.Content = params.Content
	note.ContentHash = util.EncodeHash32(params.Content)
	note.Version = note.Version + 1

	note.Size = int64(len(params.Content))
	if _, err := s.changeRepo.AppendWithNoteUpdate(ctx, change, note, uid); err != nil {
		if errors.Is(err, domain.ErrNoteVersionConflict) {
			return nil, code.ErrorNoteVersionConflict
		}
		return nil, code.ErrorNoteUpdateFail.WithDetails(err.Error())
	}
	return dto.NoteToDTO(note), nil
}

// Delete 删除笔记并清空其修改历史
func (s *noteService) Delete(ctx context.Context, uid int64, id int64) error {
	note, err := s.noteRepo.GetByID(ctx, id, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorNoteNotExist
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}

	if err := s.noteRepo.UpdateDelete(ctx, id, uid); err != nil {
		return code.ErrorNoteDeleteFail.WithDetails(err.Error())
	}
	if _, err := s.changeRepo.DeleteByNoteID(ctx, id, uid); err != nil {
		s.logger.Warn("failed to clear change history of deleted note",
			zap.Int64("noteId", id),
			zap.Error(err))
	}

	if board, err := s.boardRepo.GetByID(ctx, note.BoardID, uid); err == nil && board.NoteCount > 0 {
		if err := s.boardRepo.UpdateNoteCount(ctx, board.NoteCount-1, board.ID, uid); err != nil {
			s.logger.Warn("failed to decrease board note count",
				zap.Int64("boardId", board.ID),
				zap.Error(err))
		}
	}
	return nil
}

// Pin 设置或取消笔记置顶
func (s *noteService) Pin(ctx context.Context, uid int64, id int64, pinned bool) error {
	note, err := s.noteRepo.GetByID(ctx, id, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorNoteNotExist
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}

	note.IsPinned = pinned
	if _, err := s.noteRepo.Update(ctx, note, uid); err != nil {
		return code.ErrorNoteUpdateFail.WithDetails(err.Error())
	}
	return nil
}

// List 分页获取看板下的笔记列表
func (s *noteService) List(ctx context.Context, uid int64, params *dto.NoteListRequest, pager *app.Pager) ([]*dto.NoteDTO, int64, error) {
	notes, err := s.noteRepo.List(ctx, params.BoardID, pager.Page, pager.PageSize, uid, params.Keyword)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.WithDetails(err.Error())
	}
	count, err := s.noteRepo.ListCount(ctx, params.BoardID, uid, params.Keyword)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.WithDetails(err.Error())
	}

	var results []*dto.NoteDTO
	for _, n := range notes {
		results = append(results, dto.NoteToDTO(n))
	}
	return results, count, nil
}

// CleanupSoftDeleted 物理清除超过保留时间的已删除笔记
func (s *noteService) CleanupSoftDeleted(ctx context.Context, cutoffTime int64) error {
	if err := s.noteRepo.DeletePhysicalByTime(ctx, cutoffTime); err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	return nil
}

func (s *noteService) previewLength() int {
	if s.config.PreviewLength > 0 {
		return s.config.PreviewLength
	}
	return diff.DefaultPreviewLength
}
