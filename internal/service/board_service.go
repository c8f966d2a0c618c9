// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"

	"github.com/artifacts-oss/daylog/internal/domain"
	"github.com/artifacts-oss/daylog/internal/dto"
	"github.com/artifacts-oss/daylog/pkg/code"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BoardService defines the board business service interface
// BoardService 定义看板业务服务接口
type BoardService interface {
	// Create 创建看板
	Create(ctx context.Context, uid int64, params *dto.BoardCreateRequest) (*dto.BoardDTO, error)

	// Update 更新看板
	Update(ctx context.Context, uid int64, params *dto.BoardUpdateRequest) (*dto.BoardDTO, error)

	// Delete 删除看板（软删除, 下属笔记一并标记删除）
	Delete(ctx context.Context, uid int64, id int64) error

	// List 获取用户的看板列表
	List(ctx context.Context, uid int64) ([]*dto.BoardDTO, error)

	// RefreshNoteCount 重算并保存看板的笔记数量
	RefreshNoteCount(ctx context.Context, uid int64, boardID int64) error
}

// boardService implementation of BoardService interface
// boardService 实现 BoardService 接口
type boardService struct {
	boardRepo domain.BoardRepository
	noteRepo  domain.NoteRepository
	logger    *zap.Logger
}

// NewBoardService creates BoardService instance
// NewBoardService 创建 BoardService 实例
func NewBoardService(boardRepo domain.BoardRepository, noteRepo domain.NoteRepository, logger *zap.Logger) BoardService {
	return &boardService{
		boardRepo: boardRepo,
		noteRepo:  noteRepo,
		logger:    logger,
	}
}

// Create 创建看板
func (s *boardService) Create(ctx context.Context, uid int64, params *dto.BoardCreateRequest) (*dto.BoardDTO, error) {
	if _, err := s.boardRepo.GetByName(ctx, params.Name, uid); err == nil {
		return nil, code.ErrorBoardCreateFail.WithDetails("board name already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	board := &domain.Board{
		Name:  params.Name,
		Color: params.Color,
		Icon:  params.Icon,
		Sort:  params.Sort,
	}
	created, err := s.boardRepo.Create(ctx, board, uid)
	if err != nil {
		return nil, code.ErrorBoardCreateFail.WithDetails(err.Error())
	}
	return dto.BoardToDTO(created), nil
}

// Update 更新看板
func (s *boardService) Update(ctx context.Context, uid int64, params *dto.BoardUpdateRequest) (*dto.BoardDTO, error) {
	board, err := s.boardRepo.GetByID(ctx, params.ID, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorBoardNotExist
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	board.Name = params.Name
	board.Color = params.Color
	board.Icon = params.Icon
	board.Sort = params.Sort
	if err := s.boardRepo.Update(ctx, board, uid); err != nil {
		return nil, code.ErrorBoardUpdateFail.WithDetails(err.Error())
	}

	updated, err := s.boardRepo.GetByID(ctx, params.ID, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return dto.BoardToDTO(updated), nil
}

// Delete 删除看板, 下属笔记一并标记删除
func (s *boardService) Delete(ctx context.Context, uid int64, id int64) error {
	if _, err := s.boardRepo.GetByID(ctx, id, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorBoardNotExist
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}

	notes, err := s.noteRepo.List(ctx, id, 0, 0, uid, "")
	if err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	for _, note := range notes {
		if err := s.noteRepo.UpdateDelete(ctx, note.ID, uid); err != nil {
			s.logger.Warn("failed to mark note deleted with board",
				zap.Int64("boardId", id),
				zap.Int64("noteId", note.ID),
				zap.Error(err))
		}
	}

	if err := s.boardRepo.Delete(ctx, id, uid); err != nil {
		return code.ErrorBoardDeleteFail.WithDetails(err.Error())
	}
	return nil
}

// List 获取用户的看板列表
func (s *boardService) List(ctx context.Context, uid int64) ([]*dto.BoardDTO, error) {
	boards, err := s.boardRepo.List(ctx, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	var results []*dto.BoardDTO
	for _, b := range boards {
		results = append(results, dto.BoardToDTO(b))
	}
	return results, nil
}

// RefreshNoteCount 重算并保存看板的笔记数量
func (s *boardService) RefreshNoteCount(ctx context.Context, uid int64, boardID int64) error {
	result, err := s.noteRepo.CountSizeSum(ctx, boardID, uid)
	if err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	return s.boardRepo.UpdateNoteCount(ctx, result.Count, boardID, uid)
}
