// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/artifacts-oss/daylog/internal/domain"
	"github.com/artifacts-oss/daylog/internal/dto"
	"github.com/artifacts-oss/daylog/pkg/app"
	"github.com/artifacts-oss/daylog/pkg/code"
	"github.com/artifacts-oss/daylog/pkg/storage"
	"github.com/artifacts-oss/daylog/pkg/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 允许上传的图片扩展名
var allowedPictureExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

// MaxPictureSize 图片大小上限
const MaxPictureSize = 20 << 20

// PictureService defines the picture business service interface
// PictureService 定义图片业务服务接口
type PictureService interface {
	// Upload 上传图片并记录归属
	Upload(ctx context.Context, uid int64, fileHeader *multipart.FileHeader, file io.Reader) (*dto.PictureDTO, error)

	// List 分页获取用户图片列表
	List(ctx context.Context, uid int64, pager *app.Pager) ([]*dto.PictureDTO, int64, error)

	// Delete 删除图片记录和存储文件
	Delete(ctx context.Context, uid int64, id int64) error
}

// pictureService implementation of PictureService interface
// pictureService 实现 PictureService 接口
type pictureService struct {
	pictureRepo domain.PictureRepository
	store       storage.Storager
	logger      *zap.Logger
}

// NewPictureService creates PictureService instance
// NewPictureService 创建 PictureService 实例
func NewPictureService(pictureRepo domain.PictureRepository, store storage.Storager, logger *zap.Logger) PictureService {
	return &pictureService{
		pictureRepo: pictureRepo,
		store:       store,
		logger:      logger,
	}
}

// Upload 上传图片并记录归属
func (s *pictureService) Upload(ctx context.Context, uid int64, fileHeader *multipart.FileHeader, file io.Reader) (*dto.PictureDTO, error) {
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedPictureExts[ext] {
		return nil, code.ErrorInvalidFileType
	}
	if fileHeader.Size > MaxPictureSize {
		return nil, code.ErrorFileTooLarge
	}

	content, err := io.ReadAll(io.LimitReader(file, MaxPictureSize+1))
	if err != nil {
		return nil, code.ErrorUploadFileFail.WithDetails(err.Error())
	}
	if len(content) > MaxPictureSize {
		return nil, code.ErrorFileTooLarge
	}

	fileKey := fmt.Sprintf("pictures/%d/%s%s",
		uid,
		util.EncodeMD5(fmt.Sprintf("%s-%d", fileHeader.Filename, time.Now().UnixNano())),
		ext)

	savedKey, err := s.store.SendContent(fileKey, content, time.Now())
	if err != nil {
		return nil, code.ErrorUploadFileFail.WithDetails(err.Error())
	}

	picture := &domain.Picture{
		FileKey:  savedKey,
		URL:      "/storage/" + savedKey,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Size:     fileHeader.Size,
	}
	created, err := s.pictureRepo.Create(ctx, picture, uid)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return dto.PictureToDTO(created), nil
}

// List 分页获取用户图片列表
func (s *pictureService) List(ctx context.Context, uid int64, pager *app.Pager) ([]*dto.PictureDTO, int64, error) {
	pictures, count, err := s.pictureRepo.List(ctx, uid, pager.Page, pager.PageSize)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.WithDetails(err.Error())
	}

	var results []*dto.PictureDTO
	for _, p := range pictures {
		results = append(results, dto.PictureToDTO(p))
	}
	return results, count, nil
}

// Delete 删除图片记录和存储文件
func (s *pictureService) Delete(ctx context.Context, uid int64, id int64) error {
	picture, err := s.pictureRepo.GetByID(ctx, id, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorNotFound
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}

	if err := s.pictureRepo.Delete(ctx, id, uid); err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}

	if err := s.store.Delete(picture.FileKey); err != nil {
		s.logger.Warn("failed to delete picture file",
			zap.String("fileKey", picture.FileKey),
			zap.Error(err))
	}
	return nil
}
