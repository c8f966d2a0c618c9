package api_router

import (
	"github.com/artifacts-oss/daylog/internal/app"
	"github.com/artifacts-oss/daylog/internal/dto"
	pkgapp "github.com/artifacts-oss/daylog/pkg/app"
	"github.com/artifacts-oss/daylog/pkg/code"
	apperrors "github.com/artifacts-oss/daylog/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PictureHandler 图片 API 路由处理器
type PictureHandler struct {
	*Handler
}

// NewPictureHandler 创建 PictureHandler 实例
func NewPictureHandler(a *app.App) *PictureHandler {
	return &PictureHandler{Handler: NewHandler(a)}
}

// Upload 上传图片
// @Summary 上传图片
// @Tags 图片
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "图片文件"
// @Success 200 {object} pkgapp.Res{data=dto.PictureDTO} "成功"
// @Router /api/picture [post]
func (h *PictureHandler) Upload(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ToResponse(code.ErrorUploadFileFail.WithDetails(err.Error()))
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	picture, err := h.App.PictureService.Upload(ctx, uid, fileHeader, file)
	if err != nil {
		h.logError(ctx, "PictureHandler.Upload", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(picture))
}

// List 获取图片列表
// @Summary 获取图片列表
// @Tags 图片
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Success 200 {object} pkgapp.Res{data=[]dto.PictureDTO} "成功"
// @Router /api/pictures [get]
func (h *PictureHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	pager := pkgapp.NewPager(c, 0)
	pictures, count, err := h.App.PictureService.List(ctx, uid, pager)
	if err != nil {
		h.logError(ctx, "PictureHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success, pictures, int(count))
}

// Delete 删除图片
// @Summary 删除图片
// @Tags 图片
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param id body int64 true "图片 ID"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/picture [delete]
func (h *PictureHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.PictureDeleteRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("PictureHandler.Delete.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	if err := h.App.PictureService.Delete(ctx, uid, params.ID); err != nil {
		h.logError(ctx, "PictureHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}
