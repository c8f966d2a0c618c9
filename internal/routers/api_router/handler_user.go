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

// UserHandler 用户 API 路由处理器
type UserHandler struct {
	*Handler
}

// NewUserHandler 创建 UserHandler 实例
func NewUserHandler(a *app.App) *UserHandler {
	return &UserHandler{Handler: NewHandler(a)}
}

// Register 用户注册
// @Summary 用户注册
// @Tags 用户
// @Produce json
// @Param params body dto.UserCreateRequest true "注册参数"
// @Success 200 {object} pkgapp.Res{data=dto.UserDTO} "成功"
// @Router /api/user/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.UserCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("UserHandler.Register.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	user, err := h.App.UserService.Register(ctx, params, pkgapp.GetRequestIP(c))
	if err != nil {
		h.logError(ctx, "UserHandler.Register", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(user))
}

// PasswordForget 申请密码重置
// @Summary 发送密码重置邮件
// @Tags 用户
// @Produce json
// @Param params body dto.UserPasswordForgetRequest true "申请参数"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/user/password/forget [post]
func (h *UserHandler) PasswordForget(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.UserPasswordForgetRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("UserHandler.PasswordForget.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	if err := h.App.UserService.PasswordForget(ctx, params); err != nil {
		h.logError(ctx, "UserHandler.PasswordForget", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// PasswordReset 通过重置令牌设置新密码
// @Summary 重置密码
// @Tags 用户
// @Produce json
// @Param params body dto.UserPasswordResetRequest true "重置参数"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/user/password/reset [post]
func (h *UserHandler) PasswordReset(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.UserPasswordResetRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("UserHandler.PasswordReset.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	if err := h.App.UserService.PasswordReset(ctx, params); err != nil {
		h.logError(ctx, "UserHandler.PasswordReset", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// Login 用户登录
// @Summary 用户登录
// @Tags 用户
// @Produce json
// @Param params body dto.UserLoginRequest true "登录参数"
// @Success 200 {object} pkgapp.Res{data=dto.UserDTO} "成功"
// @Router /api/user/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.UserLoginRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("UserHandler.Login.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	user, err := h.App.UserService.Login(ctx, params, pkgapp.GetRequestIP(c))
	if err != nil {
		h.logError(ctx, "UserHandler.Login", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(user))
}

// Info 获取当前用户信息
// @Summary 获取用户信息
// @Tags 用户
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.UserDTO} "成功"
// @Router /api/user [get]
func (h *UserHandler) Info(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	user, err := h.App.UserService.GetInfo(ctx, uid)
	if err != nil {
		h.logError(ctx, "UserHandler.Info", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(user))
}

// ChangePassword 修改密码
// @Summary 修改密码
// @Tags 用户
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param params body dto.UserChangePasswordRequest true "修改密码参数"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/user/password [put]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.UserChangePasswordRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("UserHandler.ChangePassword.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	if err := h.App.UserService.ChangePassword(ctx, uid, params); err != nil {
		h.logError(ctx, "UserHandler.ChangePassword", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// UpdateProfile 更新昵称和头像
// @Summary 更新用户资料
// @Tags 用户
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param params body dto.UserUpdateProfileRequest true "资料参数"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/user/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.UserUpdateProfileRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("UserHandler.UpdateProfile.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	if err := h.App.UserService.UpdateProfile(ctx, uid, params); err != nil {
		h.logError(ctx, "UserHandler.UpdateProfile", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// TotpSetup 生成动态口令密钥
// @Summary 生成动态口令密钥
// @Tags 用户
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.UserTotpSetupDTO} "成功"
// @Router /api/user/totp/setup [post]
func (h *UserHandler) TotpSetup(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	setup, err := h.App.UserService.TotpSetup(ctx, uid)
	if err != nil {
		h.logError(ctx, "UserHandler.TotpSetup", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(setup))
}

// TotpEnable 校验验证码后绑定动态口令
// @Summary 绑定动态口令
// @Tags 用户
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param params body dto.UserTotpEnableRequest true "绑定参数"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/user/totp [post]
func (h *UserHandler) TotpEnable(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.UserTotpEnableRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("UserHandler.TotpEnable.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	if err := h.App.UserService.TotpEnable(ctx, uid, params); err != nil {
		h.logError(ctx, "UserHandler.TotpEnable", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// TotpDisable 解绑动态口令
// @Summary 解绑动态口令
// @Tags 用户
// @Security UserAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param code body string true "当前动态验证码"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/user/totp [delete]
func (h *UserHandler) TotpDisable(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	type disableParams struct {
		Code string `json:"code" form:"code" binding:"required,len=6"`
	}
	params := &disableParams{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("UserHandler.TotpDisable.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()
	if err := h.App.UserService.TotpDisable(ctx, uid, params.Code); err != nil {
		h.logError(ctx, "UserHandler.TotpDisable", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}
