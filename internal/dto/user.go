// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import (
	"time"

	"github.com/artifacts-oss/daylog/internal/domain"
)

// UserCreateRequest 用户注册请求参数
type UserCreateRequest struct {
	Email           string `json:"email" form:"email" binding:"required,email"`
	Username        string `json:"username" form:"username" binding:"required,username"`
	Password        string `json:"password" form:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" binding:"required"`
}

// UserLoginRequest 用户登录请求参数, credentials 可为邮箱或用户名
type UserLoginRequest struct {
	Credentials string `json:"credentials" form:"credentials" binding:"required"`
	Password    string `json:"password" form:"password" binding:"required"`
	TotpCode    string `json:"totpCode" form:"totpCode"`
}

// UserChangePasswordRequest 修改密码请求参数
type UserChangePasswordRequest struct {
	OldPassword     string `json:"oldPassword" form:"oldPassword" binding:"required"`
	Password        string `json:"password" form:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" binding:"required"`
}

// UserPasswordForgetRequest 申请密码重置请求参数
type UserPasswordForgetRequest struct {
	Email string `json:"email" form:"email" binding:"required,email"`
}

// UserPasswordResetRequest 重置密码请求参数
type UserPasswordResetRequest struct {
	Token           string `json:"token" form:"token" binding:"required"`
	Password        string `json:"password" form:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" binding:"required"`
}

// UserUpdateProfileRequest 更新资料请求参数
type UserUpdateProfileRequest struct {
	Nickname string `json:"nickname" form:"nickname" binding:"required,notblank"`
	Avatar   string `json:"avatar" form:"avatar"`
}

// UserTotpEnableRequest 开启动态口令请求参数
type UserTotpEnableRequest struct {
	Secret string `json:"secret" form:"secret" binding:"required"`
	Code   string `json:"code" form:"code" binding:"required,len=6"`
}

// UserDTO 用户数据传输对象
type UserDTO struct {
	UID         int64     `json:"uid"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	Nickname    string    `json:"nickname"`
	Token       string    `json:"token"`
	Avatar      string    `json:"avatar"`
	TotpEnabled bool      `json:"totpEnabled"`
	IsAdmin     bool      `json:"isAdmin"`
	UpdatedAt   time.Time `json:"updatedAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UserTotpSetupDTO 动态口令初始化数据
type UserTotpSetupDTO struct {
	Secret string `json:"secret"`
	URI    string `json:"uri"`
}

// UserToDTO 领域模型转换为 DTO
func UserToDTO(u *domain.User, token string) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		UID:         u.UID,
		Email:       u.Email,
		Username:    u.Username,
		Nickname:    u.Nickname,
		Token:       token,
		Avatar:      u.Avatar,
		TotpEnabled: u.HasTotp(),
		IsAdmin:     u.IsAdmin,
		UpdatedAt:   u.UpdatedAt,
		CreatedAt:   u.CreatedAt,
	}
}
