// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/artifacts-oss/daylog/internal/domain"
	"github.com/artifacts-oss/daylog/internal/dto"
	"github.com/artifacts-oss/daylog/pkg/app"
	"github.com/artifacts-oss/daylog/pkg/code"
	"github.com/artifacts-oss/daylog/pkg/mailer"
	"github.com/artifacts-oss/daylog/pkg/totp"
	"github.com/artifacts-oss/daylog/pkg/util"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService defines the user business service interface
// UserService 定义用户业务服务接口
type UserService interface {
	// Register 注册新用户
	Register(ctx context.Context, params *dto.UserCreateRequest, ip string) (*dto.UserDTO, error)

	// Login 用户登录, credentials 可为邮箱或用户名
	Login(ctx context.Context, params *dto.UserLoginRequest, ip string) (*dto.UserDTO, error)

	// GetInfo 获取用户信息
	GetInfo(ctx context.Context, uid int64) (*dto.UserDTO, error)

	// ChangePassword 修改密码
	ChangePassword(ctx context.Context, uid int64, params *dto.UserChangePasswordRequest) error

	// PasswordForget 发送密码重置邮件
	PasswordForget(ctx context.Context, params *dto.UserPasswordForgetRequest) error

	// PasswordReset 通过重置令牌设置新密码
	PasswordReset(ctx context.Context, params *dto.UserPasswordResetRequest) error

	// UpdateProfile 更新昵称和头像
	UpdateProfile(ctx context.Context, uid int64, params *dto.UserUpdateProfileRequest) error

	// TotpSetup 生成动态口令密钥和绑定 URI
	TotpSetup(ctx context.Context, uid int64) (*dto.UserTotpSetupDTO, error)

	// TotpEnable 校验验证码后绑定动态口令
	TotpEnable(ctx context.Context, uid int64, params *dto.UserTotpEnableRequest) error

	// TotpDisable 解绑动态口令
	TotpDisable(ctx context.Context, uid int64, codeStr string) error
}

// userService implementation of UserService interface
// userService 实现 UserService 接口
type userService struct {
	userRepo domain.UserRepository
	tokens   app.TokenManager
	mail     *mailer.Mailer
	logger   *zap.Logger
	config   *UserServiceConfig
}

// NewUserService creates UserService instance
// NewUserService 创建 UserService 实例
func NewUserService(userRepo domain.UserRepository, tokens app.TokenManager, mail *mailer.Mailer, logger *zap.Logger, config *UserServiceConfig) UserService {
	if config == nil {
		config = &UserServiceConfig{RegisterIsEnable: true}
	}
	return &userService{
		userRepo: userRepo,
		tokens:   tokens,
		mail:     mail,
		logger:   logger,
		config:   config,
	}
}

// Register 注册新用户
func (s *userService) Register(ctx context.Context, params *dto.UserCreateRequest, ip string) (*dto.UserDTO, error) {
	if !s.config.RegisterIsEnable {
		return nil, code.ErrorUserRegisterClosed
	}
	if params.Password != params.ConfirmPassword {
		return nil, code.ErrorInvalidParams.WithDetails("password confirmation mismatch")
	}
	if !util.IsValidEmail(params.Email) {
		return nil, code.ErrorInvalidParams.WithDetails("invalid email")
	}

	if _, err := s.userRepo.GetByEmail(ctx, params.Email); err == nil {
		return nil, code.ErrorUserAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if _, err := s.userRepo.GetByUsername(ctx, params.Username); err == nil {
		return nil, code.ErrorUserAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}

	user := &domain.User{
		Email:    params.Email,
		Username: params.Username,
		Nickname: params.Username,
		Password: string(hashed),
	}
	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	token, err := s.tokens.Generate(created.UID, created.Nickname, ip)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	return dto.UserToDTO(created, token), nil
}

// Login 用户登录
func (s *userService) Login(ctx context.Context, params *dto.UserLoginRequest, ip string) (*dto.UserDTO, error) {
	var user *domain.User
	var err error
	if strings.Contains(params.Credentials, "@") {
		user, err = s.userRepo.GetByEmail(ctx, params.Credentials)
	} else {
		user, err = s.userRepo.GetByUsername(ctx, params.Credentials)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorUserPasswordWrong
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(params.Password)) != nil {
		return nil, code.ErrorUserPasswordWrong
	}

	if user.HasTotp() {
		if params.TotpCode == "" || !totp.Validate(user.TotpSecret, params.TotpCode, time.Now()) {
			return nil, code.ErrorUserTotpCodeWrong
		}
	}

	token, err := s.tokens.Generate(user.UID, user.Nickname, ip)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	return dto.UserToDTO(user, token), nil
}

// GetInfo 获取用户信息
func (s *userService) GetInfo(ctx context.Context, uid int64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorUserNotExist
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return dto.UserToDTO(user, ""), nil
}

// ChangePassword 修改密码
func (s *userService) ChangePassword(ctx context.Context, uid int64, params *dto.UserChangePasswordRequest) error {
	if params.Password != params.ConfirmPassword {
		return code.ErrorInvalidParams.WithDetails("password confirmation mismatch")
	}

	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return code.ErrorUserNotExist
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(params.OldPassword)) != nil {
		return code.ErrorUserPasswordWrong
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return code.ErrorServerInternal.WithDetails(err.Error())
	}
	if err := s.userRepo.UpdatePassword(ctx, string(hashed), uid); err != nil {
		return code.ErrorUserUpdateFail.WithDetails(err.Error())
	}
	return nil
}

// PasswordForget 发送密码重置邮件
// 为避免邮箱枚举，邮箱不存在时也返回成功
func (s *userService) PasswordForget(ctx context.Context, params *dto.UserPasswordForgetRequest) error {
	if s.mail == nil || !s.mail.IsEnabled() {
		return code.ErrorUserSendEmailFail.WithDetails("mailer is not configured")
	}

	user, err := s.userRepo.GetByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}

	token, err := s.tokens.ResetGenerate(user.UID, user.Email)
	if err != nil {
		return code.ErrorServerInternal.WithDetails(err.Error())
	}

	body := "<p>你好 " + user.Nickname + "，</p>" +
		"<p>我们收到了你的密码重置请求，重置令牌为：</p>" +
		"<p><code>" + token + "</code></p>" +
		"<p>令牌 30 分钟内有效，如果不是你本人操作请忽略本邮件。</p>"
	if err := s.mail.Send(user.Email, "密码重置 / Password Reset", body); err != nil {
		s.logger.Error("send password reset mail failed", zap.String("email", user.Email), zap.Error(err))
		return code.ErrorUserSendEmailFail
	}
	return nil
}

// PasswordReset 通过重置令牌设置新密码
func (s *userService) PasswordReset(ctx context.Context, params *dto.UserPasswordResetRequest) error {
	if params.Password != params.ConfirmPassword {
		return code.ErrorInvalidParams.WithDetails("password confirmation mismatch")
	}

	entity, err := s.tokens.ResetParse(params.Token)
	if err != nil {
		return code.ErrorUserResetTokenWrong
	}

	user, err := s.userRepo.GetByUID(ctx, entity.UID)
	if err != nil || user.Email != entity.Email {
		return code.ErrorUserResetTokenWrong
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return code.ErrorServerInternal.WithDetails(err.Error())
	}
	if err := s.userRepo.UpdatePassword(ctx, string(hashed), user.UID); err != nil {
		return code.ErrorUserUpdateFail.WithDetails(err.Error())
	}
	return nil
}

// UpdateProfile 更新昵称和头像
func (s *userService) UpdateProfile(ctx context.Context, uid int64, params *dto.UserUpdateProfileRequest) error {
	if err := s.userRepo.UpdateProfile(ctx, params.Nickname, params.Avatar, uid); err != nil {
		return code.ErrorUserUpdateFail.WithDetails(err.Error())
	}
	return nil
}

// TotpSetup 生成动态口令密钥和绑定 URI
func (s *userService) TotpSetup(ctx context.Context, uid int64) (*dto.UserTotpSetupDTO, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, code.ErrorUserNotExist
	}

	secret, err := totp.GenerateSecret()
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}

	issuer := s.config.TotpIssuer
	if issuer == "" {
		issuer = "Daylog"
	}
	return &dto.UserTotpSetupDTO{
		Secret: secret,
		URI:    totp.ProvisioningURI(issuer, user.Email, secret),
	}, nil
}

// TotpEnable 校验验证码后绑定动态口令
func (s *userService) TotpEnable(ctx context.Context, uid int64, params *dto.UserTotpEnableRequest) error {
	if !totp.Validate(params.Secret, params.Code, time.Now()) {
		return code.ErrorUserTotpCodeWrong
	}
	if err := s.userRepo.UpdateTotpSecret(ctx, params.Secret, uid); err != nil {
		return code.ErrorUserUpdateFail.WithDetails(err.Error())
	}
	return nil
}

// TotpDisable 解绑动态口令
func (s *userService) TotpDisable(ctx context.Context, uid int64, codeStr string) error {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return code.ErrorUserNotExist
	}
	if !user.HasTotp() {
		return nil
	}
	if !totp.Validate(user.TotpSecret, codeStr, time.Now()) {
		return code.ErrorUserTotpCodeWrong
	}
	if err := s.userRepo.UpdateTotpSecret(ctx, "", uid); err != nil {
		return code.ErrorUserUpdateFail.WithDetails(err.Error())
	}
	return nil
}
