// Package dao 实现数据访问层
package dao

import (
	"context"
	"time"

	"github.com/artifacts-oss/daylog/internal/domain"
	"github.com/artifacts-oss/daylog/internal/model"
	"github.com/artifacts-oss/daylog/pkg/convert"
	"github.com/artifacts-oss/daylog/pkg/timex"

	"gorm.io/gorm"
)

// userRepository 实现 domain.UserRepository 接口
type userRepository struct {
	dao *Dao
}

// NewUserRepository 创建 UserRepository 实例
func NewUserRepository(dao *Dao) domain.UserRepository {
	return &userRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *userRepository) toDomain(m *model.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		UID:        m.UID,
		Email:      m.Email,
		Username:   m.Username,
		Nickname:   m.Nickname,
		Password:   m.Password,
		Avatar:     m.Avatar,
		TotpSecret: m.TotpSecret,
		IsAdmin:    convert.Int2Bool(m.IsAdmin),
		IsDeleted:  convert.Int2Bool(m.IsDeleted),
		CreatedAt:  time.Time(m.CreatedAt),
		UpdatedAt:  time.Time(m.UpdatedAt),
	}
}

func (r *userRepository) query(ctx context.Context) *gorm.DB {
	return r.dao.DB().WithContext(ctx).Model(&model.User{}).Where("is_deleted = 0")
}

// GetByUID 根据UID获取用户
func (r *userRepository) GetByUID(ctx context.Context, uid int64) (*domain.User, error) {
	var m model.User
	if err := r.query(ctx).Where("uid = ?", uid).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByEmail 根据邮箱获取用户
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m model.User
	if err := r.query(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByUsername 根据用户名获取用户
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var m model.User
	if err := r.query(ctx).Where("username = ?", username).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m := &model.User{
		Email:      user.Email,
		Username:   user.Username,
		Nickname:   user.Nickname,
		Password:   user.Password,
		Avatar:     user.Avatar,
		TotpSecret: user.TotpSecret,
		IsAdmin:    convert.Bool2Int(user.IsAdmin),
		CreatedAt:  timex.Now(),
		UpdatedAt:  timex.Now(),
	}

	err := r.dao.ExecuteWrite(ctx, 0, func(db *gorm.DB) error {
		return db.Create(m).Error
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// UpdateProfile 更新用户昵称和头像
func (r *userRepository) UpdateProfile(ctx context.Context, nickname, avatar string, uid int64) error {
	return r.dao.ExecuteWrite(ctx, uid, func(db *gorm.DB) error {
		return db.Model(&model.User{}).Where("uid = ?", uid).Updates(map[string]any{
			"nickname":   nickname,
			"avatar":     avatar,
			"updated_at": timex.Now(),
		}).Error
	})
}

// UpdatePassword 更新用户密码
func (r *userRepository) UpdatePassword(ctx context.Context, password string, uid int64) error {
	return r.dao.ExecuteWrite(ctx, uid, func(db *gorm.DB) error {
		return db.Model(&model.User{}).Where("uid = ?", uid).Updates(map[string]any{
			"password":   password,
			"updated_at": timex.Now(),
		}).Error
	})
}

// UpdateTotpSecret 更新用户动态口令密钥
func (r *userRepository) UpdateTotpSecret(ctx context.Context, secret string, uid int64) error {
	return r.dao.ExecuteWrite(ctx, uid, func(db *gorm.DB) error {
		return db.Model(&model.User{}).Where("uid = ?", uid).Updates(map[string]any{
			"totp_secret": secret,
			"updated_at":  timex.Now(),
		}).Error
	})
}

// GetAllUIDs 获取所有用户UID
func (r *userRepository) GetAllUIDs(ctx context.Context) ([]int64, error) {
	var uids []int64
	if err := r.query(ctx).Pluck("uid", &uids).Error; err != nil {
		return nil, err
	}
	return uids, nil
}

// Count 获取用户总数
func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.query(ctx).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// 确保 userRepository 实现了 domain.UserRepository 接口
var _ domain.UserRepository = (*userRepository)(nil)
