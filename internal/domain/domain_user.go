package domain

import "time"

// User 用户领域模型
type User struct {
	UID        int64
	Email      string
	Username   string
	Nickname   string
	Password   string
	Avatar     string
	TotpSecret string
	IsAdmin    bool
	IsDeleted  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasAvatar 判断用户是否有头像
func (u *User) HasAvatar() bool {
	return u.Avatar != ""
}

// HasTotp 判断用户是否绑定了动态口令
func (u *User) HasTotp() bool {
	return u.TotpSecret != ""
}

// IsActive 判断用户是否活跃（未删除）
func (u *User) IsActive() bool {
	return !u.IsDeleted
}
