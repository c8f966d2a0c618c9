package model

import "github.com/artifacts-oss/daylog/pkg/timex"

const TableNameUser = "user"

// User mapped from table <user>
type User struct {
	UID        int64      `gorm:"column:uid;primaryKey;autoIncrement" json:"uid" form:"uid"`
	Email      string     `gorm:"column:email;not null;uniqueIndex:idx_email" json:"email" form:"email"`
	Username   string     `gorm:"column:username;not null;index:idx_username" json:"username" form:"username"`
	Nickname   string     `gorm:"column:nickname" json:"nickname" form:"nickname"`
	Password   string     `gorm:"column:password;not null" json:"-"`
	Avatar     string     `gorm:"column:avatar" json:"avatar" form:"avatar"`
	TotpSecret string     `gorm:"column:totp_secret" json:"-"`
	IsAdmin    int64      `gorm:"column:is_admin;default:0" json:"isAdmin" form:"isAdmin"`
	IsDeleted  int64      `gorm:"column:is_deleted;default:0" json:"isDeleted" form:"isDeleted"`
	CreatedAt  timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt  timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName User's table name
func (*User) TableName() string {
	return TableNameUser
}
