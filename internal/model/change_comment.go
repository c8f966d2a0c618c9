package model

import "github.com/artifacts-oss/daylog/pkg/timex"

const TableNameChangeComment = "change_comment"

// ChangeComment mapped from table <change_comment>
type ChangeComment struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	ChangeID  int64      `gorm:"column:change_id;not null;index:idx_comment_change" json:"changeId" form:"changeId"`
	NoteID    int64      `gorm:"column:note_id;not null" json:"noteId" form:"noteId"`
	UID       int64      `gorm:"column:uid;not null" json:"uid" form:"uid"`
	Content   string     `gorm:"column:content;not null" json:"content" form:"content"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
}

// TableName ChangeComment's table name
func (*ChangeComment) TableName() string {
	return TableNameChangeComment
}
