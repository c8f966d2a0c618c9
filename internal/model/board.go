package model

import "github.com/artifacts-oss/daylog/pkg/timex"

const TableNameBoard = "board"

// Board mapped from table <board>
type Board struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	UID       int64      `gorm:"column:uid;not null;index:idx_board_uid" json:"uid" form:"uid"`
	Name      string     `gorm:"column:name;not null" json:"name" form:"name"`
	Color     string     `gorm:"column:color" json:"color" form:"color"`
	Icon      string     `gorm:"column:icon" json:"icon" form:"icon"`
	Sort      int64      `gorm:"column:sort;default:0" json:"sort" form:"sort"`
	NoteCount int64      `gorm:"column:note_count;default:0" json:"noteCount" form:"noteCount"`
	IsDeleted int64      `gorm:"column:is_deleted;default:0;index:idx_board_uid,priority:2" json:"isDeleted" form:"isDeleted"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName Board's table name
func (*Board) TableName() string {
	return TableNameBoard
}
