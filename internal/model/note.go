package model

import "github.com/artifacts-oss/daylog/pkg/timex"

const TableNameNote = "note"

// Note mapped from table <note>
type Note struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	UID         int64      `gorm:"column:uid;not null;index:idx_note_uid" json:"uid" form:"uid"`
	BoardID     int64      `gorm:"column:board_id;not null;index:idx_note_board" json:"boardId" form:"boardId"`
	Title       string     `gorm:"column:title" json:"title" form:"title"`
	Content     string     `gorm:"column:content" json:"content" form:"content"`
	ContentHash string     `gorm:"column:content_hash" json:"contentHash" form:"contentHash"`
	Size        int64      `gorm:"column:size;default:0" json:"size" form:"size"`
	Version     int64      `gorm:"column:version;default:0" json:"version" form:"version"`
	Sort        int64      `gorm:"column:sort;default:0" json:"sort" form:"sort"`
	IsPinned    int64      `gorm:"column:is_pinned;default:0" json:"isPinned" form:"isPinned"`
	IsDeleted   int64      `gorm:"column:is_deleted;default:0;index:idx_note_uid,priority:2" json:"isDeleted" form:"isDeleted"`
	CreatedAt   timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt   timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName Note's table name
func (*Note) TableName() string {
	return TableNameNote
}
