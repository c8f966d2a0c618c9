package model

import "github.com/artifacts-oss/daylog/pkg/timex"

const TableNameNoteChange = "note_change"

// NoteChange mapped from table <note_change>
// 笔记修改历史, 追加写入, 不做更新
type NoteChange struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	NoteID      int64      `gorm:"column:note_id;not null;index:idx_change_note" json:"noteId" form:"noteId"`
	BoardID     int64      `gorm:"column:board_id;not null" json:"boardId" form:"boardId"`
	UID         int64      `gorm:"column:uid;not null;index:idx_change_uid" json:"uid" form:"uid"`
	DiffPatch   string     `gorm:"column:diff_patch" json:"diffPatch" form:"diffPatch"`
	PrevContent string     `gorm:"column:prev_content" json:"prevContent" form:"prevContent"`
	PrevHash    string     `gorm:"column:prev_hash" json:"prevHash" form:"prevHash"`
	Summary     string     `gorm:"column:summary" json:"summary" form:"summary"`
	Preview     string     `gorm:"column:preview" json:"preview" form:"preview"`
	Size        int64      `gorm:"column:size;default:0" json:"size" form:"size"`
	Version     int64      `gorm:"column:version;default:0;index:idx_change_note,priority:2" json:"version" form:"version"`
	ClientName  string     `gorm:"column:client_name" json:"clientName" form:"clientName"`
	CreatedAt   timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
}

// TableName NoteChange's table name
func (*NoteChange) TableName() string {
	return TableNameNoteChange
}
