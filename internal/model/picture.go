package model

import "github.com/artifacts-oss/daylog/pkg/timex"

const TableNamePicture = "picture"

// Picture mapped from table <picture>
type Picture struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	UID       int64      `gorm:"column:uid;not null;index:idx_picture_uid" json:"uid" form:"uid"`
	FileKey   string     `gorm:"column:file_key;not null" json:"fileKey" form:"fileKey"`
	URL       string     `gorm:"column:url" json:"url" form:"url"`
	MimeType  string     `gorm:"column:mime_type" json:"mimeType" form:"mimeType"`
	Size      int64      `gorm:"column:size;default:0" json:"size" form:"size"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
}

// TableName Picture's table name
func (*Picture) TableName() string {
	return TableNamePicture
}
