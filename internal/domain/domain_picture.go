// Package domain 定义领域模型和接口
package domain

import "time"

// Picture 图片附件领域模型
type Picture struct {
	ID        int64
	UID       int64
	FileKey   string
	URL       string
	MimeType  string
	Size      int64
	CreatedAt time.Time
}
