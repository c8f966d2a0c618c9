// Package domain 定义领域模型和接口
package domain

import "time"

// Board 看板领域模型, 笔记的归属容器
type Board struct {
	ID        int64
	UID       int64
	Name      string
	Color     string
	Icon      string
	Sort      int64
	NoteCount int64
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
