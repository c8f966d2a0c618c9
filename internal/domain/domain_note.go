// Package domain 定义领域模型和接口
package domain

import (
	"errors"
	"time"
)

// ErrNoteVersionConflict 笔记版本冲突, 说明在读取和写入之间有其他写入者修改了笔记
var ErrNoteVersionConflict = errors.New("note version conflict")

// Note 笔记领域模型
type Note struct {
	ID          int64
	UID         int64
	BoardID     int64
	Title       string
	Content     string
	ContentHash string
	Size        int64
	Version     int64
	Sort        int64
	IsPinned    bool
	IsDeleted   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CountSizeResult 统计结果
type CountSizeResult struct {
	Count int64
	Size  int64
}
