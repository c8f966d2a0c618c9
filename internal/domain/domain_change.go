// Package domain 定义领域模型和接口
package domain

import "time"

// NoteChange 笔记修改历史领域模型
// 记录一次编辑: 从修改前内容到修改后内容的补丁与快照
type NoteChange struct {
	ID          int64
	NoteID      int64
	BoardID     int64
	UID         int64
	DiffPatch   string
	PrevContent string
	PrevHash    string
	Summary     string
	Preview     string
	Size        int64
	Version     int64
	ClientName  string
	CreatedAt   time.Time
}

// ChangeComment 历史记录评论领域模型
type ChangeComment struct {
	ID        int64
	ChangeID  int64
	NoteID    int64
	UID       int64
	Content   string
	CreatedAt time.Time
}

// RestoreResult 恢复操作结果
type RestoreResult struct {
	Success bool
	Err     string
}
