package task

import (
	"context"
	"time"

	"github.com/artifacts-oss/daylog/internal/service"
)

// NoteCleanupTask 物理清除超过保留时间的软删除笔记
type NoteCleanupTask struct {
	notes     service.NoteService
	retention time.Duration
}

// NewNoteCleanupTask 创建软删除笔记清理任务
func NewNoteCleanupTask(notes service.NoteService, retention time.Duration) *NoteCleanupTask {
	return &NoteCleanupTask{
		notes:     notes,
		retention: retention,
	}
}

// Name 返回任务名称
func (t *NoteCleanupTask) Name() string {
	return "NoteCleanupTask"
}

// Spec 返回执行计划
func (t *NoteCleanupTask) Spec() string {
	return "@every 10m"
}

// IsStartupRun 是否在启动时立即执行一次
func (t *NoteCleanupTask) IsStartupRun() bool {
	return true
}

// Run 执行清理任务
func (t *NoteCleanupTask) Run(ctx context.Context) error {
	cutoff := time.Now().Add(-t.retention).UnixMilli()
	return t.notes.CleanupSoftDeleted(ctx, cutoff)
}
