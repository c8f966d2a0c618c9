package task

import (
	"context"
	"time"

	"github.com/artifacts-oss/daylog/internal/service"
)

// ChangeTrimTask 裁剪超过保留时间的笔记修改记录
// 每条笔记始终保底保留最近 keepVersions 个版本
type ChangeTrimTask struct {
	changes      service.NoteChangeService
	retention    time.Duration
	keepVersions int
}

// NewChangeTrimTask 创建修改记录裁剪任务
func NewChangeTrimTask(changes service.NoteChangeService, retention time.Duration, keepVersions int) *ChangeTrimTask {
	return &ChangeTrimTask{
		changes:      changes,
		retention:    retention,
		keepVersions: keepVersions,
	}
}

// Name 返回任务名称
func (t *ChangeTrimTask) Name() string {
	return "ChangeTrimTask"
}

// Spec 返回执行计划
func (t *ChangeTrimTask) Spec() string {
	return "@every 1h"
}

// IsStartupRun 是否在启动时立即执行一次
func (t *ChangeTrimTask) IsStartupRun() bool {
	return false
}

// Run 执行裁剪任务
func (t *ChangeTrimTask) Run(ctx context.Context) error {
	cutoff := time.Now().Add(-t.retention).UnixMilli()
	return t.changes.CleanupByTime(ctx, cutoff, t.keepVersions)
}
