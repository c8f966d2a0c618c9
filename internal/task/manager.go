// Package task 管理后台定时任务
package task

import (
	"github.com/artifacts-oss/daylog/internal/app"
	"github.com/artifacts-oss/daylog/pkg/util"

	"go.uber.org/zap"
)

// Manager 任务管理器, 负责创建和管理所有任务
type Manager struct {
	scheduler *Scheduler
	app       *app.App
	logger    *zap.Logger
}

// NewManager 创建任务管理器
func NewManager(a *app.App, logger *zap.Logger) *Manager {
	return &Manager{
		scheduler: NewScheduler(logger),
		app:       a,
		logger:    logger,
	}
}

// RegisterTasks 注册所有任务
// 保留时间未配置的任务会被跳过
func (m *Manager) RegisterTasks() error {
	cfg := m.app.Config()

	if d, err := util.ParseDuration(cfg.App.SoftDeleteRetentionTime); err == nil && d > 0 {
		task := NewNoteCleanupTask(m.app.NoteService, d)
		if err := m.scheduler.AddTask(task); err != nil {
			return err
		}
	} else {
		m.logger.Info("note cleanup task is disabled (retention time not configured)")
	}

	if d, err := util.ParseDuration(cfg.App.ChangeRetentionTime); err == nil && d > 0 {
		task := NewChangeTrimTask(m.app.NoteChangeService, d, cfg.App.ChangeKeepVersions)
		if err := m.scheduler.AddTask(task); err != nil {
			return err
		}
	} else {
		m.logger.Info("change trim task is disabled (retention time not configured)")
	}

	return nil
}

// Start 启动所有已注册的任务
func (m *Manager) Start() {
	m.scheduler.Start()
}

// Scheduler 获取调度器, 用于关闭时等待任务退出
func (m *Manager) Scheduler() *Scheduler {
	return m.scheduler
}
