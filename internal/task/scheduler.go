// Package task 管理后台定时任务
package task

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Task 定义任务接口
type Task interface {
	Name() string                  // 任务名称
	Spec() string                  // cron 表达式, 支持 @every 语法
	Run(ctx context.Context) error // 执行任务
	IsStartupRun() bool            // 是否在启动时立即执行一次
}

// cronLogger 把 cron 的日志接入 zap
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}

// Scheduler 基于 cron 的任务调度器
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
	tasks  []Task
}

// NewScheduler 创建任务调度器
func NewScheduler(logger *zap.Logger) *Scheduler {
	cl := cronLogger{logger: logger}
	return &Scheduler{
		cron:   cron.New(cron.WithChain(cron.Recover(cl))),
		logger: logger,
	}
}

// AddTask 注册任务
func (s *Scheduler) AddTask(task Task) error {
	run := func() {
		s.logger.Info("task running", zap.String("name", task.Name()))
		if err := task.Run(context.Background()); err != nil {
			s.logger.Error("task running error",
				zap.String("name", task.Name()),
				zap.Error(err))
		}
	}
	if _, err := s.cron.AddFunc(task.Spec(), run); err != nil {
		return err
	}
	s.tasks = append(s.tasks, task)
	return nil
}

// Start 启动调度器, 需要立即执行的任务先跑一次
func (s *Scheduler) Start() {
	for _, task := range s.tasks {
		if !task.IsStartupRun() {
			continue
		}
		t := task
		go func() {
			s.logger.Info("task running", zap.String("name", t.Name()), zap.Bool("startupRun", true))
			if err := t.Run(context.Background()); err != nil {
				s.logger.Error("task running error",
					zap.String("name", t.Name()),
					zap.Bool("startupRun", true),
					zap.Error(err))
			}
		}()
	}

	s.cron.Start()
	s.logger.Info("tasks started", zap.Int("count", len(s.tasks)))
}

// Stop 停止调度器并等待执行中的任务完成
func (s *Scheduler) Stop(ctx context.Context) error {
	stopped := s.cron.Stop()
	select {
	case <-stopped.Done():
		s.logger.Info("tasks stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("tasks stop timeout")
		return ctx.Err()
	}
}
