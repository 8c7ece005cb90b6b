package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Job 一次定时任务执行
type Job func(ctx context.Context) error

// Scheduler 基于 cron 表达式（含秒字段）的定时任务调度。
// 同一任务上次未结束时跳过本次触发
type Scheduler struct {
	cron   *cron.Cron
	logger *logrus.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

// New 创建调度器，时区为 UTC
func New(logger *logrus.Logger) *Scheduler {
	cronLogger := cron.PrintfLogger(logger)
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Register 注册任务，spec 形如 "0 */5 * * * *"
func (s *Scheduler) Register(name, spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		start := time.Now()
		entry := s.logger.WithField("job", name)
		if err := job(s.ctx); err != nil {
			entry.WithError(err).Error("定时任务执行失败")
			return
		}
		entry.WithField("elapsed", time.Since(start).String()).Debug("定时任务执行完成")
	})
	if err != nil {
		return fmt.Errorf("注册定时任务%s失败: %w", name, err)
	}
	s.logger.Infof("已注册定时任务 %s: %s", name, spec)
	return nil
}

// Start 异步启动
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop 停止触发新任务并等待正在执行的任务完成。
// ctx 到期时直接返回 ctx.Err()，正在执行的任务不会被中断
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.cancel()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunNow 立即同步执行一次任务，不受 cron 节奏影响
func (s *Scheduler) RunNow(name string, job Job) error {
	s.logger.WithField("job", name).Info("手动触发定时任务")
	return job(s.ctx)
}
