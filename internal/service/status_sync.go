package service

import (
	"context"
	"fmt"
	"time"

	"SportEvents/internal/model"

	"github.com/sirupsen/logrus"
)

// OverdueEventLister 查询已过结束时间仍为 ACTIVE 的赛事
type OverdueEventLister interface {
	ListActiveFinishedBefore(ctx context.Context, now time.Time) ([]*model.SportEvent, error)
}

// EventStatusUpdater 状态流转入口，定时同步必须经由它以复用校验与缓存失效
type EventStatusUpdater interface {
	UpdateStatus(ctx context.Context, id string, target model.EventStatus) (*model.SportEvent, error)
}

// StatusSyncService 定时把过期的 ACTIVE 赛事置为 FINISHED
type StatusSyncService struct {
	lister  OverdueEventLister
	updater EventStatusUpdater
	logger  *logrus.Logger
	now     func() time.Time
}

// NewStatusSyncService now 为空时使用 time.Now
func NewStatusSyncService(lister OverdueEventLister, updater EventStatusUpdater, logger *logrus.Logger, now func() time.Time) *StatusSyncService {
	if now == nil {
		now = time.Now
	}
	return &StatusSyncService{
		lister:  lister,
		updater: updater,
		logger:  logger,
		now:     now,
	}
}

// Run 执行一次同步；单个赛事失败只记日志，不影响其余赛事。
// 返回成功结束的赛事数，仅候选查询失败时返回 error
func (s *StatusSyncService) Run(ctx context.Context) (int, error) {
	now := s.now().UTC()
	s.logger.Info("StatusSync: 检查待结束赛事")

	events, err := s.lister.ListActiveFinishedBefore(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("查询待结束赛事失败: %w", err)
	}
	if len(events) == 0 {
		s.logger.Debug("StatusSync: 无待结束赛事")
		return 0, nil
	}

	finished := 0
	for _, e := range events {
		s.logger.WithField("event_id", e.ID).Info("StatusSync: 赛事置为 FINISHED")
		if _, err := s.updater.UpdateStatus(ctx, e.ID, model.StatusFinished); err != nil {
			s.logger.WithError(err).WithField("event_id", e.ID).Error("StatusSync: 更新赛事状态失败")
			continue
		}
		finished++
	}

	s.logger.Infof("StatusSync: 共 %d 个候选，已结束 %d 个", len(events), finished)
	return finished, nil
}
