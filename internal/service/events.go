package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"SportEvents/internal/cache"
	"SportEvents/internal/model"
	"SportEvents/internal/repository"

	"github.com/sirupsen/logrus"
)

const (
	// SummaryCacheKey 汇总报表缓存 key
	SummaryCacheKey = "events_summary"
	// SummaryCacheTTL 汇总报表缓存时长（3600s）
	SummaryCacheTTL = time.Hour

	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// EventsService 赛事增删改查 + 状态流转 + 汇总缓存。所有写操作成功后删除汇总缓存
type EventsService struct {
	repo   repository.EventRepository
	cache  cache.Cache
	logger *logrus.Logger
	now    func() time.Time
}

// NewEventsService 使用系统时钟
func NewEventsService(repo repository.EventRepository, c cache.Cache, logger *logrus.Logger) *EventsService {
	return NewEventsServiceWithClock(repo, c, logger, time.Now)
}

// NewEventsServiceWithClock now 为空时退化为 time.Now，测试中注入固定时钟
func NewEventsServiceWithClock(repo repository.EventRepository, c cache.Cache, logger *logrus.Logger, now func() time.Time) *EventsService {
	if now == nil {
		now = time.Now
	}
	return &EventsService{
		repo:   repo,
		cache:  c,
		logger: logger,
		now:    now,
	}
}

// Create 新建赛事，状态缺省为 INACTIVE
func (s *EventsService) Create(ctx context.Context, req model.CreateEventRequest) (*model.SportEvent, error) {
	s.logger.Infof("创建赛事: %s", req.Name)

	if err := validateName(req.Name); err != nil {
		return nil, err
	}
	if !req.Sport.Valid() {
		return nil, newValidationError("Invalid sport: %s", req.Sport)
	}
	status := req.Status
	if status == "" {
		status = model.StatusInactive
	}
	if !status.Valid() {
		return nil, newValidationError("Invalid status: %s", status)
	}

	startTime, errStart := parseEventTime(req.StartTime)
	finishTime, errFinish := parseEventTime(req.FinishTime)
	if errStart != nil || errFinish != nil {
		return nil, newValidationError("Invalid date format")
	}
	if !startTime.Before(finishTime) {
		return nil, newValidationError("Start time must be before finish time")
	}

	event := &model.SportEvent{
		Name:       req.Name,
		Sport:      req.Sport,
		Status:     status,
		StartTime:  startTime,
		FinishTime: finishTime,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}
	if err := s.invalidateSummary(ctx); err != nil {
		return nil, err
	}
	return event, nil
}

// FindAll 分页查询，返回当前页与过滤后总数；不走缓存
func (s *EventsService) FindAll(ctx context.Context, filter model.EventsFilter) ([]*model.SportEvent, int64, error) {
	filter = NormalizeFilter(filter)
	s.logger.WithFields(logrus.Fields{
		"status":        filter.Status,
		"sport":         filter.Sport,
		"page":          filter.Page,
		"limit":         filter.Limit,
		"sortDirection": filter.SortDirection,
	}).Debug("按条件查询赛事")

	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, newValidationError("Invalid status: %s", filter.Status)
	}
	if filter.Sport != "" && !filter.Sport.Valid() {
		return nil, 0, newValidationError("Invalid sport: %s", filter.Sport)
	}
	if filter.SortDirection != model.SortAsc && filter.SortDirection != model.SortDesc {
		return nil, 0, newValidationError("Invalid sort direction: %s", filter.SortDirection)
	}

	return s.repo.Find(ctx, repository.EventCriteria{
		Status:        filter.Status,
		Sport:         filter.Sport,
		SortDirection: filter.SortDirection,
		Offset:        (filter.Page - 1) * filter.Limit,
		Limit:         filter.Limit,
	})
}

// NormalizeFilter 补齐分页与排序默认值：page=1, limit=10（上限 100）, ASC
func NormalizeFilter(filter model.EventsFilter) model.EventsFilter {
	if filter.Page <= 0 {
		filter.Page = defaultPage
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultLimit
	}
	if filter.Limit > maxLimit {
		filter.Limit = maxLimit
	}
	if filter.SortDirection == "" {
		filter.SortDirection = model.SortAsc
	}
	filter.SortDirection = model.SortDirection(strings.ToUpper(string(filter.SortDirection)))
	return filter
}

// FindOne 不存在返回 NotFoundError
func (s *EventsService) FindOne(ctx context.Context, id string) (*model.SportEvent, error) {
	s.logger.Debugf("查询赛事: %s", id)

	event, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrEventNotFound) {
		s.logger.Warnf("赛事不存在: %s", id)
		return nil, &NotFoundError{ID: id}
	}
	if err != nil {
		return nil, err
	}
	return event, nil
}

// Update 部分更新；已结束赛事不可修改。状态变化走生命周期校验，时间按合并后的值校验先后
func (s *EventsService) Update(ctx context.Context, id string, req model.UpdateEventRequest) (*model.SportEvent, error) {
	s.logger.Infof("更新赛事: %s", id)

	event, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.IsFinished() {
		return nil, newValidationError("Cannot update a finished event")
	}

	if req.Status != nil && *req.Status != event.Status {
		if err := ValidateStatusChange(s.now(), event, *req.Status); err != nil {
			return nil, err
		}
	}
	if req.Name != nil {
		if err := validateName(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Sport != nil && !req.Sport.Valid() {
		return nil, newValidationError("Invalid sport: %s", *req.Sport)
	}

	startTime, finishTime := event.StartTime, event.FinishTime
	if req.StartTime != nil {
		if startTime, err = parseEventTime(*req.StartTime); err != nil {
			return nil, newValidationError("Invalid start time format")
		}
	}
	if req.FinishTime != nil {
		if finishTime, err = parseEventTime(*req.FinishTime); err != nil {
			return nil, newValidationError("Invalid finish time format")
		}
	}
	if !startTime.Before(finishTime) {
		return nil, newValidationError("Start time must be before finish time")
	}

	if req.Name != nil {
		event.Name = *req.Name
	}
	if req.Sport != nil {
		event.Sport = *req.Sport
	}
	if req.Status != nil {
		event.Status = *req.Status
	}
	event.StartTime = startTime
	event.FinishTime = finishTime

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}
	if err := s.invalidateSummary(ctx); err != nil {
		return nil, err
	}
	return event, nil
}

// UpdateStatus 仅修改状态，人工调用与定时同步共用此路径
func (s *EventsService) UpdateStatus(ctx context.Context, id string, target model.EventStatus) (*model.SportEvent, error) {
	s.logger.Infof("更新赛事状态: %s -> %s", id, target)

	event, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ValidateStatusChange(s.now(), event, target); err != nil {
		return nil, err
	}

	event.Status = target
	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}
	if err := s.invalidateSummary(ctx); err != nil {
		return nil, err
	}
	return event, nil
}

// Remove 已结束赛事不可删除
func (s *EventsService) Remove(ctx context.Context, id string) error {
	s.logger.Infof("删除赛事: %s", id)

	event, err := s.FindOne(ctx, id)
	if err != nil {
		return err
	}
	if event.IsFinished() {
		return newValidationError("Cannot remove a finished event")
	}
	if err := s.repo.Delete(ctx, event); err != nil {
		return err
	}
	return s.invalidateSummary(ctx)
}

// GetSummary 先读缓存；未命中时三次独立聚合查询后写回缓存。
// 三个数字之间不保证同一快照
func (s *EventsService) GetSummary(ctx context.Context) (*model.EventsSummary, error) {
	cached, ok, err := s.cache.Get(ctx, SummaryCacheKey)
	if err != nil {
		return nil, fmt.Errorf("读取汇总缓存失败: %w", err)
	}
	if ok {
		if summary, isSummary := cached.(*model.EventsSummary); isSummary {
			s.logger.Debug("命中汇总缓存")
			return summary, nil
		}
		s.logger.Warnf("汇总缓存类型异常: %T，重新生成", cached)
	}

	s.logger.Info("重新生成赛事汇总")

	sportCounts, err := s.repo.CountBySport(ctx)
	if err != nil {
		return nil, err
	}
	statusCounts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	summary := &model.EventsSummary{
		SportCounts:  sportCounts,
		StatusCounts: statusCounts,
		TotalEvents:  total,
	}
	if summary.SportCounts == nil {
		summary.SportCounts = []model.SportCount{}
	}
	if summary.StatusCounts == nil {
		summary.StatusCounts = []model.StatusCount{}
	}

	if err := s.cache.Set(ctx, SummaryCacheKey, summary, SummaryCacheTTL); err != nil {
		return nil, fmt.Errorf("写入汇总缓存失败: %w", err)
	}
	return summary, nil
}

func (s *EventsService) invalidateSummary(ctx context.Context) error {
	s.logger.Debug("清除汇总缓存")
	if err := s.cache.Delete(ctx, SummaryCacheKey); err != nil {
		return fmt.Errorf("删除汇总缓存失败: %w", err)
	}
	return nil
}

func validateName(name string) error {
	n := len([]rune(strings.TrimSpace(name)))
	if n < 3 {
		return newValidationError("Name must be at least 3 characters long")
	}
	if len([]rune(name)) > 100 {
		return newValidationError("Name must be at most 100 characters long")
	}
	return nil
}

// 兼容 ISO 8601 常见写法；无时区按 UTC 处理。统一转为 UTC 入库
var eventTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseEventTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range eventTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q", value)
}
