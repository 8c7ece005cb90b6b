package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"SportEvents/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrEventNotFound 按 ID 查询不到赛事
var ErrEventNotFound = errors.New("sport event not found")

// EventCriteria 列表查询条件，Offset/Limit 已由 service 计算好
type EventCriteria struct {
	Status        model.EventStatus
	Sport         model.SportType
	SortDirection model.SortDirection
	Offset        int
	Limit         int
}

// EventRepository 赛事存储接口
type EventRepository interface {
	// Create 新建赛事，ID 为空时生成 UUID
	Create(ctx context.Context, event *model.SportEvent) error
	// FindByID 不存在时返回 ErrEventNotFound
	FindByID(ctx context.Context, id string) (*model.SportEvent, error)
	// Find 按条件分页查询，返回当前页与过滤后的总数
	Find(ctx context.Context, criteria EventCriteria) ([]*model.SportEvent, int64, error)
	// Update 整条记录保存
	Update(ctx context.Context, event *model.SportEvent) error
	Delete(ctx context.Context, event *model.SportEvent) error
	Count(ctx context.Context) (int64, error)
	// CountBySport 按体育类型分组计数
	CountBySport(ctx context.Context) ([]model.SportCount, error)
	// CountByStatus 按状态分组计数
	CountByStatus(ctx context.Context) ([]model.StatusCount, error)
	// ListActiveFinishedBefore 已过结束时间仍为 ACTIVE 的赛事（供状态同步）
	ListActiveFinishedBefore(ctx context.Context, now time.Time) ([]*model.SportEvent, error)
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository 创建 gorm 实现的 EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *model.SportEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("保存赛事失败: %w, name: %s", err, event.Name)
	}
	return nil
}

func (r *eventRepository) FindByID(ctx context.Context, id string) (*model.SportEvent, error) {
	var event model.SportEvent
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查询赛事失败: %w, id: %s", err, id)
	}
	return &event, nil
}

func (r *eventRepository) Find(ctx context.Context, criteria EventCriteria) ([]*model.SportEvent, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.SportEvent{})

	if criteria.Status != "" {
		db = db.Where("status = ?", criteria.Status)
	}
	if criteria.Sport != "" {
		db = db.Where("sport = ?", criteria.Sport)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计赛事失败: %w", err)
	}

	direction := "ASC"
	if strings.EqualFold(string(criteria.SortDirection), string(model.SortDesc)) {
		direction = "DESC"
	}

	var events []*model.SportEvent
	if err := db.
		Order("start_time " + direction).
		Order("id ASC").
		Offset(criteria.Offset).
		Limit(criteria.Limit).
		Find(&events).Error; err != nil {
		return nil, 0, fmt.Errorf("分页查询赛事失败: %w", err)
	}
	return events, total, nil
}

func (r *eventRepository) Update(ctx context.Context, event *model.SportEvent) error {
	if err := r.db.WithContext(ctx).Save(event).Error; err != nil {
		return fmt.Errorf("更新赛事失败: %w, id: %s", err, event.ID)
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, event *model.SportEvent) error {
	if err := r.db.WithContext(ctx).Delete(event).Error; err != nil {
		return fmt.Errorf("删除赛事失败: %w, id: %s", err, event.ID)
	}
	return nil
}

func (r *eventRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.SportEvent{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("统计赛事总数失败: %w", err)
	}
	return total, nil
}

func (r *eventRepository) CountBySport(ctx context.Context) ([]model.SportCount, error) {
	var rows []model.SportCount
	if err := r.db.WithContext(ctx).Model(&model.SportEvent{}).
		Select("sport, COUNT(id) AS count").
		Group("sport").
		Order("sport ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("按体育类型统计失败: %w", err)
	}
	return rows, nil
}

func (r *eventRepository) CountByStatus(ctx context.Context) ([]model.StatusCount, error) {
	var rows []model.StatusCount
	if err := r.db.WithContext(ctx).Model(&model.SportEvent{}).
		Select("status, COUNT(id) AS count").
		Group("status").
		Order("status ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("按状态统计失败: %w", err)
	}
	return rows, nil
}

func (r *eventRepository) ListActiveFinishedBefore(ctx context.Context, now time.Time) ([]*model.SportEvent, error) {
	var events []*model.SportEvent
	if err := r.db.WithContext(ctx).Model(&model.SportEvent{}).
		Where("status = ? AND finish_time < ?", model.StatusActive, now.UTC()).
		Order("finish_time ASC").
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("查询待结束赛事失败: %w", err)
	}
	return events, nil
}
