package model

import "time"

// SportEvent 体育赛事记录。startTime < finishTime 在入库时恒成立；时间列带时区，统一按 UTC 写入
type SportEvent struct {
	ID         string      `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`                              // UUID，创建时生成
	Name       string      `gorm:"column:name;type:varchar(100);not null" json:"name"`                           // 赛事名称
	Sport      SportType   `gorm:"column:sport;type:varchar(32);not null;index" json:"sport"`                    // 体育类型
	Status     EventStatus `gorm:"column:status;type:varchar(16);not null;default:INACTIVE;index" json:"status"` // 状态
	StartTime  time.Time   `gorm:"column:start_time;not null;index" json:"startTime"`                            // 开始时间
	FinishTime time.Time   `gorm:"column:finish_time;not null" json:"finishTime"`                                // 结束时间
	CreatedAt  time.Time   `gorm:"column:created_at;autoCreateTime" json:"createdAt"`                            // 创建时间
	UpdatedAt  time.Time   `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`                            // 更新时间
}

// TableName 指定赛事表名
func (SportEvent) TableName() string {
	return "sport_events"
}

// IsFinished 已结束的赛事不可再修改或删除
func (e *SportEvent) IsFinished() bool {
	return e.Status == StatusFinished
}
