package model

// CreateEventRequest 创建赛事入参，时间为 RFC3339 字符串，由 service 解析
type CreateEventRequest struct {
	Name       string      `json:"name" binding:"required,min=3,max=100"`
	Sport      SportType   `json:"sport" binding:"required,sport"`
	Status     EventStatus `json:"status" binding:"omitempty,event_status"` // 为空时默认 INACTIVE
	StartTime  string      `json:"startTime" binding:"required"`
	FinishTime string      `json:"finishTime" binding:"required"`
}

// UpdateEventRequest 部分更新，nil 表示不修改该字段
type UpdateEventRequest struct {
	Name       *string      `json:"name" binding:"omitempty,min=3,max=100"`
	Sport      *SportType   `json:"sport" binding:"omitempty,sport"`
	Status     *EventStatus `json:"status" binding:"omitempty,event_status"`
	StartTime  *string      `json:"startTime"`
	FinishTime *string      `json:"finishTime"`
}

// UpdateEventStatusRequest 仅修改状态
type UpdateEventStatusRequest struct {
	Status EventStatus `json:"status" binding:"required,event_status"`
}

// EventsFilter 列表筛选 + 分页 + 排序
type EventsFilter struct {
	Status        EventStatus   `form:"status" binding:"omitempty,event_status"`
	Sport         SportType     `form:"sport" binding:"omitempty,sport"`
	Page          int           `form:"page" binding:"omitempty,min=1"`
	Limit         int           `form:"limit" binding:"omitempty,min=1,max=100"`
	SortDirection SortDirection `form:"sortDirection"`
}
