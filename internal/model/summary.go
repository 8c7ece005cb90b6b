package model

// SportCount 按体育类型分组计数
type SportCount struct {
	Sport SportType `json:"sport"`
	Count int64     `json:"count"`
}

// StatusCount 按状态分组计数
type StatusCount struct {
	Status EventStatus `json:"status"`
	Count  int64       `json:"count"`
}

// EventsSummary 赛事汇总报表，仅存在于缓存中，不入库
type EventsSummary struct {
	SportCounts  []SportCount  `json:"sportCounts"`
	StatusCounts []StatusCount `json:"statusCounts"`
	TotalEvents  int64         `json:"totalEvents"`
}
