package model

// SportType 体育类型枚举（封闭集合）
type SportType string

const (
	SportFootball   SportType = "FOOTBALL"
	SportHockey     SportType = "HOCKEY"
	SportBasketball SportType = "BASKETBALL"
	SportTennis     SportType = "TENNIS"
	SportVolleyball SportType = "VOLLEYBALL"
	SportBaseball   SportType = "BASEBALL"
)

// SportTypes 全部合法体育类型，顺序即展示顺序
var SportTypes = []SportType{
	SportFootball,
	SportHockey,
	SportBasketball,
	SportTennis,
	SportVolleyball,
	SportBaseball,
}

// Valid 是否为合法体育类型
func (s SportType) Valid() bool {
	for _, v := range SportTypes {
		if s == v {
			return true
		}
	}
	return false
}

// EventStatus 赛事状态：INACTIVE -> ACTIVE -> FINISHED，FINISHED 为终态
type EventStatus string

const (
	StatusInactive EventStatus = "INACTIVE"
	StatusActive   EventStatus = "ACTIVE"
	StatusFinished EventStatus = "FINISHED"
)

var EventStatuses = []EventStatus{StatusInactive, StatusActive, StatusFinished}

// Valid 是否为合法状态
func (s EventStatus) Valid() bool {
	switch s {
	case StatusInactive, StatusActive, StatusFinished:
		return true
	}
	return false
}

// SortDirection 按开始时间排序方向
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)
