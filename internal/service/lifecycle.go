package service

import (
	"time"

	"SportEvents/internal/model"
)

// ValidateStatusChange 校验 event 从当前状态流转到 target 是否合法。
// 纯函数，now 由调用方传入；按顺序匹配规则，全部通过（含同状态）时返回 nil
func ValidateStatusChange(now time.Time, event *model.SportEvent, target model.EventStatus) error {
	if !target.Valid() {
		return newValidationError("Invalid status: %s", target)
	}
	if event.Status == model.StatusFinished {
		return newValidationError("Cannot change status of a finished event")
	}
	if event.Status == model.StatusInactive && target == model.StatusFinished {
		return newValidationError("Cannot change status from inactive to finished")
	}
	if target == model.StatusActive && event.StartTime.Before(now) {
		return newValidationError("Cannot activate an event if start time is in the past")
	}
	if target == model.StatusFinished && event.StartTime.After(now) {
		return newValidationError("Cannot finish an event if start time is in the future")
	}
	return nil
}
