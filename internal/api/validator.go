package api

import (
	"fmt"
	"sync"

	"SportEvents/internal/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators 向 gin 的 validator 引擎注册 sport / event_status 标签（幂等）
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		if err = v.RegisterValidation("sport", validateSport); err != nil {
			return
		}
		err = v.RegisterValidation("event_status", validateEventStatus)
	})
	return err
}

func validateSport(fl validator.FieldLevel) bool {
	return model.SportType(fl.Field().String()).Valid()
}

func validateEventStatus(fl validator.FieldLevel) bool {
	return model.EventStatus(fl.Field().String()).Valid()
}
