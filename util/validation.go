package util

import (
	"sync"

	"github.com/ariebrainware/healthsync-rx/model"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the "role" and "appointment_status" tags to gin's validator.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			return model.Role(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("appointment_status", func(fl validator.FieldLevel) bool {
			return model.AppointmentStatus(fl.Field().String()).Valid()
		})
	})
}
