package util

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

func TestRegisterValidators(t *testing.T) {
	RegisterValidators()
	RegisterValidators()

	type payload struct {
		Role   string `binding:"required,role"`
		Status string `binding:"omitempty,appointment_status"`
	}

	assert.NoError(t, binding.Validator.ValidateStruct(payload{Role: "doctor", Status: "accepted"}))
	assert.NoError(t, binding.Validator.ValidateStruct(payload{Role: "patient"}))
	assert.Error(t, binding.Validator.ValidateStruct(payload{Role: "superuser"}))
	assert.Error(t, binding.Validator.ValidateStruct(payload{Role: "admin", Status: "archived"}))
}
