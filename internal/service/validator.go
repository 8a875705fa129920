package service

import (
	"github.com/go-playground/validator/v10"

	"github.com/asistencia-escolar/asistencia-api/internal/models"
)

// NewValidator returns a validator with the domain rules registered:
// attendance_status accepts the four roll-call marks, session_context the
// two storable contexts.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("attendance_status", func(fl validator.FieldLevel) bool {
		return models.AttendanceStatus(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("session_context", func(fl validator.FieldLevel) bool {
		return models.SessionContext(fl.Field().String()).Valid()
	})
	return v
}
