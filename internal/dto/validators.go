package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations attaches custom validations to gin's binding engine.
// Call once at startup.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterStructValidation(validateRecurringSchedule, CreateRecurringRequest{})
	}
}

// validateRecurringSchedule enforces the frequency/day-field pairing: weekly
// templates carry dayOfWeek, monthly templates carry dayOfMonth, never both.
func validateRecurringSchedule(sl validator.StructLevel) {
	req := sl.Current().Interface().(CreateRecurringRequest)

	switch req.Frequency {
	case "weekly":
		if req.DayOfWeek == nil {
			sl.ReportError(req.DayOfWeek, "DayOfWeek", "dayOfWeek", "recurringschedule", "")
		}
		if req.DayOfMonth != nil {
			sl.ReportError(req.DayOfMonth, "DayOfMonth", "dayOfMonth", "recurringschedule", "")
		}
	case "monthly":
		if req.DayOfMonth == nil {
			sl.ReportError(req.DayOfMonth, "DayOfMonth", "dayOfMonth", "recurringschedule", "")
		}
		if req.DayOfWeek != nil {
			sl.ReportError(req.DayOfWeek, "DayOfWeek", "dayOfWeek", "recurringschedule", "")
		}
	}
}
