// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("pay_period_half", validatePayPeriodHalf)
		_ = v.RegisterValidation("who_paid", validateWhoPaid)
		_ = v.RegisterValidation("percentage", validatePercentage)
		_ = v.RegisterValidation("positive_amount", validatePositiveAmount)
		_ = v.RegisterValidation("month", validateMonth)
	}
}

func validatePayPeriodHalf(fl validator.FieldLevel) bool {
	switch fl.Field().Int() {
	case 1, 2:
		return true
	}
	return false
}

func validateWhoPaid(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Me", "Tenant", "":
		return true
	}
	return false
}

func validatePercentage(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return !d.IsNegative() && d.LessThanOrEqual(decimal.NewFromInt(100))
}

func validatePositiveAmount(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return d.IsPositive()
}

func validateMonth(fl validator.FieldLevel) bool {
	m := fl.Field().Int()
	return m >= 1 && m <= 12
}
