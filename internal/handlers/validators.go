package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterCustomValidators installs the custom binding validators on gin's
// validator engine. Must run before the first request is bound.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	// posamount: a decimal amount that is strictly positive.
	return v.RegisterValidation("posamount", func(fl validator.FieldLevel) bool {
		amount, ok := fl.Field().Interface().(decimal.Decimal)
		if !ok {
			return false
		}
		return amount.IsPositive()
	})
}
