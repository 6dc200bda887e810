package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterCustomValidators installs the `money` binding rule used on amount
// strings: well-formed decimal with at most two fractional digits. Binding
// rejection is only a convenience for callers; the engine re-validates
// every amount itself.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("money", validMoneyAmount)
	}
}

func validMoneyAmount(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok || s == "" {
		return false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	return d.Exponent() >= -2
}
