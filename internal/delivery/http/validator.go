package http

import (
	"regexp"
	"strings"

	goValidator "github.com/go-playground/validator/v10"
)

// Tickers such as AAPL, BRK.B, BBCA.JK, ^GSPC or EURUSD=X.
var symbolPattern = regexp.MustCompile(`^\^?[A-Z0-9][A-Z0-9.\-]{0,10}(=X)?$`)

// NewValidator returns a validator with the "symbol" tag registered.
func NewValidator() *goValidator.Validate {
	v := goValidator.New()
	_ = v.RegisterValidation("symbol", func(fl goValidator.FieldLevel) bool {
		return IsValidSymbol(fl.Field().String())
	})
	return v
}

func IsValidSymbol(symbol string) bool {
	return symbolPattern.MatchString(strings.ToUpper(strings.TrimSpace(symbol)))
}
