package utils

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"strings"

	"stock-scoring/pkg/logger"
)

// GoSafe runs fn and turns a panic into an error.
func GoSafe(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic recovered: %v", r)
		}
	}()
	return fn()
}

func ToPointer[T any](value T) *T {
	return &value
}

// ShouldContinue reports whether ctx is still alive, logging the caller when it is not.
func ShouldContinue(ctx context.Context, log *logger.Logger) bool {
	select {
	case <-ctx.Done():
		pc, _, _, ok := runtime.Caller(1)
		funcName := "unknown"
		if ok {
			if fn := runtime.FuncForPC(pc); fn != nil {
				parts := strings.Split(fn.Name(), "/")
				funcName = parts[len(parts)-1]
			}
		}

		log.WarnContext(ctx, "Context cancelled", logger.StringField("caller", funcName))
		return false
	default:
		return true
	}
}

// RoundTo rounds half away from zero to the given number of decimals.
func RoundTo(value float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(value*p) / p
}

// RoundPtr rounds the pointed value, keeping nil as nil.
func RoundPtr(value *float64, decimals int) *float64 {
	if value == nil {
		return nil
	}
	return ToPointer(RoundTo(*value, decimals))
}

func FormatPercentage(value float64) string {
	return fmt.Sprintf("%+.1f%%", value)
}
