package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRoundTo(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		decimals int
		want     float64
	}{
		{name: "two decimals", value: 189.456, decimals: 2, want: 189.46},
		{name: "one decimal", value: 72.25, decimals: 1, want: 72.3},
		{name: "four decimals", value: -0.123456, decimals: 4, want: -0.1235},
		{name: "zero decimals", value: 2.5, decimals: 0, want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RoundTo(tt.value, tt.decimals), 1e-9)
		})
	}
}

func TestRoundPtr(t *testing.T) {
	assert.Nil(t, RoundPtr(nil, 2))
	assert.InDelta(t, 1.23, *RoundPtr(ToPointer(1.2345), 2), 1e-9)
}

func TestGoSafe(t *testing.T) {
	assert.NoError(t, GoSafe(func() error { return nil }))

	boom := errors.New("boom")
	assert.ErrorIs(t, GoSafe(func() error { return boom }), boom)

	err := GoSafe(func() error { panic("bad input") })
	assert.ErrorContains(t, err, "bad input")
}

func TestPeriodStart(t *testing.T) {
	now := time.Date(2025, 6, 30, 16, 0, 0, 0, time.UTC)

	start, ok := PeriodStart("6mo", now)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 12, 30, 16, 0, 0, 0, time.UTC), start)

	start, ok = PeriodStart("2y", now)
	assert.True(t, ok)
	assert.Equal(t, 2023, start.Year())

	_, ok = PeriodStart("10x", now)
	assert.False(t, ok)
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "+2.5%", FormatPercentage(2.5))
	assert.Equal(t, "-1.2%", FormatPercentage(-1.23))
}
