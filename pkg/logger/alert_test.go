package logger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestAlertCore_Write(t *testing.T) {
	tests := []struct {
		name      string
		log       func(l *Logger)
		wantAlert bool
	}{
		{
			name: "flagged error is sent",
			log: func(l *Logger) {
				l.ErrorContextWithAlert(context.Background(), "job failed", StringField("job", "watchlist"))
			},
			wantAlert: true,
		},
		{
			name: "plain error is not sent",
			log: func(l *Logger) {
				l.Error("job failed")
			},
			wantAlert: false,
		},
		{
			name: "flag below min level is ignored",
			log: func(l *Logger) {
				l.Warn("degraded", zap.Bool(alertFieldKey, true))
			},
			wantAlert: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sent := make(chan Alert, 1)
			obsCore, logs := observer.New(zapcore.DebugLevel)
			core := WithAlerts(zapcore.ErrorLevel, func(a Alert) { sent <- a })(obsCore)
			l := &Logger{zap.New(core)}

			tt.log(l)

			require.Equal(t, 1, logs.Len())
			select {
			case a := <-sent:
				assert.True(t, tt.wantAlert)
				assert.Equal(t, "job failed", a.Message)
				assert.Equal(t, "watchlist", a.Fields["job"])
				_, hasFlag := a.Fields[alertFieldKey]
				assert.False(t, hasFlag)
			case <-time.After(100 * time.Millisecond):
				assert.False(t, tt.wantAlert)
			}
		})
	}
}
