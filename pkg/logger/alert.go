package logger

import (
	"time"

	"go.uber.org/zap/zapcore"
)

const alertFieldKey = "send_alert"

// Alert is the payload handed to an AlertSender for every flagged entry.
type Alert struct {
	Level   string                 `json:"level"`
	Message string                 `json:"message"`
	Fields  map[string]interface{} `json:"fields"`
	Time    time.Time              `json:"time"`
}

// AlertSender delivers an alert out of band (webhook, pager, ...). It must not block for long.
type AlertSender func(Alert)

// AlertCore tees entries flagged through ErrorContextWithAlert to an AlertSender.
type AlertCore struct {
	core     zapcore.Core
	minLevel zapcore.Level
	send     AlertSender
}

// WithAlerts returns an Option wrapping the logger core with an AlertCore.
func WithAlerts(minLevel zapcore.Level, send AlertSender) Option {
	return func(core zapcore.Core) zapcore.Core {
		return &AlertCore{core: core, minLevel: minLevel, send: send}
	}
}

func (a *AlertCore) Enabled(lvl zapcore.Level) bool {
	return a.core.Enabled(lvl)
}

func (a *AlertCore) With(fields []zapcore.Field) zapcore.Core {
	return &AlertCore{
		core:     a.core.With(fields),
		minLevel: a.minLevel,
		send:     a.send,
	}
}

func (a *AlertCore) Check(entry zapcore.Entry, checkedEntry *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if a.Enabled(entry.Level) {
		return checkedEntry.AddCore(entry, a)
	}
	return checkedEntry
}

func (a *AlertCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	if entry.Level >= a.minLevel && a.send != nil && hasAlertFlag(fields) {
		enc := zapcore.NewMapObjectEncoder()
		for _, f := range fields {
			if f.Key == alertFieldKey {
				continue
			}
			f.AddTo(enc)
		}
		go a.send(Alert{
			Level:   entry.Level.CapitalString(),
			Message: entry.Message,
			Fields:  enc.Fields,
			Time:    entry.Time,
		})
	}
	return a.core.Write(entry, fields)
}

func (a *AlertCore) Sync() error {
	return a.core.Sync()
}

func hasAlertFlag(fields []zapcore.Field) bool {
	for _, f := range fields {
		if f.Key == alertFieldKey && f.Type == zapcore.BoolType && f.Integer == 1 {
			return true
		}
	}
	return false
}
