package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// pgxLogger adapts zerolog.Logger to pgx's tracelog interface.
// Query args are dropped for statements touching credential columns; they carry API secrets.
type pgxLogger struct {
	logger zerolog.Logger
}

func newPgxLogger(logger zerolog.Logger) *pgxLogger {
	l := logger.With().Str("component", "pgx").Logger()
	return &pgxLogger{logger: l}
}

func touchesSecrets(sql string) bool {
	s := strings.ToLower(sql)
	return strings.Contains(s, "api_secret") || strings.Contains(s, "api_key")
}

// Log implements tracelog.Logger by mapping pgx levels to zerolog.
func (l *pgxLogger) Log(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	if level == tracelog.LogLevelNone {
		return
	}

	var event *zerolog.Event
	switch level {
	case tracelog.LogLevelTrace:
		event = l.logger.Trace()
	case tracelog.LogLevelDebug:
		event = l.logger.Debug()
	case tracelog.LogLevelInfo:
		event = l.logger.Info()
	case tracelog.LogLevelWarn:
		event = l.logger.Warn()
	case tracelog.LogLevelError:
		event = l.logger.Error()
	default:
		event = l.logger.Info().Str("pgx_log_level", level.String())
	}

	redact := false
	if sqlVal, ok := data["sql"]; ok {
		if s, ok := sqlVal.(string); ok {
			event = event.Str("sql", s)
			redact = touchesSecrets(s)
		} else {
			event = event.Interface("sql", sqlVal)
		}
		delete(data, "sql")
	}
	if args, ok := data["args"]; ok {
		if redact {
			event = event.Str("args", "[redacted]")
		} else {
			event = event.Interface("args", args)
		}
		delete(data, "args")
	}

	if len(data) > 0 {
		event = event.Fields(data)
	}
	event.Msg(msg)
}
