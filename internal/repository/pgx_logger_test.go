package repository

import (
	"bytes"
	"context"
	"testing"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestPgxLogger_RedactsCredentialArgs(t *testing.T) {
	var buf bytes.Buffer
	l := newPgxLogger(zerolog.New(&buf).Level(zerolog.TraceLevel))

	l.Log(context.Background(), tracelog.LogLevelInfo, "Query", map[string]any{
		"sql":  "INSERT INTO exchange_settings (exchange, api_key, api_secret) VALUES ($1,$2,$3)",
		"args": []any{"binance", "KEY-123456", "SECRET-abcdef"},
	})
	out := buf.String()
	assert.Contains(t, out, `"args":"[redacted]"`)
	assert.NotContains(t, out, "SECRET-abcdef")
	assert.Contains(t, out, `"component":"pgx"`)
}

func TestPgxLogger_KeepsArgsForOtherStatements(t *testing.T) {
	var buf bytes.Buffer
	l := newPgxLogger(zerolog.New(&buf).Level(zerolog.TraceLevel))

	l.Log(context.Background(), tracelog.LogLevelInfo, "Query", map[string]any{
		"sql":  "SELECT COUNT(*) FROM exchange_settings WHERE exchange = $1",
		"args": []any{"kraken"},
	})
	assert.Contains(t, buf.String(), "kraken")
}

func TestPgxLogger_NoneLevelIsSilent(t *testing.T) {
	var buf bytes.Buffer
	l := newPgxLogger(zerolog.New(&buf))
	l.Log(context.Background(), tracelog.LogLevelNone, "ignored", nil)
	assert.Empty(t, buf.String())
}

func TestTraceLevel(t *testing.T) {
	assert.Equal(t, tracelog.LogLevelTrace, traceLevel(zerolog.TraceLevel))
	assert.Equal(t, tracelog.LogLevelDebug, traceLevel(zerolog.DebugLevel))
	assert.Equal(t, tracelog.LogLevelInfo, traceLevel(zerolog.InfoLevel))
	assert.Equal(t, tracelog.LogLevelWarn, traceLevel(zerolog.WarnLevel))
	assert.Equal(t, tracelog.LogLevelError, traceLevel(zerolog.ErrorLevel))
}
