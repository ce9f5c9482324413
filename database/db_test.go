package database

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Info, gormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, gormLogLevel("info"))
	assert.Equal(t, gormlogger.Warn, gormLogLevel("warn"))
	assert.Equal(t, gormlogger.Error, gormLogLevel("error"))
}

func jsonLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec), line)
		out = append(out, rec)
	}
	return out
}

func TestNewGormLogger(t *testing.T) {
	ctx := context.Background()
	query := func() (string, int64) { return `SELECT * FROM "books" WHERE id = $1`, 1 }

	newLogger := func(level string) (gormlogger.Interface, *bytes.Buffer) {
		var buf bytes.Buffer
		app := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		return newGormLogger(app, level), &buf
	}

	t.Run("QueryErrorIsJSON", func(t *testing.T) {
		l, buf := newLogger("info")

		l.Trace(ctx, time.Now(), query, errors.New("relation \"books\" does not exist"))

		recs := jsonLines(t, buf)
		require.Len(t, recs, 1)
		assert.Equal(t, "ERROR", recs[0]["level"])
		assert.Equal(t, "gorm", recs[0]["component"])
		trace, ok := recs[0]["trace"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, trace["error"], "does not exist")
	})

	t.Run("SlowQueryWarns", func(t *testing.T) {
		l, buf := newLogger("info")

		l.Trace(ctx, time.Now().Add(-time.Second), query, nil)

		recs := jsonLines(t, buf)
		require.Len(t, recs, 1)
		assert.Equal(t, "WARN", recs[0]["level"])
	})

	t.Run("FastQueryQuietAtInfo", func(t *testing.T) {
		l, buf := newLogger("info")

		l.Trace(ctx, time.Now(), query, nil)
		l.Trace(ctx, time.Now(), query, gorm.ErrRecordNotFound)

		assert.Empty(t, buf.String())
	})

	t.Run("DebugTracesStatements", func(t *testing.T) {
		l, buf := newLogger("debug")

		l.Trace(ctx, time.Now(), query, nil)

		recs := jsonLines(t, buf)
		require.Len(t, recs, 1)
		assert.Equal(t, "INFO", recs[0]["level"])
	})
}
