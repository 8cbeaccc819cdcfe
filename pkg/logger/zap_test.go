package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestConvertFields(t *testing.T) {
	fields := convertFields([]Field{
		String("path", "ecommerce.db"),
		Int("orders", 3),
		Uint64("seed", 42),
		Duration("took", time.Second),
		Error(errors.New("boom")),
		Any("counts", map[string]int{"a": 1}),
	})

	require.Len(t, fields, 6)
	assert.Equal(t, "path", fields[0].Key)
	assert.Equal(t, "error", fields[4].Key)
}

func TestWithContext_AddsRunID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := &ZapLogger{logger: zap.New(core)}

	ctx := ContextWithRunID(context.Background(), "run-1")
	l.WithContext(ctx).Info("seeded")
	l.WithContext(context.Background()).Info("plain")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "run-1", entries[0].ContextMap()["run_id"])
	assert.NotContains(t, entries[1].ContextMap(), "run_id")
}
