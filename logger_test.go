package gridkit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/gridkit/geom"
	"github.com/hupe1980/gridkit/snapshot"
)

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.Background()

	l.WithSpace("depot").WithIndex(7).LogRemove(ctx, 7, true)
	out := buf.String()
	assert.Contains(t, out, `"space":"depot"`)
	assert.Contains(t, out, `"index":7`)
	assert.Contains(t, out, `"removed":true`)

	buf.Reset()
	l.LogAdd(ctx, geom.V3(1, 2, 3), 0, errors.New("occupied"))
	assert.Contains(t, buf.String(), `"msg":"add rejected"`)
	assert.Contains(t, buf.String(), `"error":"occupied"`)

	buf.Reset()
	l.LogSnapshot(ctx, "grid/00000001.grid", snapshot.Info{Items: 3, Size: 99, Compression: snapshot.CompressionLZ4}, nil)
	assert.Contains(t, buf.String(), `"compression":"lz4"`)
	assert.Contains(t, buf.String(), `"bytes":99`)
}

func TestLogger_Constructors(t *testing.T) {
	require.NotNil(t, NewLogger(nil))
	require.NotNil(t, NewJSONLogger(slog.LevelWarn))
	require.NotNil(t, NewTextLogger(slog.LevelDebug))

	assert.False(t, NoopLogger().Enabled(context.Background(), slog.LevelError))
	assert.True(t, NewJSONLogger(slog.LevelWarn).Enabled(context.Background(), slog.LevelError))
	assert.False(t, NewJSONLogger(slog.LevelWarn).Enabled(context.Background(), slog.LevelInfo))
}
