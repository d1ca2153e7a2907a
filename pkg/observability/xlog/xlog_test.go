package xlog_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xroll/pkg/observability/xlog"
	"github.com/omeyang/xroll/pkg/observability/xrotate"
)

// testCleanup 在测试结束时执行 cleanup
func testCleanup(t *testing.T, cleanup func() error) {
	t.Helper()
	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})
}

// =============================================================================
// Builder 测试
// =============================================================================

func TestBuilder_Defaults(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().SetOutput(&buf).Build()
	require.NoError(t, err)
	testCleanup(t, cleanup)

	ctx := context.Background()
	logger.Debug(ctx, "hidden")
	logger.Info(ctx, "visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=visible")
	assert.Equal(t, xlog.LevelInfo, logger.GetLevel())
}

func TestBuilder_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().
		SetOutput(&buf).
		SetFormat(" JSON ").
		SetLevelString("debug").
		Build()
	require.NoError(t, err)
	testCleanup(t, cleanup)

	logger.Debug(context.Background(), "rotation failed", xlog.Path("/var/log/app.log"), xlog.Stage("archive"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "rotation failed", entry["msg"])
	assert.Equal(t, "/var/log/app.log", entry[xlog.KeyPath])
	assert.Equal(t, "archive", entry[xlog.KeyStage])
}

func TestBuilder_FirstErrorWins(t *testing.T) {
	tests := []struct {
		name    string
		build   func() *xlog.Builder
		wantErr error
	}{
		{
			name:    "未知级别",
			build:   func() *xlog.Builder { return xlog.New().SetLevelString("verbose").SetFormat("xml") },
			wantErr: xlog.ErrUnknownLevel,
		},
		{
			name:    "未知格式",
			build:   func() *xlog.Builder { return xlog.New().SetFormat("xml").SetLevelString("verbose") },
			wantErr: xlog.ErrUnknownFormat,
		},
		{
			name:    "nil 输出",
			build:   func() *xlog.Builder { return xlog.New().SetOutput(nil) },
			wantErr: xlog.ErrNilOutput,
		},
		{
			name:    "轮转配置无效",
			build:   func() *xlog.Builder { return xlog.New().SetRotation("") },
			wantErr: xrotate.ErrEmptyFilename,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, cleanup, err := tt.build().Build()
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, logger)
			assert.Nil(t, cleanup)
		})
	}
}

func TestBuilder_SetRotation(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "diag", "diag.log")
	logger, cleanup, err := xlog.New().
		SetRotation(filename, xrotate.WithMaxSize(1), xrotate.WithMaxBackups(2)).
		Build()
	require.NoError(t, err)

	logger.Warn(context.Background(), "rotation failed", xlog.Err(errors.New("permission denied")))
	require.NoError(t, cleanup())
	// cleanup 可重复调用
	require.NoError(t, cleanup())

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(content), "permission denied")
}

// =============================================================================
// Logger 测试
// =============================================================================

func TestLogger_WithAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().SetOutput(&buf).Build()
	require.NoError(t, err)
	testCleanup(t, cleanup)

	child := logger.With(xlog.Component("xroll")).WithGroup("writer")
	child.Info(context.Background(), "pruned", xlog.Count(3))

	out := buf.String()
	assert.Contains(t, out, "component=xroll")
	assert.Contains(t, out, "writer.count=3")

	// 空参数返回自身
	assert.Same(t, logger, logger.With())
	assert.Same(t, logger, logger.WithGroup(""))
}

func TestLogger_DynamicLevelSharedWithChildren(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().SetOutput(&buf).Build()
	require.NoError(t, err)
	testCleanup(t, cleanup)

	child := logger.With(slog.String("k", "v"))
	ctx := context.Background()

	child.Debug(ctx, "before")
	logger.SetLevel(xlog.LevelDebug)
	child.Debug(ctx, "after")

	assert.NotContains(t, buf.String(), "before")
	assert.Contains(t, buf.String(), "after")
	assert.True(t, logger.Enabled(ctx, xlog.LevelDebug))
}

// failingWriter 总是写入失败
type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestLogger_OnError(t *testing.T) {
	var got []error
	logger, cleanup, err := xlog.New().
		SetOutput(failingWriter{}).
		SetOnError(func(err error) { got = append(got, err) }).
		Build()
	require.NoError(t, err)
	testCleanup(t, cleanup)

	logger.Info(context.Background(), "lost")
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Error(), "disk full")
}

func TestLogger_OnErrorPanicIsolated(t *testing.T) {
	logger, cleanup, err := xlog.New().
		SetOutput(failingWriter{}).
		SetOnError(func(error) { panic("boom") }).
		Build()
	require.NoError(t, err)
	testCleanup(t, cleanup)

	assert.NotPanics(t, func() {
		logger.Error(context.Background(), "lost")
	})
}

func TestLogger_NilContext(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().SetOutput(&buf).Build()
	require.NoError(t, err)
	testCleanup(t, cleanup)

	//nolint:staticcheck // 验证 nil ctx 不 panic
	logger.Info(nil, "nil ctx")
	assert.True(t, strings.Contains(buf.String(), "nil ctx"))
}
