package xlog

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_LazyAndReplaceable(t *testing.T) {
	ResetDefault()
	t.Cleanup(ResetDefault)

	first := Default()
	require.NotNil(t, first)
	assert.Same(t, first, Default())

	var buf bytes.Buffer
	custom, cleanup, err := New().SetOutput(&buf).SetLevel(LevelDebug).Build()
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	SetDefault(custom)
	SetDefault(nil)
	assert.Same(t, custom, Default())

	ctx := context.Background()
	Debug(ctx, "d")
	Info(ctx, "i")
	Warn(ctx, "w")
	Error(ctx, "e")
	for _, want := range []string{"msg=d", "msg=i", "msg=w", "msg=e"} {
		assert.Contains(t, buf.String(), want)
	}
}

func TestErrorCount(t *testing.T) {
	logger, cleanup, err := New().SetOutput(errWriter{}).Build()
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	logger.Info(context.Background(), "a")
	logger.With(Component("x")).Info(context.Background(), "b")

	xl, ok := logger.(*xlogger)
	require.True(t, ok)
	assert.Equal(t, uint64(2), xl.ErrorCount())
}

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) { return 0, assert.AnError }
