package xconf

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_Reloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xroll.yaml")
	writeFile(t, path, "diagnostics:\n  level: info\n")
	cfg, err := New(path)
	require.NoError(t, err)

	reloaded := make(chan error, 8)
	w, err := Watch(cfg, func(_ *Config, err error) {
		reloaded <- err
	}, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	writeFile(t, path, "diagnostics:\n  level: debug\n")

	select {
	case err := <-reloaded:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("等待重载超时")
	}
	assert.Equal(t, "debug", cfg.Client().String("diagnostics.level"))
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "xroll.yaml")
	writeFile(t, path, "a: 1\n")
	cfg, err := New(path)
	require.NoError(t, err)

	var mu sync.Mutex
	calls := 0
	w, err := Watch(cfg, func(*Config, error) {
		mu.Lock()
		calls++
		mu.Unlock()
	}, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)

	writeFile(t, filepath.Join(dir, "other.yaml"), "b: 2\n")
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, w.Stop())

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, calls)
}

func TestWatch_NotFileBacked(t *testing.T) {
	cfg, err := NewFromBytes([]byte("a: 1\n"), FormatYAML)
	require.NoError(t, err)

	_, err = Watch(cfg, nil)
	assert.ErrorIs(t, err, ErrNotFileBacked)

	_, err = Watch(nil, nil)
	assert.ErrorIs(t, err, ErrNotFileBacked)
}

func TestWatch_StopIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xroll.yaml")
	writeFile(t, path, "a: 1\n")
	cfg, err := New(path)
	require.NoError(t, err)

	w, err := Watch(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}

func TestWatch_StopFromCallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xroll.yaml")
	writeFile(t, path, "a: 1\n")
	cfg, err := New(path)
	require.NoError(t, err)

	stopped := make(chan struct{})
	self := make(chan *Watcher, 1)
	var once sync.Once
	w, err := Watch(cfg, func(*Config, error) {
		once.Do(func() {
			assert.NoError(t, (<-self).Stop())
			close(stopped)
		})
	}, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	self <- w

	writeFile(t, path, "a: 2\n")
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("回调中调用 Stop 未返回")
	}
	require.NoError(t, w.Stop())
}
