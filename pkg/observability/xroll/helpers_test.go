package xroll

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// baseTime 所有测试记录的起始时间。
var baseTime = time.Date(2024, 5, 1, 12, 30, 45, 123_000_000, time.UTC)

// stepClock 每次读取后前进 step，保证归档名按轮转顺序递增。
type stepClock struct {
	mu   sync.Mutex
	t    time.Time
	step time.Duration
}

func newStepClock(step time.Duration) *stepClock {
	return &stepClock{t: baseTime, step: step}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.t
	c.t = c.t.Add(c.step)
	return t
}

// linePrefixLen 为 "2024-05-01 12:30:45.123 [Information] c: " 的长度。
const linePrefixLen = 41

// messageOfLineLen 返回类别为 "c"、级别为 Information 时落盘长度（含换行）恰为 n 的消息。
func messageOfLineLen(t *testing.T, n int) string {
	t.Helper()
	require.Greater(t, n, linePrefixLen+1)
	return strings.Repeat("x", n-linePrefixLen-1)
}

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		Path:     filepath.Join(t.TempDir(), "logs", "app.log"),
		Append:   true,
		MinLevel: LevelTrace,
	}
}

func newTestFactory(t *testing.T, cfg Config, opts ...Option) *Factory {
	t.Helper()
	base := []Option{WithClock(newStepClock(time.Second).Now)}
	f, err := NewFactory(cfg, append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func fileSize(t *testing.T, path string) int64 {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	return info.Size()
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// archiveNames 返回 path 对应的归档文件名（字典序）。
func archiveNames(t *testing.T, path string) []string {
	t.Helper()
	archives, err := ListArchives(path)
	require.NoError(t, err)
	names := make([]string, 0, len(archives))
	for _, a := range archives {
		names = append(names, a.Name)
	}
	sort.Strings(names)
	return names
}

// newFaultyFS 返回一个委托给真实文件系统的 mock；inject 中登记的期望优先匹配。
func newFaultyFS(t *testing.T, inject func(m *MockfileSystem)) *MockfileSystem {
	t.Helper()
	m := NewMockfileSystem(gomock.NewController(t))
	if inject != nil {
		inject(m)
	}
	osfs := osFS{}
	m.EXPECT().Stat(gomock.Any()).DoAndReturn(osfs.Stat).AnyTimes()
	m.EXPECT().Rename(gomock.Any(), gomock.Any()).DoAndReturn(osfs.Rename).AnyTimes()
	m.EXPECT().Remove(gomock.Any()).DoAndReturn(osfs.Remove).AnyTimes()
	m.EXPECT().ReadDir(gomock.Any()).DoAndReturn(osfs.ReadDir).AnyTimes()
	m.EXPECT().OpenFile(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(osfs.OpenFile).AnyTimes()
	m.EXPECT().BirthTime(gomock.Any()).DoAndReturn(osfs.BirthTime).AnyTimes()
	return m
}

// errorSink 收集诊断回调收到的错误。
type errorSink struct {
	mu   sync.Mutex
	errs []error
}

func (s *errorSink) report(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs = append(s.errs, err)
}

func (s *errorSink) all() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]error(nil), s.errs...)
}
