package xroll

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"sync"

	"github.com/omeyang/xroll/pkg/observability/xlog"
	"github.com/omeyang/xroll/pkg/util/xfile"
)

// Factory 按日志类别发放 [Writer]，所有 Writer 共享同一份配置和同一个路径互斥区。
type Factory struct {
	cfg   Config
	path  string
	opts  options
	state *pathState

	mu      sync.Mutex
	writers map[string]*Writer
}

// NewFactory 校验配置、创建父目录，并在活动文件缺失时重新创建它
// （上次运行可能在归档重命名之后、新建文件之前退出）。
func NewFactory(cfg Config, opts ...Option) (*Factory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	path, err := xfile.ResolvePath(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: path: %w", ErrInvalidConfig, err)
	}

	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if err := xfile.EnsureDir(path); err != nil {
		return nil, fmt.Errorf("xroll: prepare directory for %s: %w", path, err)
	}

	f := &Factory{
		cfg:     cfg,
		path:    path,
		opts:    o,
		state:   guards.get(path),
		writers: make(map[string]*Writer),
	}
	if err := f.ensureActiveFile(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Factory) ensureActiveFile() error {
	f.state.mu.Lock()
	defer f.state.mu.Unlock()

	_, err := f.opts.fsys.Stat(f.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("xroll: inspect %s: %w", f.path, err)
	}

	file, err := f.opts.fsys.OpenFile(f.path, os.O_WRONLY|os.O_CREATE, DefaultFilePerm)
	if err != nil {
		return fmt.Errorf("xroll: create %s: %w", f.path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("xroll: create %s: %w", f.path, err)
	}
	xlog.Default().Debug(context.Background(), "xroll: created active file", xlog.Path(f.path))
	return nil
}

// Writer 返回 category 对应的 Writer，同一类别始终返回同一实例。
func (f *Factory) Writer(category string) *Writer {
	f.mu.Lock()
	defer f.mu.Unlock()

	if w, ok := f.writers[category]; ok {
		return w
	}
	dir, stem, ext := xfile.SplitName(f.path)
	w := &Writer{
		category: category,
		path:     f.path,
		dir:      dir,
		stem:     stem,
		ext:      ext,
		cfg:      f.cfg,
		state:    f.state,
		opts:     &f.opts,
	}
	f.writers[category] = w
	return w
}

// Categories 返回已创建 Writer 的类别，按字典序排列。
func (f *Factory) Categories() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, 0, len(f.writers))
	for c := range f.writers {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// Config 返回创建时的配置。
func (f *Factory) Config() Config { return f.cfg }

// Path 返回解析后的活动文件绝对路径。
func (f *Factory) Path() string { return f.path }

// Close 总是返回 nil：Writer 每次写入都独立打开和关闭文件，不持有句柄。
func (f *Factory) Close() error { return nil }
