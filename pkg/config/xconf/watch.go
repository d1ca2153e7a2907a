package xconf

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce 默认防抖时间。
const DefaultDebounce = 100 * time.Millisecond

// WatchCallback 配置文件变更回调，err 非 nil 表示重载失败（旧配置仍然生效）。
type WatchCallback func(cfg *Config, err error)

// WatchOption 监视器选项。
type WatchOption func(*Watcher)

// WithDebounce 设置防抖时间，非正值被忽略。
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// Watcher 监视配置文件并在变更后自动重载。
type Watcher struct {
	cfg      *Config
	fsw      *fsnotify.Watcher
	callback WatchCallback
	debounce time.Duration

	done       chan struct{}
	loopDone   chan struct{}
	stopOnce   sync.Once
	stopErr    error
	inCallback atomic.Bool
}

// Watch 开始监视 cfg 对应的配置文件，返回的 Watcher 已在后台运行。
//
// 监视的是文件所在目录而不是文件本身：编辑器保存时常先删除再创建，
// 直接监视文件会丢失后续事件。
func Watch(cfg *Config, callback WatchCallback, opts ...WatchOption) (*Watcher, error) {
	if cfg == nil || cfg.path == "" {
		return nil, ErrNotFileBacked
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("xconf: create watcher: %w", err)
	}
	dir := filepath.Dir(cfg.path)
	if err := fsw.Add(dir); err != nil {
		return nil, errors.Join(fmt.Errorf("xconf: watch directory %s: %w", dir, err), fsw.Close())
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		callback: callback,
		debounce: DefaultDebounce,
		done:     make(chan struct{}),
		loopDone: make(chan struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	go w.run()
	return w, nil
}

// Stop 停止监视。返回后不再有新的回调开始执行；可重复调用，也可在回调中调用。
func (w *Watcher) Stop() error {
	w.stopOnce.Do(func() {
		close(w.done)
		w.stopErr = w.fsw.Close()
	})
	// 回调内部调用 Stop 时 loop 正阻塞在回调上，不能等待
	if !w.inCallback.Load() {
		<-w.loopDone
	}
	return w.stopErr
}

func (w *Watcher) run() {
	defer close(w.loopDone)

	filename := filepath.Base(w.cfg.path)
	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !relevant(event, filename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerCh = timer.C

		case <-timerCh:
			timerCh = nil
			w.notify(w.cfg.Reload())

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.notify(fmt.Errorf("xconf: watch error: %w", err))
		}
	}
}

// relevant 只保留可能代表目标文件内容变化的事件。
// Rename 对应 vim/emacs 的原子写入。
func relevant(event fsnotify.Event, filename string) bool {
	if filepath.Base(event.Name) != filename {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (w *Watcher) notify(err error) {
	if w.callback == nil {
		return
	}
	select {
	case <-w.done:
		return
	default:
	}
	w.inCallback.Store(true)
	defer w.inCallback.Store(false)
	w.callback(w.cfg, err)
}
