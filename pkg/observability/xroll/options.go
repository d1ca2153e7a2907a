package xroll

import (
	"context"
	"errors"
	"time"

	"github.com/omeyang/xroll/pkg/observability/xlog"
	"github.com/omeyang/xroll/pkg/observability/xmetrics"
)

// Option Factory 配置选项。
type Option func(*options)

type options struct {
	onError  func(error)
	observer xmetrics.Observer
	clock    func() time.Time
	fsys     fileSystem
}

func defaultOptions() options {
	return options{
		onError:  reportToDiagnostics,
		observer: xmetrics.NoopObserver{},
		clock:    time.Now,
		fsys:     osFS{},
	}
}

// WithOnError 设置轮转失败的诊断回调，nil 被忽略。
//
// 回调在互斥区之外同步执行，panic 会被恢复。
// 回调不应再写入同一个滚动文件，否则每次失败都会产生新的轮转尝试。
func WithOnError(fn func(error)) Option {
	return func(o *options) {
		if fn != nil {
			o.onError = fn
		}
	}
}

// WithObserver 设置观测器，为 append 与 rotate 操作记录 span 与指标。
func WithObserver(obs xmetrics.Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithClock 替换时间来源，影响记录时间戳与归档文件名。
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.clock = now
		}
	}
}

func withFileSystem(fsys fileSystem) Option {
	return func(o *options) {
		if fsys != nil {
			o.fsys = fsys
		}
	}
}

func reportToDiagnostics(err error) {
	ctx := context.Background()
	var re *RotateError
	if errors.As(err, &re) {
		xlog.Default().Warn(ctx, "xroll: rotation abandoned",
			xlog.Path(re.Path), xlog.Stage(string(re.Stage)), xlog.Err(re.Err))
		return
	}
	xlog.Default().Warn(ctx, "xroll: background error", xlog.Err(err))
}
