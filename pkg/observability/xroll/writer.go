package xroll

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/omeyang/xroll/pkg/observability/xlog"
	"github.com/omeyang/xroll/pkg/observability/xmetrics"
)

const component = "xroll"

// Writer 某个日志类别的写入句柄，由 [Factory.Writer] 创建，并发安全。
type Writer struct {
	category string
	path     string
	dir      string
	stem     string
	ext      string
	cfg      Config
	state    *pathState
	opts     *options
}

// Category 返回日志类别。
func (w *Writer) Category() string { return w.category }

// Path 返回解析后的活动文件绝对路径。
func (w *Writer) Path() string { return w.path }

// Enabled 报告 level 是否会被写入：level 不是 LevelNone 且不低于 Config.MinLevel。
// 调用方应在构造 Record 之前检查，避免为被抑制的级别付出格式化成本。
func (w *Writer) Enabled(level Level) bool {
	return level != LevelNone && level >= w.cfg.MinLevel
}

// Log 以当前时间构造 Record 并写入；级别未启用时直接返回 nil。
func (w *Writer) Log(level Level, message string, err error) error {
	if !w.Enabled(level) {
		return nil
	}
	return w.Write(Record{
		Time:     w.now(),
		Level:    level,
		Category: w.category,
		Message:  message,
	}.WithError(err))
}

// Write 格式化 r 并追加到活动文件，必要时先轮转。
//
// r.Category 为空时使用 Writer 的类别，r.Time 为零值时使用当前时间；
// 非零的 r.Time 按 Config.LocalTime 转换到本地时间或 UTC 后再渲染。
// 消息为空时不做任何操作。只有追加失败会返回错误（满足 errors.Is(err, ErrAppend)）。
func (w *Writer) Write(r Record) (err error) {
	if r.Category == "" {
		r.Category = w.category
	}
	if r.Time.IsZero() {
		r.Time = w.now()
	} else {
		r.Time = w.inZone(r.Time)
	}
	text := Format(r)
	if text == "" {
		return nil
	}

	ctx, span := xmetrics.Start(context.Background(), w.opts.observer, xmetrics.SpanOptions{
		Component: component,
		Operation: "append",
		Attrs:     []xmetrics.Attr{xmetrics.String("category", w.category)},
	})
	var n int
	defer func() {
		span.End(xmetrics.Result{Err: err, Bytes: int64(n)})
	}()

	var rotateErr error
	n, rotateErr, err = w.writeLocked(ctx, text)
	if rotateErr != nil {
		w.report(rotateErr)
	}
	return err
}

// writeLocked 在路径互斥区内完成轮转检查与追加。
func (w *Writer) writeLocked(ctx context.Context, text string) (n int, rotateErr, err error) {
	w.state.mu.Lock()
	defer w.state.mu.Unlock()

	rotateErr = w.rotateIfNeeded(ctx)
	n, err = w.appendLine(text)
	return n, rotateErr, err
}

func (w *Writer) rotateIfNeeded(ctx context.Context) error {
	info, err := w.opts.fsys.Stat(w.path)
	exists := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &RotateError{Path: w.path, Stage: StageInspect, Err: err}
	}
	var size int64
	if exists {
		size = info.Size()
	}
	if !ShouldRotate(size, exists, w.cfg) {
		return nil
	}

	_, span := xmetrics.Start(ctx, w.opts.observer, xmetrics.SpanOptions{
		Component: component,
		Operation: "rotate",
		Attrs:     []xmetrics.Attr{xmetrics.Int64("size", size)},
	})
	err = w.rotate()
	span.End(xmetrics.Result{Err: err})
	return err
}

// rotate 执行 prune → archive → recreate，任何一步失败都放弃本次轮转。
// MaxRollingFiles 为 1 时不产生归档：清掉残留归档后原地清空活动文件。
func (w *Writer) rotate() error {
	fsys := w.opts.fsys

	archives, err := listArchives(fsys, w.dir, w.stem, w.ext)
	if err != nil {
		return &RotateError{Path: w.path, Stage: StagePrune, Err: err}
	}
	var errs []error
	for _, a := range PlanRetention(archives, w.cfg.MaxRollingFiles) {
		if err := fsys.Remove(a.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return &RotateError{Path: w.path, Stage: StagePrune, Err: err}
	}

	if w.cfg.MaxRollingFiles > 1 {
		target, err := nextArchivePath(fsys, w.dir, w.stem, w.ext, w.now())
		if err != nil {
			return &RotateError{Path: w.path, Stage: StageArchive, Err: err}
		}
		if err := fsys.Rename(w.path, target); err != nil {
			return &RotateError{Path: w.path, Stage: StageArchive, Err: err}
		}
	}

	// 此处崩溃会留下缺失的活动文件，由 NewFactory 与 O_CREATE 追加恢复
	if err := w.create(os.O_WRONLY | os.O_CREATE | os.O_TRUNC); err != nil {
		return &RotateError{Path: w.path, Stage: StageRecreate, Err: err}
	}
	return nil
}

func (w *Writer) create(flag int) error {
	f, err := w.opts.fsys.OpenFile(w.path, flag, DefaultFilePerm)
	if err != nil {
		return err
	}
	return f.Close()
}

func (w *Writer) appendLine(text string) (int, error) {
	flag := os.O_WRONLY | os.O_CREATE | os.O_APPEND
	if !w.cfg.Append && !w.state.truncated {
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}

	f, err := w.opts.fsys.OpenFile(w.path, flag, DefaultFilePerm)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrAppend, w.path, err)
	}
	w.state.truncated = true

	n, werr := io.WriteString(f, text+"\n")
	if err := errors.Join(werr, f.Close()); err != nil {
		return n, fmt.Errorf("%w: %s: %w", ErrAppend, w.path, err)
	}
	return n, nil
}

func (w *Writer) now() time.Time {
	return w.inZone(w.opts.clock())
}

// inZone 按 Config.LocalTime 转换时区，记录时间戳与归档名使用同一规则。
func (w *Writer) inZone(t time.Time) time.Time {
	if w.cfg.LocalTime {
		return t.Local()
	}
	return t.UTC()
}

func (w *Writer) report(err error) {
	defer func() {
		if r := recover(); r != nil {
			xlog.Default().Error(context.Background(), "xroll: error reporter panicked",
				xlog.Path(w.path), slog.Any("panic", r), xlog.Err(err))
		}
	}()
	w.opts.onError(err)
}
