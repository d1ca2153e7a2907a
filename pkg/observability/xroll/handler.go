package xroll

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
)

var _ slog.Handler = (*Handler)(nil)

// Handler 将 slog 记录写入 [Writer]。
//
// 属性以 " key=value" 追加在消息之后，分组键形如 "group.key"；
// 记录中名为 error 或 err 且值为 error 的顶层属性作为失败详情另起一行输出。
type Handler struct {
	w      *Writer
	prefix string // WithGroup 累积的键前缀
	attrs  string // WithAttrs 预渲染的属性
}

// NewHandler 创建写入 w 的 slog.Handler。
func NewHandler(w *Writer) *Handler {
	return &Handler{w: w}
}

// Enabled 按映射后的级别调用 Writer.Enabled。
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return h.w.Enabled(levelFromSlog(level))
}

// Handle 渲染并写入一条记录，只有追加失败会返回错误。
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	rec := Record{
		Time:     r.Time,
		Level:    levelFromSlog(r.Level),
		Category: h.w.category,
	}

	var b strings.Builder
	b.WriteString(r.Message)
	b.WriteString(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		if h.prefix == "" && rec.Failure == "" && (a.Key == "error" || a.Key == "err") {
			if err, ok := a.Value.Resolve().Any().(error); ok && err != nil {
				rec.Failure = err.Error()
				return true
			}
		}
		appendAttr(&b, h.prefix, a)
		return true
	})
	rec.Message = b.String()
	return h.w.Write(rec)
}

// WithAttrs 返回附带 attrs 的新 Handler。
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var b strings.Builder
	b.WriteString(h.attrs)
	for _, a := range attrs {
		appendAttr(&b, h.prefix, a)
	}
	h2 := *h
	h2.attrs = b.String()
	return &h2
}

// WithGroup 返回键带 name 前缀的新 Handler，name 为空时返回自身。
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.prefix = h.prefix + name + "."
	return &h2
}

func appendAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		if len(group) == 0 {
			return
		}
		p := prefix
		if a.Key != "" {
			p = prefix + a.Key + "."
		}
		for _, ga := range group {
			appendAttr(b, p, ga)
		}
		return
	}

	b.WriteByte(' ')
	b.WriteString(prefix)
	b.WriteString(a.Key)
	b.WriteByte('=')
	v := a.Value.String()
	if needsQuote(v) {
		v = strconv.Quote(v)
	}
	b.WriteString(v)
}

func needsQuote(s string) bool {
	if s == "" {
		return true
	}
	return strings.ContainsAny(s, " =\"\t\r\n")
}

// levelFromSlog 映射 slog 级别：低于 Debug 为 Trace，高于 Error 为 Critical。
func levelFromSlog(l slog.Level) Level {
	switch {
	case l < slog.LevelDebug:
		return LevelTrace
	case l < slog.LevelInfo:
		return LevelDebug
	case l < slog.LevelWarn:
		return LevelInformation
	case l < slog.LevelError:
		return LevelWarning
	case l == slog.LevelError:
		return LevelError
	default:
		return LevelCritical
	}
}
