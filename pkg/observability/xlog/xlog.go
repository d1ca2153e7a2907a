package xlog

import (
	"context"
	"log/slog"
)

// Logger 诊断流的写入接口。
//
// 诊断流记录写入器自身的状况（轮转被放弃、配置重载失败等），
// 与业务日志文件分开输出。属性只接受 slog.Attr，字段名见 attrs.go。
type Logger interface {
	Debug(ctx context.Context, msg string, attrs ...slog.Attr)
	Info(ctx context.Context, msg string, attrs ...slog.Attr)
	Warn(ctx context.Context, msg string, attrs ...slog.Attr)
	Error(ctx context.Context, msg string, attrs ...slog.Attr)

	With(attrs ...slog.Attr) Logger
	WithGroup(name string) Logger
}

// Leveler 运行时调整诊断级别，配置文件热更新走这里。
type Leveler interface {
	SetLevel(level Level)
	GetLevel() Level
	Enabled(ctx context.Context, level Level) bool
}

// LoggerWithLevel 是 Build 与 Default 的返回类型。
type LoggerWithLevel interface {
	Logger
	Leveler
}
