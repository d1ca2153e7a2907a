package xlog

import (
	"fmt"
	"log/slog"
	"strings"
)

// Level 诊断日志级别，数值与 slog.Level 一致，可直接交给 slog.LevelVar。
//
// 诊断流只关心写入器自身的异常，因此只有四档；
// xroll 记录使用的 Trace/Critical 等级别不在这里出现。
type Level slog.Level

const (
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)
)

// levelNames 配置文件中可用的级别名（小写）。
// information 与 xroll 的级别名对齐，同一份配置里两节可以写法一致。
var levelNames = map[string]Level{
	"debug":       LevelDebug,
	"info":        LevelInfo,
	"information": LevelInfo,
	"warn":        LevelWarn,
	"warning":     LevelWarn,
	"error":       LevelError,
}

// ParseLevel 按名称查找级别，忽略大小写与首尾空白。
// 未知名称返回 LevelInfo 与 ErrUnknownLevel。
func ParseLevel(s string) (Level, error) {
	if l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return l, nil
	}
	return LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// String 返回大写级别名；非标准数值沿用 slog 的 "INFO+2" 形式。
func (l Level) String() string {
	return slog.Level(l).String()
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText 使 Level 可以直接作为 koanf 配置字段。
func (l *Level) UnmarshalText(data []byte) error {
	parsed, err := ParseLevel(string(data))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
