package xroll

import (
	"strings"
	"time"
)

// TimeLayout 日志行时间戳格式（毫秒精度）。
const TimeLayout = "2006-01-02 15:04:05.000"

// Record 一条待写入的日志。
type Record struct {
	Time     time.Time
	Level    Level
	Category string
	Message  string
	// Failure 失败详情，原样追加在主行之后，可以跨多行。
	Failure string
}

// NewRecord 以当前时间创建 Record。
func NewRecord(level Level, category, message string) Record {
	return Record{
		Time:     time.Now(),
		Level:    level,
		Category: category,
		Message:  message,
	}
}

// WithError 返回附带 err 文本作为失败详情的副本，err 为 nil 时原样返回。
func (r Record) WithError(err error) Record {
	if err != nil {
		r.Failure = err.Error()
	}
	return r
}

// Format 渲染日志文本，不含结尾换行：
//
//	2024-05-01 12:30:45.123 [Information] orders: order created
//
// Message 为空时返回空字符串，调用方应跳过写入。
// 消息中的换行不做转义。
func Format(r Record) string {
	if r.Message == "" {
		return ""
	}

	level := r.Level.String()
	var b strings.Builder
	b.Grow(len(TimeLayout) + len(level) + len(r.Category) + len(r.Message) + len(r.Failure) + 8)
	b.WriteString(r.Time.Format(TimeLayout))
	b.WriteString(" [")
	b.WriteString(level)
	b.WriteString("] ")
	b.WriteString(r.Category)
	b.WriteString(": ")
	b.WriteString(r.Message)
	if r.Failure != "" {
		b.WriteByte('\n')
		b.WriteString(r.Failure)
	}
	return b.String()
}
