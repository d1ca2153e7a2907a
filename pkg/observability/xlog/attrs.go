package xlog

import "log/slog"

// 诊断日志中常用的标准字段名
const (
	// KeyError 错误字段
	KeyError = "error"

	// KeyPath 文件路径字段
	KeyPath = "path"

	// KeyCategory 日志类别字段
	KeyCategory = "category"

	// KeyStage 操作阶段字段（如轮转中的 prune/archive/recreate）
	KeyStage = "stage"

	// KeyCount 计数字段
	KeyCount = "count"

	// KeyComponent 组件名称字段
	KeyComponent = "component"
)

// Err 创建错误属性
//
// err 为 nil 时返回空属性（会被 slog 忽略）。
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Path 创建文件路径属性
func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}

// Category 创建日志类别属性
func Category(name string) slog.Attr {
	return slog.String(KeyCategory, name)
}

// Stage 创建操作阶段属性
func Stage(name string) slog.Attr {
	return slog.String(KeyStage, name)
}

// Count 创建计数属性
func Count(n int64) slog.Attr {
	return slog.Int64(KeyCount, n)
}

// Component 创建组件名属性
func Component(name string) slog.Attr {
	return slog.String(KeyComponent, name)
}
