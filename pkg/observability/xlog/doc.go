// Package xlog 基于 log/slog 的诊断日志库。
//
// xlog 承担进程级诊断输出：记录 xroll 滚动文件写入器自身的故障（轮转失败、
// 清理失败）以及 CLI 的运行信息。它与业务日志文件相互独立，
// 因此 xroll 向 xlog 报告错误不会回写到正在轮转的文件，也就不会递归。
//
// # 创建 Logger
//
// 使用 Builder 模式（first-error-wins：遇到第一个配置错误后，Build 返回该错误）：
//
//	logger, cleanup, err := xlog.New().
//		SetLevelString("debug").
//		SetFormat("json").
//		SetRotation("/var/log/orders/diag.log", xrotate.WithMaxSize(10)).
//		Build()
//	if err != nil {
//		return err
//	}
//	defer cleanup()
//
// 默认输出到 stderr，Info 级别，text 格式。
//
// # 全局 Logger
//
//   - [Default]: 获取全局 Logger（惰性初始化）
//   - [SetDefault]: 替换全局 Logger（nil 会被忽略）
//   - [Debug]、[Info]、[Warn]、[Error]: 全局便利函数
//
// # 日志级别
//
// LevelDebug(-4)、LevelInfo(0)、LevelWarn(4)、LevelError(8)，与 slog 一致。
// 可通过 [ParseLevel] 从字符串解析，Level 实现 encoding.TextUnmarshaler，可直接用于配置。
// 派生 logger（With/WithGroup）共享父级的 LevelVar，动态调整级别同步生效。
package xlog
