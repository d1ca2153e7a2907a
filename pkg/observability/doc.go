// Package observability 提供日志写入与可观测性相关的子包。
//
// 子包列表：
//   - xroll: 按大小轮转、按数量保留的文件日志写入器
//   - xlog: 诊断日志，基于 log/slog 扩展
//   - xrotate: 诊断日志文件轮转（lumberjack）
//   - xmetrics: 统一的 span 与指标接口，默认实现基于 OpenTelemetry
//
// xroll 写入业务日志，xlog 只记录写入器自身的诊断信息，
// 两者不应指向同一个文件。
package observability
