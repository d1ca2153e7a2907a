// Package xmetrics 为滚动日志写入路径提供最小化观测接口（metrics + tracing）。
//
// 业务代码只依赖 Observer/Span；默认实现基于 OpenTelemetry，
// 未注入 Observer 时使用 [NoopObserver]，写入路径没有额外开销。
//
//	obs, _ := xmetrics.NewOTelObserver()
//	ctx, span := xmetrics.Start(ctx, obs, xmetrics.SpanOptions{
//		Component: "xroll",
//		Operation: "rotate",
//	})
//	defer span.End(xmetrics.Result{Err: err})
//
// # 指标命名
//
//   - xroll.operation.total     操作次数，属性 component / operation / status
//   - xroll.operation.duration  操作耗时（秒），属性同上
//   - xroll.bytes.written       成功追加的字节数，属性 component / operation
package xmetrics
