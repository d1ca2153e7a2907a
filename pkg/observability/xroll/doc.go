// Package xroll 实现按大小轮转、按数量保留的文本日志文件写入器。
//
// # 组成
//
//   - [Format]：把 [Record] 渲染为一行文本（失败详情另起一行）
//   - [ShouldRotate] / [PlanRetention]：纯函数形式的轮转与保留策略
//   - [Writer]：格式化、轮转检查、追加写入作为一次同步操作完成
//   - [Factory]：按日志类别发放 Writer，所有类别共享同一份 [Config]
//   - [Handler]：slog.Handler 桥接，使 log/slog 的调用方写入滚动文件
//
// # 磁盘布局
//
// 活动文件位于 Config.Path；归档文件与活动文件同目录：
//
//	<dir>/<stem>-<yyyyMMddHHmmss><ext>
//	<dir>/<stem>-<yyyyMMddHHmmss>-<n><ext>   同一秒内再次轮转时追加序号
//
// 一次轮转完成后，同一基名的归档数量不超过 MaxRollingFiles-1，
// 活动文件计为第 MaxRollingFiles 个保留文件。MaxRollingFiles 为 1 时
// 轮转删除残留归档并原地清空活动文件，不产生新归档。
//
// # 并发
//
// Write 同步阻塞、不可取消。互斥区按解析后的绝对路径划分，
// 进程内指向同一文件的所有 Writer（无论类别、无论来自哪个 Factory）
// 共享同一个互斥区。跨进程写同一路径不受保护。
//
// # 错误
//
// 空消息被静默忽略；轮转失败包装为 [*RotateError] 交给诊断回调
// （默认写入 xlog.Default()），不返回给调用方，写入继续落到当前路径上的文件；
// 追加失败包装为 [ErrAppend] 返回，不重试。
package xroll
