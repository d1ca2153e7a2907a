// Package xconf 基于 koanf 加载 xrollctl 及嵌入方的配置文件。
//
// 支持 YAML（.yaml/.yml）与 JSON（.json）两种格式，提供文件加载（New）、
// 字节加载（NewFromBytes）、按路径反序列化（Unmarshal）、并发安全的重载（Reload）
// 和基于 fsnotify 的文件监视（Watch）。
//
// # 快照语义
//
// Reload 解析成功后原子替换 koanf 实例；解析失败时保留旧配置。
// Client() 返回的指针在 Reload 后仍然有效，但指向旧配置，
// 需要最新值时应重新调用 Client()。
//
// # 配置监视
//
// Watch 监视配置文件所在目录，兼容编辑器"写临时文件再 rename"的保存方式。
// 多次变更在防抖窗口内只触发一次重载。Stop 返回后不再有回调执行。
//
// 业务日志文件的配置（xroll.Config）在 Factory 创建后不可变，
// 热重载只应作用于诊断流级别等运行期可调项。
package xconf
