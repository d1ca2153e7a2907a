// Package xrotate 为诊断日志流提供按大小轮转的文件输出。
//
// Rotator 接口定义了轮转器的核心行为（Write/Close/Rotate），所有实现并发安全。
// 当前实现 [NewLumberjack] 基于 lumberjack v2，备份文件不压缩。
//
// xrotate 只服务于诊断流（xlog 的输出目标）。业务日志文件由 xroll 负责，
// 两者的归档命名与保留规则不同，不能混用同一路径。
package xrotate
