// Package xfile 提供日志文件相关的文件系统工具。
//
// # 路径处理
//
//   - [SanitizePath]: 格式净化（空路径、空字节、相对路径穿越、目录路径）
//   - [ResolvePath]: 在 SanitizePath 基础上转换为绝对路径，作为进程内同一文件的唯一标识
//   - [SplitName]: 拆分目录、主文件名和扩展名，供归档文件命名使用
//
// # 目录
//
// [EnsureDir] 确保文件的父目录存在（默认权限 0750）。
//
// # 创建时间
//
// [BirthTime] 返回文件的创建时间。Linux 上通过 statx(2) 读取 btime；
// 内核或文件系统不提供 btime 时（以及其他平台）退化为修改时间。
//
// # 错误处理
//
// 预定义错误变量支持 [errors.Is] 判断：
//
//	_, err := xfile.SanitizePath("../etc/passwd")
//	if errors.Is(err, xfile.ErrPathTraversal) {
//	    // 处理路径穿越
//	}
package xfile
