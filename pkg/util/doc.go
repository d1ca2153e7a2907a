// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xfile: 文件路径校验与解析、目录创建、文件创建时间
package util
