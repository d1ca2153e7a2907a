package xfile

import (
	"fmt"
	"path/filepath"
	"strings"
)

// containsNullByte 检测路径是否包含空字节。
func containsNullByte(path string) bool {
	return strings.ContainsRune(path, 0)
}

// hasDotDotSegment 检测路径中是否包含 ".." 作为独立路径段。
// 逐字符扫描，'/' 和 '\' 都视为分隔符；"app..2024.log" 这类文件名不会被误判。
func hasDotDotSegment(path string) bool {
	i := 0
	for i < len(path) {
		if path[i] == '/' || path[i] == '\\' {
			i++
			continue
		}
		j := i
		for j < len(path) && path[j] != '/' && path[j] != '\\' {
			j++
		}
		if j-i == 2 && path[i] == '.' && path[i+1] == '.' {
			return true
		}
		i = j
	}
	return false
}

// SanitizePath 对日志文件路径做格式检查和规范化
//
// 功能：
//   - 路径规范化（消除 . 和冗余分隔符）
//   - 阻止相对路径穿越（如 "../etc/passwd"）
//   - 拒绝空路径、含空字节的路径和显式目录路径（尾随 "/" 或 "\"）
//
// 绝对路径中的 ".." 由 filepath.Clean 正常解析（"/var/log/../x.log" -> "/var/x.log"）。
// 本函数只做格式净化，不限制目标目录。
func SanitizePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename is required: %w", ErrEmptyPath)
	}
	if containsNullByte(filename) {
		return "", fmt.Errorf("filename contains null byte: %w", ErrNullByte)
	}

	// 必须在 Clean 之前检查，Clean 会移除尾部分隔符
	if strings.HasSuffix(filename, "/") || strings.HasSuffix(filename, "\\") {
		return "", fmt.Errorf("path is a directory: %w", ErrInvalidPath)
	}

	cleaned := filepath.Clean(filename)
	if hasDotDotSegment(cleaned) {
		return "", fmt.Errorf("path traversal in filename: %w", ErrPathTraversal)
	}

	base := filepath.Base(cleaned)
	if base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("no file name specified: %w", ErrInvalidPath)
	}
	return cleaned, nil
}

// ResolvePath 净化路径并转换为绝对路径
//
// 同一进程内，指向同一日志文件的不同写法（"logs/app.log"、"./logs//app.log"）
// 解析后得到相同结果，可直接作为按文件互斥的 key。
// 不解析符号链接：两个不同的符号链接指向同一文件时视为两个 key。
func ResolvePath(filename string) (string, error) {
	cleaned, err := SanitizePath(filename)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

// SplitName 将文件路径拆分为目录、主文件名和扩展名
//
// 扩展名包含前导点，只取最后一段：
//
//	SplitName("/var/log/app.log")     // "/var/log", "app", ".log"
//	SplitName("/var/log/app.2024.log") // "/var/log", "app.2024", ".log"
//	SplitName("/var/log/app")         // "/var/log", "app", ""
//	SplitName("/var/log/.env")        // "/var/log", "", ".env"
func SplitName(path string) (dir, stem, ext string) {
	dir = filepath.Dir(path)
	base := filepath.Base(path)
	ext = filepath.Ext(base)
	stem = strings.TrimSuffix(base, ext)
	return dir, stem, ext
}
