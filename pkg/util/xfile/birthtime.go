package xfile

import (
	"fmt"
	"time"
)

// BirthTime 返回文件的创建时间
//
// 平台或文件系统不记录创建时间时返回修改时间。
// 文件不存在时返回的错误满足 errors.Is(err, fs.ErrNotExist)。
func BirthTime(path string) (time.Time, error) {
	if path == "" {
		return time.Time{}, fmt.Errorf("path is required: %w", ErrEmptyPath)
	}
	if containsNullByte(path) {
		return time.Time{}, fmt.Errorf("path contains null byte: %w", ErrNullByte)
	}
	return birthTime(path)
}
