package xroll

import (
	"fmt"

	"github.com/omeyang/xroll/pkg/util/xfile"
)

// Config 滚动写入配置，Factory 创建后不可变。
//
// FileSizeLimitBytes 与 MaxRollingFiles 为 0 表示未设置；
// 只有两者都大于 0 时才会轮转。
type Config struct {
	// Path 活动文件路径，相对路径按进程工作目录解析。
	Path string `koanf:"path"`

	// Append 为 false 时，本进程对该路径的第一次写入会清空已有内容。
	Append bool `koanf:"append"`

	// FileSizeLimitBytes 活动文件达到该大小后，下一次写入前轮转。
	FileSizeLimitBytes int64 `koanf:"file_size_limit_bytes"`

	// MaxRollingFiles 保留的文件总数（含活动文件）。
	MaxRollingFiles int `koanf:"max_rolling_files"`

	// MinLevel 低于该级别的记录不写入，默认 LevelTrace。
	MinLevel Level `koanf:"min_level"`

	// LocalTime 为 true 时记录时间戳与归档文件名使用本地时间，否则使用 UTC。
	LocalTime bool `koanf:"local_time"`
}

// DefaultConfig 返回 path 对应的默认配置：不轮转、追加写入、本地时间。
func DefaultConfig(path string) Config {
	return Config{
		Path:      path,
		Append:    true,
		MinLevel:  LevelTrace,
		LocalTime: true,
	}
}

// RotationEnabled 报告两个轮转阈值是否都已设置。
func (c Config) RotationEnabled() bool {
	return c.FileSizeLimitBytes > 0 && c.MaxRollingFiles > 0
}

// Validate 校验配置。路径格式问题与负数阈值都返回 ErrInvalidConfig。
func (c Config) Validate() error {
	if _, err := xfile.SanitizePath(c.Path); err != nil {
		return fmt.Errorf("%w: path: %w", ErrInvalidConfig, err)
	}
	if c.FileSizeLimitBytes < 0 {
		return fmt.Errorf("%w: file_size_limit_bytes must not be negative, got %d", ErrInvalidConfig, c.FileSizeLimitBytes)
	}
	if c.MaxRollingFiles < 0 {
		return fmt.Errorf("%w: max_rolling_files must not be negative, got %d", ErrInvalidConfig, c.MaxRollingFiles)
	}
	if !c.MinLevel.valid() {
		return fmt.Errorf("%w: min_level %d out of range", ErrInvalidConfig, int(c.MinLevel))
	}
	return nil
}
