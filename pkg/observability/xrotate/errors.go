package xrotate

import "errors"

// 诊断文件配置错误，NewLumberjack 返回时附带实际取值。
var (
	ErrEmptyFilename     = errors.New("xrotate: diagnostics file name is empty")
	ErrInvalidMaxSize    = errors.New("xrotate: max size out of range")
	ErrInvalidMaxBackups = errors.New("xrotate: max backups out of range")
	ErrInvalidMaxAge     = errors.New("xrotate: max age out of range")

	// ErrNoCleanupPolicy 备份数与保留天数都为 0 时，诊断文件会无限增长。
	ErrNoCleanupPolicy = errors.New("xrotate: neither max backups nor max age is set")
)

// ErrClosed Close 之后的 Write、Rotate 与重复 Close 都返回该错误。
var ErrClosed = errors.New("xrotate: rotator closed")
