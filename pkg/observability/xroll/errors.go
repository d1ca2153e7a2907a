package xroll

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig 配置校验失败。
	ErrInvalidConfig = errors.New("xroll: invalid config")

	// ErrUnknownLevel 无法识别的级别名称。
	ErrUnknownLevel = errors.New("xroll: unknown level")

	// ErrAppend 追加写入活动文件失败。
	ErrAppend = errors.New("xroll: append failed")

	// ErrRotate 轮转失败，[*RotateError] 满足 errors.Is(err, ErrRotate)。
	ErrRotate = errors.New("xroll: rotate failed")
)

// Stage 轮转过程中出错的步骤。
type Stage string

const (
	// StageInspect 读取活动文件状态。
	StageInspect Stage = "inspect"
	// StagePrune 枚举或删除旧归档。
	StagePrune Stage = "prune"
	// StageArchive 将活动文件重命名为归档。
	StageArchive Stage = "archive"
	// StageRecreate 在原路径创建新的空文件。
	StageRecreate Stage = "recreate"
)

// RotateError 描述一次被放弃的轮转。
type RotateError struct {
	Path  string
	Stage Stage
	Err   error
}

func (e *RotateError) Error() string {
	return fmt.Sprintf("xroll: rotate %s: %s: %v", e.Path, e.Stage, e.Err)
}

func (e *RotateError) Unwrap() error { return e.Err }

// Is 使 errors.Is(err, ErrRotate) 成立。
func (e *RotateError) Is(target error) bool { return target == ErrRotate }
