package xroll

import (
	"slices"
	"strconv"
	"strings"
	"time"
)

// ArchiveTimeLayout 归档文件名中的时间戳格式（秒精度）。
const ArchiveTimeLayout = "20060102150405"

// Archive 一个归档文件。
type Archive struct {
	Name string
	Path string
	// Created 文件创建时间；文件系统不提供时为修改时间。
	Created time.Time
}

// ShouldRotate 判断下一次写入前是否需要轮转。
//
// 阈值未全部设置、活动文件不存在或 size 小于阈值时返回 false。
func ShouldRotate(size int64, exists bool, cfg Config) bool {
	if !cfg.RotationEnabled() || !exists {
		return false
	}
	return size >= cfg.FileSizeLimitBytes
}

// PlanRetention 返回下一次轮转前需要删除的归档，按创建时间从旧到新排列。
//
// 只要剩余归档数仍不少于 maxRollingFiles-1 就继续删除最旧的一个，
// 这样加上轮转新产生的归档后总数不超过 maxRollingFiles-1。
// 创建时间相同时按文件名排序。maxRollingFiles <= 0 时不删除任何文件。
func PlanRetention(archives []Archive, maxRollingFiles int) []Archive {
	if maxRollingFiles <= 0 || len(archives) == 0 {
		return nil
	}
	sorted := slices.Clone(archives)
	sortArchives(sorted)

	remaining := len(sorted)
	n := 0
	for remaining > 0 && remaining >= maxRollingFiles-1 {
		remaining--
		n++
	}
	if n == 0 {
		return nil
	}
	return sorted[:n]
}

func sortArchives(archives []Archive) {
	slices.SortStableFunc(archives, func(a, b Archive) int {
		if c := a.Created.Compare(b.Created); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
}

// ArchiveName 生成归档文件名 <stem>-<yyyyMMddHHmmss><ext>，seq > 0 时为 <stem>-<ts>-<seq><ext>。
func ArchiveName(stem, ext string, t time.Time, seq int) string {
	name := stem + "-" + t.Format(ArchiveTimeLayout)
	if seq > 0 {
		name += "-" + strconv.Itoa(seq)
	}
	return name + ext
}

// ParseArchiveName 判断 name 是否为 stem/ext 对应的归档文件名，
// 返回其中的时间戳（不含时区，按 UTC 解释）与序号。
//
// 匹配是严格的：app.log 的归档不会与 app-error.log 之类的文件混淆。
func ParseArchiveName(name, stem, ext string) (time.Time, int, bool) {
	prefix := stem + "-"
	if len(name) < len(prefix)+len(ArchiveTimeLayout)+len(ext) ||
		!strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ext) {
		return time.Time{}, 0, false
	}
	middle := name[len(prefix) : len(name)-len(ext)]
	stamp, suffix := middle[:len(ArchiveTimeLayout)], middle[len(ArchiveTimeLayout):]
	if !isDigits(stamp) {
		return time.Time{}, 0, false
	}

	seq := 0
	if suffix != "" {
		digits, ok := strings.CutPrefix(suffix, "-")
		// 序号无前导零且不超过 9 位，保证与 ArchiveName 一一对应
		if !ok || digits == "" || len(digits) > 9 || digits[0] == '0' || !isDigits(digits) {
			return time.Time{}, 0, false
		}
		seq, _ = strconv.Atoi(digits)
	}

	t, err := time.Parse(ArchiveTimeLayout, stamp)
	if err != nil {
		return time.Time{}, 0, false
	}
	return t, seq, true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
