//go:build linux

package xfile

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// birthTime 通过 statx(2) 读取 btime。
// 返回的 Mask 不含 STATX_BTIME 时（如 tmpfs 旧内核、部分网络文件系统）使用 mtime。
func birthTime(path string) (time.Time, error) {
	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, unix.AT_STATX_SYNC_AS_STAT,
		unix.STATX_BTIME|unix.STATX_MTIME, &stx)
	if err != nil {
		// 保持与 os.Stat 一致的错误类型，便于 errors.Is(err, fs.ErrNotExist)
		return time.Time{}, &os.PathError{Op: "statx", Path: path, Err: err}
	}
	if stx.Mask&unix.STATX_BTIME != 0 {
		return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec)), nil
	}
	return time.Unix(stx.Mtime.Sec, int64(stx.Mtime.Nsec)), nil
}
