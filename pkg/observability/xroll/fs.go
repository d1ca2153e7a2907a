package xroll

import (
	"io"
	"os"
	"time"

	"github.com/omeyang/xroll/pkg/util/xfile"
)

// DefaultFilePerm 新建日志文件的权限。
const DefaultFilePerm os.FileMode = 0644

// fileSystem 是写入器用到的文件系统操作集合，测试通过 mock 注入故障。
type fileSystem interface {
	Stat(name string) (os.FileInfo, error)
	Rename(oldpath, newpath string) error
	Remove(name string) error
	ReadDir(name string) ([]os.DirEntry, error)
	OpenFile(name string, flag int, perm os.FileMode) (io.WriteCloser, error)
	BirthTime(name string) (time.Time, error)
}

type osFS struct{}

func (osFS) Stat(name string) (os.FileInfo, error) { return os.Stat(name) }

func (osFS) Rename(oldpath, newpath string) error { return os.Rename(oldpath, newpath) }

func (osFS) Remove(name string) error { return os.Remove(name) }

func (osFS) ReadDir(name string) ([]os.DirEntry, error) { return os.ReadDir(name) }

func (osFS) OpenFile(name string, flag int, perm os.FileMode) (io.WriteCloser, error) {
	return os.OpenFile(name, flag, perm) //nolint:gosec // 路径已由 xfile.ResolvePath 净化
}

func (osFS) BirthTime(name string) (time.Time, error) { return xfile.BirthTime(name) }
