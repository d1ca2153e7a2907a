package xroll

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/omeyang/xroll/pkg/util/xfile"
)

// maxArchiveSeq 同一秒内归档名冲突时尝试的最大序号。
const maxArchiveSeq = 1000

// ListArchives 列出 path 对应活动文件的全部归档，按创建时间从旧到新排列。
// 目录不存在时返回空结果。
func ListArchives(path string) ([]Archive, error) {
	resolved, err := xfile.ResolvePath(path)
	if err != nil {
		return nil, err
	}
	dir, stem, ext := xfile.SplitName(resolved)
	archives, err := listArchives(osFS{}, dir, stem, ext)
	if err != nil {
		return nil, err
	}
	sortArchives(archives)
	return archives, nil
}

func listArchives(fsys fileSystem, dir, stem, ext string) ([]Archive, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var archives []Archive
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if _, _, ok := ParseArchiveName(e.Name(), stem, ext); !ok {
			continue
		}
		full := filepath.Join(dir, e.Name())
		created, err := fsys.BirthTime(full)
		if err != nil {
			// 枚举与读取之间被删除的文件直接跳过
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		archives = append(archives, Archive{Name: e.Name(), Path: full, Created: created})
	}
	return archives, nil
}

// nextArchivePath 返回一个尚未被占用的归档路径，同一秒内冲突时递增序号。
func nextArchivePath(fsys fileSystem, dir, stem, ext string, now time.Time) (string, error) {
	for seq := 0; seq < maxArchiveSeq; seq++ {
		candidate := filepath.Join(dir, ArchiveName(stem, ext, now, seq))
		_, err := fsys.Stat(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("no free archive name for %s after %d attempts", ArchiveName(stem, ext, now, 0), maxArchiveSeq)
}
