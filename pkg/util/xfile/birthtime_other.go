//go:build !linux

package xfile

import (
	"os"
	"time"
)

func birthTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
