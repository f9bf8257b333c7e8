//go:build !linux && !darwin && !windows

package filesystem

import (
	"io/fs"
	"time"
)

func getChangeTime(info fs.FileInfo) time.Time {
	return info.ModTime()
}
