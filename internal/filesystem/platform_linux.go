//go:build linux

package filesystem

import (
	"io/fs"
	"syscall"
	"time"
)

// getChangeTime returns the inode change time, falling back to mtime
func getChangeTime(info fs.FileInfo) time.Time {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.ModTime()
	}
	return time.Unix(int64(stat.Ctim.Sec), int64(stat.Ctim.Nsec))
}
