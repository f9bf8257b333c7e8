//go:build darwin

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
	return time.Unix(stat.Ctimespec.Sec, stat.Ctimespec.Nsec)
}
