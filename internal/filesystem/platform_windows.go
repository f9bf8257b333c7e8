//go:build windows

package filesystem

import (
	"io/fs"
	"syscall"
	"time"
)

// getChangeTime returns the creation time on Windows
func getChangeTime(info fs.FileInfo) time.Time {
	stat, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return info.ModTime()
	}
	return time.Unix(0, stat.CreationTime.Nanoseconds())
}
