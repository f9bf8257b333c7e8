package models

import (
	"path"
	"strings"
	"time"
)

// FileRecord represents one regular file discovered by the walker
type FileRecord struct {
	RelativePath string    `json:"relative_path"` // Slash-separated path relative to scan root
	Name         string    `json:"name"`          // Base name
	Extension    string    `json:"extension"`     // Lowercase extension without dot
	SizeBytes    int64     `json:"size_bytes"`
	ModifiedAt   time.Time `json:"modified_at"`
	CreatedAt    time.Time `json:"created_at"` // Change time on Unix, creation time on Windows
	IsHidden     bool      `json:"is_hidden,omitempty"`
}

// Stem returns the file name without its final extension
func (f *FileRecord) Stem() string {
	stem := strings.TrimSuffix(f.Name, path.Ext(f.Name))
	if stem == "" {
		return f.Name
	}
	return stem
}

// DirRecord represents one directory discovered by the walker (root excluded)
type DirRecord struct {
	RelativePath string `json:"relative_path"`
	Name         string `json:"name"`
	FileCount    int    `json:"file_count"`   // Direct regular files
	SubdirCount  int    `json:"subdir_count"` // Direct subdirectories, excluded ones included
	Empty        bool   `json:"empty"`        // No entries at all
}
