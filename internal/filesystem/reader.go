package filesystem

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// HashFile streams a file through MD5 and returns the hex digest
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &FileAccessError{Path: path, Err: err}
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", &FileAccessError{Path: path, Err: err}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ReadText reads a file as UTF-8 text, stripping a leading byte order mark
func ReadText(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", &FileAccessError{Path: path, Err: err}
	}

	content = bytes.TrimPrefix(content, utf8BOM)
	if !utf8.Valid(content) {
		return "", &MalformedContentError{Path: path, Offset: firstInvalid(content)}
	}
	return string(content), nil
}

// firstInvalid returns the offset of the first invalid UTF-8 sequence
func firstInvalid(content []byte) int {
	for i := 0; i < len(content); {
		r, size := utf8.DecodeRune(content[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(content)
}

// ParseSize parses size string (e.g., "650K", "50M") to bytes
func ParseSize(sizeStr string) int64 {
	if len(sizeStr) == 0 {
		return 0
	}

	// Get last character (unit)
	last := sizeStr[len(sizeStr)-1]
	var multiplier int64 = 1

	switch last {
	case 'K', 'k':
		multiplier = 1024
		sizeStr = sizeStr[:len(sizeStr)-1]
	case 'M', 'm':
		multiplier = 1024 * 1024
		sizeStr = sizeStr[:len(sizeStr)-1]
	case 'G', 'g':
		multiplier = 1024 * 1024 * 1024
		sizeStr = sizeStr[:len(sizeStr)-1]
	}

	var size int64
	if _, err := fmt.Sscanf(sizeStr, "%d", &size); err != nil {
		return 0
	}

	return size * multiplier
}

// FormatSize renders a byte count with a binary unit
func FormatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
