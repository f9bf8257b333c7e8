package filesystem

import "fmt"

// InvalidRootError is returned when the scan root is missing or not a directory
type InvalidRootError struct {
	Path   string
	Reason string
	Err    error
}

func (e *InvalidRootError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid scan root %q: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid scan root %q: %s", e.Path, e.Reason)
}

func (e *InvalidRootError) Unwrap() error { return e.Err }

// FileAccessError reports a permission or I/O failure on a single file
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("cannot access %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// MalformedContentError reports content that is not valid UTF-8 text
type MalformedContentError struct {
	Path   string
	Offset int // Byte offset of the first invalid sequence
}

func (e *MalformedContentError) Error() string {
	return fmt.Sprintf("malformed text in %s at byte %d", e.Path, e.Offset)
}
