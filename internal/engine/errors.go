package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidRoot is matched by every InvalidRootError.
var ErrInvalidRoot = errors.New("invalid scan root")

// InvalidRootError is returned before traversal when the root is missing or
// is not a directory.
type InvalidRootError struct {
	Root   string
	Reason string
	Err    error
}

func (e *InvalidRootError) Error() string {
	return fmt.Sprintf("%s is not a valid directory: %s", e.Root, e.Reason)
}

func (e *InvalidRootError) Is(target error) bool { return target == ErrInvalidRoot }

func (e *InvalidRootError) Unwrap() error { return e.Err }

// FileReadError reports a file that could not be opened or read. The
// orchestrator logs it and moves on to the next file.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("could not scan %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }
