package loader

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned for a file whose extension is not in
	// the registry. Nothing is read.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrMultipleFiles is returned when a drop or pick holds more than one file.
	ErrMultipleFiles = errors.New("only a single file is supported")
	// ErrNoFile is returned when a drop or pick holds no file at all.
	ErrNoFile = errors.New("no file selected")
)

// ReadError reports a failure to read a model file from disk.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// ParseError reports malformed file content.
type ParseError struct {
	Path   string
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s as %s: %v", e.Path, e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// CheckSelection enforces the one-file rule for a drop or pick.
func CheckSelection(paths []string) (string, error) {
	switch len(paths) {
	case 0:
		return "", ErrNoFile
	case 1:
		return paths[0], nil
	default:
		return "", fmt.Errorf("%d files: %w", len(paths), ErrMultipleFiles)
	}
}
