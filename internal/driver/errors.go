package driver

import (
	"errors"
	"fmt"
)

var (
	// ErrIO marks failures reading a configured source.
	ErrIO = errors.New("driver: i/o error")
	// ErrConfig marks driver options that cannot be acted on.
	ErrConfig = errors.New("driver: invalid configuration")
)

// Error is returned by Driver.Run when sources cannot be resolved. When it
// is returned the tool has not run and the cache is unchanged.
//
// errors.Is matches both Kind (ErrIO or ErrConfig) and the underlying
// cause, so errors.Is(err, fs.ErrNotExist) works for a missing file.
type Error struct {
	Op   string // "read", "glob", "run"
	Path string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func ioError(op, path string, err error) *Error {
	return &Error{Op: op, Path: path, Kind: ErrIO, Err: err}
}

func configError(op, path string, err error) *Error {
	return &Error{Op: op, Path: path, Kind: ErrConfig, Err: err}
}
