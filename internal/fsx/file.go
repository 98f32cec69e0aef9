package fsx

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// IOError reports a failed filesystem operation on Path.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ReadFile returns the contents of path.
func ReadFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: unwrapPathError(err)}
	}
	return b, nil
}

// WriteFileAtomic replaces path with data.
//
// Data goes to a uniquely named temp file in the same directory, which is
// synced and then renamed over path. On failure the temp file is removed and
// any existing file at path is left untouched.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return &IOError{Op: "write", Path: path, Err: unwrapPathError(err)}
	}
	// Remove the temp file on every early return.
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmp)
		}
	}()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return &IOError{Op: "write", Path: path, Err: errors.Wrap(err, "sync")}
	}
	if err := f.Close(); err != nil {
		return &IOError{Op: "write", Path: path, Err: errors.Wrap(err, "close")}
	}
	if err := os.Rename(tmp, path); err != nil {
		return &IOError{Op: "write", Path: path, Err: unwrapPathError(err)}
	}
	committed = true
	return nil
}

// unwrapPathError drops the *PathError/*LinkError layer so the message names
// the path once.
func unwrapPathError(err error) error {
	var pe *os.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	var le *os.LinkError
	if errors.As(err, &le) {
		return le.Err
	}
	return err
}
