package generator

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Operation represents a file system operation that can be validated and executed.
//
// Validate checks if the operation would succeed without executing it.
// Execute performs the actual operation and should only be called after
// Validate succeeds. Description returns a human-readable description for
// output (e.g., "Create src/app/page.tsx (412 bytes)").
type Operation interface {
	Validate(ctx context.Context) error
	Execute(ctx context.Context) error
	Description() string
}

// OpError is returned when an operation fails against a concrete path.
// The path is kept for operator-facing logs; callers decide what, if
// anything, is shown to end users.
type OpError struct {
	Path string
	Err  error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// WriteFileOp creates a file with content. Parent directories are created
// as needed. Scaffold work directories are always freshly allocated, so
// an already-existing file is a validation failure, never an overwrite.
type WriteFileOp struct {
	Path    string      // File path to create
	Content []byte      // File content (can be empty, must not be nil)
	Mode    fs.FileMode // File permissions (e.g., 0644)
}

func (op *WriteFileOp) Validate(ctx context.Context) error {
	if op.Content == nil {
		return &OpError{Path: op.Path, Err: fmt.Errorf("content is nil")}
	}
	if _, err := os.Stat(op.Path); err == nil {
		return &OpError{Path: op.Path, Err: fmt.Errorf("file already exists")}
	}
	return nil
}

func (op *WriteFileOp) Execute(ctx context.Context) error {
	dir := filepath.Dir(op.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &OpError{Path: dir, Err: err}
	}
	if err := os.WriteFile(op.Path, op.Content, op.Mode); err != nil {
		return &OpError{Path: op.Path, Err: err}
	}
	return nil
}

func (op *WriteFileOp) Description() string {
	return fmt.Sprintf("Create %s (%d bytes)", op.Path, len(op.Content))
}

// MkdirOp ensures a directory exists, including parents. Used for the
// standard scaffold subdirectories that must exist even when empty.
type MkdirOp struct {
	Path string
	Mode fs.FileMode
}

func (op *MkdirOp) Validate(ctx context.Context) error {
	if info, err := os.Stat(op.Path); err == nil && !info.IsDir() {
		return &OpError{Path: op.Path, Err: fmt.Errorf("exists and is not a directory")}
	}
	return nil
}

func (op *MkdirOp) Execute(ctx context.Context) error {
	if err := os.MkdirAll(op.Path, op.Mode); err != nil {
		return &OpError{Path: op.Path, Err: err}
	}
	return nil
}

func (op *MkdirOp) Description() string {
	return fmt.Sprintf("Create directory %s", op.Path)
}
