// Package archive packages scaffold trees into zip files.
package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Error reports an archiving failure against a concrete path. The path
// is for operator logs only.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("archiving %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Create writes a zip archive of the directory tree rooted at srcDir to
// dest. Entry paths are relative to srcDir — the root directory name is
// never part of an entry, so extraction reproduces the tree contents
// directly. Empty directories get their own entries. A tree with no
// files at all still produces a valid archive.
//
// dest must not already exist. The source tree is never mutated; on
// failure a partial archive may be left at dest for the caller to
// remove.
//
// Entry timestamps are zeroed so archives of identical trees are
// byte-identical across runs.
func Create(ctx context.Context, srcDir, dest string) error {
	if _, err := os.Stat(dest); err == nil {
		return &Error{Path: dest, Err: fmt.Errorf("archive already exists")}
	}

	out, err := os.Create(dest)
	if err != nil {
		return &Error{Path: dest, Err: err}
	}
	defer out.Close()

	zw := zip.NewWriter(out)

	walkErr := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return &Error{Path: path, Err: err}
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return &Error{Path: path, Err: err}
		}
		if rel == "." {
			return nil
		}
		name := filepath.ToSlash(rel)

		if d.IsDir() {
			// Trailing slash marks a directory entry, so empty
			// directories survive the round trip.
			if _, err := zw.Create(name + "/"); err != nil {
				return &Error{Path: path, Err: err}
			}
			return nil
		}

		header := &zip.FileHeader{
			Name:   name,
			Method: zip.Deflate,
		}
		w, err := zw.CreateHeader(header)
		if err != nil {
			return &Error{Path: path, Err: err}
		}

		f, err := os.Open(path)
		if err != nil {
			return &Error{Path: path, Err: err}
		}
		if _, err := io.Copy(w, f); err != nil {
			f.Close()
			return &Error{Path: path, Err: err}
		}
		return f.Close()
	})

	if walkErr != nil {
		zw.Close()
		return walkErr
	}
	if err := zw.Close(); err != nil {
		return &Error{Path: dest, Err: err}
	}
	if err := out.Close(); err != nil {
		return &Error{Path: dest, Err: err}
	}
	return nil
}
