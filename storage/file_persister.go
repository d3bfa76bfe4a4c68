// Package storage writes run reports.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mailru/easyjson"
	"github.com/mailru/easyjson/jwriter"
)

// FilePersister persists report files. It abstracts away where and how
// reports are written.
type FilePersister interface {
	Persist(ctx context.Context, path string, data io.Reader) error
}

// LocalFilePersister persists files to the local disk. Relative paths
// are resolved against Dir, or the working directory when Dir is empty.
type LocalFilePersister struct {
	Dir string
}

// Persist writes the contents of data to path, creating missing parent
// directories and truncating an existing file.
func (l *LocalFilePersister) Persist(_ context.Context, path string, data io.Reader) (err error) {
	cp := filepath.Clean(path)
	if l.Dir != "" && !filepath.IsAbs(cp) {
		cp = filepath.Join(l.Dir, cp)
	}

	dir := filepath.Dir(cp)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating a local directory %q: %w", dir, err)
	}

	f, err := os.OpenFile(cp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating a local file %q: %w", cp, err)
	}
	defer func() {
		tempErr := f.Close()
		// Only return the close error if there isn't already an existing error.
		if tempErr != nil && err == nil {
			err = fmt.Errorf("closing the local file %q: %w", cp, tempErr)
		}
	}()

	_, err = io.Copy(f, data)

	return
}

// WriterPersister writes every file to W, ignoring the path. It is used
// to print reports instead of saving them.
type WriterPersister struct {
	W io.Writer
}

// Persist copies data to the writer.
func (w *WriterPersister) Persist(_ context.Context, _ string, data io.Reader) error {
	if _, err := io.Copy(w.W, data); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// PersistJSON encodes v and persists it at path with p. A newline is
// appended to the document.
func PersistJSON(ctx context.Context, p FilePersister, path string, v easyjson.Marshaler) error {
	var w jwriter.Writer
	v.MarshalEasyJSON(&w)
	if w.Error != nil {
		return fmt.Errorf("encoding %q: %w", path, w.Error)
	}
	w.RawByte('\n')

	var buf bytes.Buffer
	if _, err := w.DumpTo(&buf); err != nil {
		return fmt.Errorf("encoding %q: %w", path, err)
	}

	return p.Persist(ctx, path, &buf)
}
