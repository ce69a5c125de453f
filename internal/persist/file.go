package persist

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/roach88/roster/internal/codec"
	"github.com/roach88/roster/internal/record"
)

// File keeps the slot in a single JSON file.
type File struct {
	path string
}

// NewFile returns a File slot at path, creating the parent directory.
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("file slot: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("file slot: %w", err)
	}
	return &File{path: path}, nil
}

// Path returns the slot file path.
func (f *File) Path() string { return f.path }

// Load reads the file. A missing or empty file loads as an empty sequence.
func (f *File) Load(ctx context.Context) ([]record.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []record.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", f.path, err)
	}
	return decodeSlot(data)
}

// Save writes recs to a temp file in the same directory and renames it
// over the slot, so a crash never leaves a half-written file.
func (f *File) Save(ctx context.Context, recs []record.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := codec.EncodeCompact(recs)
	if err != nil {
		return fmt.Errorf("save %s: %w", f.path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("save %s: %w", f.path, err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save %s: %w", f.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save %s: %w", f.path, err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("save %s: %w", f.path, err)
	}
	return nil
}

// Close is a no-op.
func (f *File) Close() error { return nil }
