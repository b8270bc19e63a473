package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// File is the minimal view of an uploaded file the extractor needs: a name,
// a byte length, a modification timestamp, and the full contents as raw
// bytes or decoded text.
type File interface {
	Name() string
	Size() int64
	LastModified() time.Time
	Bytes() ([]byte, error)
	Text() (string, error)
}

// MemFile is an in-memory File, used for uploads already buffered by the
// HTTP layer and in tests.
type MemFile struct {
	name    string
	modTime time.Time
	data    []byte
}

func NewMemFile(name string, data []byte, modTime time.Time) *MemFile {
	return &MemFile{name: name, modTime: modTime, data: data}
}

func (f *MemFile) Name() string            { return f.name }
func (f *MemFile) Size() int64             { return int64(len(f.data)) }
func (f *MemFile) LastModified() time.Time { return f.modTime }
func (f *MemFile) Bytes() ([]byte, error)  { return f.data, nil }
func (f *MemFile) Text() (string, error)   { return string(f.data), nil }

// Open reads a file from disk into a MemFile. Extraction needs the whole
// content anyway, so there is no point keeping the descriptor open.
func Open(path string) (*MemFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return NewMemFile(filepath.Base(path), data, info.ModTime()), nil
}
