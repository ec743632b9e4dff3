// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/SophiaFrassetto/TransROM-IA/internal/rom"
)

var (
	// ErrFileNotFound is returned when the input path does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrInvalidInput is returned when the input path is not a regular file
	// or the file is empty.
	ErrInvalidInput = errors.New("invalid input")
)

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads a ROM file into memory. No interpretation of the content is
// done beyond computing size and the normalized extension.
func (l *Loader) Load(path string) (*rom.Rom, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading '%s': %w", path, ErrFileNotFound)
		}
		return nil, fmt.Errorf("checking file '%s': %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("loading '%s': not a regular file: %w", path, ErrInvalidInput)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file '%s': %w", path, err)
	}

	r, err := l.LoadFromBytes(path, data)
	if err != nil {
		return nil, err
	}
	if abs, err := filepath.Abs(path); err == nil {
		r.Path = abs
	}
	return r, nil
}

// LoadFromBytes creates a ROM record from in-memory data. The name is used
// the same way as a file path to derive the id and the extension.
func (l *Loader) LoadFromBytes(name string, data []byte) (*rom.Rom, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("loading '%s': empty ROM: %w", name, ErrInvalidInput)
	}

	stem := rom.Stem(name)
	return &rom.Rom{
		ID:        stem,
		Name:      stem,
		Path:      name,
		Extension: rom.NormalizeExtension(filepath.Ext(name)),
		Size:      len(data),
		Data:      data,
	}, nil
}
