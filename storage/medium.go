package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/Alia5/padcore/internal/configpaths"
)

// Medium persists one opaque image. ReadAll returns an error matching
// fs.ErrNotExist while nothing has been written.
type Medium interface {
	ReadAll() ([]byte, error)
	WriteAll(data []byte) error
}

// FileMedium stores the image in a file, creating parent directories on write.
type FileMedium struct {
	Path string
}

func (f FileMedium) ReadAll() ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (f FileMedium) WriteAll(data []byte) error {
	if err := configpaths.EnsureDir(f.Path); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.Path)
}

// MemoryMedium keeps the image in memory.
type MemoryMedium struct {
	mu     sync.Mutex
	data   []byte
	Writes int
}

// NewMemoryMedium returns a medium pre-loaded with data; nil means empty.
func NewMemoryMedium(data []byte) *MemoryMedium {
	m := &MemoryMedium{}
	if data != nil {
		m.data = append([]byte(nil), data...)
	}
	return m
}

func (m *MemoryMedium) ReadAll() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, fs.ErrNotExist
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MemoryMedium) WriteAll(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	m.Writes++
	return nil
}

// Corrupt flips every bit of the byte at offset. Used to simulate media errors.
func (m *MemoryMedium) Corrupt(offset int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if offset < 0 || offset >= len(m.data) {
		return errors.New("offset outside image")
	}
	m.data[offset] ^= 0xFF
	return nil
}
