package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"icons8dl/pkg/icons8"
)

// Manager resolves file names for a target directory and writes icons into it
type Manager struct {
	outputDir string
	saved     int
	bytes     int64
	mu        sync.Mutex
}

// NewManager creates a storage manager for outputDir.
// The directory is not created until the first icon is saved.
func NewManager(outputDir string) (*Manager, error) {
	abs, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output directory: %w", err)
	}
	return &Manager{outputDir: abs}, nil
}

// Resolve assigns collision-free paths in the output directory, see Resolve
func (m *Manager) Resolve(icons []icons8.Icon) (FilenameMap, error) {
	return Resolve(icons, m.outputDir)
}

// SaveIcon streams r into path, replacing any existing file.
// Data is written to a temporary file next to path and renamed into place, so a
// failed download never leaves a truncated PNG under the final name.
func (m *Manager) SaveIcon(r io.Reader, path string) (int64, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}

	out, err := os.CreateTemp(dir, ".icon-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("failed to create temporary file: %w", err)
	}
	tempFile := out.Name()

	n, err := io.Copy(out, r)
	closeErr := out.Close()

	if err != nil {
		os.Remove(tempFile)
		return n, fmt.Errorf("failed to write icon data: %w", err)
	}
	if closeErr != nil {
		os.Remove(tempFile)
		return n, fmt.Errorf("failed to close file: %w", closeErr)
	}

	if err := os.Chmod(tempFile, 0644); err != nil {
		os.Remove(tempFile)
		return n, fmt.Errorf("failed to set file mode: %w", err)
	}

	if err := os.Rename(tempFile, path); err != nil {
		os.Remove(tempFile)
		return n, fmt.Errorf("failed to rename temporary file: %w", err)
	}

	m.mu.Lock()
	m.saved++
	m.bytes += n
	m.mu.Unlock()

	return n, nil
}

// GetOutputDir returns the absolute output directory
func (m *Manager) GetOutputDir() string {
	return m.outputDir
}

// GetSavedCount returns how many icons were saved through this manager
func (m *Manager) GetSavedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved
}

// GetSavedBytes returns the total size of icons saved through this manager
func (m *Manager) GetSavedBytes() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bytes
}
