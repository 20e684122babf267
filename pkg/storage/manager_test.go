package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"icons8dl/pkg/icons8"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestManagerSaveIcon(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	manager, err := NewManager(dir)
	require.NoError(t, err)

	names, err := manager.Resolve([]icons8.Icon{{ID: "1", Name: "Home"}})
	require.NoError(t, err)

	n, err := manager.SaveIcon(strings.NewReader("png bytes"), names["1"])
	require.NoError(t, err)
	assert.Equal(t, int64(9), n)

	content, err := os.ReadFile(filepath.Join(dir, "Home.png"))
	require.NoError(t, err)
	assert.Equal(t, "png bytes", string(content))

	assert.Equal(t, 1, manager.GetSavedCount())
	assert.Equal(t, int64(9), manager.GetSavedBytes())
}

func TestManagerSaveIconOverwrites(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "Gear.png")
	require.NoError(t, os.WriteFile(path, []byte("old and longer"), 0644))

	_, err = manager.SaveIcon(strings.NewReader("new"), path)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))
}

func TestManagerSaveIconFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(dir)
	require.NoError(t, err)

	_, err = manager.SaveIcon(failingReader{}, filepath.Join(dir, "Broken.png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temporary file must be cleaned up")
	assert.Zero(t, manager.GetSavedCount())
}

func TestManagerSaveIconCreatesParents(t *testing.T) {
	manager, err := NewManager(t.TempDir())
	require.NoError(t, err)

	path := filepath.Join(manager.GetOutputDir(), "a", "b", "Deep.png")
	_, err = manager.SaveIcon(strings.NewReader("x"), path)
	require.NoError(t, err)
	assert.FileExists(t, path)
}
