package metadata

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"icons8dl/pkg/icons8"
)

func sampleManifest() *Manifest {
	m := New("ios", "", 96, "/out", time.Date(2024, 5, 1, 10, 20, 30, 0, time.UTC))
	m.Add(icons8.Icon{ID: "2", Name: "Gear", Platform: "ios"}, "/out/Gear.png", 120, nil)
	m.Add(icons8.Icon{ID: "1", Name: "Home", IsFree: true}, "/out/Home.png", 0, errors.New("status 500"))
	return m
}

func TestManifestAdd(t *testing.T) {
	m := sampleManifest()

	_, err := uuid.Parse(m.RunID)
	assert.NoError(t, err)
	assert.Equal(t, 2, m.Total)
	assert.Equal(t, 1, m.Succeeded)
	assert.Equal(t, 1, m.Failed)

	assert.Equal(t, StatusDownloaded, m.Icons[0].Status)
	assert.Equal(t, "Gear.png", m.Icons[0].File)
	assert.Equal(t, int64(120), m.Icons[0].Bytes)

	assert.Equal(t, StatusFailed, m.Icons[1].Status)
	assert.Equal(t, "status 500", m.Icons[1].Error)

	m.Sort()
	assert.Equal(t, "Gear.png", m.Icons[0].File)
	assert.Equal(t, "Home.png", m.Icons[1].File)
}

func TestFileName(t *testing.T) {
	ts := time.Date(2024, 5, 1, 10, 20, 30, 0, time.UTC)
	assert.Equal(t, "icons8-manifest-20240501-102030.json", FileName(ts, "json"))
	assert.Equal(t, "icons8-manifest-20240501-102030.yaml", FileName(ts, "YAML"))
}

func TestSaveAndLoad(t *testing.T) {
	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "out")
			m := sampleManifest()

			path, err := m.Save(dir, format)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, "icons8-manifest-20240501-102030."+format), path)

			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, m.RunID, loaded.RunID)
			assert.True(t, m.GeneratedAt.Equal(loaded.GeneratedAt))
			assert.Equal(t, m.Icons, loaded.Icons)
			assert.Equal(t, "ios", loaded.Style)
			assert.Equal(t, 96, loaded.Size)
		})
	}
}

func TestSaveRejectsUnknownFormat(t *testing.T) {
	_, err := sampleManifest().Save(t.TempDir(), "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported manifest format")
}
