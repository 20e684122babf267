package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"icons8dl/pkg/logger"
)

const pageURL = "https://api-icons.icons8.com/siteApi/icons/v1/latest?amount=100&offset=0&ai=true&language=en-US&sortBy=mostDownloaded&style=ios"

func TestKey(t *testing.T) {
	// sha256("abc")
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", Key("abc"))
	assert.Len(t, Key(pageURL), 64)
	assert.NotEqual(t, Key(pageURL), Key(pageURL+"&term=x"))
}

func TestDefaultDir(t *testing.T) {
	assert.Equal(t, filepath.Join(os.TempDir(), "icons8"), DefaultDir())
	assert.Equal(t, DefaultDir(), New("", nil).Dir())
}

func TestRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "icons8")
	c := New(dir, logger.NewNopLogger())

	body := []byte(`{"success":true,"icons":[]}`)
	c.Write(pageURL, body)

	assert.FileExists(t, filepath.Join(dir, Key(pageURL)+".json"))

	got, ok := c.Read(pageURL)
	require.True(t, ok)
	assert.Equal(t, body, got)
}

func TestWriteOverwrites(t *testing.T) {
	c := New(t.TempDir(), nil)

	c.Write(pageURL, []byte(`{"v":1}`))
	c.Write(pageURL, []byte(`{"v":2}`))

	got, ok := c.Read(pageURL)
	require.True(t, ok)
	assert.JSONEq(t, `{"v":2}`, string(got))

	entries, err := os.ReadDir(c.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestMissIsSilent(t *testing.T) {
	log := logger.NewTestLogger()
	c := New(t.TempDir(), log)

	got, ok := c.Read(pageURL)
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.Empty(t, log.GetMessagesByLevel("WARN"))
}

func TestCorruptEntryIsMissWithWarning(t *testing.T) {
	log := logger.NewTestLogger()
	c := New(t.TempDir(), log)

	require.NoError(t, os.WriteFile(c.Path(pageURL), []byte(`{"success":tru`), 0644))

	_, ok := c.Read(pageURL)
	assert.False(t, ok)
	assert.True(t, log.HasMessage("Ignoring corrupt cache entry"))
}

func TestUnreadableEntryIsMissWithWarning(t *testing.T) {
	log := logger.NewTestLogger()
	c := New(t.TempDir(), log)

	// A directory where the entry file should be cannot be read as a file
	require.NoError(t, os.Mkdir(c.Path(pageURL), 0755))

	_, ok := c.Read(pageURL)
	assert.False(t, ok)
	assert.True(t, log.HasMessage("Failed to read cache entry"))
}

func TestWriteFailureIsSwallowed(t *testing.T) {
	log := logger.NewTestLogger()

	// The cache root is a regular file, so MkdirAll fails
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	c := New(blocker, log)

	assert.NotPanics(t, func() { c.Write(pageURL, []byte(`{}`)) })
	assert.True(t, log.HasMessage("Failed to write cache entry"))

	_, ok := c.Read(pageURL)
	assert.False(t, ok)
}
