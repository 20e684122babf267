package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"icons8dl/pkg/icons8"
)

func icon(id, name string) icons8.Icon {
	return icons8.Icon{ID: id, Name: name}
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Home", "Home"},
		{`a<b>c:d"e/f\g|h?i*j`, "a_b_c_d_e_f_g_h_i_j"},
		{"Wi-Fi (on)", "Wi-Fi (on)"},
		{"Café ☕", "Café ☕"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.in))
	}
}

func TestResolveUniqueNames(t *testing.T) {
	dir := t.TempDir()

	got, err := Resolve([]icons8.Icon{icon("1", "Home"), icon("2", "Settings"), icon("3", "A/B")}, dir)
	require.NoError(t, err)

	assert.Equal(t, FilenameMap{
		"1": filepath.Join(dir, "Home.png"),
		"2": filepath.Join(dir, "Settings.png"),
		"3": filepath.Join(dir, "A_B.png"),
	}, got)
}

func TestResolveDuplicateNames(t *testing.T) {
	dir := t.TempDir()

	got, err := Resolve([]icons8.Icon{icon("1", "Home"), icon("2", "Home"), icon("3", "Home")}, dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "Home.png"), got["1"])
	assert.Equal(t, filepath.Join(dir, "Home(1).png"), got["2"])
	assert.Equal(t, filepath.Join(dir, "Home(2).png"), got["3"])
}

func TestResolveAvoidsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "Home.png")

	got, err := Resolve([]icons8.Icon{icon("1", "Home")}, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Home(1).png"), got["1"])
}

func TestResolveIsCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "HOME.PNG")

	got, err := Resolve([]icons8.Icon{icon("1", "home"), icon("2", "Home")}, dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "home(1).png"), got["1"])
	// "Home" keeps its own counter; Home(1).png lower-cases to home(1).png, so it moves on to (2)
	assert.Equal(t, filepath.Join(dir, "Home(2).png"), got["2"])

	a, b := filepath.Base(got["1"]), filepath.Base(got["2"])
	assert.False(t, strings.EqualFold(a, b))
}

func TestResolveLowerCasesWithoutFolding(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "Straße.png")

	got, err := Resolve([]icons8.Icon{icon("1", "Strasse"), icon("2", "STRASSE"), icon("3", "STRASSE")}, dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "Strasse.png"), got["1"], "ß is not expanded to ss")
	assert.Equal(t, filepath.Join(dir, "STRASSE(1).png"), got["2"])
	assert.Equal(t, filepath.Join(dir, "STRASSE(2).png"), got["3"])
}

func TestResolveSkipsPreExistingSuffixes(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "Home.png")
	touch(t, dir, "Home(1).png")
	touch(t, dir, "home(3).png")

	got, err := Resolve([]icons8.Icon{icon("1", "Home"), icon("2", "Home")}, dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "Home(2).png"), got["1"])
	assert.Equal(t, filepath.Join(dir, "Home(4).png"), got["2"])
}

func TestResolveIgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Home.png"), 0755))

	got, err := Resolve([]icons8.Icon{icon("1", "Home")}, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Home.png"), got["1"])
}

func TestResolveCountsSymlinksToFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "target.bin")
	if err := os.Symlink(filepath.Join(dir, "target.bin"), filepath.Join(dir, "Home.png")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(dir, "nowhere"), filepath.Join(dir, "Gear.png")))

	got, err := Resolve([]icons8.Icon{icon("1", "Home"), icon("2", "Gear")}, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Home(1).png"), got["1"])
	assert.Equal(t, filepath.Join(dir, "Gear.png"), got["2"], "dangling links are not files")
}

func TestResolveMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "not", "yet")

	got, err := Resolve([]icons8.Icon{icon("1", "Home")}, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Home.png"), got["1"])
}

func TestResolveIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "Star.png")
	icons := []icons8.Icon{icon("a", "Star"), icon("b", "Moon"), icon("c", "Star"), icon("d", "star")}

	first, err := Resolve(icons, dir)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Resolve(icons, dir)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestResolveDuplicateIDKeepsFirst(t *testing.T) {
	dir := t.TempDir()

	got, err := Resolve([]icons8.Icon{icon("1", "Home"), icon("1", "Other")}, dir)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, filepath.Join(dir, "Home.png"), got["1"])
}

func TestResolveReturnsAbsolutePaths(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	got, err := Resolve([]icons8.Icon{icon("1", "Home")}, "relative-out")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "relative-out", "Home.png"), got["1"])
}
