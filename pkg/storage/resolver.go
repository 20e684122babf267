package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"icons8dl/pkg/icons8"
)

// FilenameMap maps an icon id to the absolute path it will be written to
type FilenameMap map[string]string

var invalidChars = strings.NewReplacer(
	"<", "_", ">", "_", ":", "_", `"`, "_",
	"/", "_", `\`, "_", "|", "_", "?", "_", "*", "_",
)

// SanitizeFilename replaces characters that are invalid in file names on common platforms
func SanitizeFilename(name string) string {
	return invalidChars.Replace(name)
}

// ScanExisting returns the lower-cased names of the regular files in dir.
// Symlinks count when they resolve to a regular file. A missing directory yields an empty set.
func ScanExisting(dir string) (map[string]struct{}, error) {
	existing := make(map[string]struct{})

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return existing, nil
		}
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	lower := cases.Lower(language.Und)
	for _, entry := range entries {
		switch {
		case entry.Type().IsRegular():
		case entry.Type()&fs.ModeSymlink != 0:
			info, err := os.Stat(filepath.Join(dir, entry.Name()))
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		default:
			continue
		}
		existing[lower.String(entry.Name())] = struct{}{}
	}

	return existing, nil
}

// Resolve assigns every icon a file name in dir that collides neither with an
// existing file nor with a name assigned earlier in the same call, comparing
// names case-insensitively. Names are lower-cased, not case-folded, so
// "Straße.png" and "Strasse.png" are distinct.
//
// The first choice is "{name}.png" with the name sanitized. On collision a
// counter kept per sanitized name is incremented until "{name}(n).png" is free.
// Counters persist across icons, so three icons named "Home" in an empty
// directory get Home.png, Home(1).png and Home(2).png. For a fixed icon order
// and directory contents the result is deterministic.
//
// When the same id appears more than once, the first assignment wins.
func Resolve(icons []icons8.Icon, dir string) (FilenameMap, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve target directory: %w", err)
	}

	taken, err := ScanExisting(absDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan existing files: %w", err)
	}

	lower := cases.Lower(language.Und)
	counters := make(map[string]int)
	result := make(FilenameMap, len(icons))

	for _, icon := range icons {
		if _, seen := result[icon.ID]; seen {
			continue
		}

		base := SanitizeFilename(icon.Name)
		name := base + ".png"
		for {
			if _, exists := taken[lower.String(name)]; !exists {
				break
			}
			counters[base]++
			name = fmt.Sprintf("%s(%d).png", base, counters[base])
		}

		taken[lower.String(name)] = struct{}{}
		result[icon.ID] = filepath.Join(absDir, name)
	}

	return result, nil
}
