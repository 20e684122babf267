package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"icons8dl/pkg/icons8"
)

const (
	StatusDownloaded = "downloaded"
	StatusFailed     = "failed"
)

// IconEntry describes one icon of a run and what happened to it
type IconEntry struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	CommonName string `json:"common_name,omitempty" yaml:"common_name,omitempty"`
	Category   string `json:"category,omitempty" yaml:"category,omitempty"`
	Platform   string `json:"platform,omitempty" yaml:"platform,omitempty"`
	IsColor    bool   `json:"is_color,omitempty" yaml:"is_color,omitempty"`
	IsAnimated bool   `json:"is_animated,omitempty" yaml:"is_animated,omitempty"`
	IsFree     bool   `json:"is_free,omitempty" yaml:"is_free,omitempty"`

	File   string `json:"file,omitempty" yaml:"file,omitempty"`
	Status string `json:"status" yaml:"status"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
	Bytes  int64  `json:"bytes,omitempty" yaml:"bytes,omitempty"`
}

// Manifest summarises a download run
type Manifest struct {
	RunID       string      `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time   `json:"generated_at" yaml:"generated_at"`
	Style       string      `json:"style,omitempty" yaml:"style,omitempty"`
	Query       string      `json:"query,omitempty" yaml:"query,omitempty"`
	Size        int         `json:"size" yaml:"size"`
	TargetDir   string      `json:"target_dir" yaml:"target_dir"`
	Total       int         `json:"total" yaml:"total"`
	Succeeded   int         `json:"succeeded" yaml:"succeeded"`
	Failed      int         `json:"failed" yaml:"failed"`
	Icons       []IconEntry `json:"icons" yaml:"icons"`
}

// New creates an empty manifest with a fresh run id
func New(style, query string, size int, targetDir string, now time.Time) *Manifest {
	return &Manifest{
		RunID:       uuid.NewString(),
		GeneratedAt: now.UTC(),
		Style:       style,
		Query:       query,
		Size:        size,
		TargetDir:   targetDir,
	}
}

// Add records the outcome for icon. err is nil for a successful download.
func (m *Manifest) Add(icon icons8.Icon, path string, size int64, err error) {
	entry := IconEntry{
		ID:         icon.ID,
		Name:       icon.Name,
		CommonName: icon.CommonName,
		Category:   icon.Category,
		Platform:   icon.Platform,
		IsColor:    icon.IsColor,
		IsAnimated: icon.IsAnimated,
		IsFree:     icon.IsFree,
		Status:     StatusDownloaded,
		Bytes:      size,
	}
	if path != "" {
		entry.File = filepath.Base(path)
	}
	m.Total++
	if err != nil {
		entry.Status = StatusFailed
		entry.Error = err.Error()
		entry.Bytes = 0
		m.Failed++
	} else {
		m.Succeeded++
	}
	m.Icons = append(m.Icons, entry)
}

// Sort orders entries by file name so manifests diff cleanly between runs
func (m *Manifest) Sort() {
	sort.SliceStable(m.Icons, func(i, j int) bool {
		return m.Icons[i].File < m.Icons[j].File
	})
}

// FileName returns icons8-manifest-YYYYMMDD-HHMMSS.<format>
func FileName(generatedAt time.Time, format string) string {
	return fmt.Sprintf("icons8-manifest-%s.%s", generatedAt.Format("20060102-150405"), strings.ToLower(format))
}

// Save writes the manifest into dir as JSON or YAML and returns the file path
func (m *Manifest) Save(dir, format string) (string, error) {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(format) {
	case "json", "":
		format = "json"
		data, err = json.MarshalIndent(m, "", "  ")
	case "yaml", "yml":
		format = "yaml"
		data, err = yaml.Marshal(m)
	default:
		return "", fmt.Errorf("unsupported manifest format %q", format)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create manifest directory: %w", err)
	}

	path := filepath.Join(dir, FileName(m.GeneratedAt, format))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	return path, nil
}

// Load reads a manifest written by Save, choosing the decoder from the extension
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &m)
	default:
		err = json.Unmarshal(data, &m)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}
	return &m, nil
}
