// Package storage decides where icons are written and writes them.
//
// Resolve scans the target directory once and hands out collision-free,
// case-insensitively unique file names before any download starts. Manager
// then streams each icon into its resolved path through a temporary file and
// an atomic rename; it is safe for concurrent use by the download workers.
//
//	manager, err := storage.NewManager("/home/me/Downloads")
//	names, err := manager.Resolve(icons)
//	n, err := manager.SaveIcon(body, names[icon.ID])
package storage
