// Package backup snapshots a ledger file before it is overwritten. Copies
// land in a backups directory next to the file, named after the original
// plus a timestamp, and the recent list drives the quick-restore menu.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	dirName         = "backups"
	timestampLayout = "20060102_150405"
)

// Create copies path into the backups directory beside it and returns the
// backup's path. The source must exist.
func Create(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening source: %w", err)
	}
	defer src.Close()

	dir := filepath.Join(filepath.Dir(path), dirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}

	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	name := fmt.Sprintf("%s_backup_%s%s", stem, time.Now().Format(timestampLayout), ext)
	target := filepath.Join(dir, name)

	dst, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("creating backup: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("copying to backup: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("closing backup: %w", err)
	}
	return target, nil
}

// Recent lists up to n backups of path, newest first.
func Recent(path string, n int) ([]string, error) {
	dir := filepath.Join(filepath.Dir(path), dirName)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading backup directory: %w", err)
	}

	base := filepath.Base(path)
	ext := filepath.Ext(base)
	prefix := strings.TrimSuffix(base, ext) + "_backup_"

	var matches []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, ext) {
			matches = append(matches, filepath.Join(dir, name))
		}
	}

	// The timestamp in the name sorts lexicographically, so reverse name
	// order is newest first.
	sort.Sort(sort.Reverse(sort.StringSlice(matches)))
	if n > 0 && len(matches) > n {
		matches = matches[:n]
	}
	return matches, nil
}
