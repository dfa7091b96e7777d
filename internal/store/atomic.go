package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"kanban/internal/core"
)

const tempPrefix = ".kanban-tmp-"

// staleTempAge is how old a leftover temp file must be before cleanup
// touches it. A younger temp may belong to a concurrent writer that has
// not renamed it into place yet.
const staleTempAge = time.Minute

// writeAtomic writes data to path via a temp file in the same directory
// followed by a rename, so readers never observe a partial document.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return core.IOErr(fmt.Sprintf("creating directory %s", dir), err)
	}
	tmp, err := os.CreateTemp(dir, tempPrefix+filepath.Base(path)+"-*")
	if err != nil {
		return core.IOErr("creating temp file", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return core.IOErr("writing temp file", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return core.IOErr("syncing temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return core.IOErr("closing temp file", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return core.IOErr(fmt.Sprintf("renaming %s into place", tmpName), err)
	}
	return nil
}

// cleanStaleTemps removes leftover temp files from crashed writers in
// the data file's directory. Only temps older than staleTempAge are
// touched. Best effort; errors are ignored.
func cleanStaleTemps(path string) {
	dir := filepath.Dir(path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	cutoff := time.Now().Add(-staleTempAge)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), tempPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		os.Remove(filepath.Join(dir, entry.Name()))
	}
}
