package static

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrymomot/spark/core/cache"
)

var (
	ErrFileNotFound = errors.New("static file not found")
	ErrOutsideRoot  = errors.New("path outside static root")
)

// mtimeCacheCapacity bounds the production mtime cache; an application
// rarely references more distinct assets than this from templates.
const mtimeCacheCapacity = 1024

// ModTime returns the modification time of a named file under the static
// root. The name is cleaned and confined to the root to prevent traversal.
func ModTime(root, name string) (time.Time, error) {
	path, err := securePath(root, name)
	if err != nil {
		return time.Time{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return time.Time{}, fmt.Errorf("%w: %s", ErrFileNotFound, name)
		}
		return time.Time{}, fmt.Errorf("static: stat %s: %w", name, err)
	}
	if info.IsDir() {
		return time.Time{}, fmt.Errorf("%w: %s is a directory", ErrFileNotFound, name)
	}
	return info.ModTime(), nil
}

// securePath resolves name under root and rejects paths escaping it.
func securePath(root, name string) (string, error) {
	cleanRoot := filepath.Clean(root)
	path := filepath.Clean(filepath.Join(cleanRoot, filepath.FromSlash(strings.TrimPrefix(name, "/"))))
	if path != cleanRoot && !strings.HasPrefix(path, cleanRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, name)
	}
	return path, nil
}

// Versioner computes cache-busting version stamps (unix mtimes) for static
// assets. In production the stamp is computed once per asset and cached for
// the process lifetime; in any other environment the filesystem is re-read
// on every call so edited assets show up immediately.
type Versioner struct {
	root       string
	production bool
	mtimes     *cache.LRUCache[string, int64]
}

// NewVersioner creates a versioner over the static root.
func NewVersioner(root string, production bool) *Versioner {
	return &Versioner{
		root:       root,
		production: production,
		mtimes:     cache.NewLRUCache[string, int64](mtimeCacheCapacity),
	}
}

// Version returns the asset's modification time as a unix timestamp.
// Concurrent first calls for the same asset may both stat the file;
// last write wins, which is acceptable for a monotonic-enough stamp.
func (v *Versioner) Version(name string) (int64, error) {
	if v.production {
		if stamp, ok := v.mtimes.Get(name); ok {
			return stamp, nil
		}
	}

	mtime, err := ModTime(v.root, name)
	if err != nil {
		return 0, err
	}

	stamp := mtime.Unix()
	if v.production {
		v.mtimes.Put(name, stamp)
	}
	return stamp, nil
}
