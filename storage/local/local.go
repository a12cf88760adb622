// Package local provides a filesystem-backed storage backend.
package local

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/voicerunner/voicerunner/storage"
)

// Backend implements storage.Backend on a directory tree rooted at a
// configured base path. Locators are plain file paths.
type Backend struct {
	base string
}

var _ storage.Backend = (*Backend)(nil)

// New creates the base directory if needed and returns a Backend rooted
// there.
func New(base string) (*Backend, error) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating base directory: %v", storage.ErrUnavailable, err)
	}
	return &Backend{base: base}, nil
}

// Put writes data to base/key, creating intermediate directories on demand.
// The blob is written to a temp file and renamed into place so readers never
// observe a partial write.
func (b *Backend) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	dst := filepath.Join(b.base, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("%w: creating directory for %s: %v", storage.ErrUnavailable, key, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".put-*")
	if err != nil {
		return "", fmt.Errorf("%w: creating temp file for %s: %v", storage.ErrUnavailable, key, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: writing %s: %v", storage.ErrUnavailable, key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: closing %s: %v", storage.ErrUnavailable, key, err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: renaming %s into place: %v", storage.ErrUnavailable, key, err)
	}
	return dst, nil
}

func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(b.base, filepath.FromSlash(key)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", key, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: reading %s: %v", storage.ErrUnavailable, key, err)
	}
	return data, nil
}

// List walks the directory that contains prefix and returns every file key
// beneath it that starts with prefix. A missing directory yields no keys,
// not an error.
func (b *Backend) List(ctx context.Context, prefix string) ([]string, error) {
	dir, _ := path.Split(prefix)
	root := filepath.Join(b.base, filepath.FromSlash(dir))
	var keys []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(b.base, p)
		if err != nil {
			return err
		}
		if key := filepath.ToSlash(rel); strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s: %v", storage.ErrUnavailable, prefix, err)
	}
	return keys, nil
}
