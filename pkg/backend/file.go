// ABOUTME: File-backed store with one blob per key
// ABOUTME: Etags are content hashes, conditional puts compare the current hash

package backend

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// FileStore persists each key as a file under Root. Keys may contain slashes;
// intermediate directories are created on demand. The etag of a value is the
// hex SHA-256 of its bytes, so identical content always carries the same etag.
type FileStore struct {
	root string
	mu   sync.Mutex
}

// NewFileStore creates (if needed) and opens a file store rooted at dir.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("open file store: %w", err)
	}
	return &FileStore{root: dir}, nil
}

// Get reads the file for key.
func (f *FileStore) Get(ctx context.Context, key string) (Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("read %s: %w", key, err)
	}

	return Record{Bytes: data, Etag: contentEtag(data)}, nil
}

// Put writes value for key via a temp file and rename.
func (f *FileStore) Put(ctx context.Context, key string, value []byte, expectedEtag string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := f.path(key)

	if expectedEtag != "" {
		cur, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", ErrNotFound
			}
			return "", fmt.Errorf("read %s: %w", key, err)
		}
		if contentEtag(cur) != expectedEtag {
			return "", ErrConflict
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("write %s: %w", key, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("write %s: %w", key, err)
	}

	return contentEtag(value), nil
}

// List walks the root collecting keys under prefix, sorted.
func (f *FileStore) List(ctx context.Context, prefix string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var keys []string
	err := filepath.WalkDir(f.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasSuffix(path, ".tmp") {
			return nil
		}
		rel, err := filepath.Rel(f.root, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}

	sort.Strings(keys)
	return keys, nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.root, filepath.FromSlash(key))
}

func contentEtag(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:16])
}
