// ABOUTME: Backend adapter contract for document storage
// ABOUTME: Key/value access with etag-based optimistic concurrency

package backend

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get for an absent key, and by a conditional
	// Put whose key no longer exists.
	ErrNotFound = errors.New("backend: key not found")

	// ErrConflict is returned by a conditional Put whose expected etag no
	// longer matches the stored value.
	ErrConflict = errors.New("backend: etag mismatch")
)

// Record is the result of a successful Get.
type Record struct {
	Bytes []byte
	Etag  string
}

// Store is the key/value contract the document layer runs on. Any store with
// conditional writes satisfies it (Azure Table/Blob in production, the memory
// and file stores here for tests and local operation).
type Store interface {
	// Get returns the stored bytes and current etag for key, or ErrNotFound.
	Get(ctx context.Context, key string) (Record, error)

	// Put writes value under key and returns the new etag. An empty
	// expectedEtag writes unconditionally (create or overwrite). A non-empty
	// expectedEtag succeeds only while the stored etag still matches,
	// otherwise ErrConflict; ErrNotFound if the key has disappeared.
	Put(ctx context.Context, key string, value []byte, expectedEtag string) (string, error)

	// List returns all keys beginning with prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}
