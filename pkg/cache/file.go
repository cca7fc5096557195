package cache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/coalition/pkg/observability"
)

// entryHeader is the size of the expiry stamp that precedes every entry:
// Unix nanoseconds, big endian, zero for no expiry.
const entryHeader = 8

// FileCache stores one file per key under a directory, for CLI use.
//
// Entries are raw bytes behind an expiry stamp, so large order lists are not
// inflated by a text encoding. Writes go through a temporary file and a
// rename, so concurrent runs sharing the directory never read half an entry.
type FileCache struct {
	dir string
	now func() time.Time
}

// NewFileCache creates a file cache in dir, creating the directory if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir, now: time.Now}, nil
}

// Get returns the entry for key. Expired and truncated entries are removed
// and reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		observability.Cache().OnCacheMiss(ctx, "file")
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if len(raw) < entryHeader || c.expired(raw) {
		_ = os.Remove(path)
		observability.Cache().OnCacheMiss(ctx, "file")
		return nil, false, nil
	}

	observability.Cache().OnCacheHit(ctx, "file")
	return raw[entryHeader:], true, nil
}

func (c *FileCache) expired(raw []byte) bool {
	stamp := int64(binary.BigEndian.Uint64(raw[:entryHeader]))
	return stamp != 0 && c.now().UnixNano() > stamp
}

// Set stores data under key. A ttl of zero never expires.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	var stamp int64
	if ttl > 0 {
		stamp = c.now().Add(ttl).UnixNano()
	}
	raw := make([]byte, entryHeader+len(data))
	binary.BigEndian.PutUint64(raw, uint64(stamp))
	copy(raw[entryHeader:], data)

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".entry-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	observability.Cache().OnCacheSet(ctx, "file", len(data))
	return nil
}

// Delete removes key. A missing key is not an error.
func (c *FileCache) Delete(_ context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (c *FileCache) Close() error { return nil }

// path shards entries by the first byte of the key's SHA-256.
func (c *FileCache) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	name := hex.EncodeToString(sum[:])
	return filepath.Join(c.dir, name[:2], name[2:]+".bin")
}

var _ Cache = (*FileCache)(nil)
