package directions

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/theoremus-urban-solutions/arnav/route"
)

// CacheFileExt is the extension of disk cache entries.
const CacheFileExt = ".msgpack.zst"

// Entry is one cached directions result.
type Entry struct {
	Leg       Leg       `msgpack:"leg"`
	FetchedAt time.Time `msgpack:"fetched_at"`
}

// Cache keeps directions results in an expiring in-memory LRU and,
// when Dir is set, in compressed files on disk.
type Cache struct {
	mem *expirable.LRU[string, Entry]
	dir string
	ttl time.Duration
}

// NewCache returns a cache of at most size entries kept for ttl. dir may be
// empty to disable the disk layer.
func NewCache(size int, ttl time.Duration, dir string) *Cache {
	if size <= 0 {
		size = 64
	}
	return &Cache{
		mem: expirable.NewLRU[string, Entry](size, nil, ttl),
		dir: dir,
		ttl: ttl,
	}
}

// Key returns the cache key for a request. Coordinates are rounded to
// roughly one meter so that repeated requests from a standing user hit.
func Key(origin, destination route.Point) string {
	return fmt.Sprintf("%.5f,%.5f_%.5f,%.5f", origin.Lat, origin.Lon, destination.Lat, destination.Lon)
}

// Get returns a cached entry. Disk hits are promoted to memory; entries
// older than the TTL are ignored.
func (c *Cache) Get(key string) (Entry, bool) {
	if e, ok := c.mem.Get(key); ok {
		return e, true
	}
	if c.dir == "" {
		return Entry{}, false
	}
	e, err := c.load(key)
	if err != nil {
		return Entry{}, false
	}
	if c.ttl > 0 && time.Since(e.FetchedAt) > c.ttl {
		return Entry{}, false
	}
	c.mem.Add(key, e)
	return e, true
}

// Put stores an entry in memory and, when enabled, on disk.
func (c *Cache) Put(key string, e Entry) error {
	c.mem.Add(key, e)
	if c.dir == "" {
		return nil
	}
	return c.store(key, e)
}

// Len returns the number of in-memory entries.
func (c *Cache) Len() int { return c.mem.Len() }

func (c *Cache) path(key string) string {
	name := strings.NewReplacer(",", "_", "-", "m").Replace(key)
	return filepath.Join(c.dir, name+CacheFileExt)
}

func (c *Cache) store(key string, e Entry) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	f, err := os.Create(c.path(key))
	if err != nil {
		return fmt.Errorf("create cache file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return WriteEntry(f, e)
}

func (c *Cache) load(key string) (Entry, error) {
	f, err := os.Open(c.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Entry{}, err
		}
		return Entry{}, fmt.Errorf("open cache file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadEntry(f)
}

// WriteEntry encodes an entry as msgpack compressed with zstd.
func WriteEntry(w io.Writer, e Entry) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %w", err)
	}
	defer zw.Close()

	if err := msgpack.NewEncoder(zw).Encode(e); err != nil {
		return fmt.Errorf("failed to encode entry: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to close zstd writer: %w", err)
	}
	return nil
}

// ReadEntry decodes an entry written by WriteEntry.
func ReadEntry(r io.Reader) (Entry, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer zr.Close()

	var e Entry
	if err := msgpack.NewDecoder(zr).Decode(&e); err != nil {
		return Entry{}, fmt.Errorf("failed to decode entry: %w", err)
	}
	return e, nil
}
