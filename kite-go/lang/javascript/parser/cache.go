package parser

import (
	"time"

	spooky "github.com/dgryski/go-spooky"
	lru "github.com/hashicorp/golang-lru"
	"github.com/kiteco/jsparse/kite-go/lang/javascript/ast"
	"github.com/kiteco/jsparse/kite-golib/errors"
)

const (
	// DefaultCacheSize is the number of parses a Cache keeps by default
	DefaultCacheSize = 1000
	// staleCutoff is the age after which a cached parse is redone
	staleCutoff = 10 * time.Minute
)

// Cache memoizes Parse. Entries are keyed on a hash of the source together
// with everything else that changes the result: filename, first line and the
// dialect options. Failed parses are cached too. Trees returned from the
// cache are shared and must not be modified. A Cache is safe for concurrent use.
type Cache struct {
	entries *lru.Cache
}

type cacheKey struct {
	hash      uint64
	filename  string
	line      int
	ecma3Only bool
	parenFree bool
	harmony   bool
	maxDepth  int
}

type cacheEntry struct {
	ts     time.Time
	script *ast.Script
	err    error
}

// NewCache returns a cache holding at most size parses.
func NewCache(size int) (*Cache, error) {
	entries, err := lru.New(size)
	if err != nil {
		return nil, errors.Wrapf(err, "error creating parse cache of size %d", size)
	}
	return &Cache{entries: entries}, nil
}

// Parse returns the cached result for the given arguments, parsing src on a
// miss. Tracing bypasses the cache.
func (c *Cache) Parse(src []byte, filename string, line int, opts Options) (*ast.Script, error) {
	if opts.Trace {
		return Parse(src, filename, line, opts)
	}

	key := newCacheKey(src, filename, line, opts)
	if v, ok := c.entries.Get(key); ok {
		entry := v.(*cacheEntry)
		if time.Since(entry.ts) <= staleCutoff {
			cacheHitRatio.Hit()
			return entry.script, entry.err
		}
		c.entries.Remove(key)
	}
	cacheHitRatio.Miss()

	script, err := Parse(src, filename, line, opts)
	c.entries.Add(key, &cacheEntry{ts: time.Now(), script: script, err: err})
	return script, err
}

// Len returns the number of cached parses.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Purge empties the cache.
func (c *Cache) Purge() {
	c.entries.Purge()
}

func newCacheKey(src []byte, filename string, line int, opts Options) cacheKey {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	key := cacheKey{
		hash:      spooky.Hash64(src),
		filename:  filename,
		line:      line,
		ecma3Only: opts.ECMA3Only,
		parenFree: opts.ParenFree,
		harmony:   opts.Harmony,
		maxDepth:  maxDepth,
	}
	if key.ecma3Only {
		key.parenFree = false
		key.harmony = false
	}
	return key
}
