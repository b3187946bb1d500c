// Package icon attaches a terminal glyph to each entry label.
package icon

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize bounds the cache when no capacity is configured.
const DefaultSize = 256

// Fallback is used for labels without a recognized ecosystem.
const Fallback = "•"

var glyphs = []struct {
	prefix string
	glyph  string
}{
	{"node", "⬢"},
	{"python", "🐍"},
	{"java", "☕"},
	{"docker", "🐳"},
}

// Cache memoizes label → glyph lookups in a bounded LRU. It is safe for
// concurrent use.
type Cache struct {
	lru *lru.Cache[string, string]
}

// NewCache returns a cache holding at most size labels.
func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultSize
	}
	c, err := lru.New[string, string](size)
	if err != nil {
		// only returned for a non-positive size
		panic(err)
	}
	return &Cache{lru: c}
}

// Icon returns the glyph for label, computing it on first sight.
func (c *Cache) Icon(label string) string {
	if g, ok := c.lru.Get(label); ok {
		return g
	}
	g := Glyph(label)
	c.lru.Add(label, g)
	return g
}

// Len reports how many labels are cached.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Glyph picks the glyph for a label by its ecosystem prefix
// ("node: my-app", "python3", "docker: web").
func Glyph(label string) string {
	lower := strings.ToLower(label)
	for _, g := range glyphs {
		if strings.HasPrefix(lower, g.prefix) {
			return g.glyph
		}
	}
	return Fallback
}
