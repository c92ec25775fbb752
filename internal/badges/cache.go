package badges

import (
	"strings"
	"sync"
)

// Key identifies a single user's badges within a single channel
type Key struct {
	Channel string
	User    string
}

func newKey(channel string, user string) Key {
	return Key{
		Channel: strings.ToLower(strings.TrimPrefix(channel, "#")),
		User:    strings.ToLower(user),
	}
}

// entry memoizes the result of resolving a raw badges value
type entry struct {
	input  string
	output string
}

// Cache holds the most recently resolved badges for each user in each channel, and
// only resolves a raw badges value again when it differs from the last one seen
type Cache struct {
	mu      sync.Mutex
	entries map[Key]entry

	// resolve is Resolve in production; tests swap it out to count calls
	resolve func(string) string
}

// NewCache initializes an empty badge cache
func NewCache() *Cache {
	return &Cache{
		entries: make(map[Key]entry),
		resolve: Resolve,
	}
}

// Set records the raw badges value most recently seen for a user in a channel,
// returning the resolved glyphs and whether they had to be recomputed. Comparison,
// resolution and store all happen under the lock, so a value is resolved once and
// a slower call can't overwrite a newer one.
func (c *Cache) Set(channel string, user string, raw string) (string, bool) {
	key := newKey(channel, user)

	c.mu.Lock()
	defer c.mu.Unlock()

	if prev, ok := c.entries[key]; ok && prev.input == raw {
		return prev.output, false
	}
	output := c.resolve(raw)
	c.entries[key] = entry{input: raw, output: output}
	return output, true
}

// Get returns the resolved glyphs for a user in a channel, or None if we've never
// seen their badges there
func (c *Cache) Get(channel string, user string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[newKey(channel, user)]; ok {
		return e.output
	}
	return None
}
