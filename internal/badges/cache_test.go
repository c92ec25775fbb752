package badges

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Cache(t *testing.T) {
	t.Run("unknown user yields the None placeholder", func(t *testing.T) {
		c := NewCache()
		assert.Equal(t, None, c.Get("#chan", "alice"))
	})
	t.Run("user with no displayable badges is distinct from unknown", func(t *testing.T) {
		c := NewCache()
		c.Set("#chan", "alice", "")
		assert.Equal(t, "", c.Get("#chan", "alice"))
	})
	t.Run("same raw value is only resolved once", func(t *testing.T) {
		c := NewCache()
		calls := 0
		c.resolve = func(raw string) string {
			calls++
			return Resolve(raw)
		}

		output, changed := c.Set("#chan", "alice", "moderator/1")
		assert.True(t, changed)
		assert.Equal(t, "🗡 ", output)

		output, changed = c.Set("#chan", "alice", "moderator/1")
		assert.False(t, changed)
		assert.Equal(t, "🗡 ", output)
		assert.Equal(t, 1, calls)

		_, changed = c.Set("#chan", "alice", "moderator/1,subscriber/3")
		assert.True(t, changed)
		assert.Equal(t, 2, calls)
		assert.Equal(t, "🗡③ ", c.Get("#chan", "alice"))
	})
	t.Run("memoization is keyed on exact string equality", func(t *testing.T) {
		c := NewCache()
		calls := 0
		c.resolve = func(raw string) string {
			calls++
			return Resolve(raw)
		}
		c.Set("#chan", "alice", "vip/1,moderator/1")
		c.Set("#chan", "alice", "moderator/1,vip/1")
		assert.Equal(t, 2, calls)
	})
	t.Run("entries are per channel and per user", func(t *testing.T) {
		c := NewCache()
		c.Set("#one", "alice", "moderator/1")
		c.Set("#two", "alice", "vip/1")
		c.Set("#one", "bob", "bits/100")

		assert.Equal(t, "🗡 ", c.Get("#one", "alice"))
		assert.Equal(t, "⚑ ", c.Get("#two", "alice"))
		assert.Equal(t, "⬧ ", c.Get("#one", "bob"))
		assert.Equal(t, None, c.Get("#two", "bob"))
	})
	t.Run("channel and user names are normalized", func(t *testing.T) {
		c := NewCache()
		c.Set("#Chan", "Alice", "moderator/1")
		assert.Equal(t, "🗡 ", c.Get("chan", "alice"))
	})
	t.Run("concurrent sets of the same value resolve it once", func(t *testing.T) {
		c := NewCache()
		var calls atomic.Int32
		entered := make(chan struct{}, 2)
		release := make(chan struct{})
		c.resolve = func(raw string) string {
			calls.Add(1)
			entered <- struct{}{}
			<-release
			return Resolve(raw)
		}

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.Set("#chan", "bob", "vip/1")
		}()
		<-entered
		go func() {
			defer wg.Done()
			c.Set("#chan", "bob", "vip/1")
		}()
		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), calls.Load())
		assert.Equal(t, "⚑ ", c.Get("#chan", "bob"))
	})
	t.Run("a slow set can't overwrite a newer one", func(t *testing.T) {
		c := NewCache()
		entered := make(chan struct{})
		release := make(chan struct{})
		c.resolve = func(raw string) string {
			if raw == "moderator/1" {
				close(entered)
				<-release
			}
			return Resolve(raw)
		}

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.Set("#chan", "bob", "moderator/1")
		}()
		<-entered
		go func() {
			defer wg.Done()
			c.Set("#chan", "bob", "vip/1")
		}()
		close(release)
		wg.Wait()

		output, changed := c.Set("#chan", "bob", "vip/1")
		assert.False(t, changed)
		assert.Equal(t, "⚑ ", output)
	})
	t.Run("concurrent use is safe", func(t *testing.T) {
		c := NewCache()
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				raw := "subscriber/3"
				if i%2 == 0 {
					raw = "subscriber/6"
				}
				c.Set("#chan", "alice", raw)
				c.Get("#chan", "alice")
			}(i)
		}
		wg.Wait()
		assert.Contains(t, []string{"③ ", "⑥ "}, c.Get("#chan", "alice"))
	})
}
