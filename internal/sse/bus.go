package sse

import "sync"

// bus fans messages out to every connected client. Each client may supply a match
// function to receive only some messages; a nil match receives everything.
type bus[T any] struct {
	mu   sync.RWMutex
	subs map[chan T]func(T) bool
}

func newBus[T any]() *bus[T] {
	return &bus[T]{subs: make(map[chan T]func(T) bool)}
}

func (b *bus[T]) register(ch chan T, match func(T) bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subs[ch] = match
}

// unregister is a no-op for a channel that isn't registered
func (b *bus[T]) unregister(ch chan T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.subs, ch)
}

func (b *bus[T]) clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	clear(b.subs)
}

func (b *bus[T]) size() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.subs)
}

// publish delivers message to every matching subscriber without blocking. Returns the
// number of subscribers whose buffers were full.
func (b *bus[T]) publish(message T) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	dropped := 0
	for ch, match := range b.subs {
		if match != nil && !match(message) {
			continue
		}
		select {
		case ch <- message:
		default:
			dropped++
		}
	}
	return dropped
}
