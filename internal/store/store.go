// Package store provides the origin-scoped key-value storage that holds the
// theme preference.
package store

import (
	"errors"
	"sync"
)

// ErrStoreClosed is returned when operations are attempted on a closed store.
var ErrStoreClosed = errors.New("store is closed")

// Store is a synchronous string key-value store scoped to one origin.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (value string, found bool, err error)

	// Set stores value under key.
	Set(key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error

	// Keys returns the stored keys in sorted order.
	Keys() ([]string, error)

	// Close releases resources.
	Close() error
}

// ChangeEvent signals that a key changed outside this process.
type ChangeEvent struct {
	Key   string
	Value string
	Found bool // False when the key was removed
}

// broadcaster fans change events out to subscribers.
type broadcaster struct {
	mu          sync.Mutex
	subscribers []chan ChangeEvent
	closed      bool
}

// subscribe returns a buffered channel that receives change events.
func (b *broadcaster) subscribe() <-chan ChangeEvent {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan ChangeEvent, 10)
	if b.closed {
		close(ch)
		return ch
	}
	b.subscribers = append(b.subscribers, ch)
	return ch
}

// notify sends an event to all subscribers without blocking.
func (b *broadcaster) notify(event ChangeEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			// Subscriber not keeping up, skip
		}
	}
}

// close closes all subscriber channels.
func (b *broadcaster) close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subscribers {
		close(ch)
	}
	b.subscribers = nil
}

// diff returns change events for every key whose value differs between old
// and updated.
func diff(old, updated map[string]string) []ChangeEvent {
	var events []ChangeEvent
	for k, v := range updated {
		if prev, ok := old[k]; !ok || prev != v {
			events = append(events, ChangeEvent{Key: k, Value: v, Found: true})
		}
	}
	for k := range old {
		if _, ok := updated[k]; !ok {
			events = append(events, ChangeEvent{Key: k})
		}
	}
	return events
}
