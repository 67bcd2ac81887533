package document

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Event is a named signal dispatched on a document.
type Event struct {
	Type   string    // Event name listeners subscribe to
	ID     string    // ULID, assigned on dispatch when empty
	Detail any       // Optional payload, nil when absent
	Time   time.Time // Dispatch time, assigned on dispatch when zero
}

// Listener handles a dispatched event.
type Listener func(Event)

// NewEvent creates an event with the given name and payload.
func NewEvent(name string, detail any) Event {
	return Event{Type: name, Detail: detail}
}

// stamp fills in ID and Time when unset.
func (e *Event) stamp() {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	if e.ID == "" {
		id, err := ulid.New(ulid.Timestamp(e.Time), rand.Reader)
		if err == nil {
			e.ID = id.String()
		}
	}
}
