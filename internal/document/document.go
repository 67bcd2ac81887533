package document

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"sync"
)

// DefaultQueueSize is the capacity of the event queue used by Post.
const DefaultQueueSize = 64

// ErrDocumentClosed is returned when posting to a closed document.
var ErrDocumentClosed = errors.New("document is closed")

// Element is a node with a tag name and a class list.
type Element struct {
	Tag       string
	ClassList *ClassList
}

// Document owns the root element and dispatches named events to listeners.
// Dispatches are serialized: a listener never runs concurrently with another
// listener of the same document.
type Document struct {
	logger *slog.Logger
	root   *Element

	mu        sync.RWMutex
	listeners map[string][]Listener

	dispatchMu sync.Mutex

	queue     chan queued
	closeOnce sync.Once
	closed    chan struct{}
}

// queued is a posted event. done, when set, is closed once the event has
// been dispatched.
type queued struct {
	ev   Event
	done chan struct{}
}

// New creates a document with an empty <html> root element.
func New(logger *slog.Logger) *Document {
	if logger == nil {
		logger = slog.Default()
	}
	return &Document{
		logger:    logger,
		root:      &Element{Tag: "html", ClassList: NewClassList()},
		listeners: make(map[string][]Listener),
		queue:     make(chan queued, DefaultQueueSize),
		closed:    make(chan struct{}),
	}
}

// Root returns the document's root element.
func (d *Document) Root() *Element {
	return d.root
}

// AddEventListener subscribes fn to events named name. Listeners stay
// registered for the lifetime of the document.
func (d *Document) AddEventListener(name string, fn Listener) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[name] = append(d.listeners[name], fn)
}

// Dispatch runs all listeners for the event synchronously, in registration
// order. Concurrent callers are serialized, so listeners must not call
// Dispatch themselves.
func (d *Document) Dispatch(ev Event) {
	ev.stamp()

	d.dispatchMu.Lock()
	defer d.dispatchMu.Unlock()

	d.mu.RLock()
	fns := append([]Listener(nil), d.listeners[ev.Type]...)
	d.mu.RUnlock()

	d.logger.Debug("dispatching event", "type", ev.Type, "id", ev.ID, "listeners", len(fns))
	for _, fn := range fns {
		fn(ev)
	}
}

// Post enqueues an event for the Run loop. It blocks while the queue is full.
func (d *Document) Post(ctx context.Context, ev Event) error {
	return d.enqueue(ctx, queued{ev: ev})
}

// Send enqueues an event and waits until the Run loop has dispatched it.
// Events sent by concurrent producers are dispatched in the order they were
// queued.
func (d *Document) Send(ctx context.Context, ev Event) error {
	q := queued{ev: ev, done: make(chan struct{})}
	if err := d.enqueue(ctx, q); err != nil {
		return err
	}

	select {
	case <-q.done:
		return nil
	case <-d.closed:
		return ErrDocumentClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Document) enqueue(ctx context.Context, q queued) error {
	q.ev.stamp()
	select {
	case <-d.closed:
		return ErrDocumentClosed
	default:
	}

	select {
	case d.queue <- q:
		return nil
	case <-d.closed:
		return ErrDocumentClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run drains posted events in FIFO order until ctx is cancelled or Close is
// called. Events still queued at that point are dropped.
func (d *Document) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-d.closed:
			return nil
		case q := <-d.queue:
			d.Dispatch(q.ev)
			if q.done != nil {
				close(q.done)
			}
		}
	}
}

// Close stops the Run loop and rejects further posts.
func (d *Document) Close() {
	d.closeOnce.Do(func() { close(d.closed) })
}

// HTML renders the root element's start tag.
func (d *Document) HTML() string {
	class := d.root.ClassList.String()
	if class == "" {
		return fmt.Sprintf("<%s>", d.root.Tag)
	}
	return fmt.Sprintf("<%s class=\"%s\">", d.root.Tag, html.EscapeString(class))
}
