package theme

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jmylchreest/themeswitch/internal/document"
)

// Store is the persistent key-value store holding the preference.
type Store interface {
	Get(key string) (value string, found bool, err error)
	Set(key, value string) error
}

// Marker is the class list of the document root.
type Marker interface {
	Contains(token string) bool
	Toggle(token string, force bool)
}

// AmbientPreference answers whether the environment prefers a dark appearance.
type AmbientPreference interface {
	PrefersDark(ctx context.Context) (bool, error)
}

// Dispatcher delivers named signals to listeners.
type Dispatcher interface {
	AddEventListener(name string, fn document.Listener)
}

// Options overrides the default key, class and signal name.
type Options struct {
	StorageKey string
	DarkClass  string
	EventName  string
	Logger     *slog.Logger
}

// Resolution describes the outcome of Initialize or Sync.
type Resolution struct {
	Mode   Mode
	Source Source
	Stored string // Raw stored value, empty when none was read
}

// Controller applies and persists the theme preference. Store failures are
// never surfaced: reads fall back to the ambient preference and writes leave
// the visual state applied.
type Controller struct {
	mu      sync.Mutex
	store   Store
	marker  Marker
	ambient AmbientPreference
	logger  *slog.Logger

	key   string
	class string
	event string
}

// NewController creates a controller. store and ambient may be nil; a nil
// store behaves like an unavailable one and a nil ambient preference answers
// light.
func NewController(store Store, marker Marker, ambient AmbientPreference, opts Options) *Controller {
	c := &Controller{
		store:   store,
		marker:  marker,
		ambient: ambient,
		logger:  opts.Logger,
		key:     opts.StorageKey,
		class:   opts.DarkClass,
		event:   opts.EventName,
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.key == "" {
		c.key = StorageKey
	}
	if c.class == "" {
		c.class = DarkClass
	}
	if c.event == "" {
		c.event = EventName
	}
	return c
}

// Initialize establishes the initial theme. A stored value wins; without one
// the ambient preference decides. It only ever adds the marker class and never
// writes to the store.
func (c *Controller) Initialize(ctx context.Context) Resolution {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := Resolution{Mode: ModeLight, Source: SourceDefault}

	if stored, found := c.read(); found {
		res.Stored = stored
		res.Source = SourceStored
		res.Mode = ModeFor(stored == string(ModeDark))
	} else if c.ambient != nil {
		if dark, err := c.ambient.PrefersDark(ctx); err == nil {
			res.Source = SourceAmbient
			res.Mode = ModeFor(dark)
		} else {
			c.logger.Debug("ambient preference unavailable", "error", err)
		}
	}

	if res.Mode.IsDark() {
		c.marker.Toggle(c.class, true)
	}

	c.logger.Debug("initialized theme", "mode", res.Mode, "source", res.Source)
	return res
}

// Apply sets the marker class to match dark and persists the mode.
func (c *Controller) Apply(dark bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apply(dark)
}

func (c *Controller) apply(dark bool) {
	c.marker.Toggle(c.class, dark)
	c.write(ModeFor(dark))
	c.logger.Debug("applied theme", "mode", ModeFor(dark))
}

// HandleEvent applies the mode carried by a theme signal: "dark" forces dark,
// "light" forces light and anything else toggles the current state.
func (c *Controller) HandleEvent(ev document.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if mode, ok := ParseMode(ModeFromDetail(ev.Detail)); ok {
		c.apply(mode.IsDark())
		return
	}
	c.apply(!c.marker.Contains(c.class))
}

// Register subscribes HandleEvent to the theme signal on d.
func (c *Controller) Register(d Dispatcher) {
	d.AddEventListener(c.event, c.HandleEvent)
}

// Sync mirrors the stored value onto the marker without writing back. It is
// used after another writer changed the store. Without a stored value the
// marker is left as is.
func (c *Controller) Sync() Resolution {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored, found := c.read()
	if !found {
		return Resolution{Mode: ModeFor(c.marker.Contains(c.class)), Source: SourceSync}
	}

	mode := ModeFor(stored == string(ModeDark))
	c.marker.Toggle(c.class, mode.IsDark())
	return Resolution{Mode: mode, Source: SourceSync, Stored: stored}
}

// IsDark reports whether the marker class is currently present.
func (c *Controller) IsDark() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.marker.Contains(c.class)
}

// Mode returns the mode currently shown.
func (c *Controller) Mode() Mode {
	return ModeFor(c.IsDark())
}

// EventName returns the signal name the controller listens on.
func (c *Controller) EventName() string {
	return c.event
}

// StorageKey returns the key the preference is stored under.
func (c *Controller) StorageKey() string {
	return c.key
}

// read returns the stored value. Errors and empty values count as no value.
func (c *Controller) read() (string, bool) {
	if c.store == nil {
		return "", false
	}
	value, found, err := c.store.Get(c.key)
	if err != nil || !found || value == "" {
		return "", false
	}
	return value, true
}

// write stores the mode, ignoring errors.
func (c *Controller) write(mode Mode) {
	if c.store == nil {
		return
	}
	_ = c.store.Set(c.key, string(mode))
}
