package theme

import (
	"context"
	"errors"
	"testing"

	"github.com/jmylchreest/themeswitch/internal/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBroken = errors.New("storage disabled")

type mapStore struct {
	values map[string]string
	writes int
}

func newMapStore() *mapStore {
	return &mapStore{values: make(map[string]string)}
}

func (s *mapStore) Get(key string) (string, bool, error) {
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *mapStore) Set(key, value string) error {
	s.writes++
	s.values[key] = value
	return nil
}

type brokenStore struct{}

func (brokenStore) Get(string) (string, bool, error) { return "", false, errBroken }
func (brokenStore) Set(string, string) error        { return errBroken }

type ambient struct {
	dark  bool
	err   error
	calls int
}

func (a *ambient) PrefersDark(context.Context) (bool, error) {
	a.calls++
	return a.dark, a.err
}

// page wires a controller to a fresh document, the way a page load does.
func page(t *testing.T, store Store, amb AmbientPreference) (*document.Document, *Controller) {
	t.Helper()
	doc := document.New(nil)
	c := NewController(store, doc.Root().ClassList, amb, Options{})
	c.Initialize(context.Background())
	c.Register(doc)
	return doc, c
}

func themeEvent(detail any) document.Event {
	return document.NewEvent(EventName, detail)
}

func TestInitialize_EmptyStoreUsesAmbient(t *testing.T) {
	store := newMapStore()
	amb := &ambient{dark: true}

	doc, c := page(t, store, amb)

	assert.True(t, doc.Root().ClassList.Contains(DarkClass))
	assert.True(t, c.IsDark())
	assert.Equal(t, 1, amb.calls)
	assert.Equal(t, 0, store.writes, "initialize must not write")
	assert.Empty(t, store.values)
}

func TestInitialize_StoredValueWins(t *testing.T) {
	tests := []struct {
		name     string
		stored   string
		ambient  bool
		wantDark bool
	}{
		{"stored light over ambient dark", "light", true, false},
		{"stored dark over ambient light", "dark", false, true},
		{"stored dark over ambient dark", "dark", true, true},
		{"unrecognized stored value is light", "sepia", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMapStore()
			store.values[StorageKey] = tt.stored
			amb := &ambient{dark: tt.ambient}

			doc, _ := page(t, store, amb)

			assert.Equal(t, tt.wantDark, doc.Root().ClassList.Contains(DarkClass))
			assert.Equal(t, 0, amb.calls, "ambient must not be queried when a value is stored")
			assert.Equal(t, 0, store.writes)
		})
	}
}

func TestInitialize_EmptyStoredValueFallsBack(t *testing.T) {
	store := newMapStore()
	store.values[StorageKey] = ""

	doc, _ := page(t, store, &ambient{dark: true})
	assert.True(t, doc.Root().ClassList.Contains(DarkClass))
}

func TestInitialize_Resolution(t *testing.T) {
	doc := document.New(nil)
	store := newMapStore()
	store.values[StorageKey] = "dark"

	res := NewController(store, doc.Root().ClassList, nil, Options{}).Initialize(context.Background())
	assert.Equal(t, Resolution{Mode: ModeDark, Source: SourceStored, Stored: "dark"}, res)

	doc = document.New(nil)
	res = NewController(newMapStore(), doc.Root().ClassList, &ambient{dark: false}, Options{}).Initialize(context.Background())
	assert.Equal(t, Resolution{Mode: ModeLight, Source: SourceAmbient}, res)

	doc = document.New(nil)
	res = NewController(nil, doc.Root().ClassList, &ambient{err: errBroken}, Options{}).Initialize(context.Background())
	assert.Equal(t, Resolution{Mode: ModeLight, Source: SourceDefault}, res)
}

func TestInitialize_LightLeavesExistingClasses(t *testing.T) {
	doc := document.New(nil)
	doc.Root().ClassList.Add("js")

	NewController(newMapStore(), doc.Root().ClassList, &ambient{}, Options{}).Initialize(context.Background())

	assert.Equal(t, "js", doc.Root().ClassList.String())
}

func TestApply_Idempotent(t *testing.T) {
	store := newMapStore()
	doc, c := page(t, store, &ambient{})

	c.Apply(true)
	c.Apply(true)

	assert.Equal(t, []string{DarkClass}, doc.Root().ClassList.Tokens())
	assert.Equal(t, "dark", store.values[StorageKey])
}

func TestApply_WritesLight(t *testing.T) {
	store := newMapStore()
	doc, c := page(t, store, &ambient{dark: true})

	c.Apply(false)

	assert.False(t, doc.Root().ClassList.Contains(DarkClass))
	assert.Equal(t, "light", store.values[StorageKey])
}

func TestHandleEvent_RoundTrip(t *testing.T) {
	for _, mode := range []Mode{ModeDark, ModeLight} {
		for _, ambientDark := range []bool{true, false} {
			t.Run(mode.String(), func(t *testing.T) {
				store := newMapStore()
				doc, _ := page(t, store, &ambient{dark: ambientDark})
				doc.Dispatch(themeEvent(Detail{Mode: string(mode)}))
				before := doc.Root().ClassList.Contains(DarkClass)

				// Reload with the same store
				reloaded, _ := page(t, store, &ambient{dark: !ambientDark})

				assert.Equal(t, before, reloaded.Root().ClassList.Contains(DarkClass))
				assert.Equal(t, mode.IsDark(), before)
			})
		}
	}
}

func TestHandleEvent_ToggleWithoutMode(t *testing.T) {
	store := newMapStore()
	store.values[StorageKey] = "dark"
	doc, _ := page(t, store, &ambient{})
	require.True(t, doc.Root().ClassList.Contains(DarkClass))

	doc.Dispatch(themeEvent(nil))
	assert.False(t, doc.Root().ClassList.Contains(DarkClass))
	assert.Equal(t, "light", store.values[StorageKey])

	doc.Dispatch(themeEvent(nil))
	assert.True(t, doc.Root().ClassList.Contains(DarkClass))
	assert.Equal(t, "dark", store.values[StorageKey])
}

func TestHandleEvent_ForceLightFromDark(t *testing.T) {
	store := newMapStore()
	store.values[StorageKey] = "dark"
	doc, _ := page(t, store, &ambient{})

	doc.Dispatch(themeEvent(map[string]any{"mode": "light"}))

	assert.False(t, doc.Root().ClassList.Contains(DarkClass))
	assert.Equal(t, "light", store.values[StorageKey])
}

func TestHandleEvent_NoPayloadFromLight(t *testing.T) {
	store := newMapStore()
	doc, _ := page(t, store, &ambient{})
	require.False(t, doc.Root().ClassList.Contains(DarkClass))

	doc.Dispatch(themeEvent(nil))

	assert.True(t, doc.Root().ClassList.Contains(DarkClass))
	assert.Equal(t, "dark", store.values[StorageKey])
}

func TestHandleEvent_UnrecognizedModesToggle(t *testing.T) {
	details := []struct {
		name   string
		detail any
	}{
		{"typo", Detail{Mode: "drak"}},
		{"uppercase", map[string]string{"mode": "DARK"}},
		{"non-string", map[string]any{"mode": 1}},
		{"missing field", map[string]any{"other": "dark"}},
		{"nil pointer", (*Detail)(nil)},
		{"unknown payload", 42},
	}

	for _, tt := range details {
		t.Run(tt.name, func(t *testing.T) {
			store := newMapStore()
			doc, _ := page(t, store, &ambient{})

			doc.Dispatch(themeEvent(tt.detail))
			assert.True(t, doc.Root().ClassList.Contains(DarkClass))

			doc.Dispatch(themeEvent(tt.detail))
			assert.False(t, doc.Root().ClassList.Contains(DarkClass))
			assert.Equal(t, "light", store.values[StorageKey])
		})
	}
}

func TestHandleEvent_ForcedModesAreIdempotent(t *testing.T) {
	store := newMapStore()
	doc, _ := page(t, store, &ambient{})

	doc.Dispatch(themeEvent(&Detail{Mode: "dark"}))
	doc.Dispatch(themeEvent(&Detail{Mode: "dark"}))

	assert.Equal(t, []string{DarkClass}, doc.Root().ClassList.Tokens())
	assert.Equal(t, 2, store.writes)
}

func TestHandleEvent_IgnoresOtherEvents(t *testing.T) {
	store := newMapStore()
	doc, _ := page(t, store, &ambient{})

	doc.Dispatch(document.NewEvent("other:event", Detail{Mode: "dark"}))

	assert.False(t, doc.Root().ClassList.Contains(DarkClass))
	assert.Equal(t, 0, store.writes)
}

func TestStorageFailureIsolation(t *testing.T) {
	doc, c := page(t, brokenStore{}, &ambient{dark: true})
	assert.True(t, doc.Root().ClassList.Contains(DarkClass), "ambient fallback applies on read failure")

	assert.NotPanics(t, func() { c.Apply(false) })
	assert.False(t, doc.Root().ClassList.Contains(DarkClass))

	doc.Dispatch(themeEvent(nil))
	assert.True(t, doc.Root().ClassList.Contains(DarkClass))
}

func TestStorageFailure_AmbientAlsoUnavailable(t *testing.T) {
	doc, _ := page(t, brokenStore{}, &ambient{dark: true, err: errBroken})
	assert.False(t, doc.Root().ClassList.Contains(DarkClass))
}

func TestSync_MirrorsExternalWrite(t *testing.T) {
	store := newMapStore()
	doc, c := page(t, store, &ambient{})

	store.values[StorageKey] = "dark"
	res := c.Sync()

	assert.Equal(t, ModeDark, res.Mode)
	assert.Equal(t, SourceSync, res.Source)
	assert.True(t, doc.Root().ClassList.Contains(DarkClass))
	assert.Equal(t, 0, store.writes, "sync must not write back")

	delete(store.values, StorageKey)
	res = c.Sync()
	assert.Equal(t, ModeDark, res.Mode, "missing value leaves the marker as is")
}

func TestController_CustomOptions(t *testing.T) {
	store := newMapStore()
	doc := document.New(nil)
	c := NewController(store, doc.Root().ClassList, &ambient{}, Options{
		StorageKey: "appearance",
		DarkClass:  "theme-dark",
		EventName:  "app:theme",
	})
	c.Initialize(context.Background())
	c.Register(doc)

	doc.Dispatch(document.NewEvent(EventName, nil))
	assert.False(t, c.IsDark(), "default event name is not subscribed")

	doc.Dispatch(document.NewEvent("app:theme", nil))
	assert.True(t, doc.Root().ClassList.Contains("theme-dark"))
	assert.Equal(t, "dark", store.values["appearance"])
	assert.Equal(t, "app:theme", c.EventName())
	assert.Equal(t, "appearance", c.StorageKey())
	assert.Equal(t, ModeDark, c.Mode())
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
		ok   bool
	}{
		{"dark", ModeDark, true},
		{"light", ModeLight, true},
		{"Dark", "", false},
		{"", "", false},
		{"toggle", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseMode(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}
