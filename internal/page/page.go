// Package page loads a themed page: it opens the origin's storage, builds the
// document and the ambient detector chain, and runs the theme controller's
// initialization against them.
package page

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jmylchreest/themeswitch/internal/ambient"
	"github.com/jmylchreest/themeswitch/internal/config"
	"github.com/jmylchreest/themeswitch/internal/document"
	"github.com/jmylchreest/themeswitch/internal/model"
	"github.com/jmylchreest/themeswitch/internal/store"
	"github.com/jmylchreest/themeswitch/internal/theme"
)

// Page is a loaded document with its theme controller.
type Page struct {
	Doc        *document.Document
	Controller *theme.Controller
	Store      store.Store
	Origin     string

	logger  *slog.Logger
	ambient *recordingAmbient

	mu   sync.Mutex
	last theme.Resolution

	stopLoop context.CancelFunc
	loopDone chan struct{}
}

// StorageEventName is the event sent when another writer changed the store.
const StorageEventName = "storage"

// Options overrides collaborators, mainly for tests.
type Options struct {
	Logger  *slog.Logger
	Store   store.Store             // Opened from config when nil
	Ambient theme.AmbientPreference // Built from config when nil
}

// recordingAmbient remembers which detector answered.
type recordingAmbient struct {
	pref     theme.AmbientPreference
	detector string
}

func (r *recordingAmbient) PrefersDark(ctx context.Context) (bool, error) {
	if chain, ok := r.pref.(*ambient.Chain); ok {
		dark, name, err := chain.Resolve(ctx)
		r.detector = name
		return dark, err
	}
	return r.pref.PrefersDark(ctx)
}

// OpenStore opens the file store for the configured origin. A corrupt file
// is moved aside and the store reopened empty. When the file still cannot be
// opened the page loads backed by memory only.
func OpenStore(cfg *config.Config, logger *slog.Logger) store.Store {
	path := store.StoragePath(cfg.StorageDir(), cfg.Storage.Origin)
	fs, err := store.NewFileStore(path, cfg.Storage.Origin)
	if errors.Is(err, store.ErrCorruptStorage) {
		backup, rerr := store.RecoverFromCorruption(path)
		if rerr != nil {
			err = errors.Join(err, rerr)
		} else {
			logger.Warn("storage file corrupt, moved aside", "path", path, "backup", backup)
			fs, err = store.NewFileStore(path, cfg.Storage.Origin)
		}
	}
	if err != nil {
		logger.Warn("storage unavailable, preference will not persist", "path", path, "error", err)
		return store.NewMemoryStore()
	}
	return fs
}

// Load builds the page and initializes the theme.
func Load(ctx context.Context, cfg *config.Config, opts Options) (*Page, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	st := opts.Store
	if st == nil {
		st = OpenStore(cfg, logger)
	}

	pref := opts.Ambient
	if pref == nil {
		timeout, err := cfg.DetectorTimeout()
		if err != nil {
			return nil, err
		}
		chain, err := ambient.Build(logger, timeout, cfg.DetectorNames())
		if err != nil {
			return nil, fmt.Errorf("failed to build detector chain: %w", err)
		}
		pref = chain
	}

	doc := document.New(logger)
	rec := &recordingAmbient{pref: pref}

	ctrlOpts := cfg.ControllerOptions()
	ctrlOpts.Logger = logger
	ctrl := theme.NewController(st, doc.Root().ClassList, rec, ctrlOpts)

	p := &Page{
		Doc:        doc,
		Controller: ctrl,
		Store:      st,
		Origin:     cfg.Storage.Origin,
		logger:     logger,
		ambient:    rec,
	}

	p.last = ctrl.Initialize(ctx)
	ctrl.Register(doc)

	// Registered after the controller so it records the applied outcome
	doc.AddEventListener(ctrl.EventName(), func(document.Event) {
		p.record(theme.Resolution{Mode: ctrl.Mode(), Source: theme.SourceEvent})
	})
	doc.AddEventListener(StorageEventName, func(document.Event) {
		p.record(ctrl.Sync())
	})

	loopCtx, stop := context.WithCancel(context.Background())
	p.stopLoop = stop
	p.loopDone = make(chan struct{})
	go func() {
		defer close(p.loopDone)
		if err := doc.Run(loopCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("document event loop stopped", "error", err)
		}
	}()

	return p, nil
}

func (p *Page) record(res theme.Resolution) {
	p.mu.Lock()
	p.last = res
	p.mu.Unlock()
}

// Dispatch sends the theme signal with the given mode through the document's
// event loop and returns once it has been handled. An empty mode sends the
// signal without a payload.
func (p *Page) Dispatch(ctx context.Context, mode string) error {
	var detail any
	if mode != "" {
		detail = theme.Detail{Mode: mode}
	}
	return p.Doc.Send(ctx, document.NewEvent(p.Controller.EventName(), detail))
}

// Sync mirrors the stored value after an external write. It is queued
// behind any signal already sent.
func (p *Page) Sync(ctx context.Context) error {
	return p.Doc.Send(ctx, document.NewEvent(StorageEventName, nil))
}

// State returns a snapshot of the page's theme.
func (p *Page) State() model.State {
	p.mu.Lock()
	last := p.last
	p.mu.Unlock()

	mode := p.Controller.Mode()
	s := model.State{
		Mode:   string(mode),
		Dark:   mode.IsDark(),
		Source: string(last.Source),
		Origin: p.Origin,
		Class:  p.Doc.Root().ClassList.String(),
	}

	if last.Source == theme.SourceAmbient {
		s.Detector = p.ambient.detector
	}

	if stored, found, err := p.Store.Get(p.Controller.StorageKey()); err == nil && found {
		s.Stored = stored
	}

	if fs, ok := p.Store.(*store.FileStore); ok {
		s.ChangedAt = fs.ModTime()
	}

	return s
}

// HTML renders the document root's start tag.
func (p *Page) HTML() string {
	return p.Doc.HTML()
}

// Close stops the event loop and releases the storage.
func (p *Page) Close() error {
	p.Doc.Close()
	p.stopLoop()
	<-p.loopDone
	return p.Store.Close()
}
