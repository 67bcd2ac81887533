package ambient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// ErrUnavailable is returned by a detector that cannot answer in the current
// environment.
var ErrUnavailable = errors.New("color scheme preference unavailable")

// DefaultTimeout bounds a single detector call.
const DefaultTimeout = 2 * time.Second

// EnvVar overrides detection when set to dark or light.
const EnvVar = "THEMESWITCH_COLOR_SCHEME"

// Detector answers whether dark appearance is preferred.
type Detector interface {
	// Name returns the detector's config name.
	Name() string

	// Detect returns the preference or an error wrapping ErrUnavailable.
	Detect(ctx context.Context) (prefersDark bool, err error)
}

// Chain tries detectors in order.
type Chain struct {
	detectors []Detector
	timeout   time.Duration
	logger    *slog.Logger
}

// NewChain creates a chain over detectors. A zero timeout uses DefaultTimeout.
func NewChain(logger *slog.Logger, timeout time.Duration, detectors ...Detector) *Chain {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Chain{
		detectors: detectors,
		timeout:   timeout,
		logger:    logger,
	}
}

// Detectors returns the detectors in the order they are tried.
func (c *Chain) Detectors() []Detector {
	return c.detectors
}

// PrefersDark returns the answer of the first detector that succeeds. When
// none does it returns false and the joined detector errors.
func (c *Chain) PrefersDark(ctx context.Context) (bool, error) {
	dark, _, err := c.Resolve(ctx)
	return dark, err
}

// Resolve is PrefersDark that also returns the name of the detector that
// answered.
func (c *Chain) Resolve(ctx context.Context) (bool, string, error) {
	var errs []error
	for _, d := range c.detectors {
		if err := ctx.Err(); err != nil {
			return false, "", err
		}

		dctx, cancel := context.WithTimeout(ctx, c.timeout)
		dark, err := d.Detect(dctx)
		cancel()

		if err != nil {
			c.logger.Debug("color scheme detector failed", "detector", d.Name(), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", d.Name(), err))
			continue
		}

		c.logger.Debug("color scheme detected", "detector", d.Name(), "dark", dark)
		return dark, d.Name(), nil
	}

	if len(errs) == 0 {
		return false, "", ErrUnavailable
	}
	return false, "", errors.Join(errs...)
}

// Static always returns the same answer.
type Static struct {
	Dark bool
}

// Name implements Detector.
func (Static) Name() string { return "static" }

// Detect implements Detector.
func (s Static) Detect(context.Context) (bool, error) {
	return s.Dark, nil
}

// Env reads EnvVar (or Var when set).
type Env struct {
	Var    string
	Lookup func(string) (string, bool)
}

// Name implements Detector.
func (Env) Name() string { return "env" }

// Detect implements Detector.
func (e Env) Detect(context.Context) (bool, error) {
	name := e.Var
	if name == "" {
		name = EnvVar
	}
	lookup := e.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	value, ok := lookup(name)
	if !ok || strings.TrimSpace(value) == "" {
		return false, fmt.Errorf("%s not set: %w", name, ErrUnavailable)
	}
	return ParseScheme(value)
}

// ParseScheme interprets a color-scheme string such as "dark",
// "prefer-dark", "'prefer-light'" or "default".
func ParseScheme(value string) (bool, error) {
	v := strings.ToLower(strings.Trim(strings.TrimSpace(value), `'"`))
	switch v {
	case "dark", "prefer-dark":
		return true, nil
	case "light", "prefer-light":
		return false, nil
	default:
		return false, fmt.Errorf("unrecognized color scheme %q: %w", value, ErrUnavailable)
	}
}
