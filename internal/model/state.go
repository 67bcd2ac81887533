// Package model defines the data reported about a page's theme.
package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// State is a snapshot of the theme on a page.
type State struct {
	Mode string `json:"mode" yaml:"mode"`
	Dark bool   `json:"dark" yaml:"dark"`

	// Source is what decided the mode: stored, ambient, default, event or sync.
	Source string `json:"source" yaml:"source"`
	// Detector is the ambient detector that answered, if any.
	Detector string `json:"detector,omitempty" yaml:"detector,omitempty"`
	// Stored is the raw stored value, empty when none was read.
	Stored string `json:"stored,omitempty" yaml:"stored,omitempty"`

	Origin    string    `json:"origin" yaml:"origin"`
	Class     string    `json:"class" yaml:"class"`
	ChangedAt time.Time `json:"changed_at,omitzero" yaml:"changed_at,omitempty"`
}

// Validation errors.
var (
	ErrInvalidMode  = errors.New("mode must be dark or light")
	ErrModeMismatch = errors.New("dark flag does not match mode")
)

// Validate checks that the state is internally consistent.
func (s *State) Validate() error {
	switch s.Mode {
	case "dark", "light":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, s.Mode)
	}
	if s.Dark != (s.Mode == "dark") {
		return ErrModeMismatch
	}
	return nil
}

// RelativeChange returns a human-readable time since the preference was last
// written, or "never" when it has not been.
func (s *State) RelativeChange() string {
	if s.ChangedAt.IsZero() {
		return "never"
	}
	return humanize.Time(s.ChangedAt)
}
