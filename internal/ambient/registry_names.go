package ambient

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrUnknownDetector is returned for a detector name that does not exist.
var ErrUnknownDetector = errors.New("unknown color scheme detector")

// DefaultOrder is the detector order used when none is configured.
var DefaultOrder = []string{"env", "portal", "gsettings", "macos", "windows", "terminal"}

// ByName returns the detector with the given config name.
func ByName(name string) (Detector, error) {
	switch name {
	case "env":
		return Env{}, nil
	case "portal":
		return Portal{}, nil
	case "gsettings":
		return GSettings{}, nil
	case "macos":
		return MacOS{}, nil
	case "windows":
		return Registry{}, nil
	case "terminal":
		return Terminal{}, nil
	case "static-dark":
		return Static{Dark: true}, nil
	case "static-light":
		return Static{Dark: false}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDetector, name)
	}
}

// Build creates a chain from detector names. An empty list uses
// DefaultOrder.
func Build(logger *slog.Logger, timeout time.Duration, names []string) (*Chain, error) {
	if len(names) == 0 {
		names = DefaultOrder
	}

	detectors := make([]Detector, 0, len(names))
	for _, name := range names {
		d, err := ByName(name)
		if err != nil {
			return nil, err
		}
		detectors = append(detectors, d)
	}

	return NewChain(logger, timeout, detectors...), nil
}
