//go:build !windows

package ambient

import (
	"context"
	"fmt"
)

// Detect implements Detector.
func (Registry) Detect(context.Context) (bool, error) {
	return false, fmt.Errorf("not windows: %w", ErrUnavailable)
}
