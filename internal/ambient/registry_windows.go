//go:build windows

package ambient

import (
	"context"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

const personalizeKey = `SOFTWARE\Microsoft\Windows\CurrentVersion\Themes\Personalize`

// Detect implements Detector.
func (Registry) Detect(context.Context) (bool, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, personalizeKey, registry.QUERY_VALUE)
	if err != nil { // older versions of Windows do not have this key
		return false, fmt.Errorf("open %s: %w: %w", personalizeKey, ErrUnavailable, err)
	}
	defer k.Close()

	useLight, _, err := k.GetIntegerValue("AppsUseLightTheme")
	if err != nil {
		return false, fmt.Errorf("AppsUseLightTheme: %w: %w", ErrUnavailable, err)
	}

	return useLight == 0, nil
}
