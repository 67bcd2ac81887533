package ambient

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

// XDG desktop portal settings interface.
const (
	PortalDestination = "org.freedesktop.portal.Desktop"
	PortalPath        = "/org/freedesktop/portal/desktop"
	PortalInterface   = "org.freedesktop.portal.Settings"

	AppearanceNamespace = "org.freedesktop.appearance"
	ColorSchemeKey      = "color-scheme"
)

// Portal color-scheme values.
const (
	portalNoPreference uint32 = 0
	portalPreferDark   uint32 = 1
	portalPreferLight  uint32 = 2
)

// Portal reads org.freedesktop.appearance color-scheme from the desktop
// portal on the session bus.
type Portal struct {
	// Read fetches a setting. Defaults to a D-Bus call on the session bus.
	Read func(ctx context.Context, namespace, key string) (any, error)
}

// Name implements Detector.
func (Portal) Name() string { return "portal" }

// Detect implements Detector.
func (p Portal) Detect(ctx context.Context) (bool, error) {
	read := p.Read
	if read == nil {
		read = readPortalSetting
	}

	value, err := read(ctx, AppearanceNamespace, ColorSchemeKey)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return ParsePortalColorScheme(value)
}

// ParsePortalColorScheme interprets the portal's color-scheme value, unwrapping
// variants as returned by the deprecated Read method.
func ParsePortalColorScheme(value any) (bool, error) {
	for {
		v, ok := value.(dbus.Variant)
		if !ok {
			break
		}
		value = v.Value()
	}

	scheme, ok := value.(uint32)
	if !ok {
		return false, fmt.Errorf("unexpected color-scheme type %T: %w", value, ErrUnavailable)
	}

	switch scheme {
	case portalPreferDark:
		return true, nil
	case portalPreferLight:
		return false, nil
	case portalNoPreference:
		return false, fmt.Errorf("no color-scheme preference: %w", ErrUnavailable)
	default:
		return false, fmt.Errorf("unknown color-scheme value %d: %w", scheme, ErrUnavailable)
	}
}

// readPortalSetting calls Settings.ReadOne, falling back to the older Read.
func readPortalSetting(ctx context.Context, namespace, key string) (any, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}

	obj := conn.Object(PortalDestination, dbus.ObjectPath(PortalPath))

	var value dbus.Variant
	err = obj.CallWithContext(ctx, PortalInterface+".ReadOne", 0, namespace, key).Store(&value)
	if err == nil {
		return value, nil
	}

	// ReadOne arrived in portal version 2
	if legacyErr := obj.CallWithContext(ctx, PortalInterface+".Read", 0, namespace, key).Store(&value); legacyErr != nil {
		return nil, fmt.Errorf("ReadOne: %w; Read: %w", err, legacyErr)
	}
	return value, nil
}
