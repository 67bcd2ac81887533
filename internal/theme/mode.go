package theme

// Mode is the persisted theme preference.
type Mode string

const (
	ModeDark  Mode = "dark"
	ModeLight Mode = "light"
)

// Defaults for the storage key, marker class and signal name.
const (
	StorageKey = "themeMode"
	DarkClass  = "dark"
	EventName  = "basecoat:theme"
)

// ParseMode matches s exactly against "dark" and "light".
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeDark:
		return ModeDark, true
	case ModeLight:
		return ModeLight, true
	default:
		return "", false
	}
}

// ModeFor returns the mode for a dark flag.
func ModeFor(dark bool) Mode {
	if dark {
		return ModeDark
	}
	return ModeLight
}

// IsDark reports whether m is the dark mode.
func (m Mode) IsDark() bool {
	return m == ModeDark
}

func (m Mode) String() string {
	return string(m)
}

// Source identifies what decided the initial mode.
type Source string

const (
	SourceStored  Source = "stored"  // A value was found in the store
	SourceAmbient Source = "ambient" // The ambient preference answered
	SourceDefault Source = "default" // Nothing answered; light
	SourceEvent   Source = "event"   // A theme signal was handled
	SourceSync    Source = "sync"    // An external store write was mirrored
)
