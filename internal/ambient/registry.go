package ambient

// Registry reads AppsUseLightTheme from the Windows registry. It is
// unavailable on other platforms.
type Registry struct{}

// Name implements Detector.
func (Registry) Name() string { return "windows" }
