package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/themeswitch/internal/model"
)

// Waybar text glyphs per mode.
const (
	WaybarDarkIcon  = "\U000f0594" // nf-md-weather_night
	WaybarLightIcon = "\U000f0599" // nf-md-weather_sunny
)

// WaybarStatus represents the Waybar custom module JSON format.
type WaybarStatus struct {
	Text    string `json:"text"`
	Alt     string `json:"alt,omitempty"`
	Tooltip string `json:"tooltip,omitempty"`
	Class   string `json:"class,omitempty"`
}

// WaybarFormatter formats state for a Waybar custom module.
type WaybarFormatter struct{}

// NewWaybarFormatter creates a new Waybar formatter.
func NewWaybarFormatter() *WaybarFormatter {
	return &WaybarFormatter{}
}

// Format writes a single-line Waybar JSON object.
func (f *WaybarFormatter) Format(w io.Writer, state model.State) error {
	return json.NewEncoder(w).Encode(NewWaybarStatus(state))
}

// NewWaybarStatus builds the Waybar status for a state.
func NewWaybarStatus(state model.State) WaybarStatus {
	icon := WaybarLightIcon
	if state.Dark {
		icon = WaybarDarkIcon
	}

	return WaybarStatus{
		Text:    icon,
		Alt:     state.Mode,
		Tooltip: buildTooltip(state),
		Class:   state.Mode,
	}
}

// buildTooltip describes where the mode came from and when it last changed.
func buildTooltip(state model.State) string {
	lines := []string{fmt.Sprintf("Theme: %s", state.Mode)}

	switch {
	case state.Stored != "":
		lines = append(lines, fmt.Sprintf("Saved preference (changed %s)", state.RelativeChange()))
	case state.Detector != "":
		lines = append(lines, fmt.Sprintf("Following system (%s)", state.Detector))
	default:
		lines = append(lines, "Following system")
	}

	if state.Origin != "" {
		lines = append(lines, "Origin: "+state.Origin)
	}

	return strings.Join(lines, "\n")
}
