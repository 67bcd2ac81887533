package theme

// Detail is the payload of a theme signal.
type Detail struct {
	Mode string `json:"mode,omitempty"`
}

// ModeFromDetail extracts the mode field from a signal payload. Missing
// payloads, missing fields and non-string values yield "".
func ModeFromDetail(detail any) string {
	switch d := detail.(type) {
	case Detail:
		return d.Mode
	case *Detail:
		if d == nil {
			return ""
		}
		return d.Mode
	case map[string]any:
		s, _ := d["mode"].(string)
		return s
	case map[string]string:
		return d["mode"]
	default:
		return ""
	}
}
