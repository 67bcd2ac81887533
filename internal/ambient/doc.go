// Package ambient detects whether the desktop environment prefers a dark
// appearance. Detectors are tried in order and the first one that answers
// wins.
package ambient
