package hal

import (
	"strings"

	"crossingcode-go/services/hal/internal/halcore"
)

type (
	Pull       = halcore.Pull
	GPIOPin    = halcore.GPIOPin
	PinFactory = halcore.PinFactory
)

const (
	PullNone = halcore.PullNone
	PullUp   = halcore.PullUp
	PullDown = halcore.PullDown
)

// parsePull maps a configured pull name to a Pull. Empty means none;
// anything unrecognised reports false.
func parsePull(s string) (Pull, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return PullNone, true
	case "up", "pullup":
		return PullUp, true
	case "down", "pulldown":
		return PullDown, true
	default:
		return PullNone, false
	}
}
