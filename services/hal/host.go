//go:build !rp2040 && !rp2350

package hal

import "crossingcode-go/services/hal/internal/platform"

// Host builds: the "gpio" backend is backed by fake pins that tests and the
// simulator drive directly.
type (
	HostPinFactory = platform.HostPinFactory
	FakePin        = platform.FakePin
)

// NewHostPins returns a private fake pin bank serving pins 0..max.
func NewHostPins(max int) *HostPinFactory { return platform.NewHostPinFactory(max) }
