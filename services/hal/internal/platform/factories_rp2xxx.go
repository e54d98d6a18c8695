// services/hal/internal/platform/factories_rp2xx.go
//go:build rp2040 || rp2350

package platform

import (
	"machine"

	"tinygo.org/x/drivers"

	halcore "crossingcode-go/services/hal/internal/halcore"
)

// -----------------------------------------------------------------------------
// Defaults used by hal.Open on Raspberry Pi Pico / Pico 2 (RP2 family)
// -----------------------------------------------------------------------------

// DefaultI2CFactory configures the controller named by setup (i2c0 when
// empty) at setup.Hz, or 400 kHz, on setup's pins or the board defaults.
func DefaultI2CFactory(setup halcore.I2CBusSetup) halcore.I2CBusFactory {
	f := &rp2I2CFactory{buses: make(map[string]drivers.I2C)}

	hz := setup.Hz
	if hz == 0 {
		hz = 400 * machine.KHz
	}
	id := setup.ID
	if id == "" {
		id = "i2c0"
	}

	var (
		hw       *machine.I2C
		sda, scl machine.Pin
	)
	switch id {
	case "i2c0":
		hw, sda, scl = machine.I2C0, machine.I2C0_SDA_PIN, machine.I2C0_SCL_PIN
	case "i2c1":
		hw, sda, scl = machine.I2C1, machine.I2C1_SDA_PIN, machine.I2C1_SCL_PIN
	default:
		return f
	}
	if setup.SDA > 0 || setup.SCL > 0 {
		sda, scl = machine.Pin(setup.SDA), machine.Pin(setup.SCL)
	}
	if err := hw.Configure(machine.I2CConfig{Frequency: hz, SDA: sda, SCL: scl}); err != nil {
		return f
	}
	f.buses[id] = hw
	return f
}

// DefaultPinFactory returns a GPIO factory that maps logical numbers directly
// to machine.Pin(n). This matches Pico/Pico 2 GP numbering.
func DefaultPinFactory() halcore.PinFactory { return rp2PinFactory{} }

// ---- I²C implementation ----

type rp2I2CFactory struct {
	buses map[string]drivers.I2C
}

func (f *rp2I2CFactory) ByID(id string) (drivers.I2C, bool) {
	b, ok := f.buses[id]
	return b, ok
}

// ---- GPIO implementation ----

type rp2PinFactory struct{}

func (rp2PinFactory) ByNumber(n int) (halcore.GPIOPin, bool) {
	// Constrain to RP2’s user GPIOs (GP0..GP28).
	if n < 0 || n > 28 {
		return nil, false
	}
	return &rp2Pin{p: machine.Pin(n), n: n}, true
}

type rp2Pin struct {
	p machine.Pin
	n int
}

func (r *rp2Pin) ConfigureInput(pull halcore.Pull) error {
	var mode machine.PinMode
	switch pull {
	case halcore.PullUp:
		mode = machine.PinInputPullup
	case halcore.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

// ConfigureOutput latches the initial level before switching direction so
// the line never glitches to the opposite level.
func (r *rp2Pin) ConfigureOutput(initial bool) error {
	r.p.Set(initial)
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2Pin) Set(level bool) { r.p.Set(level) }
func (r *rp2Pin) Get() bool      { return r.p.Get() }

func (r *rp2Pin) Toggle() {
	if r.p.Get() {
		r.p.Low()
	} else {
		r.p.High()
	}
}

func (r *rp2Pin) Number() int { return r.n }
