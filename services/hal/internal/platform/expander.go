// services/hal/internal/platform/expander.go
package platform

import (
	"sync/atomic"

	"crossingcode-go/errcode"
	"crossingcode-go/services/hal/internal/halcore"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/mcp23017"
)

// DefaultExpanderAddr is the MCP23017 address with A0..A2 tied low.
const DefaultExpanderAddr = 0x20

// ExpanderPinFactory serves the 16 lines of an MCP23017 on an I²C bus as
// GPIO pins 0..15 (GPA0..GPA7, GPB0..GPB7).
type ExpanderPinFactory struct {
	dev  *mcp23017.Device
	addr uint8
}

// NewExpanderPinFactory probes the expander at addr on bus.
func NewExpanderPinFactory(bus drivers.I2C, addr uint8) (*ExpanderPinFactory, error) {
	if addr == 0 {
		addr = DefaultExpanderAddr
	}
	dev, err := mcp23017.NewI2C(bus, addr)
	if err != nil {
		return nil, err
	}
	return &ExpanderPinFactory{dev: dev, addr: addr}, nil
}

// Addr reports the I²C address the expander answered on.
func (f *ExpanderPinFactory) Addr() uint8 { return f.addr }

func (f *ExpanderPinFactory) ByNumber(n int) (halcore.GPIOPin, bool) {
	if n < 0 || n > 15 {
		return nil, false
	}
	return &expanderPin{p: f.dev.Pin(n), n: n}, true
}

// expanderPin adapts an expander line to GPIOPin. Bus errors cannot be
// returned from Set/Get/Toggle, so they are counted instead. Outputs keep
// their last written level so Toggle costs one bus write.
type expanderPin struct {
	p      mcp23017.Pin
	n      int
	level  bool
	faults atomic.Uint32
}

// ConfigureInput sets the line as an input. PullUp enables the line's
// internal 100k pull-up (GPPU); the expander has no pull-downs.
func (e *expanderPin) ConfigureInput(pull halcore.Pull) error {
	switch pull {
	case halcore.PullNone:
		return e.p.SetMode(mcp23017.Input)
	case halcore.PullUp:
		return e.p.SetMode(mcp23017.Input | mcp23017.Pullup)
	default:
		return &errcode.E{C: errcode.InvalidParams, Op: "configure mcp23017 pin", Msg: "no pull-down"}
	}
}

func (e *expanderPin) ConfigureOutput(initial bool) error {
	if err := e.p.Set(initial); err != nil {
		return err
	}
	e.level = initial
	return e.p.SetMode(mcp23017.Output)
}

func (e *expanderPin) Set(level bool) {
	if err := e.p.Set(level); err != nil {
		e.faults.Add(1)
		return
	}
	e.level = level
}

func (e *expanderPin) Get() bool {
	v, err := e.p.Get()
	if err != nil {
		e.faults.Add(1)
		return e.level
	}
	return v
}

func (e *expanderPin) Toggle() { e.Set(!e.level) }

func (e *expanderPin) Number() int { return e.n }

func (e *expanderPin) Faults() uint32 { return e.faults.Load() }
