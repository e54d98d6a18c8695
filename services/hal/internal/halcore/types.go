// services/hal/internal/halcore/types.go
package halcore

import "tinygo.org/x/drivers"

// ---- GPIO ----

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// GPIOPin is a single digital line. Levels are electrical (true = high);
// polarity is applied above this layer.
type GPIOPin interface {
	Number() int
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(bool)
	Get() bool
	Toggle()
}

// PinFactory resolves logical pin numbers to handles.
type PinFactory interface {
	ByNumber(n int) (GPIOPin, bool)
}

// FaultCounter is implemented by pins whose operations can fail out of band
// (e.g. over I²C). Set/Get/Toggle never return errors; failures are counted.
type FaultCounter interface {
	Faults() uint32
}

// ---- Buses ----

// I2CBusFactory injects configured I²C instances by id.
// Uses the TinyGo drivers.I2C interface to remain compatible on MCU builds.
type I2CBusFactory interface {
	ByID(id string) (drivers.I2C, bool)
}

// I2CBusSetup selects and configures one I²C controller. Zero fields take
// the board defaults.
type I2CBusSetup struct {
	ID       string // "i2c0","i2c1"
	SDA, SCL int
	Hz       uint32
}
