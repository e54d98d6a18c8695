package hal

import (
	"crossingcode-go/errcode"
	"crossingcode-go/services/hal/internal/halcore"
	"crossingcode-go/services/hal/internal/platform"
	"crossingcode-go/types"
	"crossingcode-go/x/conv"
	"crossingcode-go/x/logx"
)

func init() {
	RegisterBackend(types.BackendGPIO, BackendFunc(func(BackendInput) (PinFactory, error) {
		return platform.DefaultPinFactory(), nil
	}))
	RegisterBackend(types.BackendMCP23017, BackendFunc(openExpander))
}

// openExpander brings up the configured I²C controller and probes the
// expander on it.
func openExpander(in BackendInput) (PinFactory, error) {
	c := in.Config.I2C
	id := c.ID
	if id == "" {
		id = "i2c0"
	}
	buses := platform.DefaultI2CFactory(halcore.I2CBusSetup{ID: id, SDA: c.SDA, SCL: c.SCL, Hz: c.Hz})
	bus, ok := buses.ByID(id)
	if !ok {
		return nil, errcode.Wrap("open "+id, errcode.UnknownBus, nil)
	}
	f, err := platform.NewExpanderPinFactory(bus, in.Config.I2CAddr)
	if err != nil {
		return nil, errcode.Wrap("probe mcp23017", errcode.BusFault, err)
	}
	logx.Line("hal", "mcp23017 on", id, "addr", string(conv.AppendHex8(nil, f.Addr())))
	return f, nil
}
