package types

// Board configuration, decoded from the embedded JSON for the selected board
// and published section by section on "config/<key>".

type BoardConfig struct {
	Crossing  CrossingConfig  `json:"crossing"`
	Heartbeat HeartbeatConfig `json:"heartbeat"`
	Console   ConsoleConfig   `json:"console"`
}

// Backend names for CrossingConfig.Backend.
const (
	BackendGPIO     = "gpio"
	BackendMCP23017 = "mcp23017"
)

type CrossingConfig struct {
	Buttons []ButtonConfig `json:"buttons"`
	Lamps   LampsConfig    `json:"lamps"`
	Backend string         `json:"backend,omitempty"`  // "gpio" (default) or "mcp23017"
	I2C     I2CConfig      `json:"i2c,omitempty"`      // used by the expander backend
	I2CAddr uint8          `json:"i2c_addr,omitempty"` // expander address, default 0x20
}

type ButtonConfig struct {
	Pin    int    `json:"pin"`
	Pull   string `json:"pull,omitempty"`   // "none","up","down"
	Invert bool   `json:"invert,omitempty"` // true if pressed == low
}

type LampsConfig struct {
	Go   LampConfig `json:"go"`
	Stop LampConfig `json:"stop"`
}

type LampConfig struct {
	Pin       int  `json:"pin"`
	ActiveLow bool `json:"active_low,omitempty"`
}

type I2CConfig struct {
	ID  string `json:"id,omitempty"` // "i2c0","i2c1"
	SDA int    `json:"sda,omitempty"`
	SCL int    `json:"scl,omitempty"`
	Hz  uint32 `json:"hz,omitempty"`
}

type HeartbeatConfig struct {
	Interval int `json:"interval"` // seconds
}

type ConsoleConfig struct {
	UART string `json:"uart,omitempty"` // "uart0","uart1"; empty keeps USB/stdout
	Baud uint32 `json:"baud,omitempty"`
	TX   int    `json:"tx,omitempty"`
	RX   int    `json:"rx,omitempty"`
}
