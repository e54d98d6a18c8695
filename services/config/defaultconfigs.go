package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Key: board name (DefaultBoard or the simulator's --board flag)
// Val: raw JSON bytes for that board
// -----------------------------------------------------------------------------

// Pico on a breadboard: buttons to 3V3 on GP14/GP15, lamps on GP16/GP17.
const cfgPico = `{
  "crossing": {
    "buttons": [{"pin": 14, "pull": "down"}, {"pin": 15, "pull": "down"}],
    "lamps": {
      "go":   {"pin": 16},
      "stop": {"pin": 17}
    },
    "backend": "gpio"
  },
  "heartbeat": {
      "interval": 2
  }
}`

// STM32 demo board pin map: pull-down buttons on 5/6, lamps sunk
// low on 12 (go) and 13 (stop).
const cfgSTM32Demo = `{
  "crossing": {
    "buttons": [{"pin": 5, "pull": "down"}, {"pin": 6, "pull": "down"}],
    "lamps": {
      "go":   {"pin": 12, "active_low": true},
      "stop": {"pin": 13, "active_low": true}
    }
  },
  "heartbeat": {
      "interval": 5
  }
}`

// Lamps and buttons on an MCP23017 at 0x20 on i2c0 (GP4/GP5). Buttons ground
// GPB0/GPB1 against the expander's internal pull-ups. Log on uart0.
const cfgPicoExpander = `{
  "crossing": {
    "buttons": [{"pin": 8, "pull": "up", "invert": true}, {"pin": 9, "pull": "up", "invert": true}],
    "lamps": {
      "go":   {"pin": 0},
      "stop": {"pin": 1}
    },
    "backend": "mcp23017",
    "i2c": {"id": "i2c0", "sda": 4, "scl": 5, "hz": 400000},
    "i2c_addr": 32
  },
  "heartbeat": {
      "interval": 2
  },
  "console": {"uart": "uart0", "baud": 115200, "tx": 0, "rx": 1}
}`

var embeddedConfigs = map[string][]byte{
	"pico":          []byte(cfgPico),
	"stm32_demo":    []byte(cfgSTM32Demo),
	"pico_expander": []byte(cfgPicoExpander),
}

// Boards lists the embedded board names.
func Boards() []string {
	return []string{"pico", "stm32_demo", "pico_expander"}
}
