//go:build rp2040 || rp2350

package hal

import (
	"io"
	"machine"

	"crossingcode-go/errcode"
	"crossingcode-go/types"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
)

// OpenConsole returns the log sink named by cfg. An empty UART keeps the
// USB CDC serial console.
func OpenConsole(cfg types.ConsoleConfig) (io.Writer, error) {
	var hw *uartx.UART
	switch cfg.UART {
	case "":
		return machine.Serial, nil
	case "uart0":
		hw = uartx.UART0
	case "uart1":
		hw = uartx.UART1
	default:
		return nil, errcode.Wrap("console "+cfg.UART, errcode.UnknownBus, nil)
	}
	baud := cfg.Baud
	if baud == 0 {
		baud = 115200
	}
	// Defaults inside uartx apply to zero pins.
	if err := hw.Configure(uartx.UARTConfig{
		BaudRate: baud,
		TX:       machine.Pin(cfg.TX),
		RX:       machine.Pin(cfg.RX),
	}); err != nil {
		return nil, errcode.Wrap("console "+cfg.UART, errcode.BusFault, err)
	}
	return hw, nil
}
