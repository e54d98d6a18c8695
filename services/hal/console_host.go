//go:build !rp2040 && !rp2350

package hal

import (
	"io"
	"os"

	"crossingcode-go/types"
)

// OpenConsole returns stdout on host builds; UART settings are ignored.
func OpenConsole(types.ConsoleConfig) (io.Writer, error) { return os.Stdout, nil }
