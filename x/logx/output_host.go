//go:build !(rp2040 || rp2350)

package logx

import (
	"io"
	"os"
)

func defaultOutput() io.Writer { return os.Stdout }
