// Package logx writes tagged diagnostic lines: "[tag] field field ...".
// It replaces bare println so the firmware can point its log at a UART.
package logx

import (
	"io"
	"sync"

	"crossingcode-go/x/conv"
)

var (
	mu     sync.Mutex
	output io.Writer = defaultOutput()
)

// SetOutput redirects all subsequent lines to w. A nil w discards.
func SetOutput(w io.Writer) {
	mu.Lock()
	if w == nil {
		w = io.Discard
	}
	output = w
	mu.Unlock()
}

// Line writes one line. Fields are formatted without fmt or strconv: strings verbatim,
// integers in decimal, bools as true/false, errors by message.
func Line(tag string, fields ...any) {
	buf := make([]byte, 0, 64)
	buf = append(buf, '[')
	buf = append(buf, tag...)
	buf = append(buf, ']')
	for _, f := range fields {
		buf = append(buf, ' ')
		buf = appendField(buf, f)
	}
	buf = append(buf, '\n')

	mu.Lock()
	_, _ = output.Write(buf)
	mu.Unlock()
}

func appendField(b []byte, f any) []byte {
	switch v := f.(type) {
	case string:
		return append(b, v...)
	case int:
		return conv.AppendInt(b, int64(v))
	case int64:
		return conv.AppendInt(b, v)
	case uint8:
		return conv.AppendUint(b, uint64(v))
	case uint32:
		return conv.AppendUint(b, uint64(v))
	case uint64:
		return conv.AppendUint(b, v)
	case bool:
		if v {
			return append(b, "true"...)
		}
		return append(b, "false"...)
	case error:
		return append(b, v.Error()...)
	case interface{ String() string }:
		return append(b, v.String()...)
	case nil:
		return append(b, "<nil>"...)
	default:
		return append(b, '?')
	}
}
