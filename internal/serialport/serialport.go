// Package serialport validates and opens the serial device the session
// talks to.
package serialport

import (
	"fmt"
	"io"
	"os"

	serial "go.bug.st/serial"
)

// Conn is the duplex byte stream between the session pipeline and the
// device. The pipeline only needs read/write/close, which keeps it
// testable without hardware.
type Conn interface {
	io.Reader
	io.Writer
	io.Closer
}

// Open opens the port at the given baud rate with the fixed framing the
// monitor uses: 8 data bits, no parity, one stop bit, no flow control.
func Open(port string, baud int) (Conn, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	p, err := serial.Open(port, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", port, err)
	}
	return p, nil
}

// Exists reports whether the device node is currently present. A missing
// node is not fatal at startup: ports appear dynamically and may need
// permissions, so callers warn instead of refusing to start.
func Exists(port string) bool {
	_, err := os.Stat(port)
	return err == nil
}
