// Package session runs the concurrent I/O pipeline between the serial
// connection and the terminal UI: a reader task that assembles raw bytes
// into lines, and a writer task that drains the outbound command queue.
package session

import (
	"io"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	readBufSize = 512
	readBackoff = time.Second
)

// Event is what the reader task delivers to the session loop: either a
// completed device line or a transport failure to surface to the
// operator. Exactly one of the fields is meaningful.
type Event struct {
	Line string
	Err  error
}

// Assembler accumulates raw bytes and emits complete text lines. Both \n
// and \r terminate a line; empty lines are swallowed. Chunks may be split
// at arbitrary byte boundaries — a multi-byte sequence straddling two
// chunks is reassembled intact, and genuinely malformed bytes are
// replaced with the Unicode replacement character rather than failing.
type Assembler struct {
	pending []byte
}

// NewAssembler returns an assembler with an empty pending line.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Feed consumes one raw chunk and returns the lines it completed, in
// arrival order. Terminator bytes never occur inside a UTF-8 multi-byte
// sequence, so scanning bytewise is safe.
func (a *Assembler) Feed(chunk []byte) []string {
	var lines []string
	for _, b := range chunk {
		if b == '\n' || b == '\r' {
			if len(a.pending) > 0 {
				lines = append(lines, strings.ToValidUTF8(string(a.pending), string(utf8.RuneError)))
				a.pending = a.pending[:0]
			}
			continue
		}
		a.pending = append(a.pending, b)
	}
	return lines
}

// ReadLoop continuously reads the transport, assembles complete lines,
// and delivers them to out in FIFO order. It never returns on its own:
// read failures are reported on out and retried after a fixed backoff,
// so a device unplug/replug does not end the session. The loop is
// abandoned at process exit.
func ReadLoop(r io.Reader, out chan<- Event) {
	asm := NewAssembler()
	buf := make([]byte, readBufSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			for _, line := range asm.Feed(buf[:n]) {
				out <- Event{Line: line}
			}
		}
		if err != nil {
			out <- Event{Err: err}
			time.Sleep(readBackoff)
		}
	}
}
