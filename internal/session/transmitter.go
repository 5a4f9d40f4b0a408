package session

import (
	"fmt"
	"io"
	"sync"
)

// Transmitter owns the transport write path. Writes are mutex-guarded so
// concurrent senders cannot interleave their bytes on the wire.
type Transmitter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTransmitter wraps the transport's write half.
func NewTransmitter(w io.Writer) *Transmitter {
	return &Transmitter{w: w}
}

// Send writes one command followed by a newline.
func (t *Transmitter) Send(cmd string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := t.w.Write([]byte(cmd)); err != nil {
		return err
	}
	_, err := t.w.Write([]byte{'\n'})
	return err
}

// WriteLoop drains the outbound queue until it is closed. A failed write
// is reported on errs and the command is considered lost: re-sending an
// unconfirmed command to a physical device is unsafe, so there is no
// retry.
func (t *Transmitter) WriteLoop(queue <-chan string, errs chan<- Event) {
	for cmd := range queue {
		if err := t.Send(cmd); err != nil {
			errs <- Event{Err: fmt.Errorf("serial write: %w", err)}
		}
	}
}
