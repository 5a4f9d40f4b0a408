// Package transcript holds the in-memory session transcript: a bounded,
// scrollable sequence of rendered lines, plus the optional append-only
// log file the transcript is mirrored to.
package transcript

import (
	"strings"
	"time"
)

// ErrorMarker flags an inbound line as an error report from the device.
const ErrorMarker = "ERROR"

// Category classifies a transcript line for display.
type Category int

const (
	// Inbound is a line received from the device.
	Inbound Category = iota
	// InboundError is an inbound line carrying the error marker, or a
	// transport/log failure surfaced to the operator.
	InboundError
	// Outbound is a command submitted by the operator.
	Outbound
)

// Line is one rendered transcript entry. Immutable once created.
type Line struct {
	Text      string
	Category  Category
	Timestamp time.Time
}

// NewInbound builds the transcript entry for one completed device line.
func NewInbound(text string) Line {
	cat := Inbound
	if strings.Contains(text, ErrorMarker) {
		cat = InboundError
	}
	return Line{
		Text:      "[device] " + text,
		Category:  cat,
		Timestamp: time.Now(),
	}
}

// NewOutbound builds the transcript entry mirroring a submitted command.
func NewOutbound(cmd string) Line {
	return Line{
		Text:      "> " + cmd,
		Category:  Outbound,
		Timestamp: time.Now(),
	}
}

// NewNotice builds the transcript entry for a reported-but-non-fatal
// failure, surfaced in the same stream as normal traffic.
func NewNotice(text string) Line {
	return Line{
		Text:      "! " + text,
		Category:  InboundError,
		Timestamp: time.Now(),
	}
}
