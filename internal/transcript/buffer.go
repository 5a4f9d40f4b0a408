package transcript

// Buffer is a capacity-bounded FIFO of transcript lines with scrollback.
// It is owned by the session loop and is not safe for concurrent use.
//
// The scroll offset counts lines the view is shifted up from the tail.
// It is deliberately left alone when new lines arrive — an operator
// reviewing scrollback is not yanked back to the bottom by new traffic —
// and only moves when eviction or an explicit scroll command requires it.
type Buffer struct {
	lines  []Line
	max    int
	offset int
}

// NewBuffer returns an empty buffer capped at maxLines entries.
func NewBuffer(maxLines int) *Buffer {
	return &Buffer{max: maxLines}
}

// Append adds a line, evicting the oldest entry when the cap is exceeded.
// Eviction decrements the scroll offset (floored at zero) so previously
// scrolled content keeps its visual position.
func (b *Buffer) Append(line Line) {
	b.lines = append(b.lines, line)
	if len(b.lines) > b.max {
		b.lines = b.lines[len(b.lines)-b.max:]
		if b.offset > 0 {
			b.offset--
		}
	}
}

// VisibleWindow returns the slice of lines starting at the current view
// position for a viewport of the given height. The result may be longer
// than height; callers render only the first height entries.
func (b *Buffer) VisibleWindow(height int) []Line {
	start := len(b.lines) - (height + b.offset)
	if start < 0 {
		start = 0
	}
	return b.lines[start:]
}

// ScrollUp shifts the view up by n lines, capped so at least the oldest
// line stays reachable.
func (b *Buffer) ScrollUp(n int) {
	b.offset += n
	if maxOffset := len(b.lines) - 1; b.offset > maxOffset {
		b.offset = maxOffset
	}
	if b.offset < 0 {
		b.offset = 0
	}
}

// ScrollDown shifts the view back toward the tail by n lines.
func (b *Buffer) ScrollDown(n int) {
	b.offset -= n
	if b.offset < 0 {
		b.offset = 0
	}
}

// Len returns the number of buffered lines.
func (b *Buffer) Len() int {
	return len(b.lines)
}

// Offset returns the current scroll offset.
func (b *Buffer) Offset() int {
	return b.offset
}
