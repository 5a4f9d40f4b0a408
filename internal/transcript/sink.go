package transcript

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// Sink is the append-only transcript log file. It is shared between the
// reader-originated and editor-originated append paths, so writes are
// serialized by a mutex.
type Sink struct {
	mu sync.Mutex
	f  *os.File
}

// OpenSink opens path in create-or-append mode.
func OpenSink(path string) (*Sink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &Sink{f: f}, nil
}

// Append writes one timestamped entry. A nil sink means logging is
// disabled and the call is a no-op.
func (s *Sink) Append(text string) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := fmt.Sprintf("[%s] %s\n", time.Now().Format(time.RFC3339), text)
	if _, err := s.f.WriteString(entry); err != nil {
		return fmt.Errorf("log write: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (s *Sink) Close() error {
	if s == nil || s.f == nil {
		return nil
	}
	return s.f.Close()
}
