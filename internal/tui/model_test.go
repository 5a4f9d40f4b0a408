package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/tOgg1/sermon/internal/session"
	"github.com/tOgg1/sermon/internal/transcript"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	return NewModel(Config{
		Port:     "/dev/ttyUSB0",
		MaxLines: 1000,
		Logger:   zerolog.Nop(),
	})
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(typ tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: typ}
}

func (m *Model) lastLine() transcript.Line {
	window := m.buffer.VisibleWindow(m.buffer.Len())
	return window[len(window)-1]
}

func TestTypingEditsInput(t *testing.T) {
	m := newTestModel(t)
	m.Update(keyRunes("led"))
	m.Update(key(tea.KeySpace))
	m.Update(keyRunes("on"))
	require.Equal(t, "led on", m.editor.Text())

	m.Update(key(tea.KeyBackspace))
	m.Update(key(tea.KeyLeft))
	m.Update(key(tea.KeyRight))
	require.Equal(t, "led o", m.editor.Text())
}

func TestSubmitMirrorsAndEnqueues(t *testing.T) {
	m := newTestModel(t)
	m.Update(keyRunes("reset"))
	m.Update(key(tea.KeyEnter))

	require.Equal(t, "> reset", m.lastLine().Text)
	require.Equal(t, transcript.Outbound, m.lastLine().Category)
	require.Equal(t, 1, m.editor.HistoryLen())
	require.Equal(t, "", m.editor.Text())

	select {
	case cmd := <-m.outbound:
		require.Equal(t, "reset", cmd)
	default:
		t.Fatal("submit did not enqueue the command")
	}
}

func TestBlankSubmitHasNoSideEffects(t *testing.T) {
	m := newTestModel(t)
	m.Update(key(tea.KeySpace))
	m.Update(key(tea.KeySpace))
	m.Update(key(tea.KeyEnter))

	require.Equal(t, 0, m.buffer.Len())
	require.Equal(t, 0, m.editor.HistoryLen())
	require.Empty(t, m.outbound)
}

func TestHistoryKeys(t *testing.T) {
	m := newTestModel(t)
	m.Update(keyRunes("first"))
	m.Update(key(tea.KeyEnter))
	m.Update(keyRunes("second"))
	m.Update(key(tea.KeyEnter))

	m.Update(key(tea.KeyUp))
	require.Equal(t, "second", m.editor.Text())
	m.Update(key(tea.KeyUp))
	require.Equal(t, "first", m.editor.Text())
	m.Update(key(tea.KeyDown))
	require.Equal(t, "second", m.editor.Text())
	m.Update(key(tea.KeyDown))
	require.Equal(t, "", m.editor.Text())
}

func TestInboundEventBecomesTranscriptLine(t *testing.T) {
	m := newTestModel(t)
	m.inbound <- session.Event{Line: "hello"}

	m.Update(m.waitForInbound()())
	require.Equal(t, 1, m.buffer.Len())
	require.Equal(t, "[device] hello", m.lastLine().Text)
	require.Equal(t, transcript.Inbound, m.lastLine().Category)
}

func TestInboundErrorLinesAreClassified(t *testing.T) {
	m := newTestModel(t)
	m.inbound <- session.Event{Line: "ERROR: sensor offline"}
	m.Update(m.waitForInbound()())
	require.Equal(t, transcript.InboundError, m.lastLine().Category)
}

func TestInboundBurstIsDrainedInOneUpdate(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 10; i++ {
		m.inbound <- session.Event{Line: fmt.Sprintf("line %d", i)}
	}

	m.Update(m.waitForInbound()())
	require.Equal(t, 10, m.buffer.Len())
	require.Equal(t, "[device] line 9", m.lastLine().Text, "FIFO order preserved")
}

func TestTransportErrorSurfacesInTranscript(t *testing.T) {
	m := newTestModel(t)
	m.inbound <- session.Event{Err: errors.New("read /dev/ttyUSB0: device unplugged")}

	m.Update(m.waitForInbound()())
	require.Equal(t, 1, m.buffer.Len())
	require.Equal(t, transcript.InboundError, m.lastLine().Category)
	require.Contains(t, m.lastLine().Text, "device unplugged")
}

func TestScrollKeysMoveAndClampOffset(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 5; i++ {
		m.inbound <- session.Event{Line: "x"}
	}
	m.Update(m.waitForInbound()())

	m.Update(key(tea.KeyPgUp))
	require.Equal(t, 3, m.buffer.Offset())
	m.Update(key(tea.KeyPgUp))
	require.Equal(t, 4, m.buffer.Offset(), "capped at len-1")

	m.Update(key(tea.KeyPgDown))
	m.Update(key(tea.KeyPgDown))
	require.Equal(t, 0, m.buffer.Offset(), "floored at zero")
}

func TestNewTrafficDoesNotResetScroll(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 10; i++ {
		m.inbound <- session.Event{Line: "old"}
	}
	m.Update(m.waitForInbound()())
	m.Update(key(tea.KeyPgUp))
	require.Equal(t, 3, m.buffer.Offset())

	m.inbound <- session.Event{Line: "new"}
	m.Update(m.waitForInbound()())
	require.Equal(t, 3, m.buffer.Offset(), "reviewing scrollback is not yanked to the tail")
}

func TestEscQuits(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(key(tea.KeyEsc))
	require.Equal(t, stateTerminating, m.state)
	require.NotNil(t, cmd)
	require.Equal(t, tea.Quit(), cmd())
}

func TestBlinkToggleRearms(t *testing.T) {
	m := newTestModel(t)
	require.True(t, m.cursorVisible)
	_, cmd := m.Update(blinkMsg{})
	require.False(t, m.cursorVisible)
	require.NotNil(t, cmd, "blink tick re-arms itself")
}

func TestLogSinkFailureIsNonFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.log")
	sink, err := transcript.OpenSink(path)
	require.NoError(t, err)
	require.NoError(t, sink.Close()) // writes now fail

	m := NewModel(Config{Port: "/dev/ttyUSB0", MaxLines: 10, Sink: sink, Logger: zerolog.Nop()})
	m.inbound <- session.Event{Line: "hello"}
	m.Update(m.waitForInbound()())

	require.Equal(t, 2, m.buffer.Len(), "line kept, failure surfaced alongside it")
	require.Contains(t, m.lastLine().Text, "log write")
	require.Equal(t, stateRunning, m.state)
}

func TestSubmitIsMirroredToLogSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.log")
	sink, err := transcript.OpenSink(path)
	require.NoError(t, err)
	defer sink.Close()

	m := NewModel(Config{Port: "/dev/ttyUSB0", MaxLines: 10, Sink: sink, Logger: zerolog.Nop()})
	m.Update(keyRunes("ping"))
	m.Update(key(tea.KeyEnter))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "> ping")
}
