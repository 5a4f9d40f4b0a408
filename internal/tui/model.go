// Package tui drives the interactive session: rendering, key dispatch,
// cursor blink, and the bridge between the background I/O tasks and the
// bubbletea event loop.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/tOgg1/sermon/internal/editor"
	"github.com/tOgg1/sermon/internal/serialport"
	"github.com/tOgg1/sermon/internal/session"
	"github.com/tOgg1/sermon/internal/transcript"
)

const (
	blinkInterval = 500 * time.Millisecond
	scrollStep    = 3

	// Queue capacities. The inbound queue absorbs device bursts between
	// event-loop iterations; the outbound queue absorbs typed commands
	// while the writer task is mid-write.
	inboundQueueCap  = 4096
	outboundQueueCap = 64
)

type sessionState int

const (
	stateRunning sessionState = iota
	stateTerminating
)

// Config wires the session's collaborators into the UI.
type Config struct {
	Port     string
	Conn     serialport.Conn
	Sink     *transcript.Sink
	MaxLines int
	Logger   zerolog.Logger
}

type inboundMsg struct {
	ev session.Event
}

type blinkMsg struct{}

// Model is the bubbletea model for the monitor session.
type Model struct {
	port   string
	state  sessionState
	buffer *transcript.Buffer
	editor *editor.Editor
	sink   *transcript.Sink
	log    zerolog.Logger

	inbound  chan session.Event
	outbound chan string

	width         int
	height        int
	cursorVisible bool
}

// NewModel builds the session model. The I/O tasks are started by Run;
// tests drive the model directly.
func NewModel(cfg Config) *Model {
	return &Model{
		port:          cfg.Port,
		state:         stateRunning,
		buffer:        transcript.NewBuffer(cfg.MaxLines),
		editor:        editor.New(),
		sink:          cfg.Sink,
		log:           cfg.Logger,
		inbound:       make(chan session.Event, inboundQueueCap),
		outbound:      make(chan string, outboundQueueCap),
		cursorVisible: true,
	}
}

// Run starts the reader and writer tasks and enters the interactive loop.
// It returns when the operator quits; the I/O tasks are abandoned and
// reclaimed at process exit. The alternate screen and raw mode are
// restored on every exit path by bubbletea.
func Run(cfg Config) error {
	m := NewModel(cfg)

	go session.ReadLoop(cfg.Conn, m.inbound)
	tx := session.NewTransmitter(cfg.Conn)
	go tx.WriteLoop(m.outbound, m.inbound)

	program := tea.NewProgram(m, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForInbound(), blinkCmd())
}

// waitForInbound blocks on the inbound queue and hands the next event to
// Update, which drains the rest without blocking and re-arms this command.
func (m *Model) waitForInbound() tea.Cmd {
	return func() tea.Msg {
		return inboundMsg{ev: <-m.inbound}
	}
}

func blinkCmd() tea.Cmd {
	return tea.Tick(blinkInterval, func(time.Time) tea.Msg { return blinkMsg{} })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		return m, nil
	case blinkMsg:
		m.cursorVisible = !m.cursorVisible
		return m, blinkCmd()
	case inboundMsg:
		m.applyInbound(typed.ev)
		m.drainInbound()
		return m, m.waitForInbound()
	case tea.KeyMsg:
		return m, m.handleKey(typed)
	}
	return m, nil
}

// drainInbound consumes every event already queued without blocking, so
// one loop iteration catches up with a whole burst.
func (m *Model) drainInbound() {
	for {
		select {
		case ev := <-m.inbound:
			m.applyInbound(ev)
		default:
			return
		}
	}
}

func (m *Model) applyInbound(ev session.Event) {
	if ev.Err != nil {
		m.log.Error().Err(ev.Err).Msg("transport error")
		m.appendAndLog(transcript.NewNotice(ev.Err.Error()))
		return
	}
	m.appendAndLog(transcript.NewInbound(ev.Line))
}

// appendAndLog records a line in the transcript buffer and mirrors it to
// the log sink. A sink failure is non-fatal: the in-memory transcript is
// kept and the failure itself is surfaced as a transcript line (buffer
// only, to avoid recursing into the broken sink).
func (m *Model) appendAndLog(line transcript.Line) {
	m.buffer.Append(line)
	if err := m.sink.Append(line.Text); err != nil {
		m.log.Error().Err(err).Msg("log sink write failed")
		m.buffer.Append(transcript.NewNotice(err.Error()))
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.state = stateTerminating
		m.log.Info().Msg("session terminating")
		return tea.Quit
	case tea.KeyEnter:
		m.submit()
	case tea.KeyBackspace:
		m.editor.Backspace()
	case tea.KeyLeft:
		m.editor.Left()
	case tea.KeyRight:
		m.editor.Right()
	case tea.KeyUp:
		m.editor.HistoryUp()
	case tea.KeyDown:
		m.editor.HistoryDown()
	case tea.KeyPgUp:
		m.buffer.ScrollUp(scrollStep)
	case tea.KeyPgDown:
		m.buffer.ScrollDown(scrollStep)
	case tea.KeySpace:
		m.editor.Insert(' ')
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.editor.Insert(r)
		}
	}
	return nil
}

// submit sends the current input line: history, transcript mirror, log,
// then the outbound queue. Blank input is ignored by the editor.
func (m *Model) submit() {
	cmd, ok := m.editor.Submit()
	if !ok {
		return
	}
	m.appendAndLog(transcript.NewOutbound(cmd))
	select {
	case m.outbound <- cmd:
	default:
		// Writer task has fallen far behind; dropping is safer than
		// blocking the UI on a dead device.
		m.log.Warn().Str("cmd", cmd).Msg("outbound queue full, command dropped")
		m.buffer.Append(transcript.NewNotice("outbound queue full, command dropped"))
	}
}
