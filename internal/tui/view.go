package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tOgg1/sermon/internal/transcript"
)

// inputPaneRows is the input pane's total height: one edit row plus the
// border.
const inputPaneRows = 3

var (
	titleStyle      = lipgloss.NewStyle().Bold(true)
	paneStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8"))
	inboundStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	inboundErrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	outboundStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	cursorStyle     = lipgloss.NewStyle().Reverse(true)
)

func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	innerW := m.width - 2
	innerH := m.height - inputPaneRows - 3 // title row + monitor border
	if innerW < 1 || innerH < 1 {
		return ""
	}

	title := "sermon " + m.port
	if off := m.buffer.Offset(); off > 0 {
		title += fmt.Sprintf("  [scrollback +%d]", off)
	}

	window := m.buffer.VisibleWindow(innerH)
	if len(window) > innerH {
		window = window[:innerH]
	}
	rows := make([]string, 0, len(window))
	for _, line := range window {
		rows = append(rows, styleFor(line.Category).Render(truncate(line.Text, innerW)))
	}

	monitor := paneStyle.Width(innerW).Height(innerH).Render(strings.Join(rows, "\n"))
	input := paneStyle.Width(innerW).Render(m.renderInput(innerW))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(truncate(title, m.width)),
		monitor,
		input,
	)
}

// renderInput draws the edit line, horizontally shifted so the cursor
// stays inside the pane, with the cursor cell inverted while visible.
func (m *Model) renderInput(w int) string {
	// Trailing pad gives the cursor a cell at end-of-text.
	runes := append([]rune(m.editor.Text()), ' ')
	cursor := m.editor.Cursor()

	start := 0
	if cursor > w-1 {
		start = cursor - (w - 1)
	}
	end := start + w
	if end > len(runes) {
		end = len(runes)
	}
	visible := runes[start:end]
	cursorAt := cursor - start

	before := outboundStyle.Render(string(visible[:cursorAt]))
	cell := string(visible[cursorAt])
	after := ""
	if cursorAt+1 < len(visible) {
		after = outboundStyle.Render(string(visible[cursorAt+1:]))
	}

	if m.cursorVisible {
		return before + cursorStyle.Render(cell) + after
	}
	return before + outboundStyle.Render(cell) + after
}

func styleFor(cat transcript.Category) lipgloss.Style {
	switch cat {
	case transcript.InboundError:
		return inboundErrStyle
	case transcript.Outbound:
		return outboundStyle
	default:
		return inboundStyle
	}
}

func truncate(s string, w int) string {
	runes := []rune(s)
	if len(runes) <= w {
		return s
	}
	return string(runes[:w])
}
