package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// logRetention bounds the panel; older lines are still in the log file.
const logRetention = 500

var (
	logDebugStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	logInfoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	logWarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	logErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// LogPanel shows request and turn diagnostics above the conversation. It
// follows new lines only while scrolled to the end.
type LogPanel struct {
	viewport viewport.Model
	lines    []string
}

func NewLogPanel() *LogPanel {
	return &LogPanel{viewport: viewport.New(0, 0)}
}

func (p *LogPanel) Update(msg tea.Msg) (Panel, tea.Cmd) {
	line, ok := msg.(LogLineMsg)
	if !ok {
		var cmd tea.Cmd
		p.viewport, cmd = p.viewport.Update(msg)
		return p, cmd
	}

	follow := p.viewport.AtBottom()
	p.lines = append(p.lines, strings.TrimRight(line.Line, "\n"))
	if over := len(p.lines) - logRetention; over > 0 {
		p.lines = p.lines[over:]
	}
	p.render()
	if follow {
		p.viewport.GotoBottom()
	}
	return p, nil
}

func (p *LogPanel) render() {
	styled := make([]string, len(p.lines))
	for i, l := range p.lines {
		styled[i] = styleForLogLine(l).Render(l)
	}
	p.viewport.SetContent(strings.Join(styled, "\n"))
}

// styleForLogLine colors a slog text line by its level attribute.
func styleForLogLine(line string) lipgloss.Style {
	switch {
	case strings.Contains(line, "level=ERROR"):
		return logErrorStyle
	case strings.Contains(line, "level=WARN"):
		return logWarnStyle
	case strings.Contains(line, "level=DEBUG"):
		return logDebugStyle
	default:
		return logInfoStyle
	}
}

// Len returns the number of retained log lines.
func (p *LogPanel) Len() int { return len(p.lines) }

func (p *LogPanel) View() string { return p.viewport.View() }

func (p *LogPanel) SetSize(width, height int) {
	p.viewport.Width = width
	p.viewport.Height = height
}
