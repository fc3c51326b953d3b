package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/linanwx/supportchat/widget"
)

var (
	userNameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true) // cyan
	botNameStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true) // green
	timeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	bodyStyle     = lipgloss.NewStyle().PaddingLeft(3)
)

// ChatPanel displays the conversation in a scrollable viewport. Entries are
// only ever appended.
type ChatPanel struct {
	viewport viewport.Model
	entries  []widget.Patch
	now      func() time.Time
}

// NewChatPanel creates a chat panel. now supplies the reference time for
// relative labels.
func NewChatPanel(now func() time.Time) *ChatPanel {
	if now == nil {
		now = time.Now
	}
	vp := viewport.New(0, 0)
	vp.SetContent("")
	return &ChatPanel{viewport: vp, now: now}
}

func (p *ChatPanel) Update(msg tea.Msg) (Panel, tea.Cmd) {
	switch msg := msg.(type) {
	case PatchMsg:
		if msg.Patch.Kind != widget.PatchAppendMessage {
			return p, nil
		}
		p.entries = append(p.entries, msg.Patch)
		p.refresh()
		if msg.Patch.Scroll {
			p.viewport.GotoBottom()
		}
		return p, nil
	case refreshLabelsMsg:
		atBottom := p.viewport.AtBottom()
		p.refresh()
		if atBottom {
			p.viewport.GotoBottom()
		}
		return p, nil
	}
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

// Len returns the number of messages shown.
func (p *ChatPanel) Len() int { return len(p.entries) }

func (p *ChatPanel) refresh() {
	now := p.now()
	blocks := make([]string, 0, len(p.entries))
	for _, e := range p.entries {
		blocks = append(blocks, renderEntry(e, now, p.viewport.Width))
	}
	p.viewport.SetContent(strings.Join(blocks, "\n\n"))
}

func renderEntry(e widget.Patch, now time.Time, width int) string {
	name := userNameStyle.Render("you")
	if e.Sender == widget.SenderBot {
		name = botNameStyle.Render("support")
	}
	label := e.TimeLabel
	if !e.Timestamp.IsZero() {
		label = widget.FormatTime(e.Timestamp, now)
	}
	header := e.Icon + " " + name + " " + timeStyle.Render(label)

	body := bodyStyle
	if width > 4 {
		body = body.Width(width - 1)
	}
	return header + "\n" + body.Render(e.Text)
}

func (p *ChatPanel) View() string {
	return p.viewport.View()
}

func (p *ChatPanel) SetSize(width, height int) {
	resized := p.viewport.Width != width
	p.viewport.Width = width
	p.viewport.Height = height
	if resized {
		p.refresh()
		p.viewport.GotoBottom()
	}
}
