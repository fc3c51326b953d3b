package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/linanwx/supportchat/widget"
)

const inputPlaceholder = "Type your message..."

var disabledPromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

// InputPanel is the message field plus its send control. While the send
// control is disabled Enter is ignored.
type InputPanel struct {
	input         textinput.Model
	prompt        string
	disabled      bool
	width, height int
}

// NewInputPanel creates an input panel with the given prompt.
func NewInputPanel(prompt string) *InputPanel {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = inputPlaceholder
	ti.Focus()
	return &InputPanel{input: ti, prompt: prompt}
}

func (p *InputPanel) Update(msg tea.Msg) (Panel, tea.Cmd) {
	switch msg := msg.(type) {
	case PatchMsg:
		return p, p.applyPatch(msg.Patch)
	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter {
			if p.disabled {
				return p, nil
			}
			text := p.input.Value()
			return p, func() tea.Msg { return InputSubmitMsg{Text: text} }
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *InputPanel) applyPatch(patch widget.Patch) tea.Cmd {
	switch patch.Kind {
	case widget.PatchClearInput:
		p.input.Reset()
	case widget.PatchDisableSend:
		p.disabled = true
		p.input.PromptStyle = disabledPromptStyle
	case widget.PatchEnableSend:
		p.disabled = false
		p.input.PromptStyle = lipgloss.NewStyle()
	case widget.PatchFocusInput:
		return p.input.Focus()
	}
	return nil
}

// Disabled reports whether the send control is disabled.
func (p *InputPanel) Disabled() bool { return p.disabled }

// Value returns the current input text.
func (p *InputPanel) Value() string { return p.input.Value() }

func (p *InputPanel) View() string {
	return p.input.View()
}

func (p *InputPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = max(width-lipgloss.Width(p.prompt)-1, 1)
}
