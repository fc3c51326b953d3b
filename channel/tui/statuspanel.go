package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/linanwx/supportchat/widget"
)

const typingText = "Support is typing..."

var (
	typingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("1")).
			Padding(0, 1)
)

type banner struct {
	id   widget.BannerID
	text string
}

// StatusPanel shows the typing indicator and any error banners, newest
// banner first.
type StatusPanel struct {
	spinner spinner.Model
	typing  bool
	banners []banner
	width   int
}

// NewStatusPanel creates an empty status panel.
func NewStatusPanel() *StatusPanel {
	return &StatusPanel{spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot))}
}

func (p *StatusPanel) Update(msg tea.Msg) (Panel, tea.Cmd) {
	switch msg := msg.(type) {
	case PatchMsg:
		switch msg.Patch.Kind {
		case widget.PatchShowTyping:
			p.typing = true
			return p, p.spinner.Tick
		case widget.PatchHideTyping:
			p.typing = false
		case widget.PatchShowBanner:
			p.banners = append([]banner{{id: msg.Patch.BannerID, text: msg.Patch.Text}}, p.banners...)
		case widget.PatchRemoveBanner:
			for i, b := range p.banners {
				if b.id == msg.Patch.BannerID {
					p.banners = append(p.banners[:i], p.banners[i+1:]...)
					break
				}
			}
		}
		return p, nil
	case spinner.TickMsg:
		if !p.typing {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd
	}
	return p, nil
}

// Typing reports whether the typing indicator is visible.
func (p *StatusPanel) Typing() bool { return p.typing }

// Banners returns the ids of the visible banners, newest first.
func (p *StatusPanel) Banners() []widget.BannerID {
	ids := make([]widget.BannerID, len(p.banners))
	for i, b := range p.banners {
		ids[i] = b.id
	}
	return ids
}

// Height is the number of lines View renders.
func (p *StatusPanel) Height() int {
	return 1 + len(p.banners)
}

func (p *StatusPanel) View() string {
	lines := make([]string, 0, p.Height())
	style := bannerStyle
	if p.width > 0 {
		style = style.MaxWidth(p.width)
	}
	for _, b := range p.banners {
		lines = append(lines, style.Render("! "+b.text+"  (esc to dismiss)"))
	}
	if p.typing {
		lines = append(lines, typingStyle.Render(p.spinner.View()+" "+typingText))
	} else {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (p *StatusPanel) SetSize(width, _ int) {
	p.width = width
}
