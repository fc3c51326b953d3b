package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/linanwx/supportchat/widget"
)

const (
	defaultLogRatio      = 0.3
	labelRefreshInterval = 30 * time.Second
	titleText            = "Customer Support"
)

var (
	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	titleStyle     = lipgloss.NewStyle().Bold(true)
)

// Options configures the App.
type Options struct {
	Prompt   string
	ShowLogs bool

	// Submit runs one turn. It is called off the event loop and may block
	// until the reply settles.
	Submit func(text string) error

	// Dismiss removes a banner early. Called off the event loop.
	Dismiss func(id widget.BannerID)

	// Now is the reference clock for relative time labels.
	Now func() time.Time
}

// App is the root bubbletea model that orchestrates panels and layout.
type App struct {
	logPanel    *LogPanel
	chatPanel   *ChatPanel
	statusPanel *StatusPanel
	inputPanel  *InputPanel

	opts          Options
	width, height int
	logRatio      float64
}

// NewApp creates the root TUI model.
func NewApp(opts Options) *App {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &App{
		logPanel:    NewLogPanel(),
		chatPanel:   NewChatPanel(opts.Now),
		statusPanel: NewStatusPanel(),
		inputPanel:  NewInputPanel(opts.Prompt),
		opts:        opts,
		logRatio:    defaultLogRatio,
	}
}

func (m *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, scheduleLabelRefresh())
}

func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEsc:
			return m, m.dismissNewest()
		case tea.KeyPgUp, tea.KeyPgDown:
			_, cmd := m.chatPanel.Update(msg)
			return m, cmd
		}
		_, cmd := m.inputPanel.Update(msg)
		cmds = append(cmds, cmd)

	case InputSubmitMsg:
		if IsQuitCommand(msg.Text) {
			return m, tea.Quit
		}
		return m, m.submit(msg.Text)

	case PatchMsg:
		for _, p := range []Panel{m.chatPanel, m.statusPanel, m.inputPanel} {
			_, cmd := p.Update(msg)
			cmds = append(cmds, cmd)
		}
		m.recalcLayout()

	case refreshLabelsMsg:
		_, cmd := m.chatPanel.Update(msg)
		cmds = append(cmds, cmd, scheduleLabelRefresh())

	case LogLineMsg:
		_, cmd := m.logPanel.Update(msg)
		cmds = append(cmds, cmd)

	case SubmitDoneMsg:
		return m, nil

	default:
		// Spinner ticks, cursor blink and anything else.
		_, cmd := m.statusPanel.Update(msg)
		cmds = append(cmds, cmd)
		_, cmd = m.inputPanel.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *App) submit(text string) tea.Cmd {
	if m.opts.Submit == nil {
		return nil
	}
	return func() tea.Msg {
		return SubmitDoneMsg{Err: m.opts.Submit(text)}
	}
}

func (m *App) dismissNewest() tea.Cmd {
	ids := m.statusPanel.Banners()
	if len(ids) == 0 || m.opts.Dismiss == nil {
		return nil
	}
	id := ids[0]
	return func() tea.Msg {
		m.opts.Dismiss(id)
		return nil
	}
}

func (m *App) View() string {
	if m.width == 0 || m.height == 0 {
		return "initializing..."
	}

	sep := separatorStyle.Render(strings.Repeat("─", m.width))

	sections := []string{titleStyle.Render(titleText)}
	if m.opts.ShowLogs {
		sections = append(sections, m.logPanel.View(), sep)
	}
	sections = append(sections,
		m.chatPanel.View(),
		m.statusPanel.View(),
		sep,
		m.inputPanel.View(),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *App) recalcLayout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	const titleH = 1
	const inputH = 1
	const sepLines = 1

	statusH := m.statusPanel.Height()
	fixed := titleH + inputH + sepLines + statusH
	usable := max(m.height-fixed, 2)

	chatH := usable
	if m.opts.ShowLogs {
		logH := max(int(float64(usable)*m.logRatio), 1)
		chatH = max(usable-logH-1, 1) // one more separator
		m.logPanel.SetSize(m.width, logH)
	}

	m.chatPanel.SetSize(m.width, chatH)
	m.statusPanel.SetSize(m.width, statusH)
	m.inputPanel.SetSize(m.width, inputH)
}

func scheduleLabelRefresh() tea.Cmd {
	return tea.Tick(labelRefreshInterval, func(time.Time) tea.Msg {
		return refreshLabelsMsg{}
	})
}

// IsQuitCommand reports whether text asks to leave the chat.
func IsQuitCommand(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "exit", "quit", "/exit", "/quit":
		return true
	}
	return false
}
