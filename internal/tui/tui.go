// Package tui renders the watcher as a small full-screen card: the last
// formatted call number, the session count, and the watcher identity. It
// implements monitor.Display; the monitor's callbacks arrive as typed
// messages through Program.Send, so all state changes flow through Update.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go.klb.dev/shelfmark/internal/monitor"
)

var (
	primaryColor = lipgloss.Color("#A78BFA") // Purple
	valueColor   = lipgloss.Color("#10B981") // Green
	textColor    = lipgloss.Color("#F9FAFB") // Light text
	mutedColor   = lipgloss.Color("#9CA3AF") // Gray
	borderColor  = lipgloss.Color("#6B7280") // Gray

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(valueColor).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(1, 4)

	countStyle = lipgloss.NewStyle().
			Foreground(textColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	keyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(valueColor)
)

// showMsg carries a monitor.Display.Show callback into the update loop.
type showMsg struct {
	value string
	count int
}

// resetMsg carries a monitor.Display.Reset callback into the update loop.
type resetMsg struct{}

// tickMsg refreshes the uptime line once a second.
type tickMsg time.Time

// Model is the bubbletea model for the watcher display.
type Model struct {
	value   string
	count   int
	source  string
	backend string
	started time.Time

	width    int
	height   int
	quitting bool

	// onReset is invoked from the r key; wired to (*monitor.Monitor).Reset.
	onReset func()
}

// NewModel builds the initial model from the monitor's starting status.
func NewModel(st monitor.Status, onReset func()) Model {
	value := st.LastValue
	if value == "" {
		value = monitor.Placeholder
	}
	return Model{
		value:   value,
		count:   st.Count,
		source:  st.Source,
		backend: st.Backend,
		started: st.StartedAt,
		onReset: onReset,
	}
}

func (m Model) Init() tea.Cmd { return tick() }

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case showMsg:
		m.value = msg.value
		m.count = msg.count

	case resetMsg:
		m.value = monitor.Placeholder
		m.count = 0

	case tickMsg:
		return m, tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "r":
			if m.onReset != nil {
				// Run outside the update loop: Reset calls back into
				// Display.Reset, which Sends to this program.
				reset := m.onReset
				return m, func() tea.Msg {
					reset()
					return nil
				}
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	counted := "call numbers formatted"
	if m.count == 1 {
		counted = "call number formatted"
	}

	card := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("shelfmark"),
		"",
		valueStyle.Render(m.value),
		"",
		countStyle.Render(fmt.Sprintf("%d %s this session", m.count, counted)),
		mutedStyle.Render(fmt.Sprintf("%s | %s | up %s", m.source, m.backend, uptime(m.started))),
		"",
		mutedStyle.Render(keyStyle.Render("r")+" reset   "+keyStyle.Render("q")+" quit"),
	)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
	}
	return card
}

func uptime(started time.Time) string {
	if started.IsZero() {
		return "0s"
	}
	return time.Since(started).Round(time.Second).String()
}

// App wraps the bubbletea program and adapts it to monitor.Display.
type App struct {
	program *tea.Program
}

// New builds the live display. onReset is invoked when the user presses r;
// wire it to (*monitor.Monitor).Reset so the zeroed state flows back through
// Display.Reset.
func New(st monitor.Status, onReset func()) *App {
	model := NewModel(st, onReset)
	return &App{
		program: tea.NewProgram(model, tea.WithAltScreen()),
	}
}

// Run blocks until the user quits.
func (a *App) Run() error {
	_, err := a.program.Run()
	return err
}

// Quit asks the program to exit, for signal handlers.
func (a *App) Quit() { a.program.Quit() }

// Show implements monitor.Display.
func (a *App) Show(value string, count int) {
	a.program.Send(showMsg{value: value, count: count})
}

// Reset implements monitor.Display.
func (a *App) Reset() {
	a.program.Send(resetMsg{})
}
