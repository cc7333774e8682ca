// Package tui renders the live session dashboard: the aggregator report
// re-sampled on a tick, in an alt-screen viewport.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cognitive-os/orchestra/internal/dashboard"
	"github.com/cognitive-os/orchestra/internal/style"
)

type tickMsg time.Time

// Model is the bubbletea model for the live dashboard.
type Model struct {
	refresh  func() *dashboard.Report
	interval time.Duration

	width  int
	height int

	viewport viewport.Model
	keys     KeyMap
	help     help.Model
	showHelp bool

	report *dashboard.Report
}

// NewModel creates a dashboard model. refresh is called on every tick
// (and on 'r') to produce a fresh report.
func NewModel(refresh func() *dashboard.Report, interval time.Duration) *Model {
	h := help.New()
	h.ShowAll = false
	return &Model{
		refresh:  refresh,
		interval: interval,
		viewport: viewport.New(0, 0),
		keys:     DefaultKeyMap(),
		help:     h,
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	m.report = m.refresh()
	return m.tick()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 4 // header + footer
		m.viewport.SetContent(m.content())
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			m.report = m.refresh()
			m.viewport.SetContent(m.content())
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			m.help.ShowAll = m.showHelp
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tickMsg:
		m.report = m.refresh()
		m.viewport.SetContent(m.content())
		return m, m.tick()
	}

	return m, nil
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Faint(true).Padding(0, 1)
)

// View implements tea.Model.
func (m *Model) View() string {
	title := titleStyle.Render("Orchestra: live sessions")
	footer := footerStyle.Render(m.help.View(m.keys))
	return title + "\n" + m.viewport.View() + "\n" + footer
}

// content renders the current report as text for the viewport.
func (m *Model) content() string {
	r := m.report
	if r == nil {
		return "no data yet"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Sampled %s, %d active session(s)\n",
		r.Timestamp.Format("15:04:05"), r.TotalActive)
	fmt.Fprintf(&b, "CPU %.1f%% total (%.1f%%/agent)   Memory %.1f MB total (%.1f MB/agent)\n",
		r.TotalCPU, r.AvgCPU, r.TotalMemMB, r.AvgMemMB)
	fmt.Fprintf(&b, "Terminals: %s\n\n", strings.Join(r.Emulators, ", "))

	tbl := style.NewTable(
		style.Column{Name: "SESSION", Width: 28},
		style.Column{Name: "AGENT", Width: 22},
		style.Column{Name: "PID", Width: 7, Align: style.AlignRight},
		style.Column{Name: "STATUS", Width: 10},
		style.Column{Name: "CPU%", Width: 6, Align: style.AlignRight},
		style.Column{Name: "MEM MB", Width: 8, Align: style.AlignRight},
		style.Column{Name: "UP", Width: 6, Align: style.AlignRight},
	).SetIndent("")

	for _, row := range r.Sessions {
		status := row.Status
		if !row.Valid {
			status = status + "?"
		}
		tbl.AddRow(
			row.SessionID,
			row.AgentName,
			fmt.Sprintf("%d", row.PID),
			status,
			fmt.Sprintf("%.1f", row.CPUPercent),
			fmt.Sprintf("%.1f", row.MemoryMB),
			fmt.Sprintf("%ds", row.UptimeSecs),
		)
	}
	b.WriteString(tbl.Render())
	return b.String()
}

// Run starts the dashboard in the alternate screen and blocks until the
// user quits.
func Run(refresh func() *dashboard.Report, interval time.Duration) error {
	p := tea.NewProgram(NewModel(refresh, interval), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
