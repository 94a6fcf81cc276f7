// Package tui hosts the interactive plan review: a scrollable viewport
// over the rendered plan with a single accept/decline keypress.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	acceptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#04B575"))
)

type Model struct {
	Content  string
	Viewport viewport.Model
	Ready    bool
	Accepted bool
	Done     bool
}

func NewModel(content string) Model {
	return Model{Content: content}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "y", "Y":
			m.Accepted = true
			m.Done = true
			return m, tea.Quit
		case "n", "N", "q", "esc", "ctrl+c":
			m.Accepted = false
			m.Done = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		if !m.Ready {
			m.Viewport = viewport.New(msg.Width, msg.Height-2)
			m.Viewport.SetContent(m.Content)
			m.Ready = true
		} else {
			m.Viewport.Width = msg.Width
			m.Viewport.Height = msg.Height - 2
		}
	}

	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Done {
		if m.Accepted {
			return acceptStyle.Render("Organizing...") + "\n"
		}
		return helpStyle.Render("Aborted.") + "\n"
	}
	if !m.Ready {
		return "Loading plan..."
	}

	var b strings.Builder
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ scroll · y organize · n abort"))
	return b.String()
}

// Run shows the plan full-screen and blocks until the user accepts or
// declines.
func Run(content string) (bool, error) {
	p := tea.NewProgram(NewModel(content), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("interactive review failed: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return false, fmt.Errorf("unexpected model type %T", final)
	}
	return m.Accepted, nil
}
