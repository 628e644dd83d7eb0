package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// --- Styles ---

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FF88"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF4444")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)
)

// View renders the full-screen TUI.
func (m Model) View() string {
	switch m.state {
	case stateLogin:
		return m.viewLogin()
	case stateConnecting:
		return m.viewConnecting()
	case stateParcels:
		return m.viewBoard()
	case stateError:
		return m.viewError()
	}
	return ""
}

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("  KETTNO COURIER"))
	b.WriteString("\n\n")
	b.WriteString("  API: ")
	b.WriteString(dimStyle.Render(m.addr))
	b.WriteString("\n\n")
	b.WriteString("  Username: ")
	b.WriteString(m.username.View())
	b.WriteString("\n")
	b.WriteString("  Password: ")
	b.WriteString(m.password.View())
	b.WriteString("\n\n")
	if m.loginErr != "" {
		b.WriteString(errStyle.Render("  " + m.loginErr))
		b.WriteString("\n\n")
	}
	b.WriteString(dimStyle.Render("  [tab] switch field  [enter] login  [esc] quit"))
	return b.String()
}

func (m Model) viewConnecting() string {
	return titleStyle.Render("  KETTNO COURIER") + "\n\n  Signing in to " + m.addr + "..."
}

func (m Model) viewError() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("  KETTNO COURIER"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(errStyle.Render("  ERROR: " + m.err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("  [r] back to login  [q/esc] quit"))
	return b.String()
}

func (m Model) viewBoard() string {
	var b strings.Builder
	header := titleStyle.Render("Parcel Board") +
		dimStyle.Render(fmt.Sprintf("  filter: %s", valueStyle.Render(statusFilters[m.filterIdx])))
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(panelStyle.Render(m.table.View()))
	b.WriteString("\n")
	if m.statusMsg != "" {
		b.WriteString(dimStyle.Render(" " + m.statusMsg))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(" [↑/↓] select  [f] filter  [s] advance status  [n] notify  [r] refresh  [q] quit"))
	return b.String()
}
