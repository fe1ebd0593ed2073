package tui

import "github.com/charmbracelet/lipgloss"

// Styles 界面样式
type Styles struct {
	Title    lipgloss.Style
	Tab      lipgloss.Style
	TabOn    lipgloss.Style
	Label    lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Loading  lipgloss.Style
	Box      lipgloss.Style
}

func DefaultStyles() *Styles {
	primary := lipgloss.Color("#7C3AED")
	muted := lipgloss.Color("#6C7086")

	return &Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(primary),
		Tab:      lipgloss.NewStyle().Padding(0, 1).Foreground(muted),
		TabOn:    lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(primary),
		Label:    lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4")).Bold(true),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
		Loading:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")),
		Box:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#45475A")).Padding(0, 1),
	}
}
