package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/sob/internal/ui/style"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Accent).
			Foreground(lipgloss.Color("#FFFFFF"))

	failureTitleStyle = titleStyle.
				Background(style.Red)

	selectedStyle = lipgloss.NewStyle().
			Foreground(style.Accent).
			Bold(true)

	listStyle = lipgloss.NewStyle().
			PaddingRight(2)

	logStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(style.Muted).
			PaddingLeft(1)
)
