package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/sob/internal/core/domain"
	"go.trai.ch/sob/internal/ui/style"
)

// View renders the target list next to the log pane of the selected target.
func (m *Model) View() string {
	if m.ListHeight == 0 {
		return "Initializing..."
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.targetList(),
		m.logPane(),
	)
}

func (m *Model) targetList() string {
	var s strings.Builder

	title := titleStyle
	for _, node := range m.Targets {
		if node.Status == domain.StatusFailed {
			title = failureTitleStyle
			break
		}
	}
	s.WriteString(title.Render("TARGETS") + "\n\n")

	end := min(m.ListOffset+m.ListHeight, len(m.Targets))
	for i := min(m.ListOffset, end); i < end; i++ {
		s.WriteString(m.renderRow(i, m.Targets[i]) + "\n")
	}

	return listStyle.Render(s.String())
}

func (m *Model) renderRow(index int, node *TargetNode) string {
	icon, colour := style.Status(node.Status.String())
	rowStyle := lipgloss.NewStyle().Foreground(colour)

	cursor := "  "
	if index == m.Selected {
		cursor = selectedStyle.Render("> ")
		if !node.Status.IsTerminal() {
			rowStyle = selectedStyle
		}
	}
	return cursor + rowStyle.Render(icon+" "+node.Name)
}

func (m *Model) logPane() string {
	node := m.selected()
	if node == nil {
		return logStyle.Render(titleStyle.Render("LOGS (waiting...)"))
	}

	mode := " (following)"
	if !m.FollowMode {
		mode = " (manual)"
	}

	return logStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("LOGS: "+node.Name+mode),
		node.Term.View(),
	))
}
