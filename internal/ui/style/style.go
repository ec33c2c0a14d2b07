// Package style provides the colours and icons shared by the CLI's output.
package style

import "github.com/charmbracelet/lipgloss"

// Colors.
var (
	Accent = lipgloss.Color("#8B5CF6")
	Muted  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
	Dot     = "●"
	Circle  = "○"
)

// Status returns the icon and colour used to display a build status name.
func Status(status string) (string, lipgloss.Color) {
	switch status {
	case "succeeded":
		return Check, Green
	case "failed":
		return Cross, Red
	case "in-progress":
		return Dot, Yellow
	default:
		return Circle, Muted
	}
}
