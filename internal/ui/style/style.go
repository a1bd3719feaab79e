// Package style holds the colors and icons used in terminal output.
package style

import "github.com/charmbracelet/lipgloss"

// Log level colors.
var (
	Slate  = lipgloss.Color("#667085")
	Yellow = lipgloss.Color("#F59E0B")
	Red    = lipgloss.Color("#D93025")
	Green  = lipgloss.Color("#22A06B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
)
