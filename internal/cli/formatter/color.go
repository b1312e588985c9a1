package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

var plain bool

// SetPlain switches every renderer to unstyled, borderless output. It is
// meant to be set once at startup when stdout is not a terminal.
func SetPlain(v bool) {
	plain = v
}

func render(style lipgloss.Style, text string) string {
	if plain {
		return text
	}
	return style.Render(text)
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", render(StyleHeader, upper), render(StyleDim, line))
}

func Dim(text string) string {
	return render(StyleDim, text)
}

func Bold(text string) string {
	return render(StyleBold, text)
}

// StatusMark prefixes done and in-progress nodes; not-started nodes get
// no mark.
func StatusMark(status domain.NodeStatus) string {
	switch status {
	case domain.StatusDone:
		return render(StyleGreen, "✔ ")
	case domain.StatusInProgress:
		return render(StyleYellowBold, "▶ ")
	default:
		return ""
	}
}

// TypeBadge returns the node type as a short purple label.
func TypeBadge(t domain.NodeType) string {
	return render(StylePurple, strings.ReplaceAll(string(t), "_", " "))
}
