package formatter

import (
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
// In plain mode the title is printed above the content instead.
func RenderBox(title string, content string) string {
	if plain {
		if title == "" {
			return content
		}
		return Header(title) + "\n" + content
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(render(StyleHeader, strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return Dim(id)
}

// FormatHours renders an effort figure such as "12.5h".
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + "h"
}

// FormatCost renders a cost with thousands separators and at most two
// decimals: 1234.5 becomes "1,234.5".
func FormatCost(c float64) string {
	s := strconv.FormatFloat(c, 'f', 2, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	intPart, frac, _ := strings.Cut(s, ".")

	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

// FormatDate renders a calendar date or "--" when unset.
func FormatDate(t *time.Time) string {
	if t == nil {
		return "--"
	}
	return t.Format(domain.DateLayout)
}
