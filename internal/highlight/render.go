package highlight

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
)

// Painter wraps a text segment in the styling for its class.
type Painter interface {
	Paint(class Class, text string) string
}

// ColorTheme paints with ANSI escapes from fatih/color. Classes without an
// entry are left as is.
type ColorTheme map[Class]*color.Color

// DefaultColorTheme matches the REPL palette: operators green, integers yellow,
// floats cyan, brackets magenta, errors red.
func DefaultColorTheme() ColorTheme {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		c.EnableColor()
		return c
	}
	return ColorTheme{
		ClassOperator: mk(color.FgGreen),
		ClassNumber:   mk(color.FgYellow),
		ClassFloat:    mk(color.FgCyan),
		ClassBracket:  mk(color.FgMagenta),
		ClassError:    mk(color.FgRed, color.Underline),
	}
}

func (t ColorTheme) Paint(class Class, text string) string {
	if c, ok := t[class]; ok && c != nil {
		return c.Sprint(text)
	}
	return text
}

// StyleTheme paints with lipgloss styles; used by the interactive REPL.
type StyleTheme map[Class]lipgloss.Style

func DefaultStyleTheme() StyleTheme {
	return StyleTheme{
		ClassOperator: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		ClassNumber:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		ClassFloat:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		ClassBracket:  lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		ClassError:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Underline(true),
	}
}

func (t StyleTheme) Paint(class Class, text string) string {
	if st, ok := t[class]; ok {
		return st.Render(text)
	}
	return text
}

// Plain paints nothing.
type Plain struct{}

func (Plain) Paint(_ Class, text string) string { return text }

// Render writes src with every region painted by p. Gaps between regions
// (whitespace) are copied unchanged. Regions must be sorted and must not overlap.
func Render(src []byte, regions []Region, p Painter) string {
	if p == nil {
		p = Plain{}
	}
	var sb strings.Builder
	sb.Grow(len(src) + len(regions)*8)
	last := 0
	for _, r := range regions {
		start := min(int(r.Span.Start), len(src))
		end := min(int(r.Span.End), len(src))
		if start < last || end <= start {
			continue
		}
		sb.Write(src[last:start])
		sb.WriteString(p.Paint(r.Class, string(src[start:end])))
		last = end
	}
	sb.Write(src[last:])
	return sb.String()
}

// Text classifies and renders text in one step.
func Text(text string, p Painter) string {
	return Render([]byte(text), ClassifyText(text), p)
}
