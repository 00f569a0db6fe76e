package render

import (
	"strconv"
	"strings"

	"github.com/bengarrett/ansistyle"
	"github.com/charmbracelet/lipgloss"
)

// LipglossColor returns the lipgloss color.
func LipglossColor(c ansistyle.Color) lipgloss.TerminalColor {
	switch c.Kind {
	case ansistyle.ColorNamed, ansistyle.ColorIndexed:
		return lipgloss.Color(strconv.Itoa(int(c.Index)))
	case ansistyle.ColorRGB:
		return lipgloss.Color(c.String())
	case ansistyle.ColorDefault:
	}
	return lipgloss.NoColor{}
}

// Lipgloss returns the lipgloss style of the attribute using the renderer,
// or the default renderer when re is nil.
func Lipgloss(re *lipgloss.Renderer, a ansistyle.Attr) lipgloss.Style {
	if re == nil {
		re = lipgloss.DefaultRenderer()
	}
	st := a.Style()
	return re.NewStyle().
		Foreground(LipglossColor(a.Color())).
		Background(LipglossColor(a.Background())).
		Bold(st.Has(ansistyle.StyleBold)).
		Underline(st.Has(ansistyle.StyleUnderline)).
		Reverse(st.Has(ansistyle.StyleStandout)).
		Blink(st.Has(ansistyle.StyleBlink)).
		Italic(st.Has(ansistyle.StyleItalics)).
		Strikethrough(st.Has(ansistyle.StyleStrikethrough)).
		TabWidth(lipgloss.NoTabConversion)
}

// ANSI returns the runs as text styled for the color profile of the renderer.
func ANSI(re *lipgloss.Renderer, runs []ansistyle.Run) string {
	var b strings.Builder
	for _, run := range runs {
		style := Lipgloss(re, run.Attr)
		// lipgloss pads multi-line text to a block, so each line is rendered alone
		for i, line := range strings.Split(run.Text, "\n") {
			if i > 0 {
				b.WriteByte('\n')
			}
			if line == "" {
				continue
			}
			b.WriteString(style.Render(line))
		}
	}
	return b.String()
}
