package ansistyle

import (
	"fmt"
	"html"
	"html/template"
	"io"
	"strings"
)

// WriteHTML writes to w the full HTML fragment of the styled text,
// an outer div using the default colors and inner lines joined with newlines.
func (p *Parser) WriteHTML(w io.Writer, res Result) error {
	if w == nil {
		w = io.Discard
	}
	lines := p.Lines(res)
	fg, bg := p.defaultHex(res.Default)
	t, err := template.New("ansi").Parse(
		`{{define "T"}}<div style="` + fg.FG() + bg.BG() + `">{{ . }}</div>{{end}}`)
	if err != nil {
		return fmt.Errorf("write template parse: %w", err)
	}
	if err := t.ExecuteTemplate(w, "T",
		template.HTML(strings.Join(lines, "\n"))); err != nil { //nolint:gosec
		return fmt.Errorf("write template execute: %w", err)
	}
	return nil
}

// HTML returns the HTML fragment of the styled text.
func (p *Parser) HTML(res Result) (string, error) {
	var b strings.Builder
	if err := p.WriteHTML(&b, res); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Lines renders each line of the styled text into a single HTML string.
// Each run is wrapped in a <span style="...">, and runs that cross a newline are split.
func (p *Parser) Lines(res Result) []string {
	out := []string{}
	var b strings.Builder
	for _, run := range res.Runs {
		style := html.EscapeString(p.style(run.Attr, res.Default))
		for i, text := range strings.Split(run.Text, "\n") {
			if i > 0 {
				out = append(out, b.String())
				b.Reset()
			}
			if text == "" {
				continue
			}
			b.WriteString(`<span style="`)
			b.WriteString(style)
			b.WriteString(`">`)
			b.WriteString(html.EscapeString(text))
			b.WriteString(`</span>`)
		}
	}
	return append(out, b.String())
}

// defaultHex returns the colors of the default attribute,
// where a "default" color uses the light gray on black of the palette.
func (p *Parser) defaultHex(def Attr) (Hex, Hex) {
	const gray, black = 7, 0
	colors := p.palette.Colors()
	fg := def.Color().Hex(p.palette)
	if fg == "" {
		fg = colors[gray]
	}
	bg := def.Background().Hex(p.palette)
	if bg == "" {
		bg = colors[black]
	}
	return fg, bg
}

// style takes the Attr and returns a HTML style attribute.
// The background is left out when it matches the default attribute.
func (p *Parser) style(a, def Attr) string {
	defFG, defBG := p.defaultHex(def)
	fg := a.Color().Hex(p.palette)
	if fg == "" {
		fg = defFG
	}
	bg := a.Background().Hex(p.palette)
	if bg == defBG {
		bg = ""
	}
	st := a.Style()
	if st.Has(StyleStandout) {
		if bg == "" {
			bg = defBG
		}
		fg, bg = bg, fg
	}
	parts := []string{fg.FG(), bg.BG()}
	if st.Has(StyleBold) {
		parts = append(parts, "font-weight:bold;")
	}
	if st.Has(StyleItalics) {
		parts = append(parts, "font-style:italic;")
	}
	decorations := []string{}
	if st.Has(StyleUnderline) {
		decorations = append(decorations, "underline")
	}
	if st.Has(StyleStrikethrough) {
		decorations = append(decorations, "line-through")
	}
	if st.Has(StyleBlink) {
		decorations = append(decorations, "blink")
	}
	if len(decorations) > 0 {
		parts = append(parts, "text-decoration:"+strings.Join(decorations, " ")+";")
	}
	return strings.Join(parts, "")
}
