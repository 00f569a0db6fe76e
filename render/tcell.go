// Package render draws styled text on terminal rendering surfaces,
// a tcell screen or lipgloss styled strings.
package render

import (
	"github.com/bengarrett/ansistyle"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const tabWidth = 8

// Color returns the tcell color, where the 16 named colors and the 8-bit colors share the palette.
func Color(c ansistyle.Color) tcell.Color {
	switch c.Kind {
	case ansistyle.ColorNamed, ansistyle.ColorIndexed:
		return tcell.PaletteColor(int(c.Index))
	case ansistyle.ColorRGB:
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	case ansistyle.ColorDefault:
	}
	return tcell.ColorDefault
}

// Style returns the tcell style of the attribute. Standout is drawn as reverse video.
func Style(a ansistyle.Attr) tcell.Style {
	st := a.Style()
	return tcell.StyleDefault.
		Foreground(Color(a.Color())).
		Background(Color(a.Background())).
		Bold(st.Has(ansistyle.StyleBold)).
		Underline(st.Has(ansistyle.StyleUnderline)).
		Reverse(st.Has(ansistyle.StyleStandout)).
		Blink(st.Has(ansistyle.StyleBlink)).
		Italic(st.Has(ansistyle.StyleItalics)).
		StrikeThrough(st.Has(ansistyle.StyleStrikethrough))
}

// Draw puts the runs on the screen starting at column x and row y,
// and returns the column and row after the last cell.
//
// Text wraps to column x once width cells are used, a width <= 0 never wraps.
// Newlines start a new row and tabs advance to the next multiple of 8 cells.
// Zero width runes such as combining marks are not drawn.
// When focus is not nil, every attribute is replaced by its focused attribute.
func Draw(s tcell.Screen, x, y, width int, runs []ansistyle.Run, focus map[ansistyle.Attr]ansistyle.Attr) (int, int) {
	col, row := x, y
	put := func(r rune, w int, style tcell.Style) {
		if width > 0 && col+w > x+width {
			col, row = x, row+1
		}
		s.SetContent(col, row, r, nil, style)
		col += w
	}
	for _, run := range runs {
		a := run.Attr
		if f, ok := focus[a]; ok {
			a = f
		}
		style := Style(a)
		for _, r := range run.Text {
			switch r {
			case '\n':
				col, row = x, row+1
				continue
			case '\t':
				for range tabWidth - (col-x)%tabWidth {
					put(' ', 1, style)
				}
				continue
			}
			w := runewidth.RuneWidth(r)
			if w == 0 {
				continue
			}
			put(r, w, style)
		}
	}
	return col, row
}
