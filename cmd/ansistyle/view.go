package main

import (
	"fmt"

	"github.com/bengarrett/ansistyle"
	"github.com/bengarrett/ansistyle/render"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
)

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [file]",
		Short: "Page through the styled text, Tab toggles focus and q quits",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, text, err := load(cmd, args)
			if err != nil {
				return err
			}
			res, err := p.Styled(text)
			if err != nil {
				return err
			}
			s, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("new screen: %w", err)
			}
			if err := s.Init(); err != nil {
				return fmt.Errorf("screen init: %w", err)
			}
			defer s.Fini()
			page(s, res)
			return nil
		},
	}
}

// pager holds the scroll offset and focus of the view.
type pager struct {
	top     int
	rows    int // rows is the number of rows of the text, known after a draw
	focused bool
}

func (v *pager) draw(s tcell.Screen, res ansistyle.Result) {
	w, _ := s.Size()
	s.SetStyle(render.Style(res.Default))
	s.Clear()
	var focus map[ansistyle.Attr]ansistyle.Attr
	if v.focused {
		focus = res.Focus
	}
	_, row := render.Draw(s, 0, -v.top, w, res.Runs, focus)
	v.rows = row + v.top + 1
	s.Show()
}

// scroll moves the view by n rows, stopping once the last row of the text
// is at the bottom of a screen of height rows.
func (v *pager) scroll(n, height int) {
	v.top = min(v.top+n, v.rows-height)
	v.top = max(v.top, 0)
}

func page(s tcell.Screen, res ansistyle.Result) {
	v := &pager{}
	for {
		v.draw(s, res)
		switch ev := s.PollEvent().(type) {
		case *tcell.EventResize:
			s.Sync()
		case *tcell.EventKey:
			_, h := s.Size()
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return
			case tcell.KeyTab:
				v.focused = !v.focused
			case tcell.KeyUp:
				v.scroll(-1, h)
			case tcell.KeyDown:
				v.scroll(1, h)
			case tcell.KeyPgUp:
				v.scroll(-h, h)
			case tcell.KeyPgDn:
				v.scroll(h, h)
			case tcell.KeyRune:
				if ev.Rune() == 'q' {
					return
				}
			}
		case nil:
			return
		}
	}
}
