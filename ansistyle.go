// Package ansistyle interprets the ANSI escape sequences found in text, such as
// the SGR colors and styles of program output or e-mail bodies.
// Text is either converted into runs of styled text for a rendering surface,
// or stripped of every escape sequence.
//
// Only the SGR (Select Graphic Rendition) control sequences alter the style.
// Other control sequences are recognized and removed, while escapes that are
// not control sequences are dropped on a best-effort basis.
package ansistyle

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/encoding/charmap"
)

var (
	ErrReader        = errors.New("reader is nil")
	ErrDefaultAttr   = errors.New("default attribute is nil")
	ErrUnknownEsc    = errors.New("unrecognized ESC sequence after ESC")
	ErrIncompleteCSI = errors.New("control sequence without a final byte")
	ErrUnknownParam  = errors.New("unrecognised parameter")
	ErrColorArgs     = errors.New("color parameter requires arguments")
	ErrColorType     = errors.New("unrecognised color type")
	ErrColorValue    = errors.New("expected an integer between 0 and 255")
)

const ESC = 0x1b // ESC is the escape control character code

// Theme is an attribute supplied by the theming of the rendering surface.
type Theme struct {
	Foreground string // Foreground is a color name such as "light gray", "h250" or "#c0c0c0"
	Background string // Background is a color name
	Bold       bool
	Underline  bool
	Standout   bool
}

// Attr returns the theme as a rendering surface attribute.
func (t Theme) Attr() Attr {
	var st Style
	st = st.set(StyleBold, t.Bold)
	st = st.set(StyleUnderline, t.Underline)
	st = st.set(StyleStandout, t.Standout)
	return compose(t.Foreground, t.Background, st)
}

// DefaultAttr is the baseline attribute of unstyled text and the target of a reset,
// with the attribute to use for all text when the rendering surface has focus.
type DefaultAttr struct {
	Theme
	Focus Theme
}

// Attr is an attribute of the rendering surface.
// The foreground is a color name optionally followed by comma separated style names,
// for example "dark red,bold,underline".
type Attr struct {
	FG string
	BG string
}

// Color returns the foreground color of the attribute.
func (a Attr) Color() Color {
	name, _, _ := strings.Cut(a.FG, ",")
	c, _ := ParseColor(name)
	return c
}

// Background returns the background color of the attribute.
func (a Attr) Background() Color {
	c, _ := ParseColor(a.BG)
	return c
}

// Style returns the text decorations named in the foreground.
func (a Attr) Style() Style {
	var st Style
	_, mods, _ := strings.Cut(a.FG, ",")
	for mod := range strings.SplitSeq(mods, ",") {
		for i, name := range Mods() {
			if strings.TrimSpace(mod) == name {
				st |= 1 << i
			}
		}
	}
	return st
}

func compose(fg, bg string, st Style) Attr {
	if fg == "" {
		fg = Default
	}
	if bg == "" {
		bg = Default
	}
	names := append([]string{fg}, st.Names()...)
	return Attr{FG: strings.Join(names, ","), BG: bg}
}

// Run is text that shares one attribute.
type Run struct {
	Attr Attr
	Text string
}

// Width returns the number of terminal cells used by the text.
func (r Run) Width() int {
	return runewidth.StringWidth(r.Text)
}

// Result is the styled text of a parse.
type Result struct {
	Runs    []Run        // Runs are the text in order, one for each change of attribute
	Focus   map[Attr]Attr // Focus maps each attribute to its focused attribute, the zero Attr is for unstyled text
	Default Attr         // Default is the attribute of the theme
}

// String returns the text of the runs without any attributes.
func (r Result) String() string {
	var b strings.Builder
	for _, run := range r.Runs {
		b.WriteString(run.Text)
	}
	return b.String()
}

// Parser converts text with escape sequences into styled runs.
// A Parser is not modified by its methods and is safe for concurrent use.
type Parser struct {
	def        DefaultAttr
	interp     Interpreter
	background bool
	strict     bool
	palette    Palette
	charset    *charmap.Charmap
	log        *slog.Logger
}

// NewParser creates a Parser using a copy of the default attribute.
//
// Background toggles the use of the SGR background colors,
// otherwise all text uses the background of the default attribute.
//
// Strict is a debug mode that will throw errors when the text includes malformed
// or unsupported escape sequences, rather than logging them.
//
// Palette can either be CGA16 or Xterm16 and is only used by the HTML output.
//
// Generally the charset of modern text is UTF-8, which is set with charset as a nil value
// or [charmap.XUserDefined]. Legacy text can use a code page such as [charmap.CodePage437].
func NewParser(def *DefaultAttr, background, strict bool, pal Palette, charset *charmap.Charmap) (*Parser, error) {
	if def == nil {
		return nil, ErrDefaultAttr
	}
	if charset == nil {
		charset = charmap.XUserDefined
	}
	return &Parser{
		def:        *def,
		interp:     NewInterpreter(*def),
		background: background,
		strict:     strict,
		palette:    pal,
		charset:    charset,
		log:        slog.Default(),
	}, nil
}

// WithLogger returns a copy of the Parser that logs diagnostics to l.
func (p *Parser) WithLogger(l *slog.Logger) *Parser {
	cp := *p
	if l == nil {
		l = slog.Default()
	}
	cp.log = l
	return &cp
}

// Styled converts the text into runs of styled text.
//
// Each SGR sequence changes the cumulative style of the text that follows it, starting
// from the default attribute. Runs without text are never included, and so text
// without escape sequences returns a single run using the default attribute.
//
// An error is only returned in strict mode.
func (p *Parser) Styled(text string) (Result, error) {
	res := Result{
		Runs:    []Run{},
		Focus:   map[Attr]Attr{{}: p.def.Focus.Attr()},
		Default: p.def.Attr(),
	}
	st := p.interp.Initial()
	for seg, err := range Scan(text) {
		if err != nil {
			if err := p.diagnose("escape sequence ignored", err); err != nil {
				return res, err
			}
			continue
		}
		if seg.Escape.SGR() {
			next, err := p.interp.Transition(st, seg.Escape.CSI.Params)
			if err := p.diagnose("SGR parameters ignored", err); err != nil {
				return res, err
			}
			st = next
		}
		if seg.Text == "" {
			continue
		}
		res.append(p.attr(st), seg.Text)
		res.Focus[p.attr(st)] = p.def.Focus.Attr()
	}
	return res, nil
}

func (r *Result) append(a Attr, text string) {
	if n := len(r.Runs); n > 0 && r.Runs[n-1].Attr == a {
		r.Runs[n-1].Text += text
		return
	}
	r.Runs = append(r.Runs, Run{Attr: a, Text: text})
}

// attr composes the state with the default attribute.
func (p *Parser) attr(st State) Attr {
	fg := p.def.Foreground
	if !st.FG.IsDefault() {
		fg = st.FG.String()
	}
	bg := p.def.Background
	if p.background && !st.BG.IsDefault() {
		bg = st.BG.String()
	}
	return compose(fg, bg, st.Style)
}

// diagnose logs err, or returns it in strict mode.
func (p *Parser) diagnose(msg string, err error) error {
	if err == nil {
		return nil
	}
	if p.strict {
		return fmt.Errorf("%s: %w", msg, err)
	}
	p.log.Warn(msg, slog.Any("err", err))
	return nil
}

// Styled converts the text into runs of styled text using the default attribute.
// Background colors are used and the text is parsed permissively.
func Styled(text string, def *DefaultAttr) (Result, error) {
	p, err := NewParser(def, true, false, CGA16, nil)
	if err != nil {
		return Result{}, err
	}
	return p.Styled(text)
}
