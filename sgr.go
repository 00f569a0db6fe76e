package ansistyle

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SGR parameter codes.
const (
	Reset         = "0"
	Bold          = "1"
	Italics       = "3"
	Underline     = "4"
	Blink         = "5"
	Standout      = "7"
	Strikethrough = "9"
	SetFG         = "38"
	SetBG         = "48"
	SetUL         = "58"

	xterm     = "5" // 38;5;n selects an 8-bit palette color
	truecolor = "2" // 38;2;r;g;b selects a 24-bit color
)

// Style is the set of text decorations, in rendering surface order.
type Style uint8

const (
	StyleBold Style = 1 << iota
	StyleUnderline
	StyleStandout
	StyleBlink
	StyleItalics
	StyleStrikethrough
)

// Mods are the rendering surface names of each Style bit, in order.
func Mods() [6]string {
	return [6]string{"bold", "underline", "standout", "blink", "italics", "strikethrough"}
}

// Has reports whether every bit of x is set.
func (s Style) Has(x Style) bool {
	return s&x == x
}

// Names returns the rendering surface names of the set bits.
func (s Style) Names() []string {
	out := []string{}
	for i, name := range Mods() {
		if s&(1<<i) != 0 {
			out = append(out, name)
		}
	}
	return out
}

func (s Style) set(x Style, on bool) Style {
	if on {
		return s | x
	}
	return s &^ x
}

// State is the cumulative graphic rendition while text is parsed.
// Default colors resolve to the theme when the state is composed into an Attr.
type State struct {
	FG    Color
	BG    Color
	UL    Color // UL is the underline color, which is parsed but not rendered
	Style Style
}

// styles and the color tables are the fixed SGR lookups.
var (
	styles = map[string]Style{
		Bold:          StyleBold,
		Italics:       StyleItalics,
		Underline:     StyleUnderline,
		Blink:         StyleBlink,
		Standout:      StyleStandout,
		Strikethrough: StyleStrikethrough,
	}
	foregrounds = colorTable(30) //nolint:mnd
	backgrounds = colorTable(40) //nolint:mnd
)

func colorTable(first int) map[string]Color {
	const basic = 8
	m := make(map[string]Color, basic)
	for i := range basic {
		m[strconv.Itoa(first+i)] = Named(uint8(i)) //nolint:gosec
	}
	return m
}

// Interpreter applies SGR parameters to a State.
// It holds no mutable data and may be shared.
type Interpreter struct {
	reset State
}

// NewInterpreter returns an Interpreter that resets to the default attribute.
//
// The reset standout flag is taken from the default underline flag and not the
// default standout flag, which matches the behavior of the mail client this
// output is rendered by.
func NewInterpreter(def DefaultAttr) Interpreter {
	var st Style
	st = st.set(StyleBold, def.Bold)
	st = st.set(StyleUnderline, def.Underline)
	st = st.set(StyleStandout, def.Underline)
	return Interpreter{reset: State{Style: st}}
}

// Initial returns the State at the start of the text, which is the reset state.
func (in Interpreter) Initial() State {
	return in.reset
}

// Transition applies the parameter bytes of one SGR sequence to st and returns the new State.
//
// Parameters are separated by ';' and an empty parameter is read as 0.
// Problems are returned as a joined error, but never stop the returned State from
// being usable. An unknown parameter is skipped, a malformed color value leaves
// the color unchanged, and a color missing its arguments abandons the rest of the sequence.
func (in Interpreter) Transition(st State, params string) (State, error) { //nolint:gocyclo
	ps := strings.Split(params, ";")
	for i, p := range ps {
		if p == "" {
			ps[i] = Reset
		}
	}
	var errs []error
	for i := 0; i < len(ps); i++ {
		p := ps[i]
		if p == Reset {
			st = in.reset
			continue
		}
		if s, ok := styles[p]; ok {
			st.Style |= s
			continue
		}
		if c, ok := foregrounds[p]; ok {
			st.FG = c
			continue
		}
		if c, ok := backgrounds[p]; ok {
			st.BG = c
			continue
		}
		switch p {
		case SetFG, SetBG, SetUL:
		default:
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownParam, p))
			continue
		}
		c, n, err := extended(ps[i+1:])
		i += n
		if errors.Is(err, ErrColorArgs) || errors.Is(err, ErrColorType) {
			errs = append(errs, fmt.Errorf("%s: %w", p, err))
			break
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p, err))
			continue
		}
		switch p {
		case SetFG:
			st.FG = c
		case SetBG:
			st.BG = c
		case SetUL:
			st.UL = c
		}
	}
	if len(errs) == 0 {
		return st, nil
	}
	return st, fmt.Errorf("%q: %w", params, errors.Join(errs...))
}

// extended parses the arguments that follow 38, 48 or 58,
// either 5;n for an 8-bit palette index or 2;r;g;b for a truecolor.
// It returns the number of arguments consumed.
func extended(args []string) (Color, int, error) {
	if len(args) == 0 {
		return Color{}, 0, ErrColorArgs
	}
	switch args[0] {
	case xterm:
		const n = 2
		if len(args) < n {
			return Color{}, len(args), fmt.Errorf("%w: missing 8-bit color index", ErrColorArgs)
		}
		idx, err := component(args[1])
		if err != nil {
			return Color{}, n, err
		}
		return Indexed(idx), n, nil
	case truecolor:
		const n = 4
		if len(args) < n {
			return Color{}, len(args), fmt.Errorf("%w: missing RGB components", ErrColorArgs)
		}
		var rgb [3]uint8
		for i := range rgb {
			v, err := component(args[1+i])
			if err != nil {
				return Color{}, n, err
			}
			rgb[i] = v
		}
		return RGB(rgb[0], rgb[1], rgb[2]), n, nil
	}
	return Color{}, 1, fmt.Errorf("%w: %s", ErrColorType, args[0])
}

// component parses a color index or RGB channel, an integer from 0 to 255.
func component(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrColorValue, s)
	}
	return uint8(v), nil
}
