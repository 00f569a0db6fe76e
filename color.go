package ansistyle

import (
	"fmt"
	"strconv"
	"strings"
)

// ColorKind tags the variant held by a Color.
type ColorKind uint8

const (
	ColorDefault ColorKind = iota // ColorDefault defers to the theme color
	ColorNamed                    // ColorNamed is one of the 16 base color names
	ColorIndexed                  // ColorIndexed is an 8-bit palette index
	ColorRGB                      // ColorRGB is a 24-bit truecolor value
)

// The 16 base color names understood by the rendering surface.
// The SGR codes 30-37 and 40-47 only ever select the first eight.
const (
	Black        = "black"
	DarkRed      = "dark red"
	DarkGreen    = "dark green"
	Brown        = "brown"
	DarkBlue     = "dark blue"
	DarkMagenta  = "dark magenta"
	DarkCyan     = "dark cyan"
	LightGray    = "light gray"
	DarkGray     = "dark gray"
	LightRed     = "light red"
	LightGreen   = "light green"
	Yellow       = "yellow"
	LightBlue    = "light blue"
	LightMagenta = "light magenta"
	LightCyan    = "light cyan"
	White        = "white"

	Default = "default" // Default is the name of the theme color
)

func names() [16]string {
	return [16]string{
		Black, DarkRed, DarkGreen, Brown, DarkBlue, DarkMagenta, DarkCyan, LightGray,
		DarkGray, LightRed, LightGreen, Yellow, LightBlue, LightMagenta, LightCyan, White,
	}
}

// Color is a foreground, background or underline color.
// The zero value is ColorDefault.
type Color struct {
	Kind    ColorKind
	Index   uint8 // Index is the position in the 16 names for ColorNamed, or the 256 color palette for ColorIndexed
	R, G, B uint8
}

// Named returns the named color at index 0-15 of the base colors.
func Named(index uint8) Color {
	return Color{Kind: ColorNamed, Index: index & 0x0f}
}

// Indexed returns the 8-bit palette color.
func Indexed(index uint8) Color {
	return Color{Kind: ColorIndexed, Index: index}
}

// RGB returns the truecolor value.
func RGB(r, g, b uint8) Color {
	return Color{Kind: ColorRGB, R: r, G: g, B: b}
}

// IsDefault reports whether the color defers to the theme.
func (c Color) IsDefault() bool {
	return c.Kind == ColorDefault
}

// String returns the color in the rendering surface syntax,
// a base name such as "dark red", an indexed "h200" or a truecolor "#0a141e".
func (c Color) String() string {
	switch c.Kind {
	case ColorDefault:
		return Default
	case ColorNamed:
		return names()[c.Index&0x0f]
	case ColorIndexed:
		return "h" + strconv.Itoa(int(c.Index))
	case ColorRGB:
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return ""
}

// ParseColor parses the rendering surface syntax returned by Color.String.
// An empty string is treated as "default".
func ParseColor(s string) (Color, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == Default {
		return Color{}, true
	}
	for i, name := range names() {
		if s == name {
			return Named(uint8(i)), true //nolint:gosec
		}
	}
	switch {
	case strings.HasPrefix(s, "h"):
		i, err := strconv.ParseUint(s[1:], 10, 8)
		if err != nil {
			return Color{}, false
		}
		return Indexed(uint8(i)), true
	case strings.HasPrefix(s, "#") && len(s) == len("#rrggbb"):
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return Color{}, false
		}
		return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), true //nolint:gosec
	}
	return Color{}, false
}

// Palette sets the 16 base colors to a colorset of RGB values.
// The ANSI standard never formalized color values and it was left to the system to determine.
// Wikipedia has a [useful table] of the common palettes.
//
// [useful table]: https://en.wikipedia.org/wiki/ANSI_escape_code#3-bit_and_4-bit
type Palette uint

const (
	CGA16   Palette = iota // Color Graphics Adapter colorset defined by IBM for the PC in 1981
	Xterm16                // Xterm terminal emulator program for the X Window System colorset from the mid-1980s
)

// Hex is a color code represented as hexadecimal numeric value.
// These are often 6 digit values RRGGBB (red, green, blue),
// however, certain values can be shortened to 3 digit values.
//
// For example, the code of CGA red "aa0000" (red: aa, green: 00, blue: 00) can shortened to "a00".
type Hex string

const (
	CBlack    Hex = "000"    // black
	CRed      Hex = "a00"    // dark red
	CGreen    Hex = "0a0"    // dark green
	CBrown    Hex = "a50"    // brown
	CBlue     Hex = "00a"    // dark blue
	CMagenta  Hex = "a0a"    // dark magenta
	CCyan     Hex = "0aa"    // dark cyan
	CGray     Hex = "aaa"    // light gray
	CDarkGray Hex = "555"    // dark gray
	CLRed     Hex = "f55"    // light red
	CLGreen   Hex = "5f5"    // light green
	CYellow   Hex = "ff5"    // yellow
	CLBlue    Hex = "55f"    // light blue
	CLMagenta Hex = "f5f"    // light magenta
	CLCyan    Hex = "5ff"    // light cyan
	CWhite    Hex = "fff"    // white
	XBlack    Hex = "000"    // black
	XMarron   Hex = "800000" // dark red
	XGreen    Hex = "008000" // dark green
	XOlive    Hex = "808000" // brown
	XNavy     Hex = "000080" // dark blue
	XPurple   Hex = "800080" // dark magenta
	XTeal     Hex = "008080" // dark cyan
	XSilver   Hex = "c0c0c0" // light gray
	XGray     Hex = "808080" // dark gray
	XRed      Hex = "f00"    // light red
	XLime     Hex = "0f0"    // light green
	XYellow   Hex = "ff0"    // yellow
	XBlue     Hex = "00f"    // light blue
	XFuchsia  Hex = "f0f"    // light magenta
	XAqua     Hex = "0ff"    // light cyan
	XWhite    Hex = "fff"    // white
)

// BG returns the CSS background-color property and color value.
func (h Hex) BG() string {
	if h == "" {
		return ""
	}
	return "background-color:#" + string(h) + ";"
}

// FG returns the CSS color property and color value.
func (h Hex) FG() string {
	if h == "" {
		return ""
	}
	return "color:#" + string(h) + ";"
}

func CGA() [16]Hex {
	return [16]Hex{
		CBlack, CRed, CGreen, CBrown, CBlue, CMagenta, CCyan, CGray,
		CDarkGray, CLRed, CLGreen, CYellow, CLBlue, CLMagenta, CLCyan, CWhite,
	}
}

func Xterm() [16]Hex {
	return [16]Hex{
		XBlack, XMarron, XGreen, XOlive, XNavy, XPurple, XTeal, XSilver,
		XGray, XRed, XLime, XYellow, XBlue, XFuchsia, XAqua, XWhite,
	}
}

// Colors returns the 16 base colors of the palette.
func (p Palette) Colors() [16]Hex {
	if p == Xterm16 {
		return Xterm()
	}
	return CGA()
}

// Hex returns the color as a hexadecimal value using the palette for the base colors.
// Indexed colors above the 16 system colors use the xterm 256 color values.
// A default color returns a blank value.
func (c Color) Hex(p Palette) Hex {
	const system = 16
	switch c.Kind {
	case ColorNamed:
		return p.Colors()[c.Index&0x0f]
	case ColorIndexed:
		if c.Index < system {
			return p.Colors()[c.Index]
		}
		return RGB(xterm256(c.Index)).Hex(p)
	case ColorRGB:
		return Hex(fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B))
	case ColorDefault:
	}
	return ""
}

// xterm256 returns the RGB values of an xterm color index from 16,
// either the 6x6x6 color cube or from 232 the greyscale ramp.
//
// Some helpful links, [256 colors cheat sheet] and [8-bit colors wiki].
//
// [256 colors cheat sheet]: https://www.ditig.com/256-colors-cheat-sheet
// [8-bit colors wiki]: https://en.wikipedia.org/wiki/ANSI_escape_code#8-bit
//
//nolint:mnd
func xterm256(index uint8) (uint8, uint8, uint8) {
	const cube, grey = 16, 232
	if index >= grey {
		v := 8 + (index-grey)*10
		return v, v, v
	}
	level := func(n uint8) uint8 {
		if n == 0 {
			return 0
		}
		return 55 + n*40
	}
	n := index - cube
	return level(n / 36), level(n % 36 / 6), level(n % 6)
}
