package ansistyle

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Decode returns the bytes as text using the charset of the Parser.
//
// Bytes below 0x80 are always read as ASCII so that escape sequences survive
// code pages which otherwise map control codes to glyphs.
func (p *Parser) Decode(b []byte) string {
	if p.charset == nil || p.charset == charmap.XUserDefined {
		return string(b)
	}
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		if c < utf8.RuneSelf {
			sb.WriteByte(c)
			continue
		}
		sb.WriteRune(p.charset.DecodeByte(c))
	}
	return sb.String()
}

// Read reads all of r, decodes it with the charset of the Parser and returns the styled text.
func (p *Parser) Read(r io.Reader) (Result, error) {
	if r == nil {
		return Result{}, ErrReader
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("read all: %w", err)
	}
	return p.Styled(p.Decode(b))
}
