package ansistyle

import (
	"fmt"
	"iter"
	"unicode/utf8"
)

// Kind identifies the escape that introduced a Segment.
type Kind uint8

const (
	PlainStart  Kind = iota // PlainStart is the leading text before any escape
	CSI                     // CSI is a Control Sequence Introducer, ESC [
	OtherEscape             // OtherEscape is any ESC not followed by a complete CSI
)

func (k Kind) String() string {
	switch k {
	case PlainStart:
		return "plain"
	case CSI:
		return "CSI"
	case OtherEscape:
		return "ESC"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// CSIParams holds the three parts of a control sequence, ESC [ params intermediates final.
type CSIParams struct {
	Params        string // Params are the parameter bytes 0x30-0x3f, such as "1;31"
	Intermediates string // Intermediates are the intermediate bytes 0x20-0x2f
	Final         byte   // Final is the byte that terminates the sequence, such as 'm'
}

// Escape is the escape sequence that preceded a Segment of text.
// CSI is only meaningful when Kind is CSI.
type Escape struct {
	Kind Kind
	CSI  CSIParams
}

// SGR reports whether the escape is a Select Graphic Rendition sequence.
func (e Escape) SGR() bool {
	return e.Kind == CSI && e.CSI.Final == 'm'
}

// Segment is literal text paired with the escape sequence found before it.
type Segment struct {
	Escape Escape
	Text   string
}

// EscapeError reports an escape sequence that was dropped from the text.
type EscapeError struct {
	Pos     int    // Pos is the byte offset of the ESC
	Kind    Kind   // Kind is CSI for an incomplete control sequence, otherwise OtherEscape
	Snippet string // Snippet is up to 10 bytes of text starting at the ESC
}

func (e *EscapeError) Error() string {
	return fmt.Sprintf("%s at %d: %q", e.Unwrap(), e.Pos, e.Snippet)
}

func (e *EscapeError) Unwrap() error {
	if e.Kind == CSI {
		return ErrIncompleteCSI
	}
	return ErrUnknownEsc
}

// Scan returns an iterator over the segments of s.
//
// Each recognized CSI sequence ends the current segment and becomes the escape of
// the next one, so the first segment always has a PlainStart escape and adjacent
// sequences produce segments with empty text. Escapes that are not a complete CSI
// sequence are dropped together with the character that follows the ESC,
// and yielded as an *EscapeError alongside a zero Segment.
// A lone ESC at the very end of s is kept as text.
func Scan(s string) iter.Seq2[Segment, error] {
	return func(yield func(Segment, error) bool) {
		var (
			prev Escape
			buf  []byte
			i, j int
		)
		for {
			k := indexESC(s, j)
			if k < 0 || k+1 >= len(s) {
				break
			}
			if s[k+1] == '[' {
				csi, end, ok := matchCSI(s, k)
				if ok {
					buf = append(buf, s[i:k]...)
					if !yield(Segment{Escape: prev, Text: string(buf)}, nil) {
						return
					}
					buf = buf[:0]
					prev = Escape{Kind: CSI, CSI: csi}
					i, j = end, end
					continue
				}
			}
			buf = append(buf, s[i:k]...)
			_, size := utf8.DecodeRuneInString(s[k+1:])
			i, j = k+1+size, k+1+size
			if !yield(Segment{}, skipped(s, k)) {
				return
			}
		}
		buf = append(buf, s[i:]...)
		yield(Segment{Escape: prev, Text: string(buf)}, nil)
	}
}

// Segments returns every segment of s, in order.
// Dropped escapes are not reported, use Scan to observe them.
func Segments(s string) []Segment {
	segs := []Segment{}
	for seg, err := range Scan(s) {
		if err != nil {
			continue
		}
		segs = append(segs, seg)
	}
	return segs
}

func skipped(s string, pos int) error {
	const snippet = 10
	kind := OtherEscape
	if s[pos+1] == '[' {
		kind = CSI
	}
	end := min(pos+snippet, len(s))
	return &EscapeError{Pos: pos, Kind: kind, Snippet: s[pos:end]}
}

func indexESC(s string, from int) int {
	for i := from; i < len(s); i++ {
		if s[i] == ESC {
			return i
		}
	}
	return -1
}

// matchCSI matches ESC [ params intermediates final at s[pos:].
// It returns the parts and the offset just past the final byte.
func matchCSI(s string, pos int) (CSIParams, int, bool) {
	i := pos + 2
	p := i
	for i < len(s) && isParam(s[i]) {
		i++
	}
	n := i
	for i < len(s) && isIntermediate(s[i]) {
		i++
	}
	if i >= len(s) || !isFinal(s[i]) {
		return CSIParams{}, -1, false
	}
	return CSIParams{Params: s[p:n], Intermediates: s[n:i], Final: s[i]}, i + 1, true
}

// isParam matches the parameter bytes 0-9 : ; < = > ?
func isParam(b byte) bool {
	return b >= 0x30 && b <= 0x3f
}

// isIntermediate matches the intermediate bytes space ! " # $ % & ' ( ) * + , - . /
func isIntermediate(b byte) bool {
	return b >= 0x20 && b <= 0x2f
}

// isFinal matches A-Z [ ] ^ _ ` a-z { | } ~
// but neither @ nor \ which would otherwise sit in the range.
func isFinal(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z':
		return true
	case b >= 'a' && b <= 'z':
		return true
	}
	switch b {
	case '[', ']', '^', '_', '`', '{', '|', '}', '~':
		return true
	}
	return false
}
