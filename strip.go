package ansistyle

import (
	"log/slog"
	"strings"
)

// Strip returns the text with all escape sequences removed.
// Dropped escapes that are not control sequences are logged to the default logger.
//
// Strip is idempotent, as any ESC left in the returned text is its final byte.
func Strip(s string) string {
	return strip(s, slog.Default())
}

// Strip returns the text with all escape sequences removed.
// The Parser's charset, style and strict options are not used.
func (p *Parser) Strip(s string) string {
	return strip(s, p.log)
}

func strip(s string, log *slog.Logger) string {
	if strings.IndexByte(s, ESC) < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for seg, err := range Scan(s) {
		if err != nil {
			log.Warn("escape sequence ignored", slog.Any("err", err))
			continue
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}
