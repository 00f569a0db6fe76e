// Package mailbody extracts the displayable text of an e-mail message
// and quotes it for a reply.
package mailbody

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bengarrett/ansistyle"
	_ "github.com/emersion/go-message/charset" // decodes non UTF-8 text parts
	"github.com/emersion/go-message/mail"
)

var (
	ErrReader = errors.New("reader is nil")
	ErrNoText = errors.New("message has no text/plain part")
)

// Message is the sender and the text body of an e-mail.
type Message struct {
	From string    // From is the name, or the address, of the first sender
	Date time.Time // Date is zero when the message has no valid date
	Body string
}

// Read returns the first text/plain part of the RFC 5322 message in r,
// decoded from its transfer encoding and charset.
//
// Input without a header is returned as the body since it is most likely
// already plain text. A message with a header but no text/plain part
// returns ErrNoText.
func Read(r io.Reader) (Message, error) {
	if r == nil {
		return Message{}, ErrReader
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return Message{}, fmt.Errorf("read message: %w", err)
	}
	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		return Message{Body: string(raw)}, nil
	}
	defer mr.Close()
	if len(mr.Header.Map()) == 0 {
		return Message{Body: string(raw)}, nil
	}
	msg := Message{From: sender(&mr.Header)}
	if date, err := mr.Header.Date(); err == nil {
		msg.Date = date
	}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Message{}, fmt.Errorf("next part: %w", err)
		}
		h, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		contentType, _, _ := h.ContentType()
		if contentType != "" && !strings.HasPrefix(contentType, "text/plain") {
			continue
		}
		body, err := io.ReadAll(part.Body)
		if err != nil {
			return Message{}, fmt.Errorf("read part: %w", err)
		}
		msg.Body = string(body)
		return msg, nil
	}
	return Message{}, ErrNoText
}

// Text returns the body of the message in r, see [Read].
func Text(r io.Reader) (string, error) {
	msg, err := Read(r)
	if err != nil {
		return "", err
	}
	return msg.Body, nil
}

func sender(h *mail.Header) string {
	from, err := h.AddressList("From")
	if err != nil || len(from) == 0 {
		return ""
	}
	if from[0].Name != "" {
		return from[0].Name
	}
	return from[0].Address
}

// Attribution returns the line that introduces a quoted reply,
// or an empty string when the sender is unknown.
func (m Message) Attribution() string {
	switch {
	case m.From == "":
		return ""
	case m.Date.IsZero():
		return fmt.Sprintf("Quoting %s\n", m.From)
	}
	return fmt.Sprintf("Quoting %s (%s)\n", m.From, m.Date.Format(time.DateTime))
}

// Reply returns the attribution followed by the quoted body.
func (m Message) Reply(prefix string) string {
	return m.Attribution() + Quote(m.Body, prefix)
}

// Quote removes the escape sequences from body and starts every line with prefix.
// Each quoted line ends with a newline, and an empty body returns an empty string.
func Quote(body, prefix string) string {
	var b strings.Builder
	for line := range strings.Lines(ansistyle.Strip(body)) {
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		b.WriteString(prefix)
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
