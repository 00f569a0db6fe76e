package mailbody_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/bengarrett/ansistyle/internal/mailbody"
	"github.com/nalgeon/be"
)

func crlf(s string) string {
	return strings.ReplaceAll(s, "\n", "\r\n")
}

func TestMultipart(t *testing.T) {
	t.Parallel()
	msg := crlf(`From: a@example.com
To: b@example.com
Subject: build log
MIME-Version: 1.0
Content-Type: multipart/alternative; boundary=XYZ

--XYZ
Content-Type: text/html; charset=utf-8

<b>failed</b>
--XYZ
Content-Type: text/plain; charset=utf-8

` + "\x1b[31mfailed\x1b[0m" + `
--XYZ--
`)
	s, err := mailbody.Text(strings.NewReader(msg))
	be.Err(t, err, nil)
	be.Equal(t, s, "\x1b[31mfailed\x1b[0m")
}

func TestCharset(t *testing.T) {
	t.Parallel()
	msg := crlf(`From: a@example.com
Subject: menu
Content-Type: text/plain; charset=iso-8859-1
Content-Transfer-Encoding: quoted-printable

caf=E9
`)
	s, err := mailbody.Text(strings.NewReader(msg))
	be.Err(t, err, nil)
	be.Equal(t, strings.TrimSpace(s), "café")
}

func TestNotMail(t *testing.T) {
	t.Parallel()
	const s = "hello \x1b[1mworld\x1b[0m\n"
	got, err := mailbody.Text(strings.NewReader(s))
	be.Err(t, err, nil)
	be.Equal(t, got, s)

	_, err = mailbody.Text(nil)
	be.Err(t, err, mailbody.ErrReader)
}

func TestAttachmentOnly(t *testing.T) {
	t.Parallel()
	msg := crlf(`From: a@example.com
Content-Type: multipart/mixed; boundary=B

--B
Content-Type: application/octet-stream
Content-Disposition: attachment; filename=a.bin

xyz
--B--
`)
	s, err := mailbody.Text(strings.NewReader(msg))
	be.Err(t, err, mailbody.ErrNoText)
	be.Equal(t, s, "")
}

func ExampleQuote() {
	fmt.Print(mailbody.Quote("\x1b[1mbuild\x1b[0m failed\r\n\x1b[31mexit 1\x1b[0m\r\n", "> "))
	// Output: > build failed
	// > exit 1
}

func TestQuote(t *testing.T) {
	t.Parallel()
	be.Equal(t, mailbody.Quote("", "> "), "")
	be.Equal(t, mailbody.Quote("one", "> "), "> one\n")
	be.Equal(t, mailbody.Quote("a\n\nb\n", "| "), "| a\n| \n| b\n")
	be.Equal(t, mailbody.Quote("\x1b]x\x1b[4mtext", ""), "xtext\n")
}

func TestReply(t *testing.T) {
	t.Parallel()
	msg := crlf(`From: Ada Lovelace <ada@example.com>
Date: Tue, 02 Jan 2024 15:04:05 +0000
Content-Type: text/plain

` + "\x1b[32mok\x1b[0m" + `
done
`)
	m, err := mailbody.Read(strings.NewReader(msg))
	be.Err(t, err, nil)
	be.Equal(t, m.From, "Ada Lovelace")
	be.Equal(t, m.Reply("> "), "Quoting Ada Lovelace (2024-01-02 15:04:05)\n> ok\n> done\n")

	m, err = mailbody.Read(strings.NewReader(crlf("From: ada@example.com\n\nhi\n")))
	be.Err(t, err, nil)
	be.Equal(t, m.Reply("> "), "Quoting ada@example.com\n> hi\n")

	m, err = mailbody.Read(strings.NewReader("not a message"))
	be.Err(t, err, nil)
	be.Equal(t, m.Attribution(), "")
	be.Equal(t, m.Reply("> "), "> not a message\n")
}
