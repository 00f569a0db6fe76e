package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bengarrett/ansistyle/internal/mailbody"
	"github.com/nalgeon/be"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errs bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errs)
	cfg := filepath.Join(t.TempDir(), "missing.yaml")
	root.SetArgs(append([]string{"--config", cfg}, args...))
	err := root.Execute()
	return out.String(), errs.String(), err
}

func TestStripCmd(t *testing.T) {
	t.Parallel()
	out, _, err := run(t, "\x1b[1mBOLD \x1b[0mNORMAL", "strip")
	be.Err(t, err, nil)
	be.Equal(t, out, "BOLD NORMAL")
}

func TestStripFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "in.ans")
	be.Err(t, os.WriteFile(path, []byte("\x1b[31m\xc9\xcd\xbb"), 0o600), nil)
	out, _, err := run(t, "", "--charset", "cp437", "strip", path)
	be.Err(t, err, nil)
	be.Equal(t, out, "╔═╗")

	_, _, err = run(t, "", "strip", filepath.Join(t.TempDir(), "nope"))
	be.Err(t, err, "open input")
}

func TestRunsCmd(t *testing.T) {
	t.Parallel()
	out, _, err := run(t, "\x1b[31mred\x1b[0m plain", "runs")
	be.Err(t, err, nil)
	be.True(t, strings.Contains(out, `dark red`))
	be.True(t, strings.Contains(out, `"red"`))
	be.True(t, strings.Contains(out, `" plain"`))
	be.True(t, strings.Contains(out, "(none) -> white/dark blue"))

	out, _, err = run(t, "\x1b[1m世界", "runs")
	be.Err(t, err, nil)
	be.True(t, strings.Contains(out, `    4 "世界"`))
}

func TestQuoteCmd(t *testing.T) {
	t.Parallel()
	out, _, err := run(t, "\x1b[1mbuild\x1b[0m failed\n\x1b]junk\n", "quote")
	be.Err(t, err, nil)
	be.Equal(t, out, "> build failed\n> junk\n")

	out, _, err = run(t, "one\ntwo", "quote", "--prefix", "| ")
	be.Err(t, err, nil)
	be.Equal(t, out, "| one\n| two\n")

	msg := "From: Ada <ada@example.com>\r\nDate: Tue, 02 Jan 2024 15:04:05 +0000\r\n\r\n\x1b[31mred\x1b[0m\r\n"
	out, _, err = run(t, msg, "--mail", "quote")
	be.Err(t, err, nil)
	be.Equal(t, out, "Quoting Ada (2024-01-02 15:04:05)\n> red\n")
}

func TestHTMLCmd(t *testing.T) {
	t.Parallel()
	out, _, err := run(t, "\x1b[32mok", "--palette", "xterm", "html")
	be.Err(t, err, nil)
	be.Equal(t, out, `<div style="color:#c0c0c0;background-color:#000;"><span style="color:#008000;">ok</span></div>`)
}

func TestPreviewCmd(t *testing.T) {
	t.Parallel()
	out, _, err := run(t, "\x1b[32mok\x1b[0m", "preview")
	be.Err(t, err, nil)
	be.True(t, strings.Contains(out, "ok"))
}

func TestMailFlag(t *testing.T) {
	t.Parallel()
	msg := "From: a@example.com\r\nContent-Type: text/plain\r\n\r\n\x1b[1mbody\x1b[0m"
	out, _, err := run(t, msg, "--mail", "strip")
	be.Err(t, err, nil)
	be.Equal(t, out, "body")

	attachment := "From: a@example.com\r\nContent-Type: application/octet-stream\r\n\r\nAAAA\r\n"
	_, _, err = run(t, attachment, "--mail", "strip")
	be.Err(t, err, mailbody.ErrNoText)
}

func TestStrictFlag(t *testing.T) {
	t.Parallel()
	_, _, err := run(t, "\x1b[99mx", "--strict", "runs")
	be.Err(t, err, "unrecognised parameter")

	_, logs, err := run(t, "\x1b[99mx", "--log-level", "warn", "runs")
	be.Err(t, err, nil)
	be.True(t, strings.Contains(logs, "SGR parameters ignored"))
}

func TestBadFlags(t *testing.T) {
	t.Parallel()
	_, _, err := run(t, "", "--charset", "ebcdic", "strip")
	be.Err(t, err, "unknown charset")
	_, _, err = run(t, "", "--log-level", "loud", "strip")
	be.Err(t, err, "unknown log level")
}
