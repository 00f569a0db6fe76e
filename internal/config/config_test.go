package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bengarrett/ansistyle"
	"github.com/bengarrett/ansistyle/internal/config"
	"github.com/nalgeon/be"
	"golang.org/x/text/encoding/charmap"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	be.Err(t, err, nil)
	be.Equal(t, cfg.Normal, config.ThemeConfig{Foreground: "light gray", Background: "black"})
	be.Equal(t, cfg.Focus, config.ThemeConfig{Foreground: "white", Background: "dark blue"})
	be.True(t, cfg.Background)
	be.True(t, !cfg.Strict)
	be.Equal(t, cfg.Charset, "utf-8")
	be.Equal(t, cfg.Palette, "cga")
	be.Equal(t, cfg.LogLevel, "warn")
}

func TestLoadFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")
	const yaml = `normal:
  foreground: h250
  background: default
  underline: true
focus:
  foreground: "#ffffff"
  bold: true
background: false
charset: cp437
palette: xterm
log_level: debug
`
	be.Err(t, os.WriteFile(path, []byte(yaml), 0o600), nil)
	cfg, err := config.Load(path)
	be.Err(t, err, nil)
	be.Equal(t, cfg.Normal, config.ThemeConfig{Foreground: "h250", Background: "default", Underline: true})
	be.Equal(t, cfg.Focus, config.ThemeConfig{Foreground: "#ffffff", Background: "dark blue", Bold: true})
	be.True(t, !cfg.Background)

	cs, err := cfg.Charmap()
	be.Err(t, err, nil)
	be.True(t, cs == charmap.CodePage437)
	pal, err := cfg.PaletteValue()
	be.Err(t, err, nil)
	be.Equal(t, pal, ansistyle.Xterm16)
	lvl, err := cfg.Level()
	be.Err(t, err, nil)
	be.Equal(t, lvl, slog.LevelDebug)

	def := cfg.DefaultAttr()
	be.Equal(t, def.Attr(), ansistyle.Attr{FG: "h250,underline", BG: "default"})
	be.Equal(t, def.Focus.Attr(), ansistyle.Attr{FG: "#ffffff,bold", BG: "dark blue"})
}

func TestLoadBroken(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")
	be.Err(t, os.WriteFile(path, []byte("normal: [unclosed"), 0o600), nil)
	_, err := config.Load(path)
	be.Err(t, err, "reading config")
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("ANSISTYLE_NORMAL_FOREGROUND", "dark cyan")
	t.Setenv("ANSISTYLE_STRICT", "true")
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	be.Err(t, err, nil)
	be.Equal(t, cfg.Normal.Foreground, "dark cyan")
	be.True(t, cfg.Strict)
}

func TestInvalid(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{Charset: "ebcdic", Palette: "vga", LogLevel: "loud"}
	_, err := cfg.Charmap()
	be.Err(t, err, config.ErrCharset)
	_, err = cfg.PaletteValue()
	be.Err(t, err, config.ErrPalette)
	_, err = cfg.Level()
	be.Err(t, err, config.ErrLevel)
	_, err = cfg.Parser(slog.Default())
	be.Err(t, err, config.ErrCharset)

	cfg = &config.Config{Charset: "UTF_8"}
	cs, err := cfg.Charmap()
	be.Err(t, err, nil)
	be.True(t, cs == nil)
}

func TestParser(t *testing.T) {
	t.Parallel()
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	be.Err(t, err, nil)
	cfg.Charset = "latin1"
	p, err := cfg.Parser(slog.Default())
	be.Err(t, err, nil)
	res, err := p.Read(strings.NewReader("\x1b[1mcaf\xe9"))
	be.Err(t, err, nil)
	be.Equal(t, res.Runs, []ansistyle.Run{
		{Attr: ansistyle.Attr{FG: "light gray,bold", BG: "black"}, Text: "café"},
	})
}
