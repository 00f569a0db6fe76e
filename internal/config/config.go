// Package config loads the theme and parser options of the ansistyle command.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bengarrett/ansistyle"
	"github.com/spf13/viper"
	"golang.org/x/text/encoding/charmap"
)

var (
	ErrCharset = errors.New("unknown charset")
	ErrPalette = errors.New("unknown palette")
	ErrLevel   = errors.New("unknown log level")
)

// ThemeConfig is an attribute of the theme.
type ThemeConfig struct {
	Foreground string `mapstructure:"foreground" yaml:"foreground"`
	Background string `mapstructure:"background" yaml:"background"`
	Bold       bool   `mapstructure:"bold" yaml:"bold"`
	Underline  bool   `mapstructure:"underline" yaml:"underline"`
	Standout   bool   `mapstructure:"standout" yaml:"standout"`
}

// Config is the command configuration.
type Config struct {
	Normal     ThemeConfig `mapstructure:"normal" yaml:"normal"`
	Focus      ThemeConfig `mapstructure:"focus" yaml:"focus"`
	Background bool        `mapstructure:"background" yaml:"background"`
	Strict     bool        `mapstructure:"strict" yaml:"strict"`
	Charset    string      `mapstructure:"charset" yaml:"charset"`
	Palette    string      `mapstructure:"palette" yaml:"palette"`
	LogLevel   string      `mapstructure:"log_level" yaml:"log_level"`
}

// DefaultPath returns the default path for the configuration file,
// located at ~/.config/ansistyle/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "ansistyle", "config.yaml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("normal.foreground", ansistyle.LightGray)
	v.SetDefault("normal.background", ansistyle.Black)
	v.SetDefault("focus.foreground", ansistyle.White)
	v.SetDefault("focus.background", ansistyle.DarkBlue)
	for _, key := range []string{"normal", "focus"} {
		v.SetDefault(key+".bold", false)
		v.SetDefault(key+".underline", false)
		v.SetDefault(key+".standout", false)
	}
	v.SetDefault("background", true)
	v.SetDefault("strict", false)
	v.SetDefault("charset", "utf-8")
	v.SetDefault("palette", "cga")
	v.SetDefault("log_level", "warn")
}

// Load reads the configuration from the YAML file at path, with ANSISTYLE_ environment
// variables taking precedence, for example ANSISTYLE_NORMAL_FOREGROUND.
// If the file does not exist, the defaults are used.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("ansistyle")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

func (t ThemeConfig) theme() ansistyle.Theme {
	return ansistyle.Theme{
		Foreground: t.Foreground,
		Background: t.Background,
		Bold:       t.Bold,
		Underline:  t.Underline,
		Standout:   t.Standout,
	}
}

// DefaultAttr returns the theme as the default attribute of the parser.
func (c *Config) DefaultAttr() *ansistyle.DefaultAttr {
	return &ansistyle.DefaultAttr{
		Theme: c.Normal.theme(),
		Focus: c.Focus.theme(),
	}
}

// Charmap returns the configured charset, where a nil value is UTF-8.
func (c *Config) Charmap() (*charmap.Charmap, error) {
	switch strings.ToLower(strings.ReplaceAll(c.Charset, "_", "-")) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "cp437", "ibm437", "dos":
		return charmap.CodePage437, nil
	case "cp850", "ibm850":
		return charmap.CodePage850, nil
	case "latin1", "iso-8859-1", "amiga":
		return charmap.ISO8859_1, nil
	case "latin9", "iso-8859-15":
		return charmap.ISO8859_15, nil
	case "cp1252", "windows-1252":
		return charmap.Windows1252, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrCharset, c.Charset)
}

// PaletteValue returns the configured palette of the HTML output.
func (c *Config) PaletteValue() (ansistyle.Palette, error) {
	switch strings.ToLower(c.Palette) {
	case "", "cga", "cga16":
		return ansistyle.CGA16, nil
	case "xterm", "xterm16":
		return ansistyle.Xterm16, nil
	}
	return ansistyle.CGA16, fmt.Errorf("%w: %s", ErrPalette, c.Palette)
}

// Level returns the configured log level.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn, fmt.Errorf("%w: %s", ErrLevel, c.LogLevel)
	}
	return lvl, nil
}

// Parser returns a parser using the configuration.
func (c *Config) Parser(log *slog.Logger) (*ansistyle.Parser, error) {
	cs, err := c.Charmap()
	if err != nil {
		return nil, err
	}
	pal, err := c.PaletteValue()
	if err != nil {
		return nil, err
	}
	p, err := ansistyle.NewParser(c.DefaultAttr(), c.Background, c.Strict, pal, cs)
	if err != nil {
		return nil, fmt.Errorf("new parser: %w", err)
	}
	return p.WithLogger(log), nil
}
