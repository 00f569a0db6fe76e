package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bengarrett/ansistyle"
	"github.com/bengarrett/ansistyle/internal/config"
	"github.com/bengarrett/ansistyle/internal/mailbody"
	"github.com/spf13/cobra"
)

func execute() error {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		return fmt.Errorf("execute: %w", err)
	}
	return nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "ansistyle",
		Short:        "Strip or render the ANSI styles of text",
		Long:         "ansistyle interprets the SGR color and style escape sequences of text read from a file or stdin.",
		SilenceUsage: true,
	}
	pf := root.PersistentFlags()
	pf.String("config", config.DefaultPath(), "path to the YAML configuration file")
	pf.String("charset", "", "charset of the input, such as utf-8, cp437 or latin1")
	pf.String("palette", "", "palette of the HTML base colors, cga or xterm")
	pf.Bool("background", true, "use the background colors of the text")
	pf.Bool("strict", false, "fail on malformed or unsupported escape sequences")
	pf.Bool("mail", false, "read the input as an e-mail message and use its text body")
	pf.String("log-level", "", "level of the diagnostics written to stderr")

	root.AddCommand(newStripCmd(), newQuoteCmd(), newRunsCmd(), newHTMLCmd(), newPreviewCmd(), newViewCmd())
	return root
}

// settings loads the configuration file and applies the flags that were set.
func settings(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("config flag: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	for name, dst := range map[string]*string{
		"charset":   &cfg.Charset,
		"palette":   &cfg.Palette,
		"log-level": &cfg.LogLevel,
	} {
		if !flags.Changed(name) {
			continue
		}
		if *dst, err = flags.GetString(name); err != nil {
			return nil, fmt.Errorf("%s flag: %w", name, err)
		}
	}
	for name, dst := range map[string]*bool{
		"background": &cfg.Background,
		"strict":     &cfg.Strict,
	} {
		if !flags.Changed(name) {
			continue
		}
		if *dst, err = flags.GetBool(name); err != nil {
			return nil, fmt.Errorf("%s flag: %w", name, err)
		}
	}
	return cfg, nil
}

// load returns the parser and the decoded input text of the command.
func load(cmd *cobra.Command, args []string) (*ansistyle.Parser, string, error) {
	p, msg, err := read(cmd, args)
	if err != nil {
		return nil, "", err
	}
	return p, msg.Body, nil
}

// read returns the parser and the input of the command, which is either
// decoded text or with the --mail flag the text body of a message.
func read(cmd *cobra.Command, args []string) (*ansistyle.Parser, mailbody.Message, error) {
	var none mailbody.Message
	cfg, err := settings(cmd)
	if err != nil {
		return nil, none, err
	}
	lvl, err := cfg.Level()
	if err != nil {
		return nil, none, err
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl}))
	p, err := cfg.Parser(log)
	if err != nil {
		return nil, none, err
	}
	r := cmd.InOrStdin()
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, none, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}
	mail, err := cmd.Flags().GetBool("mail")
	if err != nil {
		return nil, none, fmt.Errorf("mail flag: %w", err)
	}
	if mail {
		msg, err := mailbody.Read(r)
		if err != nil {
			return nil, none, fmt.Errorf("mail body: %w", err)
		}
		return p, msg, nil
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, none, fmt.Errorf("read input: %w", err)
	}
	log.Debug("input", slog.Int("bytes", len(b)), slog.String("charset", cfg.Charset))
	return p, mailbody.Message{Body: p.Decode(b)}, nil
}
