package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/bengarrett/ansistyle"
	"github.com/bengarrett/ansistyle/render"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newStripCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strip [file]",
		Short: "Print the text with all escape sequences removed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, text, err := load(cmd, args)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), p.Strip(text))
			return err
		},
	}
}

func newQuoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote [file]",
		Short: "Print the text without escape sequences quoted for a reply",
		Long:  "Print the text without escape sequences quoted for a reply, introduced by the sender with --mail.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix, err := cmd.Flags().GetString("prefix")
			if err != nil {
				return fmt.Errorf("prefix flag: %w", err)
			}
			p, msg, err := read(cmd, args)
			if err != nil {
				return err
			}
			msg.Body = p.Strip(msg.Body)
			_, err = io.WriteString(cmd.OutOrStdout(), msg.Reply(prefix))
			return err
		},
	}
	cmd.Flags().String("prefix", "> ", "text that starts every quoted line")
	return cmd
}

func newRunsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "runs [file]",
		Short: "List the styled runs of the text and the focus map",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, text, err := load(cmd, args)
			if err != nil {
				return err
			}
			res, err := p.Styled(text)
			if err != nil {
				return err
			}
			writeRuns(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func writeRuns(w io.Writer, res ansistyle.Result) {
	for _, run := range res.Runs {
		fmt.Fprintf(w, "%-40s %-16s %5d %q\n", run.Attr.FG, run.Attr.BG, run.Width(), run.Text)
	}
	keys := make([]ansistyle.Attr, 0, len(res.Focus))
	for a := range res.Focus {
		keys = append(keys, a)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].FG != keys[j].FG {
			return keys[i].FG < keys[j].FG
		}
		return keys[i].BG < keys[j].BG
	})
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, a := range keys {
		f := res.Focus[a]
		from := a.FG + "/" + a.BG
		if a == (ansistyle.Attr{}) {
			from = "(none)"
		}
		fmt.Fprintf(w, "%s -> %s/%s\n", from, f.FG, f.BG)
	}
}

func newHTMLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "html [file]",
		Short: "Print the styled text as a HTML fragment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, text, err := load(cmd, args)
			if err != nil {
				return err
			}
			res, err := p.Styled(text)
			if err != nil {
				return err
			}
			return p.WriteHTML(cmd.OutOrStdout(), res)
		},
	}
}

func newPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview [file]",
		Short: "Print the styled text re-rendered for this terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, text, err := load(cmd, args)
			if err != nil {
				return err
			}
			res, err := p.Styled(text)
			if err != nil {
				return err
			}
			re := lipgloss.NewRenderer(cmd.OutOrStdout())
			_, err = io.WriteString(cmd.OutOrStdout(), render.ANSI(re, res.Runs))
			return err
		},
	}
}
