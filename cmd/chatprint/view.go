package main

import (
	"fmt"
	"os"

	"github.com/Zuo-Peng/chatprint/internal/export"
	"github.com/Zuo-Peng/chatprint/internal/parse"
	"github.com/Zuo-Peng/chatprint/internal/render"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func viewCmd() *cobra.Command {
	var user string
	var width int

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Print a chat export to the terminal, grouped like the HTML output",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var explicit string
			if len(args) == 1 {
				explicit = args[0]
			}
			path, err := export.ResolveInput(".", explicit)
			if err != nil {
				return err
			}

			chat, err := parse.ParseFile(path)
			if err != nil {
				return fmt.Errorf("parse %s: %w", path, err)
			}
			msgs := parse.MergeImageRuns(chat.Messages)

			if user == "" {
				user = render.DefaultHighlight(msgs)
			}
			if width == 0 && term.IsTerminal(int(os.Stdout.Fd())) {
				if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
					width = w
				}
			}

			out, _ := render.Text(msgs, render.TextOptions{
				Order:     chat.Order,
				Highlight: user,
				Width:     width,
			})
			fmt.Print(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Sender to highlight")
	cmd.Flags().IntVar(&width, "width", 0, "Wrap width (0 = terminal width, no wrap when piped)")

	return cmd
}
