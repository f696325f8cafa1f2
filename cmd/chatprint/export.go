package main

import (
	"fmt"

	"github.com/Zuo-Peng/chatprint/internal/config"
	"github.com/Zuo-Peng/chatprint/internal/export"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var input, template, outHTML, outPDF, user string
	var noPDF bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render a chat export into the HTML template and print it to PDF",
		Long: `Reads _chat_corrected.txt if it exists, else _chat.txt (or --input), groups
messages by day and time of day, writes the filled template to --output-html and,
unless --no-pdf is set, renders it to --output-pdf with the configured pdf_command.
A failed PDF step leaves the HTML in place.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			opts := export.Options{
				Input:      input,
				Template:   firstNonEmpty(template, cfg.Template),
				OutputHTML: firstNonEmpty(outHTML, cfg.OutputHTML),
				OutputPDF:  firstNonEmpty(outPDF, cfg.OutputPDF),
				User:       firstNonEmpty(user, cfg.User),
			}
			if !noPDF && cfg.PDFCommand != "" {
				opts.PDF = export.CommandPDF{Command: cfg.PDFCommand}
			}

			res, err := export.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}

			fmt.Printf("Wrote: %s (%d messages, %s)\n", res.HTMLPath, res.Messages, res.Order)
			switch {
			case res.PDFErr != nil:
				fmt.Println("PDF generation failed. HTML output is ready.")
				fmt.Printf("Error: %v\n", res.PDFErr)
			case res.PDFPath != "":
				fmt.Printf("Wrote: %s\n", res.PDFPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Chat txt file (default: _chat_corrected.txt if exists, else _chat.txt)")
	cmd.Flags().StringVar(&template, "template", "", "HTML template file")
	cmd.Flags().StringVar(&outHTML, "output-html", "", "Output HTML file")
	cmd.Flags().StringVar(&outPDF, "output-pdf", "", "Output PDF file")
	cmd.Flags().StringVar(&user, "user", "", "Sender name to place on the right (exact match)")
	cmd.Flags().BoolVar(&noPDF, "no-pdf", false, "Only write the HTML file")

	return cmd
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
