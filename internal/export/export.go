// Package export runs the whole chat-to-document pipeline: parse the
// export, merge image runs, render the markup into a template, and hand the
// result to an external PDF renderer.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/Zuo-Peng/chatprint/internal/logging"
	"github.com/Zuo-Peng/chatprint/internal/parse"
	"github.com/Zuo-Peng/chatprint/internal/render"
)

const (
	CorrectedName = "_chat_corrected.txt"
	RawName       = "_chat.txt"
)

var (
	ErrInputNotFound    = errors.New("input file not found")
	ErrTemplateNotFound = errors.New("template not found")
)

// PDFRenderer turns a finished HTML file into a PDF.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, htmlPath, pdfPath, baseDir string) error
}

// CommandPDF shells out to a weasyprint-compatible command line.
type CommandPDF struct {
	Command string
}

func (c CommandPDF) RenderPDF(ctx context.Context, htmlPath, pdfPath, baseDir string) error {
	if _, err := exec.LookPath(c.Command); err != nil {
		return fmt.Errorf("pdf command %q: %w", c.Command, err)
	}
	cmd := exec.CommandContext(ctx, c.Command, htmlPath, pdfPath, "--base-url", baseDir)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", c.Command, err, out)
	}
	return nil
}

type Options struct {
	Dir        string // directory holding the export and its media; "" = cwd
	Input      string // explicit chat file; "" picks the corrected or raw export
	Template   string
	OutputHTML string
	OutputPDF  string
	User       string      // highlighted sender; "" = automatic
	PDF        PDFRenderer // nil skips the PDF step
}

type Result struct {
	Input     string
	Order     parse.DateOrder
	Messages  int // after image-run merging
	Highlight string
	HTMLPath  string
	PDFPath   string // empty when no PDF was written
	PDFErr    error
}

// ResolveInput picks the chat file to read: the explicit path if given,
// else the corrected export when present, else the raw export.
func ResolveInput(dir, explicit string) (string, error) {
	path := explicit
	if path == "" {
		corrected := filepath.Join(dir, CorrectedName)
		path = filepath.Join(dir, RawName)
		if _, err := os.Stat(corrected); err == nil {
			path = corrected
		}
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInputNotFound, path)
	}
	return path, nil
}

// Run executes the pipeline. Nothing is written unless the HTML document
// could be fully built; a PDF failure is reported in the result only.
func Run(ctx context.Context, opts Options) (*Result, error) {
	log := logging.Component("export")

	dir := opts.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = wd
	}

	input, err := ResolveInput(dir, opts.Input)
	if err != nil {
		return nil, err
	}
	tmpl, err := os.ReadFile(opts.Template)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, opts.Template)
		}
		return nil, fmt.Errorf("read template: %w", err)
	}

	chat, err := parse.ParseFile(input)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", input, err)
	}
	if chat.Discarded > 0 {
		log.Debug().Int("lines", chat.Discarded).Msg("dropped lines before first message")
	}
	log.Info().
		Str("input", input).
		Int("messages", len(chat.Messages)).
		Str("order", string(chat.Order)).
		Msg("parsed chat")

	msgs := parse.MergeImageRuns(chat.Messages)

	highlight := opts.User
	if highlight == "" {
		highlight = render.DefaultHighlight(msgs)
	}

	chatHTML := render.HTML(msgs, render.Options{Order: chat.Order, Highlight: highlight})

	doc, err := render.StripScripts(string(tmpl))
	if err != nil {
		return nil, fmt.Errorf("strip scripts: %w", err)
	}
	doc, err = render.Inject(doc, chatHTML)
	if err != nil {
		return nil, fmt.Errorf("inject %s: %w", opts.Template, err)
	}

	if err := os.WriteFile(opts.OutputHTML, []byte(doc), 0o644); err != nil {
		return nil, fmt.Errorf("write html: %w", err)
	}
	log.Info().Str("path", opts.OutputHTML).Msg("wrote html")

	res := &Result{
		Input:     input,
		Order:     chat.Order,
		Messages:  len(msgs),
		Highlight: highlight,
		HTMLPath:  opts.OutputHTML,
	}

	if opts.PDF == nil || opts.OutputPDF == "" {
		return res, nil
	}
	if err := opts.PDF.RenderPDF(ctx, opts.OutputHTML, opts.OutputPDF, dir); err != nil {
		log.Warn().Err(err).Msg("pdf generation failed, html output is ready")
		res.PDFErr = err
		return res, nil
	}
	res.PDFPath = opts.OutputPDF
	log.Info().Str("path", opts.OutputPDF).Msg("wrote pdf")
	return res, nil
}
