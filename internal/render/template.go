package render

import (
	"bytes"
	"errors"
	"io"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// ErrNoContainer is returned when a template has no chat container to fill.
var ErrNoContainer = errors.New(`template has no <div id="chat-container">`)

const emptyContainer = `<div id="chat-container"></div>`

var containerRe = regexp.MustCompile(`(?s)(<div id="chat-container"[^>]*>)(.*?)(</div>)`)

// Inject places chatHTML inside the template's chat container, replacing
// whatever the container held.
func Inject(tmpl, chatHTML string) (string, error) {
	if strings.Contains(tmpl, emptyContainer) {
		return strings.Replace(tmpl, emptyContainer, `<div id="chat-container">`+chatHTML+`</div>`, 1), nil
	}
	loc := containerRe.FindStringSubmatchIndex(tmpl)
	if loc == nil {
		return "", ErrNoContainer
	}
	// loc[3] ends the opening tag, loc[6] starts the closing one
	return tmpl[:loc[3]] + chatHTML + tmpl[loc[6]:], nil
}

// StripScripts removes every <script> element from doc. All other bytes are
// written back exactly as they were read.
func StripScripts(doc string) (string, error) {
	z := html.NewTokenizer(strings.NewReader(doc))
	var out bytes.Buffer
	depth := 0

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return "", err
			}
			return out.String(), nil
		case html.StartTagToken:
			if isScript(z) {
				depth++
				continue
			}
		case html.EndTagToken:
			if isScript(z) {
				if depth > 0 {
					depth--
				}
				continue
			}
		case html.SelfClosingTagToken:
			if isScript(z) {
				continue
			}
		}
		if depth == 0 {
			out.Write(z.Raw())
		}
	}
}

// isScript reads the tag name from the raw token. TagName is avoided
// because it lower-cases the tokenizer's buffer in place.
func isScript(z *html.Tokenizer) bool {
	raw := bytes.TrimLeft(z.Raw(), "</")
	end := bytes.IndexFunc(raw, func(r rune) bool {
		return r == '>' || r == '/' || unicode.IsSpace(r)
	})
	if end < 0 {
		end = len(raw)
	}
	return bytes.EqualFold(raw[:end], []byte("script"))
}
