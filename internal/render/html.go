package render

import (
	"html"
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/Zuo-Peng/chatprint/internal/logging"
	"github.com/Zuo-Peng/chatprint/internal/parse"
	"github.com/Zuo-Peng/chatprint/internal/period"
)

type Options struct {
	Order     parse.DateOrder
	Highlight string // sender rendered on the right; "" for none
}

// DefaultHighlight picks the second sender in alphabetical order when the
// chat has exactly two senders.
func DefaultHighlight(msgs []parse.Message) string {
	seen := make(map[string]bool)
	var senders []string
	for _, m := range msgs {
		if !seen[m.Sender] {
			seen[m.Sender] = true
			senders = append(senders, m.Sender)
		}
	}
	if len(senders) != 2 {
		return ""
	}
	sort.Strings(senders)
	return senders[1]
}

// Initials returns the upper-cased first letters of the first and last
// words of a name, or "?" for an empty name.
func Initials(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return "?"
	}
	initials := string(firstRune(words[0]))
	if len(words) > 1 {
		initials += string(firstRune(words[len(words)-1]))
	}
	return strings.ToUpper(initials)
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return unicode.ReplacementChar
}

// mediaURL percent-encodes a file name for use as a relative link, keeping
// directory separators.
func mediaURL(name string) string {
	segments := strings.Split(name, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return html.EscapeString(strings.Join(segments, "/"))
}

// HTML renders messages as a sequence of time groups. A new group opens
// whenever the (day, period) pair changes.
func HTML(msgs []parse.Message, opts Options) string {
	log := logging.Component("render")

	var parts []string
	var current period.Key
	open := false

	for _, m := range msgs {
		ts, err := parse.ResolveTimestamp(m.Date, m.Time, opts.Order)
		if err != nil {
			log.Warn().Err(err).Int("line", m.Line).Msg("keeping message in current group")
		} else if key := period.KeyFor(ts); !open || key != current {
			if open {
				parts = append(parts, "</div>")
			}
			parts = append(parts, groupHeader(ts)...)
			current = key
			open = true
		}
		parts = append(parts, messageHTML(m, opts.Highlight != "" && m.Sender == opts.Highlight))
	}
	if open {
		parts = append(parts, "</div>")
	}
	return strings.Join(parts, "\n")
}

func groupHeader(ts time.Time) []string {
	p := period.For(ts)
	return []string{
		`<div class="time-group ` + string(p.Theme) + `">`,
		`<div class="time-header">` + html.EscapeString(period.Header(ts)) + `</div>`,
	}
}

func messageHTML(m parse.Message, isUser bool) string {
	text, names := parse.SplitAttachments(m.Text)
	hasText := text != ""
	hasMedia := len(names) > 0

	side := "other"
	if isUser {
		side = "user"
	}
	rowClasses := []string{"message-row", side}
	msgClasses := []string{"message", side}
	if hasMedia && !hasText {
		rowClasses = append(rowClasses, "media-only")
		msgClasses = append(msgClasses, "media-only")
	}

	parts := []string{
		`<div class="` + strings.Join(rowClasses, " ") + `">`,
		`<div class="initials">` + html.EscapeString(Initials(m.Sender)) + `</div>`,
		`<div class="` + strings.Join(msgClasses, " ") + `">`,
	}
	if hasText {
		parts = append(parts, `<div class="message-text">`+html.EscapeString(text)+`</div>`)
	}
	if hasMedia {
		parts = append(parts, mediaHTML(names)...)
	}
	parts = append(parts, "</div>", "</div>")
	return strings.Join(parts, "\n")
}

func mediaHTML(names []string) []string {
	allImages := parse.AllImages(names)
	classes := []string{"media"}
	if allImages {
		classes = append(classes, "media-images-only")
	}
	if parse.AllVideos(names) {
		classes = append(classes, "media-videos-only")
	}

	parts := []string{`<div class="` + strings.Join(classes, " ") + `">`}
	if len(names) > 1 && allImages {
		parts = append(parts, `<div class="image-grid">`)
		for _, n := range names {
			parts = append(parts, `<img src="`+mediaURL(n)+`" alt="">`)
		}
		parts = append(parts, "</div>")
	} else {
		for _, n := range names {
			if parse.IsImage(n) {
				parts = append(parts, `<img src="`+mediaURL(n)+`" alt="">`)
			} else {
				parts = append(parts, `<a class="download-link" href="`+mediaURL(n)+`">Download File</a>`)
			}
		}
	}
	return append(parts, "</div>")
}
