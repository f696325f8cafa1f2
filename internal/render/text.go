package render

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Zuo-Peng/chatprint/internal/parse"
	"github.com/Zuo-Peng/chatprint/internal/period"
	"github.com/mattn/go-runewidth"
)

const (
	colorReset   = "\033[0m"
	colorUser    = "\033[1;34m" // bold blue
	colorOther   = "\033[1;32m" // bold green
	colorMedia   = "\033[2;35m" // dim magenta for attachments
	colorDim     = "\033[2m"
	colorDay     = "\033[1;33m" // bold yellow group header
	colorNight   = "\033[1;36m" // bold cyan group header
	colorHit     = "\033[43m"   // yellow background
	colorBoldRed = "\033[1;31m" // bold red for keyword highlights
)

type TextOptions struct {
	Order     parse.DateOrder
	Highlight string // sender shown in the "user" color
	HitLine   int    // source line of the message to mark, 0 for none
	Width     int    // wrap width (0 = no wrap)
	Query     string // search query for keyword highlighting
}

// ftsOperators are FTS5 operators that should not be highlighted as keywords.
var ftsOperators = map[string]bool{
	"AND": true, "OR": true, "NOT": true, "NEAR": true,
	"and": true, "or": true, "not": true, "near": true,
}

// highlightKeywords wraps case-insensitive matches of query terms in bold red ANSI codes.
func highlightKeywords(text, query string) string {
	var terms []string
	for _, t := range strings.Fields(query) {
		if ftsOperators[t] {
			continue
		}
		if t = strings.Trim(t, `"*`); t != "" {
			terms = append(terms, regexp.QuoteMeta(t))
		}
	}
	if len(terms) == 0 {
		return text
	}
	re, err := regexp.Compile(`(?i)(?:` + strings.Join(terms, "|") + `)`)
	if err != nil {
		return text
	}
	return re.ReplaceAllStringFunc(text, func(m string) string {
		return colorBoldRed + m + colorReset
	})
}

// indentLines prepends each line of text with the given prefix.
func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, correctly skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// check for ANSI escape sequence: ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++ // include 'm'
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}

// Layout locates the lines of interest in rendered text, 0-based.
type Layout struct {
	Hit    int   // hit message header, -1 if none
	Groups []int // period group headers, in order
}

// shift moves every line of l down by n.
func (l Layout) shift(n int) Layout {
	if l.Hit >= 0 {
		l.Hit += n
	}
	groups := make([]int, len(l.Groups))
	for i, g := range l.Groups {
		groups[i] = g + n
	}
	l.Groups = groups
	return l
}

// Text renders messages for a terminal, grouped the same way as the HTML
// output.
func Text(msgs []parse.Message, opts TextOptions) (string, Layout) {
	layout := Layout{Hit: -1}
	if len(msgs) == 0 {
		return "(empty chat)", layout
	}

	var b strings.Builder
	lineCount := 0
	var current period.Key
	open := false

	writeLine := func(s string) {
		for _, wl := range wrapLine(s, opts.Width) {
			b.WriteString(wl)
			b.WriteString("\n")
			lineCount++
		}
	}

	for _, m := range msgs {
		ts, err := parse.ResolveTimestamp(m.Date, m.Time, opts.Order)
		if err == nil {
			if key := period.KeyFor(ts); !open || key != current {
				color := colorDay
				if period.For(ts).Theme == period.ThemeNight {
					color = colorNight
				}
				if open {
					writeLine("")
				}
				layout.Groups = append(layout.Groups, lineCount)
				writeLine(fmt.Sprintf("%s=== %s ===%s", color, period.Header(ts), colorReset))
				current = key
				open = true
			}
		}

		isHit := opts.HitLine > 0 && m.Line == opts.HitLine
		if isHit {
			layout.Hit = lineCount
		}

		roleColor := colorOther
		if opts.Highlight != "" && m.Sender == opts.Highlight {
			roleColor = colorUser
		}
		label := fmt.Sprintf("[%s] %s", Initials(m.Sender), m.Sender)
		if isHit {
			writeLine(fmt.Sprintf("%s>> %s > %s <<%s", colorHit, label, m.Time, colorReset))
		} else {
			writeLine(fmt.Sprintf("%s%s >%s %s%s%s", roleColor, label, colorReset, colorDim, m.Time, colorReset))
		}

		text, names := parse.SplitAttachments(m.Text)
		if text != "" {
			text = highlightKeywords(text, opts.Query)
			for _, tl := range strings.Split(indentLines(text, "  "), "\n") {
				writeLine(tl)
			}
		}
		for _, n := range names {
			writeLine(fmt.Sprintf("  %s[%s] %s%s", colorMedia, parse.KindOf(n), n, colorReset))
		}
	}

	return b.String(), layout
}
