package parse

import (
	"regexp"
	"strings"
)

const (
	leftToRightMark = "\u200e"
	byteOrderMark   = "\ufeff"
)

// Header is a line that starts a new message.
type Header struct {
	Date    string
	Time    string
	Sender  string
	Text    string
	Dialect Dialect
}

type dialectPattern struct {
	dialect Dialect
	re      *regexp.Regexp
}

// dialects are tried in order; the first match wins.
var dialects = []dialectPattern{
	{
		dialect: DialectClassic,
		re:      regexp.MustCompile(`^\[(\d{2}/\d{2}/\d{4})[\s\p{Zs}]+(\d{2}:\d{2}:\d{2})\][\s\p{Zs}]*(.*?):[\s\p{Zs}]*(.*)$`),
	},
	{
		dialect: DialectEnglish,
		re:      regexp.MustCompile(`(?i)^\[(\d{1,2}/\d{1,2}/\d{2,4}),[\s\p{Zs}]+(\d{1,2}:\d{2}(?::\d{2})?[\s\p{Zs}]*(?:AM|PM))\][\s\p{Zs}]*-?[\s\p{Zs}]*(.*?):[\s\p{Zs}]*(.*)$`),
	},
}

// CleanLine drops invisible left-to-right marks and a leading byte-order mark.
func CleanLine(line string) string {
	line = strings.ReplaceAll(line, leftToRightMark, "")
	return strings.TrimLeft(line, byteOrderMark)
}

// Classify reports whether line is a message header and extracts its fields.
// The line is expected to be cleaned already.
func Classify(line string) (Header, bool) {
	for _, d := range dialects {
		m := d.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		return Header{
			Date:    m[1],
			Time:    m[2],
			Sender:  m[3],
			Text:    m[4],
			Dialect: d.dialect,
		}, true
	}
	return Header{}, false
}
