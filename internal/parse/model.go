package parse

type Dialect int

const (
	DialectClassic Dialect = iota // [DD/MM/YYYY HH:MM:SS]
	DialectEnglish                // [D/M/YY, H:MM AM]
)

func (d Dialect) String() string {
	switch d {
	case DialectClassic:
		return "classic"
	case DialectEnglish:
		return "english"
	default:
		return "unknown"
	}
}

type DateOrder string

const (
	DMY DateOrder = "DMY"
	MDY DateOrder = "MDY"
)

type Message struct {
	Date    string // verbatim date token, e.g. "24/12/2023"
	Time    string // verbatim time token, "18:05:00" or "6:05 PM"
	Sender  string
	Text    string // header text plus continuation lines, joined by "\n"
	Line    int    // 1-based line number of the header in the source file
	Dialect Dialect
}

// Evidence is what the first pass learns about the whole file. It is built
// once and only read afterwards.
type Evidence struct {
	Dates      []string
	TwelveHour bool // at least one english/12-hour header was seen
}

type Chat struct {
	Path     string
	Messages []Message
	Evidence Evidence
	Order    DateOrder

	// Discarded counts lines seen before the first header.
	Discarded int
}

// Senders returns the distinct senders in first-seen order.
func (c *Chat) Senders() []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range c.Messages {
		if seen[m.Sender] {
			continue
		}
		seen[m.Sender] = true
		out = append(out, m.Sender)
	}
	return out
}
