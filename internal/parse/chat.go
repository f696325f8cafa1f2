package parse

import (
	"bufio"
	"io"
	"os"
	"strings"
)

const maxLineSize = 10 * 1024 * 1024 // 10MB

// ParseFile reads a chat export from disk.
func ParseFile(path string) (*Chat, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	chat, err := Parse(f)
	if err != nil {
		return nil, err
	}
	chat.Path = path
	return chat, nil
}

// Parse folds the lines of r into messages. A header line starts a new
// message; any other line is appended to the current one, or dropped when
// no message has started yet. The date order is decided after the whole
// input has been read.
func Parse(r io.Reader) (*Chat, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	chat := &Chat{}
	var current *Message
	lineNum := 0

	flush := func() {
		if current != nil {
			chat.Messages = append(chat.Messages, *current)
			current = nil
		}
	}

	for scanner.Scan() {
		lineNum++
		line := CleanLine(scanner.Text())

		if h, ok := Classify(line); ok {
			flush()
			if h.Dialect == DialectEnglish {
				chat.Evidence.TwelveHour = true
			}
			chat.Evidence.Dates = append(chat.Evidence.Dates, h.Date)
			current = &Message{
				Date:    h.Date,
				Time:    h.Time,
				Sender:  h.Sender,
				Text:    h.Text,
				Line:    lineNum,
				Dialect: h.Dialect,
			}
			continue
		}

		if current == nil {
			chat.Discarded++
			continue
		}
		current.Text += "\n" + line
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	chat.Order = DetectDateOrder(chat.Evidence)
	return chat, nil
}

// Flatten collapses the internal line breaks of a message body into spaces.
func Flatten(text string) string {
	return strings.ReplaceAll(text, "\n", " ")
}
