package parse

// imageOnly returns the attachment names of m when it carries images and
// nothing else.
func imageOnly(m Message) ([]string, bool) {
	text, names := SplitAttachments(m.Text)
	if text != "" || !AllImages(names) {
		return nil, false
	}
	return names, true
}

type runState int

const (
	idle runState = iota
	inRun
)

// MergeImageRuns collapses consecutive image-only messages from the same
// sender into the first message of the run. Every other message is passed
// through untouched and relative order is kept.
func MergeImageRuns(msgs []Message) []Message {
	out := make([]Message, 0, len(msgs))

	state := idle
	var head Message
	var names []string
	size := 0

	flush := func() {
		if state == inRun {
			if size > 1 {
				head.Text = EncodeAttachments(names)
			}
			out = append(out, head)
		}
		state = idle
		names = nil
		size = 0
	}

	for _, m := range msgs {
		files, ok := imageOnly(m)
		if state == inRun && ok && m.Sender == head.Sender {
			names = append(names, files...)
			size++
			continue
		}

		flush()
		if !ok {
			out = append(out, m)
			continue
		}
		state = inRun
		head = m
		names = append([]string(nil), files...)
		size = 1
	}
	flush()

	return out
}
