package render

import (
	"strings"
	"testing"

	"github.com/Zuo-Peng/chatprint/internal/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func message(date, clock, sender, text string) parse.Message {
	return parse.Message{Date: date, Time: clock, Sender: sender, Text: text}
}

func TestInitials(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Alice", "A"},
		{"alice martin", "AM"},
		{"Jean Pierre Martin", "JM"},
		{"élodie durand", "ÉD"},
		{"  Bob  ", "B"},
		{"", "?"},
		{"   ", "?"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Initials(tt.name), "name %q", tt.name)
	}
}

func TestDefaultHighlight(t *testing.T) {
	two := []parse.Message{
		message("24/12/2023", "18:05:00", "Zoé", "a"),
		message("24/12/2023", "18:06:00", "Bob", "b"),
		message("24/12/2023", "18:07:00", "Zoé", "c"),
	}
	assert.Equal(t, "Zoé", DefaultHighlight(two))

	one := two[:1]
	assert.Equal(t, "", DefaultHighlight(one))

	three := append([]parse.Message{message("24/12/2023", "18:00:00", "Carl", "x")}, two...)
	assert.Equal(t, "", DefaultHighlight(three))
}

func TestHTMLGroups(t *testing.T) {
	msgs := []parse.Message{
		message("24/12/2023", "18:05:00", "Alice", "Joyeux Noël"),
		message("24/12/2023", "18:30:00", "Bob", "Merci"),
		message("24/12/2023", "23:10:00", "Alice", "Bonne nuit"),
		message("25/12/2023", "18:00:00", "Bob", "Encore ?"),
	}

	out := HTML(msgs, Options{Order: parse.DMY, Highlight: "Bob"})

	assert.Equal(t, 3, strings.Count(out, `<div class="time-header">`))
	assert.Equal(t, 3, strings.Count(out, `<div class="time-group night">`))
	assert.Contains(t, out, `<div class="time-header">dimanche 24 décembre 2023 — soir</div>`)
	assert.Contains(t, out, `<div class="time-header">dimanche 24 décembre 2023 — nuit</div>`)
	assert.Contains(t, out, `<div class="time-header">lundi 25 décembre 2023 — soir</div>`)

	assert.Equal(t, 2, strings.Count(out, `<div class="message-row user">`))
	assert.Equal(t, 2, strings.Count(out, `<div class="message-row other">`))

	// every opened div is closed
	assert.Equal(t, strings.Count(out, "<div"), strings.Count(out, "</div>"))
}

func TestHTMLDayTheme(t *testing.T) {
	out := HTML([]parse.Message{message("24/12/2023", "09:00:00", "Alice", "hi")}, Options{Order: parse.DMY})
	assert.True(t, strings.HasPrefix(out, `<div class="time-group day">`))
	assert.Contains(t, out, "— matin</div>")
}

func TestHTMLOrderAffectsGrouping(t *testing.T) {
	msgs := []parse.Message{
		message("03/04/2023", "10:00:00", "Alice", "a"),
		message("04/03/2023", "10:00:00", "Alice", "b"),
	}
	dmy := HTML(msgs, Options{Order: parse.DMY})
	assert.Contains(t, dmy, "lundi 3 avril 2023")
	assert.Contains(t, dmy, "samedi 4 mars 2023")

	mdy := HTML(msgs, Options{Order: parse.MDY})
	assert.Contains(t, mdy, "samedi 4 mars 2023")
	assert.Contains(t, mdy, "lundi 3 avril 2023")
	assert.Equal(t, 2, strings.Count(mdy, `<div class="time-header">`))
}

func TestHTMLInvalidTimestampStaysInGroup(t *testing.T) {
	msgs := []parse.Message{
		message("24/12/2023", "18:05:00", "Alice", "avant"),
		message("31/02/2023", "18:06:00", "Alice", "cassé"),
		message("24/12/2023", "18:07:00", "Alice", "après"),
	}
	out := HTML(msgs, Options{Order: parse.DMY})
	assert.Equal(t, 1, strings.Count(out, `<div class="time-header">`))
	assert.Contains(t, out, "cassé")
}

func TestHTMLInvalidFirstTimestamp(t *testing.T) {
	msgs := []parse.Message{
		message("99/99/2023", "18:05:00", "Alice", "orphelin"),
		message("24/12/2023", "18:07:00", "Alice", "ok"),
	}
	out := HTML(msgs, Options{Order: parse.DMY})
	assert.True(t, strings.HasPrefix(out, `<div class="message-row other">`))
	assert.Equal(t, strings.Count(out, "<div"), strings.Count(out, "</div>"))
}

func TestHTMLEscaping(t *testing.T) {
	msgs := []parse.Message{
		message("24/12/2023", "18:05:00", "<Eve>", `<script>alert("x")</script> & co`),
	}
	out := HTML(msgs, Options{Order: parse.DMY})
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, `&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt; &amp; co`)
	assert.Contains(t, out, `<div class="initials">&lt;</div>`)
}

func TestHTMLMedia(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		contains []string
		excludes []string
	}{
		{
			name: "image grid",
			text: "< piece jointe : a.jpg > < piece jointe : b.png >",
			contains: []string{
				`<div class="message-row other media-only">`,
				`<div class="message other media-only">`,
				`<div class="media media-images-only">`,
				`<div class="image-grid">`,
				`<img src="a.jpg" alt="">`,
				`<img src="b.png" alt="">`,
			},
			excludes: []string{`class="message-text"`},
		},
		{
			name:     "single image",
			text:     "< piece jointe : a.jpg >",
			contains: []string{`<div class="media media-images-only">`, `<img src="a.jpg" alt="">`},
			excludes: []string{"image-grid"},
		},
		{
			name:     "video is a download link",
			text:     "< piece jointe : clip.mp4 >",
			contains: []string{`<div class="media media-videos-only">`, `<a class="download-link" href="clip.mp4">Download File</a>`},
			excludes: []string{"<img", "<video"},
		},
		{
			name: "caption with document",
			text: "le plan < piece jointe : plan final.pdf >",
			contains: []string{
				`<div class="message-row other">`,
				`<div class="message-text">le plan</div>`,
				`<div class="media">`,
				`<a class="download-link" href="plan%20final.pdf">Download File</a>`,
			},
			excludes: []string{"media-only"},
		},
		{
			name:     "mixed files never form a grid",
			text:     "< piece jointe : a.jpg > < piece jointe : b.pdf >",
			contains: []string{`<div class="media">`, `<img src="a.jpg" alt="">`, `href="b.pdf"`},
			excludes: []string{"image-grid", "media-images-only"},
		},
		{
			name:     "url escaping keeps directories",
			text:     "< piece jointe : photos/été #1.jpg >",
			contains: []string{`<img src="photos/%C3%A9t%C3%A9%20%231.jpg" alt="">`},
		},
		{
			name:     "text only",
			text:     "bonjour",
			contains: []string{`<div class="message-text">bonjour</div>`},
			excludes: []string{`class="media`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := HTML([]parse.Message{message("24/12/2023", "10:00:00", "Alice", tt.text)}, Options{Order: parse.DMY})
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestHTMLEmpty(t *testing.T) {
	assert.Equal(t, "", HTML(nil, Options{Order: parse.DMY}))
}

func TestHTMLMergedRun(t *testing.T) {
	chat, err := parse.Parse(strings.NewReader(strings.Join([]string{
		"[24/12/2023 18:05:00] Alice: < pièce jointe : photo.jpg >",
		"[24/12/2023 18:05:30] Alice: < pièce jointe : photo2.jpg >",
		"[24/12/2023 18:06:00] Bob: Jolies !",
	}, "\n")))
	require.NoError(t, err)

	msgs := parse.MergeImageRuns(chat.Messages)
	out := HTML(msgs, Options{Order: chat.Order, Highlight: DefaultHighlight(msgs)})

	assert.Equal(t, 1, strings.Count(out, `<div class="image-grid">`))
	assert.Equal(t, 2, strings.Count(out, "<img "))
	assert.Contains(t, out, `<div class="message-row other media-only">`)
	assert.Contains(t, out, `<div class="message-row user">`)
}
