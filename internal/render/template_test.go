package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInject(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		want string
	}{
		{
			name: "empty container",
			tmpl: `<body><div id="chat-container"></div></body>`,
			want: `<body><div id="chat-container"><p>chat</p></div></body>`,
		},
		{
			name: "container with attributes and placeholder",
			tmpl: "<body>\n<div id=\"chat-container\" class=\"wide\">\n  placeholder\n</div>\n<footer></footer></body>",
			want: "<body>\n<div id=\"chat-container\" class=\"wide\"><p>chat</p></div>\n<footer></footer></body>",
		},
		{
			name: "only first container is filled",
			tmpl: `<div id="chat-container"></div><div id="chat-container"></div>`,
			want: `<div id="chat-container"><p>chat</p></div><div id="chat-container"></div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Inject(tt.tmpl, "<p>chat</p>")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInjectNoContainer(t *testing.T) {
	_, err := Inject(`<body><div id="content"></div></body>`, "<p>chat</p>")
	assert.ErrorIs(t, err, ErrNoContainer)
}

func TestStripScripts(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "inline script",
			doc:  `<html><head><script>alert(1)</script><style>p{color:red}</style></head><body><p>Hi</p></body></html>`,
			want: `<html><head><style>p{color:red}</style></head><body><p>Hi</p></body></html>`,
		},
		{
			name: "external script upper case",
			doc:  `<head><SCRIPT src="app.js"></SCRIPT><link rel="stylesheet" href="a.css"></head>`,
			want: `<head><link rel="stylesheet" href="a.css"></head>`,
		},
		{
			name: "script containing markup",
			doc:  `<body><script>document.write("<div>x</div>")</script><div id="chat-container"></div></body>`,
			want: `<body><div id="chat-container"></div></body>`,
		},
		{
			name: "no scripts is untouched",
			doc:  "<!DOCTYPE html>\n<html lang=\"fr\">\n<body class=\"A4\">\n  <div id=\"chat-container\"></div>\n</body>\n</html>\n",
			want: "<!DOCTYPE html>\n<html lang=\"fr\">\n<body class=\"A4\">\n  <div id=\"chat-container\"></div>\n</body>\n</html>\n",
		},
		{
			name: "similar tag names kept",
			doc:  `<noscript>off</noscript><scripts>x</scripts>`,
			want: `<noscript>off</noscript><scripts>x</scripts>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StripScripts(tt.doc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
