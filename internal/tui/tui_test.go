package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Zuo-Peng/chatprint/internal/index"
	"github.com/Zuo-Peng/chatprint/internal/render"
	"github.com/Zuo-Peng/chatprint/internal/search"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexedChat(t *testing.T, body string) *index.DB {
	t.Helper()
	db, err := index.OpenDB(filepath.Join(t.TempDir(), "index.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "famille.txt"), []byte(body), 0o644))
	_, err = index.IndexAll(db, root)
	require.NoError(t, err)
	return db
}

func step(t *testing.T, b browser, msg tea.Msg) (browser, tea.Cmd) {
	t.Helper()
	m, cmd := b.Update(msg)
	return m.(browser), cmd
}

func TestSelectionText(t *testing.T) {
	db := indexedChat(t, "[24/12/2023 18:05:00] Alice: Joyeux Noël\nà tous\n")

	text, err := selectionText(db, search.Result{ChatKey: "famille", MessageID: 0})
	require.NoError(t, err)
	assert.Equal(t, "[24/12/2023 18:05:00] Alice: Joyeux Noël\nà tous", text)
	assert.Equal(t, "[24/12/2023 18:05:00] Alice: Joyeux Noël ...", firstLine(text))

	chat, err := db.GetChatByKey("famille")
	require.NoError(t, err)
	text, err = selectionText(db, search.Result{ChatKey: "famille", MessageID: -1})
	require.NoError(t, err)
	assert.Equal(t, chat.FilePath, text)

	_, err = selectionText(db, search.Result{ChatKey: "famille", MessageID: 7})
	assert.Error(t, err)
}

func TestFormatRow(t *testing.T) {
	r := search.Result{
		ChatKey:     "famille/_chat",
		MessageID:   4,
		Ts:          "2023-12-24T18:05:00",
		Sender:      "Alice",
		Snippet:     "Joyeux >>>Noël<<< à\ttous",
		Attachments: []string{"sapin.jpg", "table.jpg"},
	}
	lines := formatRow(r, 60, true)
	require.Len(t, lines, rowHeight)
	assert.Contains(t, lines[0], "▸")
	assert.Contains(t, lines[0], "famille/_chat")
	assert.Contains(t, lines[0], "24/12/23")
	assert.Contains(t, lines[0], "soir")
	assert.Contains(t, lines[1], "Alice")
	assert.Contains(t, lines[1], "Joyeux Noël à tous [2 files]")
	assert.NotContains(t, lines[1], ">>>")

	lines = formatRow(r, 60, false)
	assert.True(t, strings.HasPrefix(lines[0], "  "))

	chat := search.Result{
		ChatKey:   "amis",
		MessageID: -1,
		Ts:        "2024-03-02T07:30:00",
		Sender:    "Bob, Carol",
		Snippet:   "On se voit demain",
		Messages:  12,
	}
	lines = formatRow(chat, 60, false)
	assert.Contains(t, lines[0], "matin")
	assert.Contains(t, lines[1], "Bob, Carol (12)")

	lines = formatRow(search.Result{ChatKey: "x", Ts: "garbage"}, 40, false)
	assert.NotContains(t, lines[0], "/")
}

func TestScrollTo(t *testing.T) {
	assert.Equal(t, 0, scrollTo(0, 0, 5))
	assert.Equal(t, 2, scrollTo(2, 4, 5))
	assert.Equal(t, 3, scrollTo(7, 0, 5))
	assert.Equal(t, 1, scrollTo(3, 1, 5))
	assert.Equal(t, 9, scrollTo(9, 0, 0))
}

func TestNextGroup(t *testing.T) {
	groups := []int{3, 12, 20}
	assert.Equal(t, 3, nextGroup(groups, 0, 1))
	assert.Equal(t, 12, nextGroup(groups, 3, 1))
	assert.Equal(t, 20, nextGroup(groups, 15, 1))
	assert.Equal(t, 22, nextGroup(groups, 22, 1))
	assert.Equal(t, 12, nextGroup(groups, 20, -1))
	assert.Equal(t, 3, nextGroup(groups, 5, -1))
	assert.Equal(t, 0, nextGroup(groups, 3, -1))
	assert.Equal(t, 7, nextGroup(nil, 7, 1))

	assert.Equal(t, 0, groupAt(groups, 1))
	assert.Equal(t, 1, groupAt(groups, 3))
	assert.Equal(t, 2, groupAt(groups, 19))
	assert.Equal(t, 3, groupAt(groups, 40))
}

func TestNextSender(t *testing.T) {
	senders := []string{"Alice", "Bob"}
	assert.Equal(t, "Alice", nextSender("", senders))
	assert.Equal(t, "Bob", nextSender("Alice", senders))
	assert.Equal(t, "", nextSender("Bob", senders))
	assert.Equal(t, "", nextSender("Mallory", senders))
	assert.Equal(t, "", nextSender("", nil))
}

func TestPaneKey(t *testing.T) {
	assert.Equal(t, "famille/_chat#3", paneKey(search.Result{ChatKey: "famille/_chat", MessageID: 3}))
	assert.NotEqual(t, paneKey(search.Result{ChatKey: "a", MessageID: -1}), paneKey(search.Result{ChatKey: "a", MessageID: 1}))
}

func TestBrowserIgnoresStaleMessages(t *testing.T) {
	b := newBrowser(nil, "noel", search.Options{}, false, "")

	b, _ = step(t, b, resultsMsg{query: "noe", hits: []search.Result{{ChatKey: "a"}}})
	assert.Empty(t, b.hits)

	b, _ = step(t, b, resultsMsg{query: "noel", sender: "Alice", hits: []search.Result{{ChatKey: "a"}}})
	assert.Empty(t, b.hits)

	hit := search.Result{ChatKey: "a", MessageID: 2}
	b, _ = step(t, b, resultsMsg{query: "noel", hits: []search.Result{hit}})
	require.Len(t, b.hits, 1)

	b, _ = step(t, b, paneMsg{key: "b#2", content: "other chat"})
	assert.Empty(t, b.shown)

	b, _ = step(t, b, paneMsg{key: paneKey(hit), content: "this chat"})
	assert.Equal(t, paneKey(hit), b.shown)
}

func TestBrowserJumpsBetweenPeriods(t *testing.T) {
	hit := search.Result{ChatKey: "a", MessageID: 0}
	b := newBrowser(nil, "", search.Options{}, true, "")
	b.hits = []search.Result{hit}
	b.pane = viewport.New(40, 5)

	lines := make([]string, 30)
	for i := range lines {
		lines[i] = "line"
	}
	b, _ = step(t, b, paneMsg{
		key:     paneKey(hit),
		content: strings.Join(lines, "\n"),
		layout:  render.Layout{Hit: -1, Groups: []int{3, 12, 20}},
	})
	assert.Equal(t, 0, b.pane.YOffset)

	b, _ = step(t, b, tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.Equal(t, 3, b.pane.YOffset)
	b, _ = step(t, b, tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.Equal(t, 12, b.pane.YOffset)
	b, _ = step(t, b, tea.KeyMsg{Type: tea.KeyCtrlP})
	assert.Equal(t, 3, b.pane.YOffset)
}

func TestBrowserSenderFilter(t *testing.T) {
	db := indexedChat(t, "[24/12/2023 18:05:00] Alice: Joyeux Noël\n[24/12/2023 18:06:00] Bob: Merci\n")

	b := newBrowser(db, "", search.Options{}, true, "")
	b, _ = step(t, b, b.fetch()())
	require.Len(t, b.hits, 1)
	assert.Equal(t, "Alice, Bob", b.hits[0].Sender)

	b, cmd := step(t, b, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "Alice", b.sender)
	require.NotNil(t, cmd)
	b, _ = step(t, b, cmd())
	require.Len(t, b.hits, 1)

	b, cmd = step(t, b, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "Bob", b.sender)
	b, _ = step(t, b, cmd())
	require.Len(t, b.hits, 1)

	b, cmd = step(t, b, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "", b.sender)
	require.NotNil(t, cmd)
}

func TestBrowserSearchBySender(t *testing.T) {
	db := indexedChat(t, "[24/12/2023 18:05:00] Alice: bonne fete\n[24/12/2023 18:06:00] Bob: bonne nuit\n")

	b := newBrowser(db, "bonne", search.Options{Sender: "Bob"}, false, "")
	b, _ = step(t, b, b.fetch()())
	require.Len(t, b.hits, 1)
	assert.Equal(t, "Bob", b.hits[0].Sender)
	assert.Contains(t, b.status(), "from Bob")
}
