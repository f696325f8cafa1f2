package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Zuo-Peng/chatprint/internal/index"
	"github.com/Zuo-Peng/chatprint/internal/period"
	"github.com/Zuo-Peng/chatprint/internal/search"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// rowHeight is the number of terminal lines one hit takes in the list.
const rowHeight = 2

const chatKeyWidth = 20

// when formats a stored timestamp as a short date and its period of the day.
func when(ts string) string {
	t, err := time.Parse(index.TimestampLayout, ts)
	if err != nil {
		return ""
	}
	p := period.For(t)
	return t.Format("02/01/06") + " " + stylePeriod[p.Theme].Render(p.Name)
}

func cleanSnippet(s string) string {
	s = strings.NewReplacer(">>>", "", "<<<", "", "\n", " ", "\t", " ").Replace(s)
	return strings.TrimSpace(s)
}

// formatRow renders one hit as two lines:
//
//	▸ chat/key            24/12/23 soir
//	    Alice  Joyeux Noël à tous [2 files]
func formatRow(r search.Result, width int, selected bool) []string {
	cursor := "  "
	if selected {
		cursor = styleCursor.Render("▸ ")
	}
	head := cursor + styleChatKey.Render(runewidth.FillRight(runewidth.Truncate(r.ChatKey, chatKeyWidth, "…"), chatKeyWidth))
	if w := when(r.Ts); w != "" {
		head += " " + w
	}

	who := r.Sender
	if r.MessageID < 0 && r.Messages > 0 {
		who = fmt.Sprintf("%s (%d)", who, r.Messages)
	}
	who = runewidth.Truncate(who, max(width/3, 1), "…")

	text := cleanSnippet(r.Snippet)
	if n := len(r.Attachments); n == 1 {
		text += " [1 file]"
	} else if n > 1 {
		text += fmt.Sprintf(" [%d files]", n)
	}
	room := max(width-4-runewidth.StringWidth(who)-2, 0)
	body := "    " + styleSender.Render(who) + "  " + styleMuted.Render(runewidth.Truncate(strings.TrimSpace(text), room, ""))

	return []string{head, body}
}

// scrollTo returns the first visible row so that sel stays on screen.
func scrollTo(sel, top, visible int) int {
	visible = max(visible, 1)
	switch {
	case sel < top:
		return sel
	case sel >= top+visible:
		return sel - visible + 1
	default:
		return top
	}
}

func (b browser) renderRows(width, height int) string {
	if len(b.hits) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, styleMuted.Render(b.emptyText()))
	}
	var lines []string
	for i := b.top; i < len(b.hits) && len(lines)+rowHeight <= height; i++ {
		lines = append(lines, formatRow(b.hits[i], width, i == b.sel)...)
	}
	return strings.Join(lines, "\n")
}

func (b browser) emptyText() string {
	switch {
	case b.query != "":
		return "No matching messages"
	case b.list:
		return "No archived chats"
	default:
		return "Type to search messages"
	}
}
