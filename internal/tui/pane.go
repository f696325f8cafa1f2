package tui

import (
	"strconv"

	"github.com/Zuo-Peng/chatprint/internal/index"
	"github.com/Zuo-Peng/chatprint/internal/render"
	"github.com/Zuo-Peng/chatprint/internal/search"
	tea "github.com/charmbracelet/bubbletea"
)

// paneMsg carries a rendered chat for the preview pane.
type paneMsg struct {
	key     string
	content string
	layout  render.Layout
	err     error
}

// paneKey identifies what the pane shows: a chat, and the hit inside it.
func paneKey(r search.Result) string {
	return r.ChatKey + "#" + strconv.Itoa(r.MessageID)
}

// loadPane renders the whole chat of r, positioned on its hit message.
func loadPane(db *index.DB, r search.Result, query, user string, width int) tea.Cmd {
	return func() tea.Msg {
		content, layout, err := render.RenderChat(db, r.ChatKey, render.ArchiveOptions{
			HitMsgID: r.MessageID,
			Context:  -1,
			Width:    width,
			Query:    query,
			User:     user,
		})
		return paneMsg{key: paneKey(r), content: content, layout: layout, err: err}
	}
}

// nextGroup returns the offset of the period header after (dir > 0) or
// before (dir < 0) offset. Past the last header the offset is unchanged;
// before the first it is the top.
func nextGroup(groups []int, offset, dir int) int {
	if dir > 0 {
		for _, g := range groups {
			if g > offset {
				return g
			}
		}
		return offset
	}
	for i := len(groups) - 1; i >= 0; i-- {
		if groups[i] < offset {
			return groups[i]
		}
	}
	return 0
}

// groupAt returns the 1-based index of the period group shown at offset,
// 0 above the first header.
func groupAt(groups []int, offset int) int {
	n := 0
	for _, g := range groups {
		if g > offset {
			break
		}
		n++
	}
	return n
}
