package render

import (
	"fmt"
	"strings"

	"github.com/Zuo-Peng/chatprint/internal/index"
	"github.com/Zuo-Peng/chatprint/internal/parse"
)

type ArchiveOptions struct {
	HitMsgID int
	Context  int    // messages before/after hit to show
	Width    int    // wrap width (0 = no wrap)
	Query    string // search query for keyword highlighting
	User     string // highlighted sender; "" = automatic
}

// RenderChat renders a window of an archived chat for the terminal. The
// layout lines count from the top of the returned content.
func RenderChat(db *index.DB, chatKey string, opts ArchiveOptions) (string, Layout, error) {
	if opts.Context == 0 {
		opts.Context = 10
	}
	if opts.Context < 0 {
		opts.Context = 1000000 // no limit
	}

	chat, err := db.GetChatByKey(chatKey)
	if err != nil {
		return "", Layout{Hit: -1}, fmt.Errorf("get chat: %w", err)
	}
	if chat == nil {
		return "", Layout{Hit: -1}, fmt.Errorf("chat not found: %s", chatKey)
	}

	rows, hitIdx, startPos, totalCount, err := db.GetMessagesWindow(chatKey, opts.HitMsgID, opts.Context)
	if err != nil {
		return "", Layout{Hit: -1}, fmt.Errorf("get messages: %w", err)
	}
	if totalCount == 0 {
		return "(empty chat)", Layout{Hit: -1}, nil
	}

	highlight := opts.User
	if highlight == "" {
		if senders := strings.Split(chat.Senders, "\n"); len(senders) == 2 {
			highlight = max(senders[0], senders[1])
		}
	}

	msgs := make([]parse.Message, len(rows))
	hitLine := 0
	for i, r := range rows {
		msgs[i] = r.Message()
		if i == hitIdx {
			hitLine = r.LineNumber
		}
	}

	var b strings.Builder
	lineOffset := 0
	b.WriteString(fmt.Sprintf("%s--- %s [%s] %s ---%s\n", colorDim, chatKey, chat.Order, chat.FilePath, colorReset))
	lineOffset++
	if startPos > 0 {
		b.WriteString(fmt.Sprintf("%s... (%d messages before) ...%s\n", colorDim, startPos, colorReset))
		lineOffset++
	}

	body, layout := Text(msgs, TextOptions{
		Order:     chat.Order,
		Highlight: highlight,
		HitLine:   hitLine,
		Width:     opts.Width,
		Query:     opts.Query,
	})
	b.WriteString(body)
	layout = layout.shift(lineOffset)

	if skipAfter := totalCount - startPos - len(rows); skipAfter > 0 {
		b.WriteString(fmt.Sprintf("%s... (%d messages after) ...%s\n", colorDim, skipAfter, colorReset))
	}

	return b.String(), layout, nil
}
