package tui

import (
	"fmt"
	"strings"

	"github.com/Zuo-Peng/chatprint/internal/index"
	"github.com/Zuo-Peng/chatprint/internal/search"
	"github.com/atotto/clipboard"
)

// selectionText is what gets copied for a result: the message as a header
// line plus body, or the chat's source path for chat-level rows.
func selectionText(db *index.DB, r search.Result) (string, error) {
	if r.MessageID < 0 {
		chat, err := db.GetChatByKey(r.ChatKey)
		if err != nil {
			return "", fmt.Errorf("get chat: %w", err)
		}
		if chat == nil {
			return "", fmt.Errorf("chat not found: %s", r.ChatKey)
		}
		return chat.FilePath, nil
	}

	msg, err := db.GetMessage(r.ChatKey, r.MessageID)
	if err != nil {
		return "", fmt.Errorf("get message: %w", err)
	}
	if msg == nil {
		return "", fmt.Errorf("message not found: %s#%d", r.ChatKey, r.MessageID)
	}
	return fmt.Sprintf("[%s %s] %s: %s", msg.Date, msg.Time, msg.Sender, msg.Text), nil
}

func copyMessage(db *index.DB, r search.Result) error {
	text, err := selectionText(db, r)
	if err != nil {
		return err
	}
	if err := clipboard.WriteAll(text); err != nil {
		fmt.Printf("%s\n", text)
		return nil
	}
	fmt.Printf("Copied to clipboard: %s\n", firstLine(text))
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}

// chatSenders lists the senders of a chat in first-seen order.
func chatSenders(db *index.DB, chatKey string) ([]string, error) {
	chat, err := db.GetChatByKey(chatKey)
	if err != nil || chat == nil {
		return nil, err
	}
	var names []string
	for _, s := range strings.Split(chat.Senders, "\n") {
		if s != "" {
			names = append(names, s)
		}
	}
	return names, nil
}

// nextSender cycles the sender filter: everyone, then each sender in turn,
// then everyone again.
func nextSender(cur string, senders []string) string {
	if cur == "" {
		if len(senders) > 0 {
			return senders[0]
		}
		return ""
	}
	for i, s := range senders {
		if s == cur && i+1 < len(senders) {
			return senders[i+1]
		}
	}
	return ""
}
