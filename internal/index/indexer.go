package index

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Zuo-Peng/chatprint/internal/logging"
	"github.com/Zuo-Peng/chatprint/internal/parse"
	"github.com/Zuo-Peng/chatprint/internal/period"
	"github.com/Zuo-Peng/chatprint/internal/scan"
)

// TimestampLayout is how resolved message times are stored.
const TimestampLayout = "2006-01-02T15:04:05"

const summaryMax = 200

type Stats struct {
	Scanned int
	Updated int
	Skipped int
	Pruned  int
	Errors  int
}

func (s Stats) String() string {
	return fmt.Sprintf("scanned=%d updated=%d skipped=%d pruned=%d errors=%d",
		s.Scanned, s.Updated, s.Skipped, s.Pruned, s.Errors)
}

// ChatKey derives the archive key of a chat file from its path under root.
func ChatKey(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = path
	}
	return strings.TrimSuffix(filepath.ToSlash(rel), filepath.Ext(rel))
}

func IndexAll(db *DB, root string) (Stats, error) {
	log := logging.Component("index")
	var stats Stats

	files, err := scan.ScanRoot(root)
	if err != nil {
		return stats, fmt.Errorf("scan: %w", err)
	}
	stats.Scanned = len(files)

	// track which files we see, for pruning
	seenKeys := make(map[string]struct{})

	for _, fi := range files {
		key := ChatKey(root, fi.Path)
		seenKeys[key] = struct{}{}

		needs, err := needsUpdate(db, key, fi.Mtime, fi.Size)
		if err != nil {
			stats.Errors++
			continue
		}
		if !needs {
			stats.Skipped++
			continue
		}

		chat, err := parse.ParseFile(fi.Path)
		if err != nil {
			stats.Errors++
			log.Warn().Err(err).Str("path", fi.Path).Msg("parse failed")
			continue
		}
		if len(chat.Messages) == 0 {
			// not a chat export; keep it out of the archive
			delete(seenKeys, key)
			continue
		}

		if err := IndexChat(db, key, chat, fi); err != nil {
			stats.Errors++
			log.Warn().Err(err).Str("path", fi.Path).Msg("index failed")
			continue
		}
		stats.Updated++
	}

	pruned, err := pruneChats(db, seenKeys)
	if err != nil {
		return stats, fmt.Errorf("prune: %w", err)
	}
	stats.Pruned = pruned

	return stats, nil
}

func needsUpdate(db *DB, chatKey string, mtime, size int64) (bool, error) {
	info, err := db.GetChatInfo(chatKey)
	if err != nil {
		return false, err
	}
	if info == nil {
		return true, nil // new chat
	}
	return info.Mtime != mtime || info.Size != size, nil
}

// IndexChat replaces the stored copy of one chat. Messages are stored after
// image runs are merged, in the order they are rendered.
func IndexChat(db *DB, chatKey string, chat *parse.Chat, fi scan.FileInfo) error {
	msgs := parse.MergeImageRuns(chat.Messages)

	var createdAt, updatedAt string
	summary := ""
	for _, m := range msgs {
		if ts, err := parse.ResolveTimestamp(m.Date, m.Time, chat.Order); err == nil {
			if createdAt == "" {
				createdAt = ts.Format(TimestampLayout)
			}
			updatedAt = ts.Format(TimestampLayout)
		}
		if summary == "" {
			if text, _ := parse.SplitAttachments(m.Text); text != "" {
				summary = truncateRunes(parse.Flatten(text), summaryMax)
			}
		}
	}

	tx, err := db.Raw().Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// the old copy survives unless the whole replacement commits
	if err := deleteChat(tx, chatKey); err != nil {
		return err
	}

	_, err = tx.Exec(
		`INSERT INTO chats (chat_key, file_path, date_order, senders, created_at, updated_at, summary, mtime, size)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		chatKey,
		fi.Path,
		string(chat.Order),
		strings.Join(chat.Senders(), "\n"),
		createdAt,
		updatedAt,
		summary,
		fi.Mtime,
		fi.Size,
	)
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO messages (chat_key, msg_id, ts, date, time, sender, period, text, body, attachments, line_number)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, m := range msgs {
		var ts, periodName string
		if t, err := parse.ResolveTimestamp(m.Date, m.Time, chat.Order); err == nil {
			ts = t.Format(TimestampLayout)
			periodName = period.For(t).Name
		}
		text, names := parse.SplitAttachments(m.Text)
		body := strings.TrimSpace(text + "\n" + strings.Join(names, "\n"))

		_, err := stmt.Exec(
			chatKey,
			i,
			ts,
			m.Date,
			m.Time,
			m.Sender,
			periodName,
			m.Text,
			body,
			strings.Join(names, "\n"),
			m.Line,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func pruneChats(db *DB, seenKeys map[string]struct{}) (int, error) {
	allKeys, err := db.AllChatKeys()
	if err != nil {
		return 0, err
	}

	pruned := 0
	for key := range allKeys {
		if _, ok := seenKeys[key]; !ok {
			if err := db.DeleteChat(key); err != nil {
				return pruned, err
			}
			pruned++
		}
	}
	return pruned, nil
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}
