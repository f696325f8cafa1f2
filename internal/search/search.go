package search

import (
	"database/sql"
	"fmt"
	"strings"
	"unicode"

	"github.com/Zuo-Peng/chatprint/internal/index"
)

type Result struct {
	ChatKey   string
	MessageID int // -1 for chat-level rows from ListAll
	Ts        string
	UpdatedAt string
	Sender    string
	Summary   string
	Snippet   string
	Rank      float64

	Attachments []string // file names carried by the hit message
	Messages    int      // message count, chat-level rows only
}

type Options struct {
	Query  string
	Sender string // "" = all senders; for ListAll, chats this sender wrote in
	Since  string // "" = no filter, e.g. "2024-01-01"
	Limit  int
}

// containsCJK returns true if the string contains any CJK Unified Ideograph.
func containsCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// makeSnippet extracts a snippet around the first occurrence of query in text.
func makeSnippet(text, query string, contextChars int) string {
	lower := strings.ToLower(text)
	qLower := strings.ToLower(query)
	idx := strings.Index(lower, qLower)
	if idx < 0 {
		// no match, return head
		if len([]rune(text)) > contextChars*2 {
			return string([]rune(text)[:contextChars*2]) + "..."
		}
		return text
	}
	runes := []rune(text)
	qRunes := []rune(query)
	runePos := len([]rune(text[:idx]))
	start := max(runePos-contextChars, 0)
	end := min(runePos+len(qRunes)+contextChars, len(runes))
	prefix := ""
	suffix := ""
	if start > 0 {
		prefix = "..."
	}
	if end < len(runes) {
		suffix = "..."
	}
	snippet := string(runes[start:runePos]) +
		">>>" + string(runes[runePos:runePos+len(qRunes)]) + "<<<" +
		string(runes[runePos+len(qRunes):end])
	return prefix + snippet + suffix
}

// Search returns the best-ranked matching message of each chat.
func Search(db *index.DB, opts Options) ([]Result, error) {
	if opts.Limit <= 0 {
		opts.Limit = 100
	}

	// Fetch more results before dedup so we still have enough after
	origLimit := opts.Limit
	opts.Limit = origLimit * 3

	var results []Result
	var err error
	if containsCJK(opts.Query) {
		results, err = searchLike(db, opts)
	} else {
		results, err = searchFTS(db, opts)
	}
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var deduped []Result
	for _, r := range results {
		if seen[r.ChatKey] {
			continue
		}
		seen[r.ChatKey] = true
		deduped = append(deduped, r)
		if len(deduped) >= origLimit {
			break
		}
	}
	return deduped, nil
}

func filters(opts Options) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}
	if opts.Sender != "" {
		conditions = append(conditions, "m.sender = ?")
		args = append(args, opts.Sender)
	}
	if opts.Since != "" {
		conditions = append(conditions, "m.ts >= ?")
		args = append(args, opts.Since)
	}
	return conditions, args
}

func searchFTS(db *index.DB, opts Options) ([]Result, error) {
	conditions := []string{"messages_fts MATCH ?"}
	args := []interface{}{opts.Query}

	more, moreArgs := filters(opts)
	conditions = append(conditions, more...)
	args = append(args, moreArgs...)

	query := fmt.Sprintf(`
		SELECT
			m.chat_key,
			m.msg_id,
			m.ts,
			c.updated_at,
			m.sender,
			c.summary,
			snippet(messages_fts, 0, '>>>','<<<', '...', 40) as snip,
			bm25(messages_fts, 1.0) as rank,
			m.attachments
		FROM messages_fts
		JOIN messages m ON messages_fts.rowid = m.rowid
		JOIN chats c ON m.chat_key = c.chat_key
		WHERE %s
		ORDER BY rank
		LIMIT ?
	`, strings.Join(conditions, " AND "))

	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

func searchLike(db *index.DB, opts Options) ([]Result, error) {
	conditions := []string{"m.body LIKE ?"}
	args := []interface{}{"%" + opts.Query + "%"}

	more, moreArgs := filters(opts)
	conditions = append(conditions, more...)
	args = append(args, moreArgs...)

	query := fmt.Sprintf(`
		SELECT
			m.chat_key,
			m.msg_id,
			m.ts,
			c.updated_at,
			m.sender,
			c.summary,
			m.body,
			m.attachments
		FROM messages m
		JOIN chats c ON m.chat_key = c.chat_key
		WHERE %s
		ORDER BY m.ts DESC
		LIMIT ?
	`, strings.Join(conditions, " AND "))

	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var body, attachments string
		if err := rows.Scan(&r.ChatKey, &r.MessageID, &r.Ts, &r.UpdatedAt, &r.Sender, &r.Summary, &body, &attachments); err != nil {
			return nil, err
		}
		r.Snippet = makeSnippet(body, opts.Query, 30)
		r.Attachments = splitNames(attachments)
		results = append(results, r)
	}
	return results, rows.Err()
}

func scanResults(rows *sql.Rows) ([]Result, error) {
	var results []Result
	for rows.Next() {
		var r Result
		var attachments string
		if err := rows.Scan(
			&r.ChatKey, &r.MessageID, &r.Ts, &r.UpdatedAt,
			&r.Sender, &r.Summary, &r.Snippet, &r.Rank, &attachments,
		); err != nil {
			return nil, err
		}
		r.Attachments = splitNames(attachments)
		results = append(results, r)
	}
	return results, rows.Err()
}

func splitNames(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// ListAll returns every archived chat, most recently active first.
func ListAll(db *index.DB, opts Options) ([]Result, error) {
	query := `
		SELECT
			c.chat_key,
			c.updated_at,
			c.senders,
			c.summary,
			(SELECT COUNT(*) FROM messages m WHERE m.chat_key = c.chat_key)
		FROM chats c
		WHERE c.updated_at >= ?`
	args := []interface{}{opts.Since}
	if opts.Sender != "" {
		// senders is newline separated; pad it so every name is delimited
		query += " AND instr(char(10) || c.senders || char(10), ?) > 0"
		args = append(args, "\n"+opts.Sender+"\n")
	}
	query += " ORDER BY c.updated_at DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var senders string
		if err := rows.Scan(&r.ChatKey, &r.UpdatedAt, &senders, &r.Summary, &r.Messages); err != nil {
			return nil, err
		}
		r.MessageID = -1
		r.Ts = r.UpdatedAt
		r.Sender = strings.ReplaceAll(senders, "\n", ", ")
		r.Snippet = r.Summary
		results = append(results, r)
	}
	return results, rows.Err()
}
