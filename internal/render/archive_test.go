package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Zuo-Peng/chatprint/internal/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderChat(t *testing.T) {
	db, err := index.OpenDB(filepath.Join(t.TempDir(), "index.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	root := t.TempDir()
	var b strings.Builder
	for i := 0; i < 6; i++ {
		sender := "Alice"
		if i%2 == 1 {
			sender = "Bob"
		}
		b.WriteString("[24/12/2023 18:0" + string(rune('0'+i)) + ":00] " + sender + ": ligne " + string(rune('0'+i)) + "\n")
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "famille.txt"), []byte(b.String()), 0o644))
	_, err = index.IndexAll(db, root)
	require.NoError(t, err)

	out, layout, err := RenderChat(db, "famille", ArchiveOptions{HitMsgID: 3, Context: 1})
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, layout.Hit, 0)
	assert.Contains(t, lines[layout.Hit], "[B] Bob > 18:03:00")
	// title and "before" lines come first
	assert.Equal(t, []int{2}, layout.Groups)
	assert.Contains(t, lines[2], "dimanche 24 décembre 2023 — soir")
	assert.Contains(t, out, "(2 messages before)")
	assert.Contains(t, out, "(1 messages after)")
	assert.Contains(t, out, "ligne 2")
	assert.NotContains(t, out, "ligne 0")
	assert.NotContains(t, out, "ligne 5")

	// exactly two senders: the later name is highlighted
	assert.Contains(t, out, colorOther+"[A] Alice >")

	_, _, err = RenderChat(db, "absent", ArchiveOptions{})
	assert.Error(t, err)
}
