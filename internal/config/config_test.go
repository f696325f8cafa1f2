package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()

	cfg, err := LoadFrom(filepath.Join(home, "nope.toml"), home)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "chats"), cfg.ChatRoot)
	assert.Equal(t, filepath.Join(home, ".config", "chatprint", "chatprint.db"), cfg.DBPath)
	assert.Equal(t, "weasyprint", cfg.PDFCommand)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.User)
}

func TestLoadFrom_FileOverridesAndExpandsHome(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "config.toml")
	content := `
chat_root = "~/exports"
template = "~/tmpl/viewer.html"
user = "Bob Martin"
pdf_command = ""
log_level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFrom(path, home)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "exports"), cfg.ChatRoot)
	assert.Equal(t, filepath.Join(home, "tmpl", "viewer.html"), cfg.Template)
	assert.Equal(t, "Bob Martin", cfg.User)
	assert.Empty(t, cfg.PDFCommand)
	assert.Equal(t, "debug", cfg.LogLevel)
	// untouched keys keep their defaults
	assert.Equal(t, "whatsapp-chat.pdf", cfg.OutputPDF)
}

func TestLoadFrom_InvalidFile(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("chat_root = [unterminated"), 0o644))

	_, err := LoadFrom(path, home)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestExpandHome(t *testing.T) {
	assert.Equal(t, "/h/x", expandHome("~/x", "/h"))
	assert.Equal(t, "~", expandHome("~", "/h"))
	assert.Equal(t, "rel/x", expandHome("rel/x", "/h"))
}
