package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	ChatRoot   string `toml:"chat_root"`
	DBPath     string `toml:"db_path"`
	Template   string `toml:"template"`
	OutputHTML string `toml:"output_html"`
	OutputPDF  string `toml:"output_pdf"`
	User       string `toml:"user"`
	PDFCommand string `toml:"pdf_command"`
	LogLevel   string `toml:"log_level"`
	LogFormat  string `toml:"log_format"`
}

func Default(home string) *Config {
	return &Config{
		ChatRoot:   filepath.Join(home, "chats"),
		DBPath:     filepath.Join(home, ".config", "chatprint", "chatprint.db"),
		Template:   "whatsapp-viewerV1.html",
		OutputHTML: "whatsapp-viewerV1_print.html",
		OutputPDF:  "whatsapp-chat.pdf",
		PDFCommand: "weasyprint",
		LogLevel:   "info",
		LogFormat:  "console",
	}
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(filepath.Join(home, ".config", "chatprint", "config.toml"), home)
}

// LoadFrom reads cfgPath over the defaults. A missing file is not an error.
func LoadFrom(cfgPath, home string) (*Config, error) {
	cfg := Default(home)

	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	// expand ~ in paths
	cfg.ChatRoot = expandHome(cfg.ChatRoot, home)
	cfg.DBPath = expandHome(cfg.DBPath, home)
	cfg.Template = expandHome(cfg.Template, home)
	cfg.OutputHTML = expandHome(cfg.OutputHTML, home)
	cfg.OutputPDF = expandHome(cfg.OutputPDF, home)

	return cfg, nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
