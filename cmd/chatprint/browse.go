package main

import (
	"github.com/Zuo-Peng/chatprint/internal/config"
	"github.com/Zuo-Peng/chatprint/internal/index"
	"github.com/Zuo-Peng/chatprint/internal/logging"
	"github.com/Zuo-Peng/chatprint/internal/search"
	"github.com/Zuo-Peng/chatprint/internal/tui"
	"github.com/spf13/cobra"
)

func browseCmd() *cobra.Command {
	var since string
	var limit int

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse archived chats sorted by last activity",
		Long:  `Opens a TUI panel showing all archived chats, most recently active first. Type to search message text.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			refreshIndex(db, cfg.ChatRoot)

			opts := search.Options{
				Since: since,
				Limit: limit,
			}
			return tui.RunList(db, opts, cfg.User)
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "Only chats active since date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results (0 = no limit)")

	return cmd
}

// refreshIndex brings the archive up to date before reading it. Failures
// only cost freshness, so they are logged and not returned.
func refreshIndex(db *index.DB, root string) {
	log := logging.Component("cli")
	stats, err := index.IndexAll(db, root)
	if err != nil {
		log.Warn().Err(err).Msg("index refresh failed")
		return
	}
	log.Debug().Str("stats", stats.String()).Msg("index refreshed")
}
