package main

import (
	"fmt"
	"os"

	"github.com/Zuo-Peng/chatprint/internal/config"
	"github.com/Zuo-Peng/chatprint/internal/logging"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "chatprint",
		Short:         "Chat export printer - turn chat exports into dated, styled HTML/PDF documents",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			lc := logging.DefaultConfig()
			lc.Level = cfg.LogLevel
			lc.Format = cfg.LogFormat
			if logLevel != "" {
				lc.Level = logLevel
			}
			logging.Init(lc)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug/info/warn/error)")

	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(viewCmd())
	rootCmd.AddCommand(indexCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(browseCmd())
	rootCmd.AddCommand(previewCmd())
	rootCmd.AddCommand(openCmd())
	rootCmd.AddCommand(doctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
