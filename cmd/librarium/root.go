// Root command for the librarium CLI.
package main

import (
	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Version is the CLI version reported by the version command.
const Version = "0.3.0"

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagBackend   string
	flagJSON      bool
)

// Values loaded from config.yaml by PersistentPreRunE so all subcommands
// can use them.
var (
	configDataDir string
	configBackend string
)

var rootCmd = &cobra.Command{
	Use:     "librarium",
	Short:   "Librarium tracks a book catalogue, patrons, and loans",
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = cfg.GetString(cfgKeyDataDir)
		configBackend = cfg.GetString(cfgKeyBackend)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.librarium-db)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "storage backend: json or sqlite (default: json)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(bookCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(loanCmd)
	rootCmd.AddCommand(returnCmd)
	rootCmd.AddCommand(loansCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(genresCmd)
	rootCmd.AddCommand(clearCmd)
}
