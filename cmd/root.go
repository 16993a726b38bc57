package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/perarneng/flaggmail/pkg/config"
	"github.com/perarneng/flaggmail/pkg/interfaces"
	"github.com/perarneng/flaggmail/pkg/logger"
)

var (
	configFile string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "flaggmail",
	Short: "Label important Gmail messages by keyword",
	Long: `flaggmail is a command-line tool that scans the most recent messages of
a Gmail mailbox, looks for marker words such as "invoice" or "urgent" in
their text, and applies a label to every message that mentions one.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// setup loads the configuration and builds the logger shared by all
// subcommands.
func setup() (*config.Config, interfaces.Logger, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.NewLogger(logger.WithVerbose(verbose)), nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
