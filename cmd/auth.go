package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/perarneng/flaggmail/pkg/gmail"
)

var manualAuth bool

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorize flaggmail to access your Gmail account",
	Long: `Run the OAuth consent flow and cache the resulting token. By default a
browser is opened and the authorization is received on a local callback
server; with --manual the authorization code is pasted on the terminal.`,
	RunE: runAuth,
}

func init() {
	authCmd.Flags().BoolVar(&manualAuth, "manual", false, "Paste the authorization code instead of using a local callback server")

	rootCmd.AddCommand(authCmd)
}

func runAuth(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
	defer cancel()

	return gmail.NewClient(cfg, log).Authorize(ctx, manualAuth)
}
