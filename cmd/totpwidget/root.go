package main

import (
	"time"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "totpwidget",
		Short: "Time-based one-time passwords over HTTP",
		Long: `totpwidget computes RFC 6238 codes (SHA-1, 6 digits, 30 second window)
from Base32 secrets.

It runs as an HTTP service answering GET /{secret} with an auto-refreshing
page, or with JSON when ?format=json is set. The same codes can be computed
locally or watched from a running service.

Examples:
  # Run the service, configured from the environment and .env
  totpwidget serve

  # Compute the current code
  totpwidget code JBSWY3DPEHPK3PXP

  # Follow a code from a running service
  totpwidget watch JBSWY3DPEHPK3PXP --server http://localhost:8080`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.AddCommand(
		newServeCommand(),
		newCodeCommand(time.Now),
		newWatchCommand(),
		newVersionCommand(),
	)
	return cmd
}
