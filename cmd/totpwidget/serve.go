package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/totpwidget/core/logger"
	"github.com/dmitrymomot/totpwidget/internal/app"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		Long: `Run the HTTP service until interrupted.

Configuration comes from the environment, with a .env file in the working
directory loaded first when present: APP_ENV, APP_NAME, LOG_LEVEL, SERVER_ADDR,
SERVER_*_TIMEOUT, SERVER_TLS_CERT_FILE, SERVER_TLS_KEY_FILE,
WIDGET_MAX_RETRIES and WIDGET_DEFAULT_LANG.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := app.NewFromEnv()
			if err != nil {
				return err
			}
			logger.SetAsDefault(a.Logger())
			a.Logger().Info("totpwidget", logger.Version(version), logger.Event("startup"))
			return a.Run(cmd.Context())
		},
	}
}
