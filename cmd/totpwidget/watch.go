package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/totpwidget/core/logger"
	"github.com/dmitrymomot/totpwidget/pkg/client"
)

type watchOutput struct {
	Token      string `json:"token" yaml:"token"`
	Remaining  int64  `json:"remaining" yaml:"remaining"`
	ServerTime int64  `json:"serverTime" yaml:"serverTime"`
	SkewMillis int64  `json:"skewMs" yaml:"skewMs"`
}

func newWatchCommand() *cobra.Command {
	var (
		server     string
		maxRetries uint64
		output     string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "watch SECRET",
		Short: "Print a fresh code from a running service every window",
		Long: `Poll a running service once per window and print each new code.

A failed refresh is retried immediately up to --max-retries times; after that
the command exits with the last error. An invalid secret is reported at once.`,
		Example: `  totpwidget watch JBSWY3DPEHPK3PXP --server http://localhost:8080`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}

			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			log := logger.New(logger.WithOutput(cmd.ErrOrStderr()), logger.WithLevel(level))

			c, err := client.New(server,
				client.WithMaxRetries(maxRetries),
				client.WithLogger(log),
			)
			if err != nil {
				return err
			}

			secret := strings.Join(strings.Fields(args[0]), "")
			w := cmd.OutOrStdout()
			return c.Watch(secret).Run(cmd.Context(), func(tok client.Token) error {
				log.Debug("code received", logger.Event("token"), slog.Duration("skew", tok.Skew))
				out := watchOutput{
					Token:      tok.Code,
					Remaining:  int64(tok.Remaining.Seconds()),
					ServerTime: tok.ServerTime.Unix(),
					SkewMillis: tok.Skew.Milliseconds(),
				}
				return writeOutput(w, output, out, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "%s  %2ds\n", out.Token, out.Remaining)
					return err
				})
			})
		},
	}

	cmd.Flags().StringVarP(&server, "server", "s", "http://localhost:8080", "Base URL of the service")
	cmd.Flags().Uint64Var(&maxRetries, "max-retries", client.DefaultMaxRetries, "Retries per refresh before giving up")
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text, json or yaml")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log refreshes and retries")
	return cmd
}
