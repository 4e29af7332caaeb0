package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/totpwidget/pkg/base32"
	"github.com/dmitrymomot/totpwidget/pkg/totp"
)

type codeOutput struct {
	Token      string `json:"token" yaml:"token"`
	Remaining  int64  `json:"remaining" yaml:"remaining"`
	Counter    uint64 `json:"counter" yaml:"counter"`
	ExpiresAt  int64  `json:"expiresAt" yaml:"expiresAt"`
	ServerTime int64  `json:"serverTime" yaml:"serverTime"`
}

func newCodeCommand(now func() time.Time) *cobra.Command {
	var (
		at     int64
		output string
	)

	cmd := &cobra.Command{
		Use:   "code SECRET",
		Short: "Compute the current code for a Base32 secret",
		Example: `  totpwidget code JBSWY3DPEHPK3PXP
  totpwidget code "jbsw y3dp ehpk 3pxp" --at 59 -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}

			secret := strings.Join(strings.Fields(args[0]), "")
			if secret == "" {
				return fmt.Errorf("secret is empty")
			}
			key, err := base32.Decode(secret)
			if err != nil {
				return err
			}

			ts := now().Unix()
			if cmd.Flags().Changed("at") {
				if at < 0 {
					return fmt.Errorf("--at must not be negative, got %d", at)
				}
				ts = at
			}

			code, err := totp.Default().Compute(key, ts)
			if err != nil {
				return err
			}

			out := codeOutput{
				Token:      code.Value,
				Remaining:  code.Remaining,
				Counter:    code.Counter,
				ExpiresAt:  code.ExpiresAt,
				ServerTime: ts,
			}
			return writeOutput(cmd.OutOrStdout(), output, out, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s (expires in %ds)\n", out.Token, out.Remaining)
				return err
			})
		},
	}

	cmd.Flags().Int64Var(&at, "at", 0, "Unix time to compute the code for (default now)")
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text, json or yaml")
	return cmd
}
