package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbukum/oidcguard/provider"
)

func newValidateCmd(a *app) *cobra.Command {
	var (
		selector   string
		token      string
		showClaims bool
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a token and print its email and nonce",
		Example: `  oidcguard validate --provider 0 --token eyJhbGciOi...
  echo "$TOKEN" | oidcguard validate --provider 1 --token -`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := provider.Parse(selector)
			if err != nil {
				return err
			}
			if token == "-" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading token: %w", err)
				}
				token = strings.TrimSpace(string(b))
			}

			cl, err := a.dispatcher().ValidateClaims(p, token)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if showClaims {
				return enc.Encode(cl)
			}
			id := cl.Identity()
			return enc.Encode(map[string]any{
				"email":    id.Email,
				"nonce":    id.Nonce,
				"provider": p,
			})
		},
	}
	cmd.Flags().StringVarP(&selector, "provider", "p", "0", "provider selector (decimal or 0x-hex) or name")
	cmd.Flags().StringVarP(&token, "token", "t", "", `token to validate, "-" reads stdin`)
	cmd.Flags().BoolVar(&showClaims, "claims", false, "print all verified claims")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}
