package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kbukum/oidcguard/claims"
	"github.com/kbukum/oidcguard/signer"
)

func newMintCmd() *cobra.Command {
	var (
		keyFile string
		kid     string
		email   string
		nonce   string
	)
	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Sign a Test-provider token with an RSA private key",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pemBytes, err := os.ReadFile(keyFile)
			if err != nil {
				return fmt.Errorf("reading key: %w", err)
			}
			key, err := signer.ParsePrivateKey(pemBytes)
			if err != nil {
				return err
			}
			s, err := signer.New(key, kid)
			if err != nil {
				return err
			}
			token, err := s.Sign(claims.Minimal{Email: email, Nonce: nonce})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVarP(&keyFile, "key", "k", "", "PEM-encoded RSA private key")
	cmd.Flags().StringVar(&kid, "kid", "", "key id written to the token header")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().StringVar(&nonce, "nonce", "", "nonce claim")
	for _, f := range []string{"key", "kid", "email", "nonce"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}
