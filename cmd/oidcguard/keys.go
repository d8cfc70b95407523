package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kbukum/oidcguard/provider"
	"github.com/kbukum/oidcguard/signer"
)

func newKeysCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Inspect and build trust-anchor key sets",
	}
	cmd.AddCommand(newKeysImportCmd(), newKeysListCmd(a))
	return cmd
}

func newKeysImportCmd() *cobra.Command {
	var (
		pemFile string
		kid     string
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Convert a PEM public key or certificate into a JWK set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pemBytes, err := os.ReadFile(pemFile)
			if err != nil {
				return fmt.Errorf("reading pem: %w", err)
			}
			pub, err := signer.ParsePublicKey(pemBytes)
			if err != nil {
				return err
			}
			doc, err := signer.PublicKeySet(pub, kid)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(doc))
			return err
		},
	}
	cmd.Flags().StringVar(&pemFile, "pem", "", "PEM public key, certificate or RSA private key")
	cmd.Flags().StringVar(&kid, "kid", "", "key id to assign")
	_ = cmd.MarkFlagRequired("pem")
	_ = cmd.MarkFlagRequired("kid")
	return cmd
}

func newKeysListCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "list [provider]",
		Short: "List the key ids a provider trusts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := a.dispatcher()
			ps := d.Providers()
			if len(args) == 1 {
				p, err := provider.Parse(args[0])
				if err != nil {
					return err
				}
				ps = []provider.IdentityProvider{p}
				if file != "" {
					d = provider.NewDispatcher(provider.WithKeyFile(p, file))
				}
			}
			for _, p := range ps {
				kids, err := d.KeyIDs(p)
				if err != nil {
					return fmt.Errorf("provider %s: %w", p, err)
				}
				for _, kid := range kids {
					if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", p, kid); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "with a provider argument, read its key set from this file")
	return cmd
}
