package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/oidcguard/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "oidcguard %s\n", version.Get())
			return err
		},
	}
}
