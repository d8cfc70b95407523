package main

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/oidcguard/config"
	"github.com/kbukum/oidcguard/logger"
	"github.com/kbukum/oidcguard/provider"
)

const serviceName = "oidcguard"

// app carries state shared by subcommands once the root pre-run has loaded it.
type app struct {
	configFile string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   serviceName,
		Short: "Verify OIDC ID tokens against pinned provider keys",
		Long: `oidcguard authenticates ID tokens against the pre-provisioned signing keys
of a declared identity provider and returns the token's email and nonce.

Providers are selected by a 256-bit selector: 0 is Google, any other value is
the Test provider.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "config file (default: search cmd/oidcguard/config.yml, ./config.yml)")

	root.AddCommand(
		newServeCmd(a),
		newValidateCmd(a),
		newMintCmd(),
		newKeysCmd(a),
		newVersionCmd(),
	)
	return root
}

// load reads config, applies defaults and initializes the global logger.
// Commands other than serve log to stderr so stdout stays machine-readable.
func (a *app) load(cmd *cobra.Command) error {
	var opts []config.LoaderOption
	if a.configFile != "" {
		opts = append(opts, config.WithConfigFile(a.configFile))
	}
	if err := config.LoadConfig(serviceName, &a.cfg, opts...); err != nil {
		return err
	}
	if cmd.Name() != "serve" {
		a.cfg.Logging.Output = "stderr"
		if a.cfg.Logging.Level == "" {
			a.cfg.Logging.Level = "warn"
		}
	}
	a.cfg.ApplyDefaults()
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	logger.Init(&a.cfg.Logging, a.cfg.Name)
	return nil
}

func (a *app) dispatcher() *provider.Dispatcher {
	opts := append(a.cfg.Trust.DispatcherOptions(), provider.WithLogger(logger.WithComponent("provider")))
	return provider.NewDispatcher(opts...)
}
