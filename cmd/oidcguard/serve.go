package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kbukum/oidcguard/logger"
	"github.com/kbukum/oidcguard/observability"
	"github.com/kbukum/oidcguard/policy"
	"github.com/kbukum/oidcguard/server"
	"github.com/kbukum/oidcguard/version"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP validation service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg
	log := logger.WithComponent("serve")

	d := a.dispatcher()
	if err := d.Preload(); err != nil {
		return fmt.Errorf("loading trust anchors: %w", err)
	}

	shutdownTelemetry, err := observability.Init(ctx, cfg.Observability, observability.Service{
		Name:        cfg.Name,
		Version:     version.Get().Short(),
		Environment: cfg.Environment,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(sctx); err != nil {
			log.Warn("telemetry shutdown failed", logger.Fields(logger.FieldError, err.Error()))
		}
	}()

	metrics, err := observability.NewMetrics(observability.Meter())
	if err != nil {
		return err
	}

	checker, err := policy.New(cfg.Policy)
	if err != nil {
		return err
	}

	srv := server.New(cfg.Server, logger.GetGlobalLogger())
	(&server.ValidateHandler{
		Service:   cfg.Name,
		Validator: d,
		Policy:    checker,
		Metrics:   metrics,
		Log:       logger.WithComponent("validate"),
	}).Register(srv.GinEngine())
	srv.RegisterDefaultEndpoints(cfg.Name, server.TrustAnchorHealth(d)...)
	srv.ApplyMiddleware(metrics)

	if err := srv.Start(ctx); err != nil {
		return err
	}
	log.Info("oidcguard ready", logger.Fields(
		"addr", srv.Addr(),
		"policy", checker.Enabled(),
		"version", version.GetShortVersion(),
	))

	<-ctx.Done()
	return srv.Stop(context.Background())
}
