// Package observability wires OpenTelemetry tracing and metrics for token
// validation.
//
// Telemetry is off unless enabled in config:
//
//	shutdown, err := observability.Init(ctx, cfg.Observability, observability.Service{Name: "oidcguard"})
//	defer shutdown(ctx)
//
// Each validation is wrapped in an OperationContext, which opens an
// oidc.validate span and records oidc.validation.total by provider and
// outcome:
//
//	oc := observability.NewOperationContext("oidcguard", "validate", requestID, metrics)
//	ctx, span := oc.Start(ctx, "google")
//	id, err := provider.Validate(p, token)
//	oc.End(ctx, span, "google", err)
package observability
