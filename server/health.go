package server

import (
	"context"
	"strconv"

	"github.com/kbukum/oidcguard/observability"
	"github.com/kbukum/oidcguard/provider"
)

// TrustAnchorHealth reports one component per provider: up with its key
// count when the key set loads, down with the load error otherwise.
func TrustAnchorHealth(d *provider.Dispatcher) []observability.HealthChecker {
	var checkers []observability.HealthChecker
	for _, p := range d.Providers() {
		checkers = append(checkers, observability.HealthCheckerFunc(func(context.Context) observability.Health {
			h := observability.Health{Name: "trust." + p.String()}
			kids, err := d.KeyIDs(p)
			if err != nil {
				h.Status = observability.HealthStatusDown
				h.Message = err.Error()
				return h
			}
			h.Status = observability.HealthStatusUp
			h.Details = map[string]string{"keys": strconv.Itoa(len(kids))}
			return h
		}))
	}
	return checkers
}
