package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/oidcguard/observability"
	"github.com/kbukum/oidcguard/version"
)

// Health returns a handler that reports service health including component
// statuses. A component that is down turns the response into a 503.
func Health(serviceName string, checkers ...observability.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		sh := check(c, serviceName, checkers)

		httpStatus := http.StatusOK
		if sh.Status == observability.HealthStatusDown {
			httpStatus = http.StatusServiceUnavailable
		}

		c.JSON(httpStatus, gin.H{
			"status":     sh.Status,
			"service":    sh.Service,
			"version":    sh.Version,
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
			"components": sh.Components,
		})
	}
}

func check(c *gin.Context, serviceName string, checkers []observability.HealthChecker) *observability.ServiceHealth {
	sh := observability.NewServiceHealth(serviceName, version.GetShortVersion())
	for _, hc := range checkers {
		sh.AddComponent(hc.CheckHealth(c.Request.Context()))
	}
	return sh
}
