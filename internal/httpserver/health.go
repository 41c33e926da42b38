package httpserver

import (
	"net/http"

	"dropout-srv/pkg/errors"
	"dropout-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	serviceName    = "dropout-srv"
	serviceVersion = "1.0.0"
)

// healthCheck handles health check requests
// @Summary Health Check
// @Description Reports the state of each dependency. Always answers 200 while the process is up.
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is healthy"
// @Router /health [get]
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	ctx := c.Request.Context()

	deps := gin.H{
		"postgres": "disabled",
		"redis":    "disabled",
		"model":    "unavailable",
	}
	if srv.db != nil {
		deps["postgres"] = "connected"
		if err := srv.db.PingContext(ctx); err != nil {
			deps["postgres"] = "unreachable"
		}
	}
	if srv.redis != nil {
		deps["redis"] = "connected"
		if err := srv.redis.Ping(ctx); err != nil {
			deps["redis"] = "unreachable"
		}
	}
	if l, err := srv.holder.Current(); err == nil {
		deps["model"] = l.Model.Version()
	}

	response.OK(c, gin.H{
		"status":       "healthy",
		"version":      serviceVersion,
		"service":      serviceName,
		"environment":  srv.environment,
		"dependencies": deps,
	})
}

// readyCheck handles readiness check requests
// @Summary Readiness Check
// @Description Ready once the database answers and a scoring model is loaded.
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is ready"
// @Failure 503 {object} map[string]interface{} "Service is not ready"
// @Router /ready [get]
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if srv.db != nil {
		if err := srv.db.PingContext(ctx); err != nil {
			response.Error(c, errors.NewHTTPErrorWithStatus(http.StatusServiceUnavailable, "Database connection not available", http.StatusServiceUnavailable), nil)
			return
		}
	}
	if _, err := srv.holder.Current(); err != nil {
		response.Error(c, errors.NewHTTPErrorWithStatus(http.StatusServiceUnavailable, "Scoring model not loaded", http.StatusServiceUnavailable), nil)
		return
	}

	response.OK(c, gin.H{
		"status":  "ready",
		"version": serviceVersion,
		"service": serviceName,
	})
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is alive"
// @Router /live [get]
func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"version": serviceVersion,
		"service": serviceName,
	})
}
