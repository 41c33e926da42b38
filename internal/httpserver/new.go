package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"dropout-srv/internal/alert"
	"dropout-srv/internal/risk"
	"dropout-srv/internal/risk/backend"
	"dropout-srv/pkg/discord"
	"dropout-srv/pkg/log"
	pkgRedis "dropout-srv/pkg/redis"
	"dropout-srv/pkg/scope"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPServer represents the HTTP server with all dependencies.
// New() only wires dependencies and validates them.
// Run() (in httpserver.go) serves until its context is done.
type HTTPServer struct {
	// Server configuration
	gin         *gin.Engine
	srv         *http.Server
	logger      log.Logger
	host        string
	port        int
	environment string

	// Domain
	riskUC  risk.UseCase
	alertUC alert.UseCase
	holder  *backend.Holder

	// Auth & security
	jwtMgr scope.Manager

	// External services
	db       *sql.DB
	redis    pkgRedis.IRedis
	discord  discord.IDiscord
	gatherer prometheus.Gatherer
}

// Config is the constructor input for HTTPServer.
type Config struct {
	// Server configuration
	Host        string
	Port        int
	Mode        string
	Environment string

	// Domain
	RiskUC  risk.UseCase
	AlertUC alert.UseCase
	Holder  *backend.Holder

	// Auth & security
	JWTManager scope.Manager

	// External services. Redis and Discord are optional.
	DB       *sql.DB
	Redis    pkgRedis.IRedis
	Discord  discord.IDiscord
	Gatherer prometheus.Gatherer
}

// New creates a new HTTPServer instance with the provided configuration.
// Note: This does NOT start listening. Use (*HTTPServer).Run() to serve.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	srv := &HTTPServer{
		// Server configuration
		gin:         gin.New(),
		logger:      logger,
		host:        cfg.Host,
		port:        cfg.Port,
		environment: cfg.Environment,

		// Domain
		riskUC:  cfg.RiskUC,
		alertUC: cfg.AlertUC,
		holder:  cfg.Holder,

		// Auth & security
		jwtMgr: cfg.JWTManager,

		// External services
		db:       cfg.DB,
		redis:    cfg.Redis,
		discord:  cfg.Discord,
		gatherer: cfg.Gatherer,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	srv.mapHandlers()

	return srv, nil
}

// validate ensures all required dependencies are provided.
func (s *HTTPServer) validate() error {
	if s.logger == nil {
		return errors.New("logger is required")
	}
	if s.port == 0 {
		return errors.New("port is required")
	}
	if s.jwtMgr == nil {
		return errors.New("JWTManager is required")
	}
	if s.riskUC == nil {
		return errors.New("risk use case is required")
	}
	if s.alertUC == nil {
		return errors.New("alert use case is required")
	}
	if s.holder == nil {
		return errors.New("model holder is required")
	}

	return nil
}
