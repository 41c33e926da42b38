package httpserver

import (
	_ "dropout-srv/docs"
	alertHTTP "dropout-srv/internal/alert/delivery/http"
	"dropout-srv/internal/middleware"
	riskHTTP "dropout-srv/internal/risk/delivery/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	Api = "/api/v1"
)

func (srv *HTTPServer) mapHandlers() {
	mw := middleware.New(srv.logger, srv.jwtMgr, srv.discord)

	// Apply global middleware
	srv.gin.Use(mw.RequestLogger(), mw.Recovery(), middleware.CORS(middleware.DefaultCORSConfig()))

	// Health check endpoints (no auth required)
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	if srv.gatherer != nil {
		srv.gin.GET("/metrics", gin.WrapH(promhttp.HandlerFor(srv.gatherer, promhttp.HandlerOpts{})))
	}

	// Swagger UI
	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := srv.gin.Group(Api)
	riskHTTP.RegisterRoutes(api, riskHTTP.New(srv.logger, srv.riskUC, srv.discord), mw)
	alertHTTP.RegisterRoutes(api, alertHTTP.New(srv.logger, srv.alertUC, srv.discord), mw)
}
