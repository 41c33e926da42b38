package http

import (
	"dropout-srv/internal/middleware"
	"dropout-srv/internal/model"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the alert routes. Creation and the manual sweep are admin only.
func RegisterRoutes(r *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	g := r.Group("/alerts", mw.Auth(), mw.RequireRoles(model.RoleMentor, model.RoleAdmin))
	{
		g.GET("", h.List)
		g.POST("", mw.RequireRoles(model.RoleAdmin), h.Create)
		g.GET("/stats", h.Stats)
		g.POST("/escalate-sweep", mw.RequireRoles(model.RoleAdmin), h.Sweep)
		g.GET("/:id", h.Detail)
		g.PUT("/:id", h.Update)
		g.POST("/:id/acknowledge", h.Acknowledge)
		g.POST("/:id/resolve", h.Resolve)
	}
}
