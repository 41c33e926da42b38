package http

import (
	"dropout-srv/internal/middleware"
	"dropout-srv/internal/model"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the risk routes. Only mentors and administrators may score.
func RegisterRoutes(r *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	g := r.Group("/risk", mw.Auth(), mw.RequireRoles(model.RoleMentor, model.RoleAdmin))
	{
		g.GET("/model", h.Model)
		g.GET("/batch/:owner_id", h.Batch)
		g.POST("/:subject_id", h.Assess)
	}
}
