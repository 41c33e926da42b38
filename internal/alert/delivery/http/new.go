package http

import (
	"dropout-srv/internal/alert"
	"dropout-srv/pkg/discord"
	pkgLog "dropout-srv/pkg/log"

	"github.com/gin-gonic/gin"
)

type handler struct {
	l       pkgLog.Logger
	uc      alert.UseCase
	discord discord.IDiscord
}

// Handler exposes the alert lifecycle routes.
type Handler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Detail(c *gin.Context)
	Update(c *gin.Context)
	Acknowledge(c *gin.Context)
	Resolve(c *gin.Context)
	Sweep(c *gin.Context)
	Stats(c *gin.Context)
}

func New(l pkgLog.Logger, uc alert.UseCase, d discord.IDiscord) Handler {
	return handler{
		l:       l,
		uc:      uc,
		discord: d,
	}
}
