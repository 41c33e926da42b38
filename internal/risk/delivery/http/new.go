package http

import (
	"dropout-srv/internal/risk"
	"dropout-srv/pkg/discord"
	pkgLog "dropout-srv/pkg/log"

	"github.com/gin-gonic/gin"
)

type handler struct {
	l       pkgLog.Logger
	uc      risk.UseCase
	discord discord.IDiscord
}

// Handler exposes the risk scoring routes.
type Handler interface {
	Assess(c *gin.Context)
	Batch(c *gin.Context)
	Model(c *gin.Context)
}

func New(l pkgLog.Logger, uc risk.UseCase, d discord.IDiscord) Handler {
	return handler{
		l:       l,
		uc:      uc,
		discord: d,
	}
}
