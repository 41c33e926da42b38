package middleware

import (
	"dropout-srv/pkg/discord"
	"dropout-srv/pkg/log"
	"dropout-srv/pkg/scope"
)

type Middleware struct {
	l          log.Logger
	jwtManager scope.Manager
	discord    discord.IDiscord
}

func New(l log.Logger, jwtManager scope.Manager, d discord.IDiscord) Middleware {
	return Middleware{
		l:          l,
		jwtManager: jwtManager,
		discord:    d,
	}
}
