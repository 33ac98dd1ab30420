package chat

import (
	"github.com/gin-gonic/gin"

	"asana-chatbot/internal/bot"
	pkgLog "asana-chatbot/pkg/log"
)

// Handler exposes the chat surface over HTTP.
type Handler interface {
	HandleMessage(c *gin.Context)
	HandleOAuthCallback(c *gin.Context)
}

type handler struct {
	l        pkgLog.Logger
	uc       bot.UseCase
	security *SecurityValidator
}

// New creates the chat webhook handler.
func New(l pkgLog.Logger, uc bot.UseCase, securityConfig SecurityConfig) Handler {
	return &handler{
		l:        l,
		uc:       uc,
		security: NewSecurityValidator(securityConfig),
	}
}
