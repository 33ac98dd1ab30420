package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	"asana-chatbot/internal/middleware"
	"asana-chatbot/internal/model"
)

func (srv HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()

	if err := srv.registerDomainRoutes(); err != nil {
		return err
	}

	return nil
}

func (srv HTTPServer) registerMiddlewares() {
	mw := middleware.New(srv.l)

	srv.gin.Use(gin.Recovery())
	srv.gin.Use(mw.RequestID())

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "Server mode: production")
	} else {
		srv.l.Infof(ctx, "Server mode: %s", srv.environment)
	}
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)
}

// registerDomainRoutes registers all domain routes.
func (srv HTTPServer) registerDomainRoutes() error {
	ctx := context.Background()

	if srv.chatHandler != nil {
		srv.gin.POST("/webhook/chat", srv.chatHandler.HandleMessage)
		srv.gin.GET("/oauth/callback", srv.chatHandler.HandleOAuthCallback)
		srv.l.Infof(ctx, "Chat routes registered at POST /webhook/chat and GET /oauth/callback")
	} else {
		srv.l.Warnf(ctx, "Chat handler not configured, skipping chat routes")
	}

	return nil
}
