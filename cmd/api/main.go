package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"asana-chatbot/config"
	"asana-chatbot/internal/auth"
	chatDelivery "asana-chatbot/internal/bot/delivery/chat"
	"asana-chatbot/internal/bot/usecase"
	"asana-chatbot/internal/httpserver"
	"asana-chatbot/pkg/asana"
	"asana-chatbot/pkg/log"
	"asana-chatbot/pkg/tokenstore"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Asana chatbot...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Token store
	var store tokenstore.Store
	switch cfg.TokenStore.Type {
	case "valkey":
		valkeyStore, vkErr := tokenstore.NewValkeyStore(tokenstore.ValkeyConfig{
			URL:       cfg.TokenStore.Valkey.URL,
			Password:  cfg.TokenStore.Valkey.Password,
			DB:        cfg.TokenStore.Valkey.DB,
			KeyPrefix: cfg.TokenStore.Valkey.KeyPrefix,
		})
		if vkErr != nil {
			logger.Error(ctx, "Failed to connect to valkey: ", vkErr)
			return
		}
		defer valkeyStore.Close()
		store = valkeyStore
		logger.Infof(ctx, "Token store: valkey at %s", cfg.TokenStore.Valkey.URL)
	default:
		store = tokenstore.NewMemoryStore()
		logger.Warn(ctx, "Token store: in-memory, tokens are lost on restart")
	}

	// 4. OAuth manager
	authManager := auth.New(auth.Config{
		ClientID:     cfg.Asana.ClientID,
		ClientSecret: cfg.Asana.ClientSecret,
		RedirectURL:  cfg.Asana.RedirectURL,
		AuthURL:      cfg.Asana.AuthURL,
		TokenURL:     cfg.Asana.TokenURL,
	}, store, logger)

	// 5. Bot use case: one Asana client per message, bound to that user's token
	apiBaseURL := cfg.Asana.APIBaseURL
	newClient := func(token string) asana.API {
		client := asana.NewClient(token)
		if apiBaseURL != "" {
			client.SetBaseURL(apiBaseURL)
		}
		return client
	}
	botUC := usecase.New(logger, authManager, newClient)

	// 6. Chat delivery
	chatHandler := chatDelivery.New(logger, botUC, chatDelivery.SecurityConfig{
		Secret:          cfg.Chat.WebhookSecret,
		AllowedIPs:      cfg.Chat.AllowedIPs,
		RateLimitPerMin: cfg.Chat.RateLimitPerMin,
	})

	// 7. HTTP server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		ChatHandler: chatHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 8. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
