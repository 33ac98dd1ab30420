package usecase

import (
	"context"
	"time"

	"asana-chatbot/internal/bot"
	"asana-chatbot/pkg/asana"
	pkgLog "asana-chatbot/pkg/log"
)

// Authorizer is the OAuth lifecycle the dispatcher depends on.
type Authorizer interface {
	AuthorizationURL(userID string) string
	ExchangeCode(ctx context.Context, code, state string) error
	Token(ctx context.Context, userID string) (string, error)
}

// ClientFactory builds an Asana client bound to one access token. A fresh
// client is created per message so concurrent users never share token state.
type ClientFactory func(accessToken string) asana.API

type implUseCase struct {
	l         pkgLog.Logger
	auth      Authorizer
	newClient ClientFactory
	now       func() time.Time
}

// New creates the bot use case.
func New(l pkgLog.Logger, auth Authorizer, newClient ClientFactory) bot.UseCase {
	return &implUseCase{
		l:         l,
		auth:      auth,
		newClient: newClient,
		now:       time.Now,
	}
}

// SetClock overrides the time source for testing purposes.
func SetClock(uc bot.UseCase, now func() time.Time) {
	if impl, ok := uc.(*implUseCase); ok {
		impl.now = now
	}
}
