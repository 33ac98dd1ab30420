package bot

import (
	"context"

	"asana-chatbot/internal/model"
)

// UseCase defines the business logic interface for the bot domain.
type UseCase interface {
	// HandleMessage processes one chat message and renders a reply. It is
	// total: every failure becomes reply text, never a returned error.
	HandleMessage(ctx context.Context, sc model.Scope, input MessageInput) (MessageOutput, error)

	// CompleteAuthorization exchanges an OAuth authorization code and stores
	// the resulting access token for the user identified by the state value.
	CompleteAuthorization(ctx context.Context, input AuthCallbackInput) error
}
