package usecase

import (
	"context"

	"asana-chatbot/internal/bot"
)

// CompleteAuthorization finishes the OAuth flow for the user carried in state.
func (uc implUseCase) CompleteAuthorization(ctx context.Context, input bot.AuthCallbackInput) error {
	if err := uc.auth.ExchangeCode(ctx, input.Code, input.State); err != nil {
		uc.l.Errorf(ctx, "bot.usecase.CompleteAuthorization: exchange failed for user=%s: %v", input.State, err)
		return err
	}
	uc.l.Infof(ctx, "bot.usecase.CompleteAuthorization: user=%s authorized", input.State)
	return nil
}
