package bot

import "errors"

// Domain-specific errors for the bot package.
var (
	ErrAuthMissing         = errors.New("no access token stored for user")
	ErrWorkspaceUnresolved = errors.New("no workspace visible to token")
	ErrProjectNotFound     = errors.New("project not found")
	ErrRemoteOperation     = errors.New("remote operation failed")
	ErrOAuthExchange       = errors.New("oauth code exchange failed")
)
