package bot

// MessageInput is one raw chat message. The sender lives in model.Scope.
type MessageInput struct {
	Text string
}

// MessageOutput is the plain-text reply rendered for the chat.
type MessageOutput struct {
	Reply string
}

// AuthCallbackInput carries the OAuth redirect parameters. State is the user
// id the authorization was issued for.
type AuthCallbackInput struct {
	Code  string
	State string
}
