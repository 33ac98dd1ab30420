package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"

	"asana-chatbot/internal/bot"
	pkgLog "asana-chatbot/pkg/log"
	"asana-chatbot/pkg/tokenstore"
)

// Asana OAuth endpoints.
const (
	DefaultAuthURL  = "https://app.asana.com/-/oauth_authorize"
	DefaultTokenURL = "https://app.asana.com/-/oauth_token"
)

// tokenKeyPrefix is the store naming convention for per-user access tokens.
const tokenKeyPrefix = "asana_access_token_"

// Config holds the OAuth application credentials.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string // callback URL registered with Asana
	AuthURL      string // override for tests; DefaultAuthURL when empty
	TokenURL     string // override for tests; DefaultTokenURL when empty
}

// Manager owns the OAuth authorization/token lifecycle: it builds
// authorization URLs, exchanges codes, and reads/writes per-user tokens.
type Manager struct {
	conf  *oauth2.Config
	store tokenstore.Store
	l     pkgLog.Logger
}

// New creates a Manager backed by the given token store.
func New(cfg Config, store tokenstore.Store, l pkgLog.Logger) *Manager {
	authURL := cfg.AuthURL
	if authURL == "" {
		authURL = DefaultAuthURL
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}

	return &Manager{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:  authURL,
				TokenURL: tokenURL,
				// Asana wants client credentials in the form body, not basic auth.
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		store: store,
		l:     l,
	}
}

// AuthorizationURL builds the browser URL that starts the OAuth flow.
// The state parameter carries the user id; the callback recovers it to know
// which user to store the token for. No separate CSRF nonce is used.
func (m *Manager) AuthorizationURL(userID string) string {
	return m.conf.AuthCodeURL(userID)
}

// ExchangeCode trades an authorization code for an access token and stores it
// under the user id recovered from state. A previous token is overwritten.
// Only the access token is kept; expiry and refresh tokens are discarded.
func (m *Manager) ExchangeCode(ctx context.Context, code, state string) error {
	tok, err := m.conf.Exchange(ctx, code)
	if err != nil {
		m.l.Errorf(ctx, "auth: token exchange failed for state=%s: %v", state, err)
		return fmt.Errorf("%w: %v", bot.ErrOAuthExchange, err)
	}

	if err := m.store.Set(ctx, TokenKey(state), tok.AccessToken); err != nil {
		m.l.Errorf(ctx, "auth: failed to store token for user=%s: %v", state, err)
		return fmt.Errorf("%w: storing token: %v", bot.ErrOAuthExchange, err)
	}

	m.l.Infof(ctx, "auth: stored access token for user=%s", state)
	return nil
}

// Token reads the stored access token for a user. Absence is reported as
// bot.ErrAuthMissing; there is no caching and no TTL.
func (m *Manager) Token(ctx context.Context, userID string) (string, error) {
	v, err := m.store.Get(ctx, TokenKey(userID))
	if err != nil {
		if errors.Is(err, tokenstore.ErrNotFound) {
			return "", bot.ErrAuthMissing
		}
		return "", fmt.Errorf("reading token for user %s: %w", userID, err)
	}
	return v, nil
}

// TokenKey returns the store key for a user's access token.
func TokenKey(userID string) string {
	return tokenKeyPrefix + userID
}
