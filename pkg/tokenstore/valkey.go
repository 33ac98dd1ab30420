package tokenstore

import (
	"context"
	"fmt"

	"github.com/valkey-io/valkey-go"
)

// ValkeyConfig configures the Valkey-backed store.
type ValkeyConfig struct {
	URL       string // host:port
	Password  string
	DB        int
	KeyPrefix string // prepended to every key, e.g. "chatbot:"
}

// ValkeyStore persists tokens in a Valkey/Redis-compatible server.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore connects to the configured Valkey server.
func NewValkeyStore(cfg ValkeyConfig) (*ValkeyStore, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{cfg.URL},
		Password:    cfg.Password,
		SelectDB:    cfg.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to valkey at %s: %w", cfg.URL, err)
	}

	return &ValkeyStore{client: client, prefix: cfg.KeyPrefix}, nil
}

func (s *ValkeyStore) Get(ctx context.Context, key string) (string, error) {
	resp := s.client.Do(ctx, s.client.B().Get().Key(s.prefix+key).Build())
	v, err := resp.ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("valkey get %q: %w", key, err)
	}
	return v, nil
}

func (s *ValkeyStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Do(ctx, s.client.B().Set().Key(s.prefix+key).Value(value).Build()).Error(); err != nil {
		return fmt.Errorf("valkey set %q: %w", key, err)
	}
	return nil
}

func (s *ValkeyStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Do(ctx, s.client.B().Del().Key(s.prefix+key).Build()).Error(); err != nil {
		return fmt.Errorf("valkey del %q: %w", key, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *ValkeyStore) Close() {
	s.client.Close()
}
