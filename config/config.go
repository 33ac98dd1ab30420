package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Asana chatbot specifics
	Asana      AsanaConfig
	TokenStore TokenStoreConfig
	Chat       ChatConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// AsanaConfig holds the OAuth application credentials and API endpoints.
type AsanaConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	APIBaseURL   string // override for tests; empty means the public API
	AuthURL      string
	TokenURL     string
}

// TokenStoreConfig selects where per-user access tokens live.
type TokenStoreConfig struct {
	Type   string // "memory" or "valkey"
	Valkey ValkeyConfig
}

type ValkeyConfig struct {
	URL       string
	Password  string
	DB        int
	KeyPrefix string
}

// ChatConfig secures the inbound chat webhook.
type ChatConfig struct {
	WebhookSecret   string
	AllowedIPs      []string
	RateLimitPerMin int
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Asana OAuth application
	cfg.Asana.ClientID = expandEnvVar(viper.GetString("asana.client_id"))
	cfg.Asana.ClientSecret = expandEnvVar(viper.GetString("asana.client_secret"))
	cfg.Asana.RedirectURL = viper.GetString("asana.redirect_url")
	cfg.Asana.APIBaseURL = viper.GetString("asana.api_base_url")
	cfg.Asana.AuthURL = viper.GetString("asana.auth_url")
	cfg.Asana.TokenURL = viper.GetString("asana.token_url")
	if clientID := viper.GetString("asana_client_id"); clientID != "" {
		cfg.Asana.ClientID = clientID
	}
	if clientSecret := viper.GetString("asana_client_secret"); clientSecret != "" {
		cfg.Asana.ClientSecret = clientSecret
	}
	if redirectURL := viper.GetString("asana_redirect_url"); redirectURL != "" {
		cfg.Asana.RedirectURL = redirectURL
	}

	// Token store
	cfg.TokenStore.Type = viper.GetString("token_store.type")
	cfg.TokenStore.Valkey.URL = viper.GetString("token_store.valkey.url")
	cfg.TokenStore.Valkey.Password = expandEnvVar(viper.GetString("token_store.valkey.password"))
	cfg.TokenStore.Valkey.DB = viper.GetInt("token_store.valkey.db")
	cfg.TokenStore.Valkey.KeyPrefix = viper.GetString("token_store.valkey.key_prefix")
	if valkeyURL := viper.GetString("valkey_url"); valkeyURL != "" {
		cfg.TokenStore.Valkey.URL = valkeyURL
	}

	// Chat webhook
	cfg.Chat.WebhookSecret = expandEnvVar(viper.GetString("chat.webhook_secret"))
	if webhookSecret := viper.GetString("chat_webhook_secret"); webhookSecret != "" {
		cfg.Chat.WebhookSecret = webhookSecret
	}
	cfg.Chat.RateLimitPerMin = viper.GetInt("chat.rate_limit_per_min")

	// Split allowed IPs since viper might not parse array seamlessly from env
	var ips []string
	if rawIps := viper.GetString("chat.allowed_ips"); rawIps != "" {
		for _, ip := range strings.Split(rawIps, ",") {
			ip = strings.TrimSpace(ip)
			if ip != "" {
				ips = append(ips, ip)
			}
		}
	}
	cfg.Chat.AllowedIPs = ips

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.Asana.ClientID == "" {
		return fmt.Errorf("asana.client_id is required")
	}
	if cfg.Asana.ClientSecret == "" {
		return fmt.Errorf("asana.client_secret is required")
	}
	if cfg.Asana.RedirectURL == "" {
		return fmt.Errorf("asana.redirect_url is required")
	}
	switch cfg.TokenStore.Type {
	case "memory", "valkey":
	default:
		return fmt.Errorf("token_store.type must be \"memory\" or \"valkey\", got %q", cfg.TokenStore.Type)
	}
	if cfg.TokenStore.Type == "valkey" && cfg.TokenStore.Valkey.URL == "" {
		return fmt.Errorf("token_store.valkey.url is required when token_store.type is valkey")
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("token_store.type", "memory")
	viper.SetDefault("token_store.valkey.key_prefix", "asana-chatbot:")
	viper.SetDefault("chat.rate_limit_per_min", 60)
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}
