// Package config provides configuration types and loading for dialogiq.
package config

import "time"

// Config is the root configuration struct.
// Top-level groups: Server, Auth, Backend, Gateway, Channels, Assistant.
type Config struct {
	Server    ServerConfig    `json:"server"`
	Auth      AuthConfig      `json:"auth"`
	Backend   BackendConfig   `json:"backend"`
	Gateway   GatewayConfig   `json:"gateway"`
	Channels  ChannelsConfig  `json:"channels"`
	Assistant AssistantConfig `json:"assistant"`
}

// ---------------------------------------------------------------------------
// Server – CRUD REST backend
// ---------------------------------------------------------------------------

// ServerConfig contains the REST backend settings.
type ServerConfig struct {
	Host         string   `json:"host" envconfig:"HOST"`
	Port         int      `json:"port" envconfig:"PORT"`
	DBPath       string   `json:"dbPath" envconfig:"DB_PATH"`
	AllowOrigins []string `json:"allowOrigins"`
}

// ---------------------------------------------------------------------------
// Auth – demo login token issuance
// ---------------------------------------------------------------------------

// AuthConfig contains token signing settings. The default secret is a demo
// placeholder; deployments override it via DIALOGIQ_AUTH_SECRET.
type AuthConfig struct {
	Secret   string        `json:"secret" envconfig:"SECRET"`
	TokenTTL time.Duration `json:"tokenTtl" envconfig:"TOKEN_TTL"`
}

// ---------------------------------------------------------------------------
// Backend – how the assistant reaches the REST API
// ---------------------------------------------------------------------------

// BackendConfig contains the assistant-side API client settings.
type BackendConfig struct {
	BaseURL       string        `json:"baseUrl" envconfig:"BASE_URL"`
	CreateTimeout time.Duration `json:"createTimeout" envconfig:"CREATE_TIMEOUT"`
}

// ---------------------------------------------------------------------------
// Gateway – conversational HTTP front door
// ---------------------------------------------------------------------------

// GatewayConfig contains the conversational gateway server settings.
type GatewayConfig struct {
	Host string `json:"host" envconfig:"HOST"`
	Port int    `json:"port" envconfig:"PORT"`
}

// ---------------------------------------------------------------------------
// Channels – chat integrations
// ---------------------------------------------------------------------------

// ChannelsConfig contains all channel configurations.
type ChannelsConfig struct {
	Slack SlackConfig `json:"slack"`
}

// SlackConfig configures the Slack channel.
type SlackConfig struct {
	Enabled       bool   `json:"enabled" envconfig:"ENABLED"`
	BotToken      string `json:"botToken" envconfig:"BOT_TOKEN"`
	SigningSecret string `json:"signingSecret" envconfig:"SIGNING_SECRET"`
}

// ---------------------------------------------------------------------------
// Assistant – conversation defaults
// ---------------------------------------------------------------------------

// AssistantConfig contains identity defaults applied when a conversation
// never names its owner.
type AssistantConfig struct {
	DefaultUser  string `json:"defaultUser" envconfig:"DEFAULT_USER"`
	DefaultEmail string `json:"defaultEmail" envconfig:"DEFAULT_EMAIL"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:   "127.0.0.1", // Secure default
			Port:   8000,
			DBPath: "~/.dialogiq/dialogiq.db",
			AllowOrigins: []string{
				"http://localhost:3000",
				"http://127.0.0.1:3000",
			},
		},
		Auth: AuthConfig{
			Secret:   "your-secret-key-here", // demo placeholder, override in deployments
			TokenTTL: 24 * time.Hour,
		},
		Backend: BackendConfig{
			BaseURL:       "http://localhost:8000",
			CreateTimeout: 5 * time.Second,
		},
		Gateway: GatewayConfig{
			Host: "127.0.0.1",
			Port: 5055,
		},
		Assistant: AssistantConfig{
			DefaultUser:  "default_user",
			DefaultEmail: "user@example.com",
		},
	}
}
