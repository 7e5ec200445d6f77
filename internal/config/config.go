package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogPretty bool   `mapstructure:"log_pretty" yaml:"log_pretty"`

	// AdminKey is the shared secret that grants moderator privileges
	// over the live chat (clear history etc.).
	AdminKey string `mapstructure:"admin_key" yaml:"admin_key"`

	// HistoryPath and IdentityPath are the JSON documents holding the
	// bounded public message log and the token -> nickname map.
	HistoryPath  string `mapstructure:"history_path" yaml:"history_path"`
	IdentityPath string `mapstructure:"identity_path" yaml:"identity_path"`
	HistoryLimit int    `mapstructure:"history_limit" yaml:"history_limit"`

	// DatabasePath is the SQLite file backing registered accounts.
	DatabasePath string `mapstructure:"database_path" yaml:"database_path"`

	// BlockedWords are masked in public and private message bodies.
	BlockedWords []string `mapstructure:"blocked_words" yaml:"blocked_words"`
	MaskToken    string   `mapstructure:"mask_token" yaml:"mask_token"`

	// PingInterval / PingTimeout drive the WebSocket liveness probe; a
	// connection that fails a probe is torn down as if it disconnected.
	PingInterval time.Duration `mapstructure:"ping_interval" yaml:"ping_interval"`
	PingTimeout  time.Duration `mapstructure:"ping_timeout" yaml:"ping_timeout"`

	// MessageRateLimit caps chat messages per connection per minute.
	// Zero disables the limiter.
	MessageRateLimit int `mapstructure:"message_rate_limit" yaml:"message_rate_limit"`

	JWTSecret   string `mapstructure:"jwt_secret" yaml:"jwt_secret"`
	JWTIssuer   string `mapstructure:"jwt_issuer" yaml:"jwt_issuer"`
	JWTAudience string `mapstructure:"jwt_audience" yaml:"jwt_audience"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		LogPretty:         true,
		AdminKey:          "supersecret123",
		HistoryPath:       "history.json",
		IdentityPath:      "usernames.json",
		HistoryLimit:      100,
		DatabasePath:      "terminuschat.db",
		MaskToken:         "***",
		PingInterval:      30 * time.Second,
		PingTimeout:       10 * time.Second,
		MessageRateLimit:  0,
		JWTSecret:         "dev-secret",
		JWTIssuer:         "terminuschat",
		JWTAudience:       "terminuschat-clients",
	}
}
