package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultConfigPath         = "config.toml"
	DefaultHTTPAddr           = ":8080"
	DefaultPGHost             = "127.0.0.1"
	DefaultPGPort             = 5432
	DefaultPGUser             = "postgres"
	DefaultPGDatabase         = "casedesk"
	DefaultPGSSLMode          = "disable"
	DefaultClassifierBaseURL  = "https://api.openai.com/v1"
	DefaultClassifierModel    = "gpt-4o-mini"
	DefaultClassifyTimeout    = 10
	DefaultN8NTimeout         = 60
	DefaultMessageListLimit   = 500
	DefaultSignatureHeader    = "X-Signature-256"
	DefaultMaxUploadSizeBytes = 25 << 20
)

type Config struct {
	Log        LogConfig        `toml:"log"`
	Server     ServerConfig     `toml:"server"`
	Auth       AuthConfig       `toml:"auth"`
	Postgres   PostgresConfig   `toml:"postgres"`
	Classifier ClassifierConfig `toml:"classifier"`
	Ingest     IngestConfig     `toml:"ingest"`
	N8N        N8NConfig        `toml:"n8n"`
	Webhooks   WebhooksConfig   `toml:"webhooks"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type ServerConfig struct {
	Addr         string   `toml:"addr"`
	AllowOrigins []string `toml:"allow_origins"`
}

// AuthConfig holds the secret used to verify front-end bearer tokens.
// Tokens are normally issued by the hosting platform; the token command can
// mint one with the same secret for operators.
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
}

type PostgresConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	SSLMode  string `toml:"sslmode"`
}

// DSN renders the connection string understood by pgx and golang-migrate.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

type ClassifierConfig struct {
	BaseURL          string `toml:"base_url"`
	APIKey           string `toml:"api_key"`
	Model            string `toml:"model"`
	StructuredOutput bool   `toml:"structured_output"`
}

// Enabled reports whether an API key is configured.
func (c ClassifierConfig) Enabled() bool {
	return c.APIKey != ""
}

type IngestConfig struct {
	ClassifyTimeoutSeconds int `toml:"classify_timeout_seconds"`
	MessageListLimit       int `toml:"message_list_limit"`
}

func (c IngestConfig) ClassifyTimeout() time.Duration {
	if c.ClassifyTimeoutSeconds <= 0 {
		return DefaultClassifyTimeout * time.Second
	}
	return time.Duration(c.ClassifyTimeoutSeconds) * time.Second
}

// N8NConfig lists the outbound workflow webhooks. Empty URLs disable the
// corresponding feature.
type N8NConfig struct {
	RAGQueryURL      string `toml:"rag_query_url"`
	UploadToDriveURL string `toml:"upload_to_drive_url"`
	TimeoutSeconds   int    `toml:"timeout_seconds"`
}

func (c N8NConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultN8NTimeout * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// WebhooksConfig controls inbound webhook verification.
type WebhooksConfig struct {
	Secret          string `toml:"secret"`
	SignatureHeader string `toml:"signature_header"`
	MaxUploadBytes  int64  `toml:"max_upload_bytes"`
}

func Load(path string) (Config, error) {
	cfg := Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr:         DefaultHTTPAddr,
			AllowOrigins: []string{"*"},
		},
		Postgres: PostgresConfig{
			Host:     DefaultPGHost,
			Port:     DefaultPGPort,
			User:     DefaultPGUser,
			Database: DefaultPGDatabase,
			SSLMode:  DefaultPGSSLMode,
		},
		Classifier: ClassifierConfig{
			BaseURL:          DefaultClassifierBaseURL,
			Model:            DefaultClassifierModel,
			StructuredOutput: true,
		},
		Ingest: IngestConfig{
			ClassifyTimeoutSeconds: DefaultClassifyTimeout,
			MessageListLimit:       DefaultMessageListLimit,
		},
		N8N: N8NConfig{
			TimeoutSeconds: DefaultN8NTimeout,
		},
		Webhooks: WebhooksConfig{
			SignatureHeader: DefaultSignatureHeader,
			MaxUploadBytes:  DefaultMaxUploadSizeBytes,
		},
	}

	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}
