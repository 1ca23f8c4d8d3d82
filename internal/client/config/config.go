package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"
)

// Config holds runtime settings for the review console.
//
// Fields:
//   - ServiceBaseURL: root URL of the remote KYC service.
//   - RequestTimeout: per-request HTTP timeout.
//   - NotificationTTL: how long a notification stays visible.
//   - StoragePath: SQLite file holding the persisted bearer token.
//   - DownloadDir: where downloaded document images are written.
//   - LogLevel / LogFormat: slog level name and "text" or "json".
//   - S3*: credentials and endpoint used for s3:// document URLs.
type Config struct {
	ServiceBaseURL  string
	RequestTimeout  time.Duration
	NotificationTTL time.Duration
	StoragePath     string
	DownloadDir     string
	LogLevel        string
	LogFormat       string
	S3Region        string
	S3AccessKey     string
	S3SecretKey     string
	S3BaseEndpoint  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServiceBaseURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 15 * time.Second
	c.NotificationTTL = 5 * time.Second
	c.StoragePath = "reviewer.db"
	c.DownloadDir = "downloads"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.S3Region = "us-east-1"
}

// Validate reports settings that would make the console unusable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServiceBaseURL)
	if err != nil {
		return fmt.Errorf("service base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("service base url must be http(s), got %q", c.ServiceBaseURL)
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}
	if c.NotificationTTL <= 0 {
		return errors.New("notification ttl must be positive")
	}
	if c.StoragePath == "" {
		return errors.New("storage path must not be empty")
	}
	return nil
}

// LoadConfig builds a Config from defaults, then the environment (with an
// optional .env file), then a JSON file (-c/-config), then command-line
// flags. Later sources take precedence.
func LoadConfig() (*Config, error) {
	return load(".env", os.Args[1:])
}

func load(envFile string, args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, envFile); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
