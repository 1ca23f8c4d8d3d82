package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays cfg with KYC_* environment variables. When envFile
// exists it is loaded first; variables already set in the process
// environment win over the file.
func parseEnv(cfg *Config, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	setString(&cfg.ServiceBaseURL, "KYC_SERVICE_URL")
	setString(&cfg.StoragePath, "KYC_STORAGE_PATH")
	setString(&cfg.DownloadDir, "KYC_DOWNLOAD_DIR")
	setString(&cfg.LogLevel, "KYC_LOG_LEVEL")
	setString(&cfg.LogFormat, "KYC_LOG_FORMAT")
	setString(&cfg.S3Region, "KYC_S3_REGION")
	setString(&cfg.S3AccessKey, "KYC_S3_ACCESS_KEY")
	setString(&cfg.S3SecretKey, "KYC_S3_SECRET_KEY")
	setString(&cfg.S3BaseEndpoint, "KYC_S3_ENDPOINT")

	if err := setDuration(&cfg.RequestTimeout, "KYC_REQUEST_TIMEOUT"); err != nil {
		return err
	}
	return setDuration(&cfg.NotificationTTL, "KYC_NOTIFICATION_TTL")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}
