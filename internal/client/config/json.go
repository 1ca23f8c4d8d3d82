package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/kycreview/internal/flagx"
	"github.com/dmitrijs2005/kycreview/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Absent fields leave
// the corresponding Config value untouched.
type JsonConfig struct {
	ServiceBaseURL  string          `json:"service_base_url"`
	RequestTimeout  *timex.Duration `json:"request_timeout"`
	NotificationTTL *timex.Duration `json:"notification_ttl"`
	StoragePath     string          `json:"storage_path"`
	DownloadDir     string          `json:"download_dir"`
	LogLevel        string          `json:"log_level"`
	LogFormat       string          `json:"log_format"`
	S3Region        string          `json:"s3_region"`
	S3AccessKey     string          `json:"s3_access_key"`
	S3SecretKey     string          `json:"s3_secret_key"`
	S3BaseEndpoint  string          `json:"s3_base_endpoint"`
}

// parseJson overlays cfg with the file named by -c/-config, if any.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	overlay(&cfg.ServiceBaseURL, jc.ServiceBaseURL)
	overlay(&cfg.StoragePath, jc.StoragePath)
	overlay(&cfg.DownloadDir, jc.DownloadDir)
	overlay(&cfg.LogLevel, jc.LogLevel)
	overlay(&cfg.LogFormat, jc.LogFormat)
	overlay(&cfg.S3Region, jc.S3Region)
	overlay(&cfg.S3AccessKey, jc.S3AccessKey)
	overlay(&cfg.S3SecretKey, jc.S3SecretKey)
	overlay(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.NotificationTTL != nil {
		cfg.NotificationTTL = jc.NotificationTTL.Duration
	}
	return nil
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
