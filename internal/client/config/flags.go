package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/kycreview/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string     KYC service base URL
//	-t duration   per-request timeout
//	-n duration   notification lifetime
//	-d string     SQLite storage path
//	-o string     document download directory
//	-l string     log level
func parseFlags(cfg *Config, args []string) error {
	filtered := flagx.FilterArgs(args, []string{"-a", "-t", "-n", "-d", "-o", "-l"})

	fs := flag.NewFlagSet("reviewer", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServiceBaseURL, "a", cfg.ServiceBaseURL, "KYC service base URL")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")
	fs.DurationVar(&cfg.NotificationTTL, "n", cfg.NotificationTTL, "notification lifetime")
	fs.StringVar(&cfg.StoragePath, "d", cfg.StoragePath, "local storage path")
	fs.StringVar(&cfg.DownloadDir, "o", cfg.DownloadDir, "document download directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	return fs.Parse(filtered)
}
