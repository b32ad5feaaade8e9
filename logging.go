package arnav

import (
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/theoremus-urban-solutions/arnav/config"
	"github.com/theoremus-urban-solutions/arnav/internal/logging"
)

// InitLogging installs the configured logger as the slog default and routes
// the standard log package through it. Close the returned closer on exit.
func InitLogging(cfg config.LoggingConfig) (*slog.Logger, io.Closer) {
	logger, closer := logging.New(logging.Options{
		Level:      cfg.Level,
		Format:     cfg.Format,
		File:       cfg.File,
		MaxSizeMB:  cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAgeDays: cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}, os.Stdout)
	slog.SetDefault(logger)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return logger, closer
}
