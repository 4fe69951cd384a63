package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/yukikurage/task-analytics-api/internal/config"
)

// Logger is the process-wide structured logger.
var Logger = logrus.New()

// Init configures Logger from cfg. It returns the rotating file writer when
// LOG_FILE is set so the caller can close it on shutdown.
func Init(cfg *config.Config) (io.Closer, error) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	Logger.SetLevel(level)

	if cfg.IsRelease() {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if cfg.LogFile == "" {
		Logger.SetOutput(os.Stdout)
		return nil, nil
	}

	logFile := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	Logger.SetOutput(io.MultiWriter(os.Stdout, logFile))
	Logger.WithField("file", cfg.LogFile).Info("Logger initialized")

	return logFile, nil
}
