package infra

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the process-wide structured logger. Production emits JSON
// at info level; development switches to the console writer with debug
// enabled.
func NewLogger(appEnv string) zerolog.Logger {
	logger := zerolog.New(os.Stdout).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Logger()

	if appEnv == "development" {
		logger = logger.Level(zerolog.DebugLevel).
			Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return logger
}

// Logger aliases zerolog.Logger so packages outside infra depend on a stable
// logging surface rather than the third-party module directly.
type Logger = zerolog.Logger
