package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ZerologLogger implements Logger using rs/zerolog.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger creates a component-tagged logger. APP_ENV=dev switches
// to human-readable console output; APP_LOG_LEVEL (debug, info, warn,
// error) caps verbosity, defaulting to info.
func NewZerologLogger(component string) Logger {
	var out zerolog.LevelWriter
	if strings.EqualFold(os.Getenv("APP_ENV"), "dev") {
		out = zerolog.MultiLevelWriter(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		out = zerolog.MultiLevelWriter(os.Stdout)
	}
	z := zerolog.New(out).
		Level(parseLevel(os.Getenv("APP_LOG_LEVEL"))).
		With().Timestamp().Str("component", component).
		Logger()
	return &ZerologLogger{log: z}
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

// Debugw logs a message with structured fields, used on hot simulation
// paths where formatting every value is wasteful at info level.
func (l *ZerologLogger) Debugw(msg string, fields map[string]any) {
	l.log.Debug().Fields(fields).Msg(msg)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}
