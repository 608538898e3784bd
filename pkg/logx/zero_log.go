package logx

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/marcodd23/go-duckdb-core/pkg/configx"
	"github.com/rs/zerolog"
)

type ZeroLogWrapper struct {
	zeroLog *zerolog.Logger
}

// SetupLogger sets up the package Logger from the service configuration.
func SetupLogger(config configx.Config) Logger {
	logLevel := ParseLevel("info")
	if config.GetLoggingConfig() != nil {
		logLevel = ParseLevel(config.GetLoggingConfig().Level)
	}

	zerolog.SetGlobalLevel(logLevel)

	var zLog zerolog.Logger

	if config.IsLocalEnvironment() {
		zLog = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	} else {
		zLog = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	zLog = zLog.With().
		Str("service", config.GetServiceName()).
		Interface("serviceContext", ServiceContext{Environment: config.GetEnvironment(), Version: config.GetVersion()}).
		Logger()

	l := NewZeroLogWrapper(zLog)
	SetLogger(l)

	return l
}

// NewZeroLogWrapper wraps an already configured zerolog.Logger.
// Used to hand a dedicated logger (for example one writing into a buffer) to a single component.
func NewZeroLogWrapper(zLog zerolog.Logger) *ZeroLogWrapper {
	return &ZeroLogWrapper{zeroLog: &zLog}
}

// ParseLevel maps a configuration level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (lm *ZeroLogWrapper) logWithContext(ctx context.Context, level zerolog.Level, errs []error, msg string) {
	logEvent := lm.zeroLog.WithLevel(level)

	switch level {
	case zerolog.DebugLevel:
		logEvent = logEvent.Str("severity", "DEBUG")
	case zerolog.InfoLevel:
		logEvent = logEvent.Str("severity", "INFO")
	case zerolog.WarnLevel:
		logEvent = logEvent.Str("severity", "WARNING")
	case zerolog.ErrorLevel:
		logEvent = logEvent.Str("severity", "ERROR")
	case zerolog.FatalLevel, zerolog.PanicLevel:
		logEvent = logEvent.Str("severity", "CRITICAL")
	}

	for _, err := range errs {
		if err != nil {
			logEvent = logEvent.Err(err)
		}
	}

	logEvent.Msg(msg)
}

func (lm *ZeroLogWrapper) LogInfo(ctx context.Context, msg string) {
	lm.logWithContext(ctx, zerolog.InfoLevel, nil, msg)
}

func (lm *ZeroLogWrapper) LogDebug(ctx context.Context, msg string) {
	lm.logWithContext(ctx, zerolog.DebugLevel, nil, msg)
}

func (lm *ZeroLogWrapper) LogWarning(ctx context.Context, msg string, errs ...error) {
	lm.logWithContext(ctx, zerolog.WarnLevel, errs, msg)
}

func (lm *ZeroLogWrapper) LogError(ctx context.Context, msg string, errs ...error) {
	lm.logWithContext(ctx, zerolog.ErrorLevel, errs, msg)
}

// LogPanic logs at panic level; zerolog panics once the event is sent.
func (lm *ZeroLogWrapper) LogPanic(ctx context.Context, msg string, errs ...error) {
	lm.zeroLog.Panic().Errs("errors", errs).Str("severity", "CRITICAL").Msg(msg)
}

// LogFatal logs at fatal level and exits the process.
func (lm *ZeroLogWrapper) LogFatal(ctx context.Context, msg string, errs ...error) {
	lm.zeroLog.Fatal().Errs("errors", errs).Str("severity", "CRITICAL").Msg(msg)
}

// GetLogger - returns the underlying logger.
func (lm *ZeroLogWrapper) GetLogger() interface{} {
	return lm.zeroLog
}
