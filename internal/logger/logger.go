package logger

import (
	"io"
	"os"
	"path/filepath"

	"stockadvisors/internal/appconfig"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Log zerolog.Logger

// Module sub-loggers
var (
	Tray   zerolog.Logger
	Window zerolog.Logger
	Bridge zerolog.Logger
	WS     zerolog.Logger
	Invoke zerolog.Logger
	Plugin zerolog.Logger
	Store  zerolog.Logger
	Notify zerolog.Logger
	FS     zerolog.Logger
	Config zerolog.Logger
	DB     zerolog.Logger
)

func Init(cfg appconfig.LogConfig) {
	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	var writer io.Writer

	if cfg.Mode == "debug" {
		writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			writer = os.Stderr
		} else {
			writer = &lumberjack.Logger{
				Filename:   cfg.FilePath,
				MaxSize:    cfg.MaxSizeMB,
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.MaxAgeDays,
				Compress:   cfg.Compress,
			}
		}
	}

	Log = zerolog.New(writer).With().Timestamp().Caller().Logger()

	Tray = Log.With().Str("module", "tray").Logger()
	Window = Log.With().Str("module", "window").Logger()
	Bridge = Log.With().Str("module", "bridge").Logger()
	WS = Log.With().Str("module", "websocket").Logger()
	Invoke = Log.With().Str("module", "invoke").Logger()
	Plugin = Log.With().Str("module", "plugin").Logger()
	Store = Log.With().Str("module", "store").Logger()
	Notify = Log.With().Str("module", "notify").Logger()
	FS = Log.With().Str("module", "fs").Logger()
	Config = Log.With().Str("module", "config").Logger()
	DB = Log.With().Str("module", "database").Logger()
}

func parseLevel(s string) zerolog.Level {
	switch s {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}
