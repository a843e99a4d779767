// internal/logger/logger.go
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	LogFile     string
	MaxSize     int  // megabytes
	MaxAge      int  // days
	MaxBackups  int  // files
	Compress    bool // compress rotated files
	Development bool

	// BufferSize is the number of recent entries kept for the TUI logs
	// screen.
	BufferSize int

	// Console disables the stdout core; a fullscreen TUI owns the
	// terminal, so console output would corrupt the view.
	Console bool
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() *Config {
	return &Config{
		LogFile:     "swap-terminal.log",
		MaxSize:     100,
		MaxAge:      7,
		MaxBackups:  3,
		Compress:    true,
		Development: false,
		BufferSize:  512,
		Console:     false,
	}
}

// New creates a zap logger writing JSON to a rotated file and mirroring
// every entry into a ring buffer for the TUI.
func New(cfg *Config) (*zap.Logger, *Buffer, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	logRotator := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	if cfg.Development {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder

	var level zapcore.Level
	if cfg.Development {
		level = zapcore.DebugLevel
	} else {
		level = zapcore.InfoLevel
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(logRotator), level),
	}
	if cfg.Console {
		cores = append(cores,
			zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(os.Stdout), level))
	}

	bufferSize := cfg.BufferSize
	if bufferSize <= 0 {
		bufferSize = 512
	}
	buffer := NewBuffer(bufferSize)

	logger := zap.New(zapcore.NewTee(cores...),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Hooks(func(entry zapcore.Entry) error {
			buffer.Add(Entry{
				Timestamp: entry.Time,
				Level:     entry.Level,
				Message:   entry.Message,
			})
			return nil
		}),
	)

	return logger, buffer, nil
}

// Sync flushes the logger, ignoring the stdout sync errors some
// platforms report.
func Sync(l *zap.Logger) error {
	err := l.Sync()
	if err != nil && (err.Error() == "sync /dev/stdout: invalid argument" ||
		err.Error() == "sync /dev/stderr: inappropriate ioctl for device") {
		return nil
	}
	return err
}
