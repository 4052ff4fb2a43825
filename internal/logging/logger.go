// Package logging provides zap logger helpers.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls console verbosity and file rotation.
type Config struct {
	Development bool
	Dir         string
}

// New builds a zap.Logger that writes to the console and, when Dir is set,
// to a size-rotated log file.
func New(cfg Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	consoleEnc := zap.NewProductionEncoderConfig()
	if cfg.Development {
		level = zapcore.DebugLevel
		consoleEnc = zap.NewDevelopmentEncoderConfig()
		consoleEnc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	consoleEnc.TimeKey = "ts"

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleEnc),
			zapcore.Lock(os.Stderr),
			level,
		),
	}

	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
			return nil, fmt.Errorf("create log dir %s: %w", cfg.Dir, err)
		}
		rotated := &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Dir, "firescrape.log"),
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		fileEnc := zap.NewProductionEncoderConfig()
		fileEnc.TimeKey = "ts"
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(fileEnc),
			zapcore.AddSync(rotated),
			level,
		))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}
