package kitelog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger that writes errors to stderr and everything else to
// info (stderr when nil), JSON encoded with RFC3339 timestamps.
func New(debug bool) *zap.SugaredLogger {
	return NewWithSinks(debug, nil, nil)
}

// NewWithSinks is New with explicit writers, for tests and tools that own stdout.
func NewWithSinks(debug bool, info, errs zapcore.WriteSyncer) *zap.SugaredLogger {
	if info == nil {
		info = os.Stderr
	}
	if errs == nil {
		errs = os.Stderr
	}

	minLevel := zapcore.InfoLevel
	if debug {
		minLevel = zapcore.DebugLevel
	}
	isErrorLevel := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})
	isInfoLevel := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= minLevel && lvl < zapcore.ErrorLevel
	})

	config := zap.NewProductionEncoderConfig()
	config.EncodeTime = zapcore.RFC3339TimeEncoder
	encoder := zapcore.NewJSONEncoder(config)

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.Lock(errs), isErrorLevel),
		zapcore.NewCore(encoder, zapcore.Lock(info), isInfoLevel),
	)
	return zap.New(core, zap.AddCaller()).Sugar()
}
