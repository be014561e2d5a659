// Package opslog provides the structured operation log mmapvmctl writes to
// as it creates managers and runs growth steps against them. pkg/mmapvm
// itself stays silent; only the CLI layer logs, and it does so through
// this package.
package opslog

import (
	"os"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a zap.Logger with helpers for the growth-related events
// mmapvmctl cares about, formatting byte counts with go-humanize so log
// lines read in GiB/MiB/KiB rather than raw integers.
type Logger struct {
	z    *zap.Logger
	bufs *bufferPool
}

// Config controls where and how the operation log is written.
type Config struct {
	// Output receives JSON log lines. Defaults to os.Stdout.
	Output *os.File

	// Development enables zap's human-friendly console encoding instead
	// of JSON, for interactive use at a terminal.
	Development bool
}

// DefaultConfig returns a Config writing JSON lines to stdout.
func DefaultConfig() Config {
	return Config{Output: os.Stdout}
}

// New builds a Logger from cfg.
func New(cfg Config) (*Logger, error) {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	level := zapcore.InfoLevel
	if cfg.Development {
		encoder = zapcore.NewConsoleEncoder(encCfg)
		level = zapcore.DebugLevel
	} else {
		encoder = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(cfg.Output), level)
	z := zap.New(core)

	return &Logger{z: z, bufs: newBufferPool()}, nil
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	return l.z.Sync()
}

func (l *Logger) sizeField(key string, bytes uint64) zap.Field {
	buf := l.bufs.get()
	defer l.bufs.put(buf)
	buf.WriteString(humanize.IBytes(bytes))
	return zap.String(key, buf.String())
}

// Created logs a successful manager creation.
func (l *Logger) Created(path string, reservedSize uint64) {
	l.z.Info("manager created",
		zap.String("path", path),
		l.sizeField("reserved", reservedSize),
	)
}

// MappedNext logs a successful MapNext/MapFull step.
func (l *Logger) MappedNext(path string, mappedSize, reservedSize uint64, moved bool, fileExtension uint64) {
	l.z.Info("mapped next chunk",
		zap.String("path", path),
		l.sizeField("mapped", mappedSize),
		l.sizeField("reserved", reservedSize),
		zap.Bool("moved", moved),
		l.sizeField("file_extension", fileExtension),
	)
}

// Closed logs a manager being closed.
func (l *Logger) Closed(path string) {
	l.z.Info("manager closed", zap.String("path", path))
}

// OperationFailed logs a failed operation with its error.
func (l *Logger) OperationFailed(op, path string, err error) {
	l.z.Error("operation failed",
		zap.String("op", op),
		zap.String("path", path),
		zap.Error(err),
	)
}
