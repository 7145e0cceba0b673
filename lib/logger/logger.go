// Package logger -----------------------------
// @file      : logger.go
// @author    : hcjjj
// @contact   : hcjjj@foxmail.com
// @time      : 2023/12/15 20:05
// -------------------------------------------
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Settings 日志文件的配置，文件名为 Name-时间.Ext
type Settings struct {
	Path       string `toml:"path"`
	Name       string `toml:"name"`
	Ext        string `toml:"ext"`
	TimeFormat string `toml:"time_format"`
	// Level debug / info / warn / error，默认 info
	Level string `toml:"level"`
}

var current atomic.Pointer[zap.SugaredLogger]

func init() {
	// Setup 之前先输出到 stderr
	core := zapcore.NewCore(newEncoder(), zapcore.Lock(os.Stderr), zapcore.InfoLevel)
	current.Store(build(core))
}

func newEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

func build(core zapcore.Core) *zap.SugaredLogger {
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()
}

// Setup 同时输出到 stdout 和日志文件
func Setup(settings *Settings) {
	level := zapcore.InfoLevel
	if settings.Level != "" {
		if err := level.UnmarshalText([]byte(settings.Level)); err != nil {
			Warn("unknown log level " + settings.Level + ", using info")
			level = zapcore.InfoLevel
		}
	}
	cores := []zapcore.Core{
		zapcore.NewCore(newEncoder(), zapcore.Lock(os.Stdout), level),
	}
	file, err := openLogFile(settings)
	if err != nil {
		Error(err)
	} else {
		cores = append(cores, zapcore.NewCore(newEncoder(), zapcore.AddSync(file), level))
	}
	old := current.Swap(build(zapcore.NewTee(cores...)))
	_ = old.Sync()
}

func openLogFile(settings *Settings) (*os.File, error) {
	if err := os.MkdirAll(settings.Path, 0755); err != nil {
		return nil, fmt.Errorf("create log dir %s: %w", settings.Path, err)
	}
	fileName := fmt.Sprintf("%s-%s.%s",
		settings.Name,
		time.Now().Format(settings.TimeFormat),
		strings.TrimPrefix(settings.Ext, "."))
	path := filepath.Join(settings.Path, fileName)
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return file, nil
}

// Sync flushes buffered log entries.
func Sync() error {
	return current.Load().Sync()
}

func Debug(v ...interface{}) {
	current.Load().Debug(v...)
}

func Info(v ...interface{}) {
	current.Load().Info(v...)
}

func Warn(v ...interface{}) {
	current.Load().Warn(v...)
}

func Error(v ...interface{}) {
	current.Load().Error(v...)
}

func Fatal(v ...interface{}) {
	current.Load().Fatal(v...)
}
