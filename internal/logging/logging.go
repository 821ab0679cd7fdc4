// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package logging

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/segmentio/ksuid"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/platform-engineering-labs/aws-inventory/internal/util"
)

const NoLoggingLevel = slog.Level(100) // A level higher than any standard level to disable logging

// Console output goes to stderr, stdout carries task results.
var consoleWriter io.Writer = os.Stderr

func SetupInitialLogging() {
	slog.SetDefault(slog.New(
		tint.NewHandler(consoleWriter, &tint.Options{
			Level:      slog.LevelWarn,
			TimeFormat: time.RFC3339,
		}),
	))

	redirectStandardLog()
}

type Config struct {
	ConsoleLogLevel slog.Level
	FileLogLevel    slog.Level
	// FilePath enables the rotating log file when set.
	FilePath string
}

func SetupCLILogging(cfg Config) error {
	var consoleHandler slog.Handler
	if cfg.ConsoleLogLevel != NoLoggingLevel {
		consoleHandler = tint.NewHandler(consoleWriter, &tint.Options{
			Level:      cfg.ConsoleLogLevel,
			TimeFormat: time.RFC3339,
		})
	}

	var fileHandler slog.Handler
	if cfg.FilePath != "" {
		if err := util.EnsureFileFolderHierarchy(cfg.FilePath); err != nil {
			return fmt.Errorf("failed to create log folder hierarchy: %w", err)
		}

		lumber := &lumberjack.Logger{
			Filename: cfg.FilePath,
			Compress: true,
		}
		fileHandler = tint.NewHandler(lumber, &tint.Options{
			Level:      cfg.FileLogLevel,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		})
	}

	handler := &MultiLevelHandler{
		fileHandler:    fileHandler,
		consoleHandler: consoleHandler,
	}

	slog.SetDefault(slog.New(handler).With("run", ksuid.New().String()))
	redirectStandardLog()

	return nil
}

// ParseLevel accepts debug, info, warn, error and off.
func ParseLevel(level string) (slog.Level, error) {
	if strings.EqualFold(level, "off") {
		return NoLoggingLevel, nil
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error, off", level)
	}

	return l, nil
}

// overwrite standard log so it's always redirected to slog, in case some deep dep is using it
func redirectStandardLog() {
	lw := &slogWriter{}
	log.Default().SetOutput(lw)
	log.SetOutput(lw)
}

type MultiLevelHandler struct {
	fileHandler    slog.Handler
	consoleHandler slog.Handler
}

func (h *MultiLevelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.fileHandler != nil && h.fileHandler.Enabled(ctx, level) {
		return true
	}
	if h.consoleHandler != nil && h.consoleHandler.Enabled(ctx, level) {
		return true
	}
	return false
}

func (h *MultiLevelHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.fileHandler != nil && h.fileHandler.Enabled(ctx, r.Level) {
		if err := h.fileHandler.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}

	if h.consoleHandler != nil && h.consoleHandler.Enabled(ctx, r.Level) {
		if err := h.consoleHandler.Handle(ctx, r); err != nil {
			return err
		}
	}

	return nil
}

func (h *MultiLevelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandler := &MultiLevelHandler{}

	if h.fileHandler != nil {
		newHandler.fileHandler = h.fileHandler.WithAttrs(attrs)
	}

	if h.consoleHandler != nil {
		newHandler.consoleHandler = h.consoleHandler.WithAttrs(attrs)
	}

	return newHandler
}

func (h *MultiLevelHandler) WithGroup(name string) slog.Handler {
	newHandler := &MultiLevelHandler{}

	if h.fileHandler != nil {
		newHandler.fileHandler = h.fileHandler.WithGroup(name)
	}

	if h.consoleHandler != nil {
		newHandler.consoleHandler = h.consoleHandler.WithGroup(name)
	}

	return newHandler
}
