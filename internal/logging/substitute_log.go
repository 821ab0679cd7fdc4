// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package logging

import (
	"log/slog"
	"strings"
)

// slogWriter routes the standard library logger into slog, honoring an
// ERROR/WARN/INFO prefix when a dependency writes one.
type slogWriter struct{}

func (w *slogWriter) Write(p []byte) (n int, err error) {
	msg := strings.TrimSuffix(string(p), "\n")

	switch {
	case strings.HasPrefix(msg, "ERROR "):
		slog.Error(strings.TrimPrefix(msg, "ERROR "))
	case strings.HasPrefix(msg, "WARN "):
		slog.Warn(strings.TrimPrefix(msg, "WARN "))
	case strings.HasPrefix(msg, "INFO "):
		slog.Info(strings.TrimPrefix(msg, "INFO "))
	default:
		slog.Debug(msg)
	}

	return len(p), nil
}
