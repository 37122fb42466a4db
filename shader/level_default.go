//go:build !debug

package shader

import "log/slog"

var uniformLogLevel = slog.LevelDebug
