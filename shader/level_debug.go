//go:build debug

package shader

import "log/slog"

// Debug builds surface every missing uniform.
var uniformLogLevel = slog.LevelWarn
