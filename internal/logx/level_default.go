//go:build !debug

package logx

import "log/slog"

var defaultLevel = slog.LevelWarn
