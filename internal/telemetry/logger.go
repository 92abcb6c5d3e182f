package telemetry

import (
	"log/slog"
	"os"
)

// InitLogger はJSONのslogロガーをグローバルに設定する。
func InitLogger() {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}
