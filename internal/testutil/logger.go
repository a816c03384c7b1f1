package testutil

import (
	"bytes"
	"log/slog"
)

// NewBufferLogger returns a text logger writing every level, including the
// debug lines emitted for health checks and websocket upgrades, and its buffer.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, &buf
}
