//go:build !darwin && !windows && !linux

package clip

import (
	"log/slog"
	"time"
)

// New returns the command-line tools backend where one is usable (the BSDs
// with xclip or xsel installed), and a no-op backend otherwise.
func New(poll time.Duration) Backend {
	if b, ok := newExecBackend(poll); ok {
		return b
	}
	slog.Warn("clipboard unavailable, running headless")
	return newHeadlessBackend()
}
