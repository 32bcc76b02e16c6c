package monitor

import (
	"log/slog"

	"go.klb.dev/shelfmark/internal/logging"
)

// Placeholder is what displays show before the first transform and after a
// reset.
const Placeholder = "-"

// Display receives formatting results for rendering. Show is called from the
// monitor's notification loop and must not block; Reset may be called from
// any goroutine.
type Display interface {
	// Show is called after every transform that reached the clipboard, with
	// the formatted value and the updated session count.
	Show(value string, count int)

	// Reset is called when the session counter is zeroed; the display
	// returns to its initial placeholder.
	Reset()
}

// LogDisplay renders results to the structured log. It is the display used
// when the watcher runs without a terminal.
type LogDisplay struct {
	log *slog.Logger
}

// NewLogDisplay returns a Display backed by the default logger.
func NewLogDisplay() *LogDisplay {
	return &LogDisplay{log: logging.Component("display")}
}

func (d *LogDisplay) Show(value string, count int) {
	d.log.Info("call number formatted", "value", value, "count", count)
}

func (d *LogDisplay) Reset() {
	d.log.Info("counter reset", "value", Placeholder, "count", 0)
}
