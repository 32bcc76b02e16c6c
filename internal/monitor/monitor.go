// Package monitor owns the watch loop that bridges clipboard changes to the
// call-number formatter and applies results back to the clipboard.
package monitor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"go.klb.dev/shelfmark/internal/callnum"
	"go.klb.dev/shelfmark/internal/clip"
	"go.klb.dev/shelfmark/internal/logging"
)

// Status is a point-in-time snapshot of a watcher's session state.
type Status struct {
	Source    string    `json:"source"`
	Instance  string    `json:"instance"`
	Backend   string    `json:"backend"`
	StartedAt time.Time `json:"started_at"`
	Count     int       `json:"count"`
	LastValue string    `json:"last_value,omitempty"`
	LastMatch time.Time `json:"last_match,omitzero"`
}

// Monitor drives one clipboard backend. Notifications are handled serially
// on the Run goroutine; Reset and Status are safe to call from others (the
// control socket, the display's reset key).
type Monitor struct {
	backend  clip.Backend
	log      *slog.Logger
	source   string
	instance string
	started  time.Time

	mu        sync.RWMutex
	display   Display
	count     int
	lastValue string
	lastMatch time.Time
	lastWrite string
}

// New creates a Monitor but does not start it. The display is attached
// separately with SetDisplay because the live display needs the monitor's
// starting Status to construct itself.
func New(backend clip.Backend, source string) *Monitor {
	return &Monitor{
		backend:  backend,
		log:      logging.Component("monitor"),
		source:   source,
		instance: uuid.NewString(),
		started:  time.Now(),
	}
}

// SetDisplay attaches the display that receives Show/Reset callbacks.
// Call before Run.
func (m *Monitor) SetDisplay(d Display) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.display = d
}

// Run blocks handling clipboard-change notifications until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	m.log.Info("clipboard watcher started",
		"backend", m.backend.Name(),
		"source", m.source,
		"instance", m.instance,
	)
	for {
		select {
		case <-ctx.Done():
			m.log.Info("clipboard watcher stopping")
			return
		case <-m.backend.Watch():
			m.handle()
		}
	}
}

// handle processes one clipboard-change notification.
func (m *Monitor) handle() {
	text, err := m.backend.ReadText()
	if err != nil {
		// Transient: clipboard held by another process, or the content was
		// gone by the time we read. Drop this notification; the next change
		// signals again.
		m.log.Debug("clipboard read failed", "err", err)
		return
	}
	if text == "" {
		return
	}

	m.mu.RLock()
	echo := m.lastWrite != "" && text == m.lastWrite
	m.mu.RUnlock()
	if echo {
		// Our own write-back, re-announced by the platform.
		return
	}

	formatted, ok := callnum.TryFormat(text)
	if !ok {
		return
	}

	if err := m.backend.WriteText(formatted); err != nil {
		// The transform only counts once it is on the clipboard.
		m.log.Debug("clipboard write failed", "err", err)
		return
	}

	m.mu.Lock()
	m.count++
	m.lastValue = formatted
	m.lastMatch = time.Now()
	m.lastWrite = formatted
	count := m.count
	display := m.display
	m.mu.Unlock()

	m.log.Debug("call number formatted", "input", preview(text), "value", formatted, "count", count)
	if display != nil {
		display.Show(formatted, count)
	}
}

// Reset zeroes the session counter and returns the display to its initial
// placeholder.
func (m *Monitor) Reset() {
	m.mu.Lock()
	m.count = 0
	m.lastValue = ""
	m.lastMatch = time.Time{}
	display := m.display
	m.mu.Unlock()

	m.log.Info("session counter reset")
	if display != nil {
		display.Reset()
	}
}

// Status returns a snapshot of the session state.
func (m *Monitor) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Status{
		Source:    m.source,
		Instance:  m.instance,
		Backend:   m.backend.Name(),
		StartedAt: m.started,
		Count:     m.count,
		LastValue: m.lastValue,
		LastMatch: m.lastMatch,
	}
}

// preview truncates clipboard text for debug logging.
func preview(s string) string {
	if len(s) > 120 {
		return s[:120] + "…"
	}
	return s
}
