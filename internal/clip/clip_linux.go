//go:build linux

package clip

import (
	"log/slog"
	"time"

	"golang.design/x/clipboard"
)

const linuxPollInterval = 250 * time.Millisecond

type linuxBackend struct {
	watchCh  chan struct{}
	done     chan struct{}
	interval time.Duration
	lastText string
}

// New returns the Linux clipboard backend. If the display environment is
// unavailable (e.g. a headless server without X11 or Wayland) it falls back
// to the command-line tools backend, and to a no-op backend when those are
// missing too. clipboard.Init is called here rather than in init() so that
// one-shot sub-commands (format, status, reset) don't trigger the warning.
func New(poll time.Duration) Backend {
	if err := clipboard.Init(); err != nil {
		if b, ok := newExecBackend(poll); ok {
			slog.Warn("native clipboard unavailable, using command-line tools", "err", err)
			return b
		}
		slog.Warn("clipboard unavailable, running headless", "err", err)
		return newHeadlessBackend()
	}
	b := &linuxBackend{
		watchCh:  make(chan struct{}, 1),
		done:     make(chan struct{}),
		interval: normalizePoll(poll, linuxPollInterval),
	}
	go b.poll()
	return b
}

func (b *linuxBackend) Name() string { return "Linux clipboard (poll)" }

func (b *linuxBackend) poll() {
	t := time.NewTicker(b.interval)
	defer t.Stop()
	for {
		select {
		case <-b.done:
			return
		case <-t.C:
			text := string(clipboard.Read(clipboard.FmtText))
			if text != b.lastText {
				b.lastText = text
				notify(b.watchCh)
			}
		}
	}
}

func (b *linuxBackend) ReadText() (string, error) {
	return string(clipboard.Read(clipboard.FmtText)), nil
}

func (b *linuxBackend) WriteText(s string) error {
	clipboard.Write(clipboard.FmtText, []byte(s))
	return nil
}

func (b *linuxBackend) Watch() <-chan struct{} { return b.watchCh }
func (b *linuxBackend) Close()                 { close(b.done) }
