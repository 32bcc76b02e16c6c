package clip

import (
	"sync"
	"time"

	"github.com/atotto/clipboard"
)

const execPollInterval = 500 * time.Millisecond

// execBackend drives the clipboard through the platform's command-line tools
// (xclip, xsel, wl-clipboard, pbcopy/pbpaste) via atotto/clipboard. Change
// detection is poll-only and each poll forks a process, so the interval is
// deliberately coarser than the native backends'.
type execBackend struct {
	watchCh  chan struct{}
	done     chan struct{}
	interval time.Duration

	mu       sync.Mutex
	lastText string
}

// newExecBackend reports ok=false when no usable command-line tool exists,
// probed with a single read.
func newExecBackend(poll time.Duration) (Backend, bool) {
	if clipboard.Unsupported {
		return nil, false
	}
	if _, err := clipboard.ReadAll(); err != nil {
		return nil, false
	}
	b := &execBackend{
		watchCh:  make(chan struct{}, 1),
		done:     make(chan struct{}),
		interval: normalizePoll(poll, execPollInterval),
	}
	go b.poll()
	return b, true
}

func (b *execBackend) Name() string { return "command-line clipboard (poll)" }

func (b *execBackend) poll() {
	t := time.NewTicker(b.interval)
	defer t.Stop()
	for {
		select {
		case <-b.done:
			return
		case <-t.C:
			text, err := clipboard.ReadAll()
			if err != nil {
				continue
			}
			b.mu.Lock()
			changed := text != b.lastText
			b.lastText = text
			b.mu.Unlock()
			if changed {
				notify(b.watchCh)
			}
		}
	}
}

func (b *execBackend) ReadText() (string, error) {
	return clipboard.ReadAll()
}

func (b *execBackend) WriteText(s string) error {
	if err := clipboard.WriteAll(s); err != nil {
		return err
	}
	// Seed the poller so our own write still produces exactly one signal,
	// same as the native backends.
	b.mu.Lock()
	b.lastText = s
	b.mu.Unlock()
	notify(b.watchCh)
	return nil
}

func (b *execBackend) Watch() <-chan struct{} { return b.watchCh }
func (b *execBackend) Close()                 { close(b.done) }
