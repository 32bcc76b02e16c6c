// Package clip provides a unified interface to the system clipboard across
// platforms. Build constraints select the appropriate implementation:
//
//	clip_linux.go    golang.design/x/clipboard with change polling, falling
//	                 back to command-line tools (xclip/xsel/wl-clipboard)
//	                 and finally to a no-op backend on headless systems
//	clip_darwin.go   golang.design/x/clipboard + cgo NSPasteboard changeCount
//	clip_windows.go  golang.design/x/clipboard + AddClipboardFormatListener
//	clip_other.go    command-line tools where available, no-op otherwise
//
// Only text is handled. Non-text clipboard content (images, file lists)
// reads as empty and is left untouched.
package clip

import "time"

// Backend is the interface that all platform clipboard implementations satisfy.
type Backend interface {
	// Name returns a human-readable name for the backend.
	Name() string

	// ReadText returns the current clipboard text. Empty or non-text
	// clipboard content yields "", nil; that is not an error. Errors are
	// transient (clipboard held by another process) and safe to retry on
	// the next change.
	ReadText() (string, error)

	// WriteText sets the clipboard contents to s.
	WriteText(s string) error

	// Watch returns a channel that receives a signal whenever the clipboard
	// changes, including changes made through WriteText. The channel is
	// never closed; signals are dropped rather than queued when the consumer
	// is behind. The caller should call ReadText when it receives from the
	// channel.
	Watch() <-chan struct{}

	// Close releases any resources held by the backend.
	Close()
}

// notify performs the non-blocking signal send every backend watcher uses.
func notify(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// normalizePoll applies the platform default when no interval was configured.
func normalizePoll(poll, fallback time.Duration) time.Duration {
	if poll <= 0 {
		return fallback
	}
	return poll
}
