package clip

import (
	"testing"
	"time"
)

var _ Backend = (*headlessBackend)(nil)

func TestHeadlessBackend(t *testing.T) {
	b := newHeadlessBackend()
	defer b.Close()

	if got := b.Name(); got != "headless (no-op)" {
		t.Errorf("Name() = %q", got)
	}

	text, err := b.ReadText()
	if err != nil || text != "" {
		t.Errorf("ReadText() = %q, %v; want empty, nil", text, err)
	}

	if err := b.WriteText("discarded"); err != nil {
		t.Errorf("WriteText() error: %v", err)
	}
	if text, _ := b.ReadText(); text != "" {
		t.Errorf("ReadText() after write = %q; headless writes must be discarded", text)
	}

	select {
	case <-b.Watch():
		t.Error("headless backend must never signal a change")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNotifyNeverBlocks(t *testing.T) {
	ch := make(chan struct{}, 1)
	notify(ch)
	notify(ch) // buffer already full; must drop, not block

	select {
	case <-ch:
	default:
		t.Fatal("expected one queued signal")
	}
	select {
	case <-ch:
		t.Fatal("second signal should have been dropped")
	default:
	}
}

func TestNormalizePoll(t *testing.T) {
	tests := []struct {
		poll, fallback, want time.Duration
	}{
		{0, 250 * time.Millisecond, 250 * time.Millisecond},
		{-time.Second, 100 * time.Millisecond, 100 * time.Millisecond},
		{time.Second, 250 * time.Millisecond, time.Second},
	}
	for _, tt := range tests {
		if got := normalizePoll(tt.poll, tt.fallback); got != tt.want {
			t.Errorf("normalizePoll(%v, %v) = %v, want %v", tt.poll, tt.fallback, got, tt.want)
		}
	}
}
