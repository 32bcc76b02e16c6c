package monitor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.klb.dev/shelfmark/internal/clip"
)

var (
	_ clip.Backend = (*fakeBackend)(nil)
	_ Display      = (*fakeDisplay)(nil)
	_ Display      = (*LogDisplay)(nil)
)

type fakeBackend struct {
	mu       sync.Mutex
	text     string
	readErr  error
	writeErr error
	writes   []string
	watchCh  chan struct{}
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{watchCh: make(chan struct{}, 1)}
}

func (b *fakeBackend) Name() string { return "fake" }

func (b *fakeBackend) ReadText() (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.readErr != nil {
		return "", b.readErr
	}
	return b.text, nil
}

func (b *fakeBackend) WriteText(s string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.writeErr != nil {
		return b.writeErr
	}
	b.text = s
	b.writes = append(b.writes, s)
	return nil
}

func (b *fakeBackend) Watch() <-chan struct{} { return b.watchCh }
func (b *fakeBackend) Close()                 {}

// setText changes the clipboard without signalling, for driving handle()
// directly.
func (b *fakeBackend) setText(text string) {
	b.mu.Lock()
	b.text = text
	b.mu.Unlock()
}

// set changes the clipboard and signals the watch channel, as a platform
// backend would.
func (b *fakeBackend) set(text string) {
	b.setText(text)
	b.watchCh <- struct{}{}
}

func (b *fakeBackend) written() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.writes...)
}

type show struct {
	value string
	count int
}

type fakeDisplay struct {
	mu     sync.Mutex
	shows  []show
	resets int
}

func (d *fakeDisplay) Show(value string, count int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.shows = append(d.shows, show{value, count})
}

func (d *fakeDisplay) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resets++
}

func (d *fakeDisplay) snapshot() ([]show, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]show(nil), d.shows...), d.resets
}

func newTestMonitor() (*Monitor, *fakeBackend, *fakeDisplay) {
	b := newFakeBackend()
	d := &fakeDisplay{}
	m := New(b, "test-host")
	m.SetDisplay(d)
	return m, b, d
}

func TestHandleFormatsAndCounts(t *testing.T) {
	m, b, d := newTestMonitor()

	b.setText("Some text (99)8877 trailing")
	m.handle()

	if got := b.written(); len(got) != 1 || got[0] != "00998877" {
		t.Fatalf("writes = %v, want [00998877]", got)
	}
	shows, _ := d.snapshot()
	if len(shows) != 1 || shows[0] != (show{"00998877", 1}) {
		t.Fatalf("shows = %v, want [{00998877 1}]", shows)
	}
	if st := m.Status(); st.Count != 1 || st.LastValue != "00998877" || st.LastMatch.IsZero() {
		t.Errorf("status = %+v", st)
	}
}

func TestHandleCountsEveryTransform(t *testing.T) {
	m, b, d := newTestMonitor()

	inputs := []string{"(1)100", "(2)200", "(3)300"}
	for _, in := range inputs {
		b.setText(in)
		m.handle()
	}

	shows, _ := d.snapshot()
	if len(shows) != len(inputs) {
		t.Fatalf("got %d shows, want %d", len(shows), len(inputs))
	}
	for i, s := range shows {
		if s.count != i+1 {
			t.Errorf("show %d count = %d, want %d", i, s.count, i+1)
		}
	}
	if st := m.Status(); st.Count != 3 || st.LastValue != "003300" {
		t.Errorf("status = %+v", st)
	}
}

func TestHandleIgnoresNonMatching(t *testing.T) {
	m, b, d := newTestMonitor()

	for _, in := range []string{"no parens here", "(12) 345", "() nothing", "just (words) here"} {
		b.setText(in)
		m.handle()
	}

	if got := b.written(); len(got) != 0 {
		t.Fatalf("writes = %v, want none", got)
	}
	shows, _ := d.snapshot()
	if len(shows) != 0 {
		t.Fatalf("shows = %v, want none", shows)
	}
	if st := m.Status(); st.Count != 0 || st.LastValue != "" {
		t.Errorf("status = %+v", st)
	}
}

func TestHandleUsesFirstMatchOnly(t *testing.T) {
	m, b, _ := newTestMonitor()

	b.setText("(1)2 (3)4")
	m.handle()

	if got := b.written(); len(got) != 1 || got[0] != "0012" {
		t.Fatalf("writes = %v, want [0012]", got)
	}
}

// The write-back lands on the clipboard and the platform announces it as a
// fresh change. That echo must not count or write again.
func TestHandleSkipsOwnWriteBack(t *testing.T) {
	m, b, d := newTestMonitor()

	b.setText("(1)23456")
	m.handle()
	// the backend now holds "00123456" and re-announces it
	m.handle()

	if got := b.written(); len(got) != 1 {
		t.Fatalf("writes = %v, want exactly one", got)
	}
	shows, _ := d.snapshot()
	if len(shows) != 1 {
		t.Fatalf("shows = %v, want exactly one", shows)
	}
	if st := m.Status(); st.Count != 1 {
		t.Errorf("count = %d, want 1", st.Count)
	}
}

func TestHandleDropsReadErrors(t *testing.T) {
	m, b, d := newTestMonitor()

	b.readErr = errors.New("clipboard busy")
	b.setText("(1)23456")
	m.handle()

	if got := b.written(); len(got) != 0 {
		t.Fatalf("writes = %v, want none", got)
	}
	if st := m.Status(); st.Count != 0 {
		t.Errorf("count = %d, want 0", st.Count)
	}

	// The failure is transient: the next notification goes through.
	b.readErr = nil
	m.handle()
	shows, _ := d.snapshot()
	if len(shows) != 1 || shows[0] != (show{"00123456", 1}) {
		t.Errorf("shows = %v after recovery", shows)
	}
}

func TestHandleWriteFailureDoesNotCount(t *testing.T) {
	m, b, d := newTestMonitor()

	b.writeErr = errors.New("clipboard busy")
	b.setText("(1)23456")
	m.handle()

	shows, _ := d.snapshot()
	if len(shows) != 0 {
		t.Fatalf("shows = %v, want none", shows)
	}
	if st := m.Status(); st.Count != 0 || st.LastValue != "" {
		t.Errorf("status = %+v, transform must not count before reaching the clipboard", st)
	}
}

func TestHandleIgnoresEmptyClipboard(t *testing.T) {
	m, b, d := newTestMonitor()

	b.setText("")
	m.handle()

	if got := b.written(); len(got) != 0 {
		t.Fatalf("writes = %v, want none", got)
	}
	shows, _ := d.snapshot()
	if len(shows) != 0 {
		t.Fatalf("shows = %v, want none", shows)
	}
}

func TestResetZeroesSession(t *testing.T) {
	m, b, d := newTestMonitor()

	b.setText("(1)100")
	m.handle()
	b.setText("(2)200")
	m.handle()

	m.Reset()

	_, resets := d.snapshot()
	if resets != 1 {
		t.Fatalf("resets = %d, want 1", resets)
	}
	st := m.Status()
	if st.Count != 0 || st.LastValue != "" || !st.LastMatch.IsZero() {
		t.Errorf("status after reset = %+v", st)
	}

	// Counting restarts from one.
	b.setText("(3)300")
	m.handle()
	shows, _ := d.snapshot()
	if last := shows[len(shows)-1]; last != (show{"003300", 1}) {
		t.Errorf("first show after reset = %v, want {003300 1}", last)
	}
}

func TestStatusIdentity(t *testing.T) {
	m, _, _ := newTestMonitor()
	m2, _, _ := newTestMonitor()

	st := m.Status()
	if st.Source != "test-host" || st.Backend != "fake" {
		t.Errorf("status = %+v", st)
	}
	if st.Instance == "" || st.StartedAt.IsZero() {
		t.Errorf("identity missing: %+v", st)
	}
	if st.Instance == m2.Status().Instance {
		t.Error("two monitors share an instance ID")
	}
}

func TestRunProcessesWatchSignals(t *testing.T) {
	m, b, d := newTestMonitor()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	b.set("(7)654321")

	waitFor(t, func() bool {
		shows, _ := d.snapshot()
		return len(shows) == 1
	})
	shows, _ := d.snapshot()
	if shows[0] != (show{"007654321", 1}) {
		t.Errorf("shows = %v", shows)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on context cancel")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}
