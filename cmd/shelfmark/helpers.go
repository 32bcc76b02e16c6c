package main

import (
	"fmt"
	"os"
	"time"

	"go.klb.dev/shelfmark/internal/ipc"
	"go.klb.dev/shelfmark/internal/message"
	"go.klb.dev/shelfmark/internal/wire"
)

const controlTimeout = 5 * time.Second

func isContainerID(s string) bool {
	if len(s) < 12 || len(s) > 64 {
		return false
	}
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return false
		}
	}
	return true
}

// defaultSource returns a human-readable identifier for this host.
func defaultSource() string {
	for _, env := range []string{
		"SHELFMARK_SOURCE",
		"CONTAINER_NAME",
		"COMPOSE_SERVICE",
		"SERVICE_NAME",
		"HOSTNAME_FRIENDLY",
	} {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	if isContainerID(h) {
		return "container-" + h[:8]
	}
	return h
}

// controlRequest sends a single request to the running watcher over the
// control socket and returns its status response. No auth is needed; the
// socket is local and owner-restricted by the OS.
func controlRequest(t message.Type) (*message.Message, error) {
	if !ipc.IsRunning() {
		return nil, fmt.Errorf("no watcher running (socket %s); start one with \"shelfmark watch\"", ipc.SocketPath())
	}

	conn, err := ipc.Dial()
	if err != nil {
		return nil, fmt.Errorf("control socket: %w", err)
	}
	wc := wire.New(conn)
	defer wc.Close()

	if err := wc.WriteMsg(&message.Message{Type: t}); err != nil {
		return nil, fmt.Errorf("control request: %w", err)
	}

	wc.SetReadDeadline(controlTimeout)
	resp, err := wc.ReadMsg()
	if err != nil {
		return nil, fmt.Errorf("control response: %w", err)
	}
	if resp.Type == message.TypeError {
		return nil, fmt.Errorf("watcher: %s", resp.Error)
	}
	if resp.Type != message.TypeStatusResponse {
		return nil, fmt.Errorf("unexpected response type %q", resp.Type)
	}
	return resp, nil
}

func fmtAge(t time.Time) string {
	age := time.Since(t).Round(time.Second)
	if age < time.Minute {
		return fmt.Sprintf("%ds ago", int(age.Seconds()))
	}
	if age < time.Hour {
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	}
	return t.Format("15:04:05")
}

// tsAge renders an optional timestamp, "-" when unset.
func tsAge(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return fmtAge(t)
}
