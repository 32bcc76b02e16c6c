// Package ipc provides helpers for the local control socket a running
// shelfmark watcher exposes to the status/reset CLI sub-commands.
//
// The channel carries newline-delimited JSON (internal/wire) over a Unix
// domain socket, or a named pipe on Windows. CLI sub-commands probe for the
// socket and report "not running" when it is absent.
package ipc

import (
	"net"
	"os"
)

// SocketPath returns the platform-appropriate path for the control socket.
//
//   - Linux:   $XDG_RUNTIME_DIR/shelfmark.sock, else $TMPDIR/shelfmark.sock
//   - macOS:   $TMPDIR/shelfmark.sock
//   - Windows: \\.\pipe\shelfmark
//
// $SHELFMARK_SOCKET overrides on every platform.
func SocketPath() string {
	if s := os.Getenv("SHELFMARK_SOCKET"); s != "" {
		return s
	}
	return socketPath()
}

// IsRunning reports whether a watcher appears to be listening on the control
// socket. It does a cheap dial-and-close; no data is exchanged.
func IsRunning() bool {
	c, err := Dial()
	if err != nil {
		return false
	}
	_ = c.Close()
	return true
}

// Listen creates and returns a net.Listener on the control socket path,
// removing any stale socket file first.
func Listen() (net.Listener, error) {
	return listenIPC(SocketPath())
}

// Dial connects to the control socket of a running watcher.
func Dial() (net.Conn, error) {
	return dialIPC(SocketPath())
}
