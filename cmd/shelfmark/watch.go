package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/shelfmark/internal/clip"
	"go.klb.dev/shelfmark/internal/ipc"
	"go.klb.dev/shelfmark/internal/logging"
	"go.klb.dev/shelfmark/internal/message"
	"go.klb.dev/shelfmark/internal/monitor"
	"go.klb.dev/shelfmark/internal/tui"
	"go.klb.dev/shelfmark/internal/wire"
)

func newWatchCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the clipboard and reformat call numbers",
		Long: `Starts the clipboard watcher. Whenever copied text contains a call number
of the shape (group)digits, the clipboard is rewritten with the canonical
00-prefixed form and the session counter increments.

With a terminal attached the watcher shows a live display (press r to reset
the counter, q to quit); otherwise results go to the structured log. A local
control socket serves "shelfmark status" and "shelfmark reset".

Precedence (lowest → highest): defaults → config file → SHELFMARK_* env vars → flags`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runWatch(v) },
	}

	f := cmd.Flags()
	f.Bool("no-tui", false, "disable the live display, log results instead")
	f.Duration("poll-interval", 0, "clipboard poll interval for backends without change events (0 = platform default)")
	f.String("source", defaultSource(), "name for this host in status output")
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runWatch(v *viper.Viper) error {
	useTUI := !v.GetBool("no-tui") && logging.IsTTY(os.Stdout)
	if err := setupLogging(v, useTUI); err != nil {
		return err
	}

	source := v.GetString("source")
	slog.Info("shelfmark starting", "version", Version, "source", source, "tui", useTUI)

	backend := clip.New(v.GetDuration("poll-interval"))
	defer backend.Close()

	mon := monitor.New(backend, source)
	startControl(mon)

	if useTUI {
		return runWatchTUI(mon)
	}
	return runWatchHeadless(mon)
}

// runWatchTUI runs the monitor behind a live terminal display. The display
// owns the lifecycle: the watcher stops when the user quits.
func runWatchTUI(mon *monitor.Monitor) error {
	app := tui.New(mon.Status(), mon.Reset)
	mon.SetDisplay(app)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go mon.Run(ctx)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)
	go func() {
		<-sig
		app.Quit()
	}()

	if err := app.Run(); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	slog.Info("shelfmark stopped")
	return nil
}

// runWatchHeadless runs the monitor until SIGINT/SIGTERM, logging results.
func runWatchHeadless(mon *monitor.Monitor) error {
	mon.SetDisplay(monitor.NewLogDisplay())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mon.Run(ctx)
	slog.Info("shelfmark stopped")
	return nil
}

// startControl exposes the watcher on the local control socket so status and
// reset sub-commands can reach it. Failure to bind is non-fatal: the watcher
// still works, it just can't be queried.
func startControl(mon *monitor.Monitor) {
	ln, err := ipc.Listen()
	if err != nil {
		slog.Warn("control socket unavailable", "err", err, "path", ipc.SocketPath())
		return
	}
	slog.Info("control socket listening", "path", ipc.SocketPath())
	go serveControl(ln, mon)
}

func serveControl(ln net.Listener, mon *monitor.Monitor) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		go handleControlConn(conn, mon)
	}
}

// handleControlConn serves one request-response exchange per connection.
func handleControlConn(conn net.Conn, mon *monitor.Monitor) {
	wc := wire.New(conn)
	defer wc.Close()

	wc.SetReadDeadline(controlTimeout)
	msg, err := wc.ReadMsg()
	if err != nil {
		slog.Debug("control read failed", "err", err)
		return
	}

	switch msg.Type {
	case message.TypeStatus:
		_ = wc.WriteMsg(statusResponse(mon.Status()))

	case message.TypeReset:
		mon.Reset()
		_ = wc.WriteMsg(statusResponse(mon.Status()))

	default:
		_ = wc.WriteMsg(&message.Message{
			Type:  message.TypeError,
			Error: fmt.Sprintf("unexpected message type %q", msg.Type),
		})
	}
}

func statusResponse(st monitor.Status) *message.Message {
	return &message.Message{
		Type:      message.TypeStatusResponse,
		Source:    st.Source,
		Instance:  st.Instance,
		Backend:   st.Backend,
		StartedAt: st.StartedAt,
		Count:     st.Count,
		LastValue: st.LastValue,
		LastMatch: st.LastMatch,
	}
}
