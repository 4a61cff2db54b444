package cli

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/soar/mapview/internal/config"
	"github.com/soar/mapview/internal/gamepad"
	"github.com/soar/mapview/internal/hub"
	"github.com/soar/mapview/internal/server"
	"github.com/soar/mapview/internal/session"
	"github.com/soar/mapview/internal/tray"
)

// os.Interrupt covers Ctrl+C on every platform.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the live diagram over HTTP and websocket",
	Long: `Serve the diagram to browsers. Every connected page receives the rendered frame
and state updates, and can send navigation commands back.

Examples:
  mapview serve --listen :9000
  mapview serve --gamepad --tray`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := cfg.SessionOptions()
	if err != nil {
		return err
	}
	sess := session.New(opts)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)
	defer signal.Stop(sigCh)

	h := hub.NewHub()
	go h.Run()
	defer h.Close()

	broadcaster := hub.NewBroadcaster(h, sess, cfg.FPS)
	go broadcaster.Run(ctx)

	srv := server.New(h, broadcaster, sess, frontendFS, cfg.Listen)
	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
	}()

	url := browserURL(cfg.Listen)
	log.Printf("mapview started: %s", url)

	shutdownRequested := make(chan struct{})
	if cfg.Tray {
		go func() {
			t := tray.New(url, sess, func() {
				close(shutdownRequested)
			})
			t.Run(tray.GetIcon())
		}()
	} else {
		log.Println("Press Ctrl+C to exit")
	}

	readerDone := make(chan struct{})
	if cfg.Gamepad {
		go runGamepad(ctx, sess, readerDone)
	} else {
		close(readerDone)
	}

	select {
	case <-sigCh:
		log.Println("Shutting down...")
	case <-shutdownRequested:
		log.Println("Shutdown requested from tray")
	case err := <-serverErrCh:
		log.Printf("HTTP server error: %v", err)
		cancel()
		<-readerDone
		return err
	}
	cancel()
	<-readerDone

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("mapview stopped")
	return nil
}

// runGamepad reads the pad until ctx ends and feeds its navigation commands to sess.
func runGamepad(ctx context.Context, sess *session.Session, done chan<- struct{}) {
	defer close(done)

	reader := gamepad.NewReader(config.Debug())
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case cmd := <-reader.Commands():
				if err := sess.Apply(cmd); err != nil {
					log.Printf("gamepad: %v", err)
				}
			}
		}
	}()
	if err := reader.Run(ctx); err != nil {
		log.Printf("gamepad: %v", err)
	}
}

// browserURL turns a listen address into a URL a local browser can open.
func browserURL(listen string) string {
	host, port, err := net.SplitHostPort(listen)
	if err != nil {
		return "http://" + listen
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}
