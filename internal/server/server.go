package server

import (
	"context"
	"io/fs"
	"log"
	"net/http"
	"regexp"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/svg"

	"github.com/soar/mapview/internal/hub"
	"github.com/soar/mapview/internal/rasterdraw"
	"github.com/soar/mapview/internal/session"
)

type Server struct {
	hub         *hub.Hub
	broadcaster *hub.Broadcaster
	session     *session.Session
	frontendFS  fs.FS
	addr        string
	httpServer  *http.Server
}

func New(h *hub.Hub, b *hub.Broadcaster, sess *session.Session, frontendFS fs.FS, addr string) *Server {
	return &Server{
		hub:         h,
		broadcaster: b,
		session:     sess,
		frontendFS:  frontendFS,
		addr:        addr,
	}
}

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("image/svg+xml", svg.Minify)
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)
	return m
}

// Handler returns the routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// WebSocket endpoint
	upgrader := newUpgrader(hub.NewHandler(s.hub, s.broadcaster, s.session))
	mux.HandleFunc("/ws", handleWebSocket(upgrader))

	// Rendered frames
	mux.HandleFunc("GET /snapshot.svg", handleSnapshotSVG(s.session))
	mux.HandleFunc("GET /snapshot.png", handleSnapshotImage(s.session, rasterdraw.FormatPNG))
	mux.HandleFunc("GET /snapshot.webp", handleSnapshotImage(s.session, rasterdraw.FormatWebP))

	// JSON API
	mux.HandleFunc("GET /api/state", handleState(s.session))
	mux.HandleFunc("GET /api/presets", handlePresets(s.session))
	mux.HandleFunc("POST /api/command", handleCommand(s.session))

	// Static files (frontend)
	fileServer := http.FileServer(http.FS(s.frontendFS))
	mux.Handle("/", newMinifier().Middleware(fileServer))

	return mux
}

func (s *Server) ListenAndServe() error {
	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	log.Printf("HTTP server listening on %s", s.addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		log.Println("Shutting down HTTP server...")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
