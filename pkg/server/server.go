package server

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/facet-ui/facet/client"
)

// Server hosts one Facet application.
type Server struct {
	cfg     Config
	app     *App
	manager *SessionManager
	router  chi.Router
	mws     []EventMiddleware

	upgrader websocket.Upgrader
	httpSrv  *http.Server
}

// New creates a server for app.
func New(app *App, opts ...Option) *Server {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	s := &Server{
		cfg:     cfg,
		app:     app,
		manager: NewSessionManager(&cfg),
		router:  chi.NewRouter(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.RealIP)
	s.router.Use(chimw.Recoverer)
	s.router.Get("/", s.handlePage)
	s.router.Get("/facet/ws", s.handleWebSocket)
	s.router.Get("/facet/client.js", client.Handler())
	s.router.Handle("/metrics", promhttp.Handler())
	return s
}

// Use appends event middleware. Must be called before sessions are created.
func (s *Server) Use(mws ...EventMiddleware) {
	s.mws = append(s.mws, mws...)
}

// Router exposes the underlying chi router for extra routes (uploads, static
// assets, health checks).
func (s *Server) Router() chi.Router { return s.router }

// Sessions returns the session manager.
func (s *Server) Sessions() *SessionManager { return s.manager }

// handlePage bootstraps a session and serves the initial render.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sess, err := s.manager.Create(s.app, s.mws)
	if err != nil {
		s.cfg.Logger.Error("session create failed", "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, pageShell,
		html.EscapeString(s.app.Title),
		html.EscapeString(sess.ID()),
		sess.BodyHTML(),
	)
}

// pageShell is the HTML document wrapping the rendered body. The client
// runtime reads the session id from the meta tag and dials /facet/ws.
const pageShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<meta name="facet-session" content="%s">
<script src="/facet/client.js" defer></script>
</head>
%s
</html>
`

// handleWebSocket attaches a client connection to its session.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session")
	sess := s.manager.Get(id)
	if sess == nil || sess.Closed() {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		getMetrics().wsErrorsTotal.WithLabelValues("upgrade").Inc()
		s.cfg.Logger.Error("upgrade failed", "error", err)
		return
	}
	sess.Start(conn)
}

// Run serves until ctx is cancelled, then drains sessions and shuts the
// listener down.
func (s *Server) Run(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.router,
	}

	go s.manager.Sweep(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.cfg.Logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- s.httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.cfg.Logger.Info("shutting down")
	s.manager.CloseAll()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpSrv.Shutdown(shutdownCtx)
}
