// Package dashboard implements the interactive graph dashboard: a chi HTTP
// server that serves the rendering widget a scene description and feeds
// user interaction events (node clicks, filter/layout/color changes) back
// into per-session selection and filter state.
//
// Each event is one synchronous cycle: load the session, apply exactly one
// state transition, persist the session, rebuild the scene. The loaded
// graph is immutable for the lifetime of the server.
package dashboard

import (
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/graphdeck/graphdeck/pkg/graph"
	"github.com/graphdeck/graphdeck/pkg/observability"
	"github.com/graphdeck/graphdeck/pkg/scene"
	"github.com/graphdeck/graphdeck/pkg/session"
)

// sessionCookie names the browser cookie carrying the session ID.
const sessionCookie = "graphdeck_session"

// Config holds the dashboard server configuration.
type Config struct {
	Addr     string           // listen address (default "127.0.0.1:8050")
	Graph    *graph.Graph     // the loaded graph, required
	Store    session.Store    // session backend (default in-memory)
	Defaults session.Defaults // initial layout/color/neighbor choices
	Logger   *log.Logger      // request and event logging
}

// Server is the dashboard HTTP server. It owns the single loaded graph and
// resolves per-user interaction state through the session store.
type Server struct {
	graph    *graph.Graph
	store    session.Store
	defaults session.Defaults
	logger   *log.Logger
	router   chi.Router
	addr     string
}

// NewServer validates the configuration and sets up routing. The initial
// color attribute is resolved against the graph's categorical attributes:
// an explicit choice must exist there, otherwise the first categorical
// attribute (if any) is used, matching the original dashboard behavior.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Graph == nil {
		return nil, fmt.Errorf("dashboard: graph must not be nil")
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8050"
	}
	if cfg.Store == nil {
		cfg.Store = session.NewMemoryStore()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Defaults.Layout == "" {
		cfg.Defaults.Layout = string(scene.DefaultLayout)
	}
	cfg.Defaults.ColorAttr = resolveColorAttr(cfg.Graph, cfg.Defaults.ColorAttr)

	s := &Server{
		graph:    cfg.Graph,
		store:    cfg.Store,
		defaults: cfg.Defaults,
		logger:   cfg.Logger,
		addr:     cfg.Addr,
	}
	s.router = s.buildRouter()
	return s, nil
}

// resolveColorAttr picks the initial coloring attribute.
func resolveColorAttr(g *graph.Graph, requested string) string {
	categorical := g.CategoricalAttributes()
	for _, attr := range categorical {
		if attr == requested {
			return requested
		}
	}
	if len(categorical) > 0 {
		return categorical[0]
	}
	return ""
}

// ServeHTTP delegates to the chi router, satisfying http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.addr }

// ListenAndServe starts the HTTP server with timeouts that guard against
// slow clients.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      time.Minute,
		IdleTimeout:       2 * time.Minute,
	}
	return srv.ListenAndServe()
}

// buildRouter constructs the chi router with all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/static/app.js", s.handleAppJS)
	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/scene", s.handleScene)
		r.Get("/graph", s.handleGraph)
		r.Get("/meta", s.handleMeta)

		r.Route("/events", func(r chi.Router) {
			r.Use(s.eventObserver)
			r.Post("/node-click", s.handleNodeClick)
			r.Post("/clear-selection", s.handleClearSelection)
			r.Post("/filter", s.handleFilter)
			r.Post("/layout", s.handleLayout)
			r.Post("/color", s.handleColor)
		})
	})

	return r
}

// statusRecorder captures the response status and size for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

// eventObserver brackets each interaction event with observability hooks.
// The event name is the last path segment; the session ID comes from the
// request cookie and is empty for first-contact requests.
func (s *Server) eventObserver(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		event := path.Base(r.URL.Path)
		sessionID := ""
		if cookie, err := r.Cookie(sessionCookie); err == nil {
			sessionID = cookie.Value
		}

		ctx := r.Context()
		observability.Events().OnEventStart(ctx, event, sessionID)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		var err error
		if rec.status >= http.StatusBadRequest {
			err = fmt.Errorf("event %s returned status %d", event, rec.status)
		}
		observability.Events().OnEventComplete(ctx, event, sessionID, time.Since(start), err)
	})
}

// requestLogger logs each request through the structured logger so request
// logs align with the rest of the CLI output.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", rec.bytes,
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}
