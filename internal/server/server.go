// Package server hosts replay sessions over HTTP.
//
// Each session owns one grid and one replay controller. Clients advance the
// animation themselves, one frame per request, so the server needs no
// per-session timer:
//
//	POST   /sessions              create a session, returns its id and first frame
//	GET    /sessions/{id}         current frame without advancing
//	GET    /sessions/{id}/frame   advance one tick (?format=dot for Graphviz source)
//	POST   /sessions/{id}/edits   apply {"intent": "toggle|start|end", "x": 1, "y": 2}
//	DELETE /sessions/{id}         drop the session
//	GET    /healthz               liveness
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/pathgrid/pkg/config"
	"github.com/matzehuels/pathgrid/pkg/errors"
	"github.com/matzehuels/pathgrid/pkg/observability"
	"github.com/matzehuels/pathgrid/pkg/render/dot"
	"github.com/matzehuels/pathgrid/pkg/replay"
	"github.com/matzehuels/pathgrid/pkg/search"
)

const (
	// DefaultIdleTimeout drops sessions nobody has touched for this long.
	DefaultIdleTimeout = 15 * time.Minute

	maxBodyBytes = 1 << 16
)

// Server is the HTTP host. Create it with [New].
type Server struct {
	cfg         config.Config
	logger      *log.Logger
	sessions    *store
	idleTimeout time.Duration
	now         func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithIdleTimeout overrides [DefaultIdleTimeout].
func WithIdleTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.idleTimeout = d
		}
	}
}

// New creates a server. cfg supplies the defaults for new sessions and the
// session limit.
func New(cfg config.Config, opts ...Option) *Server {
	s := &Server{
		cfg:         cfg,
		logger:      log.Default(),
		sessions:    newStore(),
		idleTimeout: DefaultIdleTimeout,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "sessions": s.sessions.len()})
	})
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getSession)
			r.Delete("/", s.deleteSession)
			r.Get("/frame", s.nextFrame)
			r.Post("/edits", s.applyEdit)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is done, sweeping idle sessions
// in the background. It shuts down gracefully on cancellation.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.sweep(ctx)

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return ctx.Err()
	}
}

func (s *Server) sweep(ctx context.Context) {
	ticker := time.NewTicker(s.idleTimeout / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Cleanup()
		}
	}
}

// Cleanup drops idle sessions and returns how many were removed.
func (s *Server) Cleanup() int {
	n := s.sessions.cleanup(s.now().Add(-s.idleTimeout))
	if n > 0 {
		s.logger.Debug("dropped idle sessions", "count", n, "live", s.sessions.len())
	}
	return n
}

// observe reports every request to the HTTP hooks and the debug log.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		dur := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, dur)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", status, "duration", dur)
	})
}

// =============================================================================
// Handlers
// =============================================================================

type createRequest struct {
	Width        int      `json:"width"`
	Height       int      `json:"height"`
	Connectivity string   `json:"connectivity"`
	Start        []int    `json:"start"`
	End          []int    `json:"end"`
	Obstacles    [][2]int `json:"obstacles"`
}

type sessionResponse struct {
	ID    string       `json:"id"`
	Frame replay.Frame `json:"frame"`
}

type editResponse struct {
	Applied bool         `json:"applied"`
	Frame   replay.Frame `json:"frame"`
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, err)
			return
		}
	}

	if s.sessions.full(s.cfg.Server.MaxSessions) {
		writeSessionLimit(w)
		return
	}
	ctrl, err := s.newController(req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	now := s.now()
	sess := newSession(ctrl, now)
	if !s.sessions.add(sess, s.cfg.Server.MaxSessions) {
		writeSessionLimit(w)
		return
	}

	s.logger.Debug("session created", "id", sess.ID, "live", s.sessions.len())
	writeJSON(w, http.StatusCreated, sessionResponse{ID: sess.ID, Frame: sess.snapshot(now)})
}

func writeSessionLimit(w http.ResponseWriter) {
	writeJSON(w, http.StatusServiceUnavailable, errorBody{
		Error: "session limit reached",
		Code:  errors.ErrCodeUnsupported,
	})
}

// newController builds the session grid from the server config overlaid with
// req. Configured markers are dropped when req resizes the grid, so they fall
// back to the corners unless req places its own.
func (s *Server) newController(req createRequest) (*replay.Controller, error) {
	cfg := s.cfg
	resized := (req.Width != 0 && req.Width != cfg.Grid.Width) ||
		(req.Height != 0 && req.Height != cfg.Grid.Height)
	if req.Width != 0 {
		cfg.Grid.Width = req.Width
	}
	if req.Height != 0 {
		cfg.Grid.Height = req.Height
	}
	if resized {
		cfg.Grid.Start, cfg.Grid.End = nil, nil
	}
	if req.Connectivity != "" {
		cfg.Grid.Connectivity = req.Connectivity
	}
	if req.Start != nil {
		cfg.Grid.Start = req.Start
	}
	if req.End != nil {
		cfg.Grid.End = req.End
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g, err := cfg.NewGrid()
	if err != nil {
		return nil, err
	}
	for _, p := range req.Obstacles {
		if err := errors.ValidatePosition("obstacle", p[0], p[1], g.Width(), g.Height()); err != nil {
			return nil, err
		}
		if i := g.Index(p[0], p[1]); i == g.Start() || i == g.End() || g.Node(i).Obstacle {
			continue
		}
		if err := g.ToggleObstacle(p[0], p[1]); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPosition, err, "obstacle (%d,%d)", p[0], p[1])
		}
	}
	return replay.New(g, search.Dijkstra{}, replay.WithLogger(s.logger)), nil
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*session, bool) {
	id := chi.URLParam(r, "id")
	sess, ok := s.sessions.get(id)
	if !ok {
		s.writeError(w, errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id))
	}
	return sess, ok
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{ID: sess.ID, Frame: sess.snapshot(s.now())})
}

func (s *Server) nextFrame(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	f := sess.tick(s.now())

	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		writeJSON(w, http.StatusOK, f)
	case "dot":
		w.Header().Set("Content-Type", "text/vnd.graphviz")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(dot.ToDOT(f, dot.Options{})))
	default:
		s.writeError(w, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (want json or dot)", format))
	}
}

func (s *Server) applyEdit(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var e replay.Edit
	if err := decodeJSON(r, &e); err != nil {
		s.writeError(w, err)
		return
	}
	applied, f := sess.apply(e, s.now())
	writeJSON(w, http.StatusOK, editResponse{Applied: applied, Frame: f})
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.sessions.delete(id) {
		s.writeError(w, errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id))
		return
	}
	s.logger.Debug("session deleted", "id", id, "live", s.sessions.len())
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Encoding
// =============================================================================

type errorBody struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code"`
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorBody{Error: errors.UserMessage(err), Code: code})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidPosition, errors.ErrCodeInvalidSize:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeSessionNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
