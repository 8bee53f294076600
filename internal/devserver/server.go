// Package devserver serves the sites collection API from a local store so
// the client can be exercised without the production service.
package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v2"

	"sitedeck/internal/logging"
	"sitedeck/internal/site"
	"sitedeck/internal/siteapi"
	"sitedeck/internal/store"
)

// DefaultAddr is the listen address when none is configured.
const DefaultAddr = ":3000"

// Repository is the storage the server reads and mutates.
type Repository interface {
	List(ctx context.Context) ([]site.Item, error)
	Create(ctx context.Context, it site.Item) (site.Item, error)
	Delete(ctx context.Context, id string) error
}

// Options configures New.
type Options struct {
	Addr    string
	HTTPLog io.Writer // request log destination; nil disables request logging
	Logger  *logging.Logger
}

// Server serves GET/POST /api/sites, DELETE /api/sites/{id} and /health.
type Server struct {
	repo     Repository
	log      *logging.Logger
	server   *http.Server
	listener net.Listener
}

// New creates a server. It does not listen until Start.
func New(repo Repository, opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	s := &Server{repo: repo, log: opts.Logger.WithComponent("devserver")}
	s.server = &http.Server{
		Addr:    opts.Addr,
		Handler: s.routes(opts.HTTPLog),
	}
	return s
}

func (s *Server) routes(httpLog io.Writer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if httpLog != nil {
		r.Use(httplog.RequestLogger(httplog.NewLogger("sitedeck", httplog.Options{
			Writer: httpLog,
			JSON:   true,
		})))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route(siteapi.CollectionPath, func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Delete("/{id}", s.handleDelete)
	})
	return r
}

// Handler returns the router, for use with httptest.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start binds the listen address and serves in a background goroutine.
// Bind errors are returned; serve errors are logged.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}
	s.listener = ln
	s.log.Info("fixture server listening", "addr", ln.Addr().String())
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("fixture server stopped", "error", err)
		}
	}()
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Addr returns the bound address after Start, or the configured one.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.server.Addr
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := s.repo.List(r.Context())
	if err != nil {
		s.log.Error("list sites", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list sites")
		return
	}
	writeJSON(w, http.StatusOK, site.Collection{Sites: items})
}

type createRequest struct {
	Title      string `json:"title"`
	Href       string `json:"href"`
	EditHref   string `json:"editHref"`
	BucketName string `json:"bucketName"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	it, err := s.repo.Create(r.Context(), site.Item{
		Title:      req.Title,
		Href:       req.Href,
		EditHref:   req.EditHref,
		BucketName: req.BucketName,
	})
	if err != nil {
		s.log.Error("create site", "error", err)
		writeError(w, http.StatusInternalServerError, "could not create site")
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := siteID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid site id")
		return
	}
	err = s.repo.Delete(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "site not found")
	case err != nil:
		s.log.Error("delete site", "site_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not delete site")
	default:
		s.log.Info("site deleted", "site_id", id)
		w.WriteHeader(http.StatusNoContent)
	}
}

// siteID returns the decoded {id} segment. chi routes on the escaped path
// whenever the request carries one, so ids containing "/" arrive escaped.
func siteID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if r.URL.RawPath == "" {
		return id, nil
	}
	return url.PathUnescape(id)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
