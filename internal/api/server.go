// Package api serves the geospatial calculations and conference analysis
// over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/cfb-realignment/realign-cli/internal/conference"
	"github.com/cfb-realignment/realign-cli/internal/geo"
	"github.com/cfb-realignment/realign-cli/internal/store"
)

// maxBodyBytes caps request bodies; a full conference history is a few MB.
const maxBodyBytes = 16 << 20

// Options configures a Server.
type Options struct {
	Cities         []geo.City
	Analyzer       *conference.Analyzer
	Store          store.Store // optional; run routes are mounted only when set
	AllowedOrigins []string
}

// Server holds the dependencies behind the HTTP handlers.
type Server struct {
	cities   []geo.City
	analyzer *conference.Analyzer
	store    store.Store
	origins  []string
	log      *zap.Logger
}

// New creates a Server. A nil Analyzer is replaced with one built on Cities.
func New(opts Options) *Server {
	analyzer := opts.Analyzer
	if analyzer == nil {
		analyzer = conference.NewAnalyzer(opts.Cities)
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return &Server{
		cities:   opts.Cities,
		analyzer: analyzer,
		store:    opts.Store,
		origins:  origins,
		log:      zap.L().With(zap.String("component", "api")),
	}
}

// Handler returns the router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/distance", s.handleDistance)
		r.Route("/points", func(r chi.Router) {
			r.Post("/average", s.handleAverage)
			r.Post("/pairwise", s.handlePairwise)
			r.Post("/center", s.handleCenter)
			r.Post("/hull", s.handleHull)
		})
		r.Post("/cities/nearest", s.handleNearestCity)
		r.Post("/conferences/analyze", s.handleAnalyze)
		if s.store != nil {
			r.Get("/runs", s.handleListRuns)
			r.Get("/runs/{id}", s.handleGetRun)
		}
	})

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, geo.ErrDegenerateInput), errors.Is(err, geo.ErrEmptyReferenceCorpus):
		return http.StatusUnprocessableEntity
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", zap.Error(err))
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}
