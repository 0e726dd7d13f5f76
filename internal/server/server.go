// Package server exposes assessment sessions over HTTP and streams advice
// over websockets.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/founderfit/internal/advice"
	"github.com/abhisek/founderfit/internal/catalog"
	"github.com/abhisek/founderfit/internal/config"
	"github.com/abhisek/founderfit/internal/sessions"
	"github.com/abhisek/founderfit/internal/store"
)

// Server is the HTTP API.
type Server struct {
	config      config.ServerConfig
	router      *chi.Mux
	catalog     *catalog.Catalog
	sessions    sessions.Repo
	advice      *advice.Service
	assessments store.AssessmentRepo
	now         func() time.Time
}

// Options wires the server's collaborators. Advice and Assessments may be
// nil; the endpoints that need them then answer 503.
type Options struct {
	Config      config.ServerConfig
	Catalog     *catalog.Catalog
	Sessions    sessions.Repo
	Advice      *advice.Service
	Assessments store.AssessmentRepo
}

// NewServer creates a new API server.
func NewServer(opts Options) *Server {
	s := &Server{
		config:      opts.Config,
		catalog:     opts.Catalog,
		sessions:    opts.Sessions,
		advice:      opts.Advice,
		assessments: opts.Assessments,
		now:         time.Now,
	}
	if s.catalog == nil {
		s.catalog = catalog.Default()
	}
	s.setupRouter()
	return s
}

// Router returns the configured router.
func (s *Server) Router() http.Handler {
	return s.router
}

// HTTPServer builds the listening server from the configured timeouts.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	if s.config.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.config.RequestTimeout))
	}

	origins := s.config.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Content-Disposition"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.handleCreateSession)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetSession)
				r.Delete("/", s.handleDeleteSession)
				r.Put("/ratings", s.handleSetRating)
				r.Put("/respondent", s.handleSetRespondent)
				r.Get("/results", s.handleResults)
				r.Get("/next", s.handleNext)
				r.Post("/advice/{kind}", s.handleAdvice)
				r.Get("/advice/{kind}/stream", s.handleAdviceStream)
				r.Get("/highlights", s.handleHighlights)
				r.Get("/export", s.handleExport)
				r.Post("/submit", s.handleSubmit)
			})
		})

		r.Route("/assessments", func(r chi.Router) {
			r.Get("/", s.handleListAssessments)
			r.Get("/{id}", s.handleGetAssessment)
		})
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
