package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lazypower/soulgatchi/internal/engine"
	"github.com/lazypower/soulgatchi/internal/store"
	"go.uber.org/zap"
)

// Server is the soulgatchi HTTP API server.
type Server struct {
	db      *store.DB
	engine  *engine.Engine
	log     *zap.Logger
	router  chi.Router
	version string
	started time.Time
}

// New creates a new Server for the given engine, database and version string.
func New(db *store.DB, eng *engine.Engine, log *zap.Logger, version string) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		db:      db,
		engine:  eng,
		log:     log.Named("http"),
		version: version,
		started: time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/pet", func(r chi.Router) {
			r.Get("/", s.handleGetPet)
			r.Post("/rituals/{name}", s.handleRitual)
			r.Post("/prayers/{slot}", s.handlePrayer)
			r.Post("/rest", s.handleRest)
			r.Post("/study", s.handleStudy)
			r.Post("/reset", s.handleReset)
			r.Post("/daily-reset", s.handleDailyReset)
		})

		r.Get("/history", s.handleHistory)
		r.Get("/lives", s.handleLives)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbOK := true
	if err := s.db.Ping(); err != nil {
		dbOK = false
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Seconds(),
		"db":      dbOK,
		"db_path": s.db.Path,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
