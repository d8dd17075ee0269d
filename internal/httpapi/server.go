package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/statuswatch/internal/state"
)

// Server exposes the persisted snapshot over HTTP, read-only. It serves
// whatever the last agent run wrote; it never probes anything itself.
type Server struct {
	Logger *zap.Logger
	Store  state.Store
}

func NewServer(l *zap.Logger, store state.Store) *Server {
	return &Server{Logger: l, Store: store}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/api/status", s.handleStatus)

	return r
}

type statusResponse struct {
	Targets     map[string]bool `json:"targets"`
	TotalUp     int             `json:"total_up"`
	TotalDown   int             `json:"total_down"`
	GeneratedAt time.Time       `json:"generated_at"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.Store.Load()

	resp := statusResponse{
		Targets:     snap,
		GeneratedAt: time.Now().UTC(),
	}
	for _, up := range snap {
		if up {
			resp.TotalUp++
		} else {
			resp.TotalDown++
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.Logger.Warn("status_encode_failed", zap.Error(err))
	}
}
