package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lazypower/soulgatchi/internal/engine"
	"github.com/lazypower/soulgatchi/internal/pet"
	"go.uber.org/zap"
)

const (
	defaultListLimit = 20
	maxListLimit     = 500
)

func (s *Server) handleGetPet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Status())
}

func (s *Server) handleRitual(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil || strings.TrimSpace(name) == "" {
		writeError(w, http.StatusBadRequest, "ritual name required")
		return
	}
	s.writeResult(w, "ritual", s.engine.PerformRitual(name))
}

func (s *Server) handlePrayer(w http.ResponseWriter, r *http.Request) {
	slot, err := pet.ParsePrayer(chi.URLParam(r, "slot"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeResult(w, "prayer", s.engine.CompletePrayer(slot))
}

func (s *Server) handleRest(w http.ResponseWriter, r *http.Request) {
	s.writeResult(w, "rest", s.engine.Rest())
}

func (s *Server) handleStudy(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Topic string `json:"topic"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Topic == "" {
		writeError(w, http.StatusBadRequest, "topic required")
		return
	}
	s.writeResult(w, "study", s.engine.Study(req.Topic))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Emoji string `json:"emoji"`
	}
	// An empty body resets with the default name.
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
	}

	st := s.engine.Reset(strings.TrimSpace(req.Name), req.Emoji)
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleDailyReset(w http.ResponseWriter, r *http.Request) {
	s.engine.ResetDaily()
	writeJSON(w, http.StatusOK, s.engine.Status())
}

// writeResult maps a rejected action to 409: the pet is dead or the action
// is not applicable.
func (s *Server) writeResult(w http.ResponseWriter, action string, res engine.Result) {
	if !res.Accepted {
		s.log.Debug("action rejected", zap.String("action", action), zap.String("reason", res.Message))
		writeJSON(w, http.StatusConflict, map[string]any{
			"error": res.Message,
			"pet":   res.Status,
		})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	acts, err := s.db.RecentActivities(listLimit(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	type activityJSON struct {
		Kind   string    `json:"kind"`
		Detail string    `json:"detail,omitempty"`
		Stats  pet.Stats `json:"stats"`
		At     time.Time `json:"at"`
	}

	out := make([]activityJSON, len(acts))
	for i, a := range acts {
		out[i] = activityJSON{
			Kind:   a.Kind,
			Detail: a.Detail,
			Stats:  a.Stats,
			At:     time.UnixMilli(a.CreatedAt).UTC(),
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count":      len(out),
		"activities": out,
	})
}

func (s *Server) handleLives(w http.ResponseWriter, r *http.Request) {
	lives, err := s.db.RecentLives(listLimit(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	type lifeJSON struct {
		Name      string     `json:"name"`
		Emoji     string     `json:"emoji,omitempty"`
		Status    string     `json:"status"`
		AgeHours  int        `json:"age_hours"`
		StartedAt time.Time  `json:"started_at"`
		EndedAt   *time.Time `json:"ended_at,omitempty"`
	}

	out := make([]lifeJSON, len(lives))
	for i, l := range lives {
		lj := lifeJSON{
			Name:      l.Name,
			Emoji:     l.Emoji,
			Status:    l.Status,
			AgeHours:  l.AgeHours,
			StartedAt: time.UnixMilli(l.StartedAt).UTC(),
		}
		if l.EndedAt != nil {
			t := time.UnixMilli(*l.EndedAt).UTC()
			lj.EndedAt = &t
		}
		out[i] = lj
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count": len(out),
		"lives": out,
	})
}

func listLimit(r *http.Request) int {
	limit := defaultListLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return limit
}
