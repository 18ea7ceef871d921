package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/claude/volumeopt/internal/storage"
	"github.com/claude/volumeopt/internal/volume"
)

// Version is stamped in by the main package at startup.
var Version = "dev"

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service":     "Volume Optimizer",
		"version":     Version,
		"get_started": "/auth/register",
		"daily_limits": map[string]int{
			string(storage.TierFree):       s.tiers.FreeDailyLimit,
			string(storage.TierPro):        s.tiers.ProDailyLimit,
			string(storage.TierEnterprise): s.tiers.EnterpriseDailyLimit,
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleMuscleGroups(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"muscle_groups": volume.MuscleGroups,
		"landmarks":     volume.AllLandmarks(),
		"note":          "Free tier has access to 'chest' only. Upgrade to Pro for all muscle groups.",
	})
}

type recommendRequest struct {
	MuscleGroup   string `json:"muscle_group" validate:"required"`
	TrainingLevel string `json:"training_level" validate:"required"`
	CurrentSets   int    `json:"current_sets" validate:"gte=0"`
	Progress      *bool  `json:"progress" validate:"required"`
	Recovered     *bool  `json:"recovered" validate:"required"`
}

type recommendResponse struct {
	Outcome       volume.Outcome       `json:"outcome"`
	TargetSets    *int                 `json:"target_sets,omitempty"`
	Message       string               `json:"message"`
	CurrentSets   int                  `json:"current_sets"`
	MuscleGroup   volume.MuscleGroup   `json:"muscle_group"`
	TrainingLevel volume.TrainingLevel `json:"training_level"`
	Landmarks     *volume.Landmarks    `json:"landmarks,omitempty"`
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())

	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if !s.consumeQuota(w, r, user, "/api/v1/volume/recommend") {
		return
	}

	group, err := volume.ParseMuscleGroup(req.MuscleGroup)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	level, err := volume.ParseTrainingLevel(req.TrainingLevel)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if !tierAllowsGroup(user.Tier, group) {
		writeJSON(w, http.StatusForbidden, map[string]string{
			"error": fmt.Sprintf("muscle group %q requires Pro or Enterprise tier; your tier allows %v", group, storage.AvailableMuscleGroups(user.Tier)),
		})
		return
	}

	rec, err := volume.Recommend(volume.Request{
		MuscleGroup:   group,
		TrainingLevel: level,
		CurrentSets:   req.CurrentSets,
		Progress:      *req.Progress,
		Recovered:     *req.Recovered,
	})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	// History is a paid feature; free-tier requests are not persisted.
	if user.Tier != storage.TierFree {
		if _, err := s.db.InsertHistory(r.Context(), storage.HistoryEntry{
			UserID:        user.ID,
			MuscleGroup:   group,
			CurrentSets:   req.CurrentSets,
			Outcome:       rec.Outcome,
			TargetSets:    rec.TargetSets,
			TrainingLevel: level,
			Progress:      *req.Progress,
			Recovered:     *req.Recovered,
		}); err != nil {
			// The recommendation itself is still good; log and continue.
			s.log.Error("history insert failed", "error", err, "user", user.ID)
		}
	}

	resp := recommendResponse{
		Outcome:       rec.Outcome,
		TargetSets:    rec.TargetSets,
		Message:       rec.Message,
		CurrentSets:   req.CurrentSets,
		MuscleGroup:   group,
		TrainingLevel: level,
	}
	if user.Tier != storage.TierFree {
		if lm, err := volume.LookupLandmarks(group, level); err == nil {
			resp.Landmarks = &lm
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	if !s.requireTier(w, user, storage.TierPro, "training history") {
		return
	}
	if !s.consumeQuota(w, r, user, "/api/v1/history") {
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 500 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be an integer between 1 and 500"})
			return
		}
		limit = n
	}

	muscleGroup := r.URL.Query().Get("muscle_group")
	if muscleGroup != "" {
		if _, err := volume.ParseMuscleGroup(muscleGroup); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
	}

	entries, err := s.db.QueryHistory(r.Context(), user.ID, muscleGroup, limit)
	if err != nil {
		s.log.Error("history query failed", "error", err, "user", user.ID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "query failed"})
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	if !s.requireTier(w, user, storage.TierPro, "analytics") {
		return
	}
	if !s.consumeQuota(w, r, user, "/api/v1/analytics") {
		return
	}

	analytics, err := s.db.UserAnalytics(r.Context(), user.ID)
	if err != nil {
		s.log.Error("analytics query failed", "error", err, "user", user.ID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "query failed"})
		return
	}
	writeJSON(w, http.StatusOK, analytics)
}

// consumeQuota enforces the caller's daily tier quota and records the
// request against it. Writes a 429 and returns false when exhausted.
func (s *Server) consumeQuota(w http.ResponseWriter, r *http.Request, user storage.User, endpoint string) bool {
	count, err := s.db.CountUsageToday(r.Context(), user.ID)
	if err != nil {
		s.log.Error("usage count failed", "error", err, "user", user.ID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "quota check failed"})
		return false
	}

	limit := s.dailyLimit(user.Tier)
	if count >= limit {
		writeJSON(w, http.StatusTooManyRequests, map[string]string{
			"error": fmt.Sprintf("daily limit reached: your %s tier allows %d requests per day", user.Tier, limit),
		})
		return false
	}

	if err := s.db.LogUsage(r.Context(), user.ID, endpoint); err != nil {
		s.log.Error("usage log failed", "error", err, "user", user.ID)
	}
	return true
}

func (s *Server) dailyLimit(tier storage.Tier) int {
	switch tier {
	case storage.TierPro:
		return s.tiers.ProDailyLimit
	case storage.TierEnterprise:
		return s.tiers.EnterpriseDailyLimit
	default:
		return s.tiers.FreeDailyLimit
	}
}

// requireTier writes a 403 and returns false when the user's tier is
// below the required one.
func (s *Server) requireTier(w http.ResponseWriter, user storage.User, required storage.Tier, feature string) bool {
	if user.Tier.Rank() < required.Rank() {
		writeJSON(w, http.StatusForbidden, map[string]string{
			"error": fmt.Sprintf("%s requires %s tier or higher; upgrade at /subscription/upgrade", feature, required),
		})
		return false
	}
	return true
}

func tierAllowsGroup(tier storage.Tier, group volume.MuscleGroup) bool {
	for _, g := range storage.AvailableMuscleGroups(tier) {
		if g == group {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// notFoundToStatus maps storage.ErrNotFound to 404 and everything else to 500.
func notFoundToStatus(err error) int {
	if errors.Is(err, storage.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
