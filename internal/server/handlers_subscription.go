package server

import (
	"encoding/json"
	"net/http"

	"github.com/claude/volumeopt/internal/storage"
	"github.com/claude/volumeopt/internal/volume"
)

type subscriptionInfoResponse struct {
	Tier                  storage.Tier         `json:"tier"`
	DailyLimit            int                  `json:"daily_limit"`
	UsageToday            int                  `json:"usage_today"`
	AvailableMuscleGroups []volume.MuscleGroup `json:"available_muscle_groups"`
}

func (s *Server) handleSubscriptionInfo(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())

	usage, err := s.db.CountUsageToday(r.Context(), user.ID)
	if err != nil {
		s.log.Error("usage count failed", "error", err, "user", user.ID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "query failed"})
		return
	}

	writeJSON(w, http.StatusOK, subscriptionInfoResponse{
		Tier:                  user.Tier,
		DailyLimit:            s.dailyLimit(user.Tier),
		UsageToday:            usage,
		AvailableMuscleGroups: storage.AvailableMuscleGroups(user.Tier),
	})
}

type upgradeRequest struct {
	Tier string `json:"tier" validate:"required"`
}

func (s *Server) handleSubscriptionUpgrade(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())

	var req upgradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	target, err := storage.ParseTier(req.Tier)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if target.Rank() <= user.Tier.Rank() {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "cannot downgrade or keep the current tier; contact support for downgrades",
		})
		return
	}

	// Payment processing is intentionally out of scope; the tier change
	// itself is the whole operation.
	if err := s.db.UpdateUserTier(r.Context(), user.ID, target); err != nil {
		s.log.Error("tier update failed", "error", err, "user", user.ID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "upgrade failed"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message":  "upgraded to " + string(target) + " tier",
		"new_tier": string(target),
	})
}
