package server

import (
	"net/http"

	"github.com/claude/volumeopt/internal/storage"
)

func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	if !s.requireTier(w, user, storage.TierEnterprise, "admin stats") {
		return
	}

	stats, err := s.db.SystemStats(r.Context())
	if err != nil {
		s.log.Error("system stats failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "query failed"})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
