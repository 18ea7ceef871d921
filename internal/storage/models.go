package storage

import (
	"fmt"
	"time"

	"github.com/claude/volumeopt/internal/volume"
	"github.com/google/uuid"
)

// Tier is a subscription tier. Tiers gate muscle-group access, daily
// quotas, and the history/analytics/admin features.
type Tier string

const (
	TierFree       Tier = "free"
	TierPro        Tier = "pro"
	TierEnterprise Tier = "enterprise"
)

// Tiers lists all tiers, cheapest first.
var Tiers = []Tier{TierFree, TierPro, TierEnterprise}

// ParseTier converts a raw string into a Tier.
func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	for _, known := range Tiers {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tier: %q", s)
}

// Rank orders tiers for upgrade checks: free < pro < enterprise.
func (t Tier) Rank() int {
	switch t {
	case TierPro:
		return 1
	case TierEnterprise:
		return 2
	default:
		return 0
	}
}

// AvailableMuscleGroups returns the muscle groups a tier may request.
// Free tier gets chest only; paid tiers get all ten.
func AvailableMuscleGroups(t Tier) []volume.MuscleGroup {
	if t == TierFree {
		return []volume.MuscleGroup{volume.Chest}
	}
	out := make([]volume.MuscleGroup, len(volume.MuscleGroups))
	copy(out, volume.MuscleGroups)
	return out
}

// User is an account row.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	Tier           Tier      `json:"subscription_tier"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// APIKey is a credential row. Key is only returned in full at creation.
type APIKey struct {
	ID         uuid.UUID  `json:"id"`
	Key        string     `json:"key"`
	Name       string     `json:"name"`
	UserID     uuid.UUID  `json:"-"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at"`
}

// HistoryEntry records one recommendation request and its outcome.
type HistoryEntry struct {
	ID            uuid.UUID            `json:"id"`
	UserID        uuid.UUID            `json:"-"`
	MuscleGroup   volume.MuscleGroup   `json:"muscle_group"`
	CurrentSets   int                  `json:"current_sets"`
	Outcome       volume.Outcome       `json:"outcome"`
	TargetSets    *int                 `json:"target_sets,omitempty"`
	TrainingLevel volume.TrainingLevel `json:"training_level"`
	Progress      bool                 `json:"progress"`
	Recovered     bool                 `json:"recovered"`
	CreatedAt     time.Time            `json:"created_at"`
}

// Analytics summarizes a user's recommendation history.
type Analytics struct {
	TotalLogged         int                `json:"total_requests_logged"`
	MuscleGroupsTracked []string           `json:"muscle_groups_tracked"`
	AverageWeeklyVolume map[string]float64 `json:"average_weekly_volume"`
	ProgressTrend       map[string]int     `json:"progress_trend"`
	RecentHistory       []HistoryEntry     `json:"recent_history"`
}

// AdminStats summarizes system-wide usage for the admin endpoint.
type AdminStats struct {
	TotalUsers          int            `json:"total_users"`
	UsersByTier         map[string]int `json:"users_by_tier"`
	RequestsToday       int            `json:"requests_today"`
	TotalHistoryEntries int            `json:"total_history_entries"`
}
