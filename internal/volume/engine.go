// Package volume recommends weekly training-set volume for a muscle group
// by classifying the trainee's current volume, progress, and recovery
// status against per-group, per-level volume landmarks.
package volume

import "fmt"

// Outcome classifies a recommendation.
type Outcome string

const (
	ReduceVolume      Outcome = "reduce_volume"
	NoChange          Outcome = "no_change"
	IncreaseVolume    Outcome = "increase_volume"
	MaintainAtCeiling Outcome = "maintain_at_ceiling"
)

// Request describes the trainee's current state for one muscle group.
type Request struct {
	MuscleGroup   MuscleGroup
	TrainingLevel TrainingLevel
	CurrentSets   int
	Progress      bool
	Recovered     bool
}

// Recommendation is the engine's output. TargetSets is nil for the
// no-change outcome and set otherwise. Message restates the numeric
// target and the landmark it came from, so callers can display it
// without re-deriving anything.
type Recommendation struct {
	Outcome    Outcome `json:"outcome"`
	TargetSets *int    `json:"target_sets,omitempty"`
	Message    string  `json:"message"`
}

// Recommend computes a volume recommendation for the given request.
//
// Pure and deterministic: identical inputs yield identical outputs, with
// no dependency on time, call history, or shared state. Rules apply in
// priority order — recovery status dominates everything else, since
// training through unresolved fatigue is the main risk the engine guards
// against.
func Recommend(req Request) (Recommendation, error) {
	if req.CurrentSets < 0 {
		return Recommendation{}, fmt.Errorf("%w: %d", ErrInvalidSetCount, req.CurrentSets)
	}

	lm, err := LookupLandmarks(req.MuscleGroup, req.TrainingLevel)
	if err != nil {
		return Recommendation{}, err
	}

	if !req.Recovered {
		return target(ReduceVolume, lm.MEV,
			fmt.Sprintf("Reduce to %d sets per week (MEV) and restore recovery before adding volume.", lm.MEV)), nil
	}

	if req.Progress {
		// Progress above MRV still gets capped: the volume worked, but it
		// is not sustainable.
		if req.CurrentSets > lm.MRV {
			return target(ReduceVolume, lm.MRV,
				fmt.Sprintf("Reduce to %d sets per week (MRV); current volume exceeds what you can recover from.", lm.MRV)), nil
		}
		return Recommendation{
			Outcome: NoChange,
			Message: "No change needed; current volume is producing progress and is recoverable.",
		}, nil
	}

	// Recovered but stagnant: insufficient stimulus, so add volume until
	// the recoverable ceiling, then stop recommending more sets.
	switch {
	case req.CurrentSets < lm.MAV:
		return target(IncreaseVolume, lm.MAV,
			fmt.Sprintf("Increase to at least %d sets per week (MAV).", lm.MAV)), nil
	case req.CurrentSets < lm.MRV:
		return target(IncreaseVolume, lm.MRV,
			fmt.Sprintf("Increase toward %d sets per week (MRV).", lm.MRV)), nil
	default:
		return target(MaintainAtCeiling, lm.MRV,
			fmt.Sprintf("Hold at %d sets per week (MRV); vary exercises or deload rather than adding volume.", lm.MRV)), nil
	}
}

func target(outcome Outcome, sets int, msg string) Recommendation {
	return Recommendation{Outcome: outcome, TargetSets: &sets, Message: msg}
}
