package volume

import "fmt"

// Landmarks holds the weekly set-count landmarks for one muscle group at
// one training level.
//
//	MEV — Minimum Effective Volume: lowest volume still producing adaptation.
//	MAV — Maximum Adaptive Volume: best adaptation-to-fatigue ratio.
//	MRV — Maximum Recoverable Volume: highest recoverable volume.
type Landmarks struct {
	MEV int `json:"mev"`
	MAV int `json:"mav"`
	MRV int `json:"mrv"`
}

// Validate checks the landmark ordering invariant 0 <= MEV <= MAV <= MRV.
func (l Landmarks) Validate() error {
	if l.MEV < 0 {
		return fmt.Errorf("MEV must be non-negative, got %d", l.MEV)
	}
	if l.MEV > l.MAV {
		return fmt.Errorf("MEV %d exceeds MAV %d", l.MEV, l.MAV)
	}
	if l.MAV > l.MRV {
		return fmt.Errorf("MAV %d exceeds MRV %d", l.MAV, l.MRV)
	}
	return nil
}

// landmarkTable maps every (muscle group, training level) pair to its
// landmark triple. One entry per pair, defined at process start, never
// mutated, shared read-only across all callers.
var landmarkTable = mustTable(map[MuscleGroup]map[TrainingLevel]Landmarks{
	Chest: {
		Beginner:     {MEV: 8, MAV: 12, MRV: 16},
		Intermediate: {MEV: 10, MAV: 15, MRV: 20},
		Advanced:     {MEV: 12, MAV: 18, MRV: 24},
	},
	Back: {
		Beginner:     {MEV: 10, MAV: 14, MRV: 18},
		Intermediate: {MEV: 12, MAV: 16, MRV: 22},
		Advanced:     {MEV: 14, MAV: 20, MRV: 26},
	},
	Shoulders: {
		Beginner:     {MEV: 8, MAV: 12, MRV: 16},
		Intermediate: {MEV: 10, MAV: 14, MRV: 20},
		Advanced:     {MEV: 12, MAV: 16, MRV: 24},
	},
	Biceps: {
		Beginner:     {MEV: 6, MAV: 10, MRV: 14},
		Intermediate: {MEV: 8, MAV: 12, MRV: 18},
		Advanced:     {MEV: 10, MAV: 14, MRV: 22},
	},
	Triceps: {
		Beginner:     {MEV: 6, MAV: 10, MRV: 14},
		Intermediate: {MEV: 8, MAV: 12, MRV: 18},
		Advanced:     {MEV: 10, MAV: 14, MRV: 22},
	},
	Quads: {
		Beginner:     {MEV: 8, MAV: 12, MRV: 16},
		Intermediate: {MEV: 10, MAV: 14, MRV: 20},
		Advanced:     {MEV: 12, MAV: 18, MRV: 24},
	},
	Hamstrings: {
		Beginner:     {MEV: 6, MAV: 10, MRV: 14},
		Intermediate: {MEV: 8, MAV: 12, MRV: 18},
		Advanced:     {MEV: 10, MAV: 14, MRV: 22},
	},
	Glutes: {
		Beginner:     {MEV: 6, MAV: 10, MRV: 14},
		Intermediate: {MEV: 8, MAV: 12, MRV: 18},
		Advanced:     {MEV: 10, MAV: 14, MRV: 22},
	},
	Calves: {
		Beginner:     {MEV: 8, MAV: 12, MRV: 16},
		Intermediate: {MEV: 10, MAV: 14, MRV: 20},
		Advanced:     {MEV: 12, MAV: 16, MRV: 24},
	},
	Abs: {
		Beginner:     {MEV: 6, MAV: 10, MRV: 14},
		Intermediate: {MEV: 8, MAV: 12, MRV: 18},
		Advanced:     {MEV: 10, MAV: 14, MRV: 22},
	},
})

// mustTable validates the landmark table once at startup: every muscle
// group must carry all three levels, and every triple must satisfy
// Validate. A malformed literal is a programming error, so it panics.
func mustTable(t map[MuscleGroup]map[TrainingLevel]Landmarks) map[MuscleGroup]map[TrainingLevel]Landmarks {
	for _, g := range MuscleGroups {
		levels, ok := t[g]
		if !ok {
			panic(fmt.Sprintf("volume: landmark table missing muscle group %q", g))
		}
		for _, lvl := range TrainingLevels {
			lm, ok := levels[lvl]
			if !ok {
				panic(fmt.Sprintf("volume: landmark table missing %s/%s", g, lvl))
			}
			if err := lm.Validate(); err != nil {
				panic(fmt.Sprintf("volume: landmark table %s/%s: %v", g, lvl, err))
			}
		}
	}
	return t
}

// LookupLandmarks returns the landmark triple for the given muscle group
// and training level. Safe for concurrent use.
func LookupLandmarks(group MuscleGroup, level TrainingLevel) (Landmarks, error) {
	levels, ok := landmarkTable[group]
	if !ok {
		return Landmarks{}, fmt.Errorf("%w: %q", ErrUnknownMuscleGroup, group)
	}
	lm, ok := levels[level]
	if !ok {
		return Landmarks{}, fmt.Errorf("%w: %q", ErrUnknownTrainingLevel, level)
	}
	return lm, nil
}

// AllLandmarks returns a copy of the full landmark table, keyed by muscle
// group then training level. Callers may mutate the returned maps freely.
func AllLandmarks() map[MuscleGroup]map[TrainingLevel]Landmarks {
	out := make(map[MuscleGroup]map[TrainingLevel]Landmarks, len(landmarkTable))
	for g, levels := range landmarkTable {
		inner := make(map[TrainingLevel]Landmarks, len(levels))
		for lvl, lm := range levels {
			inner[lvl] = lm
		}
		out[g] = inner
	}
	return out
}
