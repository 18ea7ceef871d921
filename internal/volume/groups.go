package volume

import "fmt"

// MuscleGroup identifies one of the ten tracked muscle groups.
type MuscleGroup string

const (
	Chest      MuscleGroup = "chest"
	Back       MuscleGroup = "back"
	Shoulders  MuscleGroup = "shoulders"
	Biceps     MuscleGroup = "biceps"
	Triceps    MuscleGroup = "triceps"
	Quads      MuscleGroup = "quads"
	Hamstrings MuscleGroup = "hamstrings"
	Glutes     MuscleGroup = "glutes"
	Calves     MuscleGroup = "calves"
	Abs        MuscleGroup = "abs"
)

// MuscleGroups lists every recognized muscle group in display order.
var MuscleGroups = []MuscleGroup{
	Chest, Back, Shoulders, Biceps, Triceps,
	Quads, Hamstrings, Glutes, Calves, Abs,
}

// ParseMuscleGroup converts a raw string into a MuscleGroup.
// Returns ErrUnknownMuscleGroup for anything outside the fixed set.
func ParseMuscleGroup(s string) (MuscleGroup, error) {
	g := MuscleGroup(s)
	for _, known := range MuscleGroups {
		if g == known {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMuscleGroup, s)
}

// TrainingLevel is the trainee's experience level. More experienced
// trainees tolerate and require higher weekly volume.
type TrainingLevel string

const (
	Beginner     TrainingLevel = "beginner"
	Intermediate TrainingLevel = "intermediate"
	Advanced     TrainingLevel = "advanced"
)

// TrainingLevels lists every recognized training level, least experienced first.
var TrainingLevels = []TrainingLevel{Beginner, Intermediate, Advanced}

// ParseTrainingLevel converts a raw string into a TrainingLevel.
// Returns ErrUnknownTrainingLevel for anything outside the fixed set.
func ParseTrainingLevel(s string) (TrainingLevel, error) {
	l := TrainingLevel(s)
	for _, known := range TrainingLevels {
		if l == known {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTrainingLevel, s)
}
