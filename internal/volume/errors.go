package volume

import "errors"

var (
	// ErrUnknownMuscleGroup is returned when a muscle group is not one of
	// the ten recognized values.
	ErrUnknownMuscleGroup = errors.New("unknown muscle group")

	// ErrUnknownTrainingLevel is returned when a training level is not
	// beginner, intermediate, or advanced.
	ErrUnknownTrainingLevel = errors.New("unknown training level")

	// ErrInvalidSetCount is returned when a request carries a negative
	// current set count.
	ErrInvalidSetCount = errors.New("invalid set count")
)
