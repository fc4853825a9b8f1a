package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// WeightUnit is the unit a weight value is expressed in.
type WeightUnit string

const (
	UnitPounds    WeightUnit = "lbs"
	UnitKilograms WeightUnit = "kg"
)

// Abbreviation returns the short display form of the unit.
func (u WeightUnit) Abbreviation() string {
	return string(u)
}

func (u WeightUnit) FullName() string {
	switch u {
	case UnitKilograms:
		return "Kilograms"
	default:
		return "Pounds"
	}
}

// IsValid reports whether the unit is one of the known values.
func (u WeightUnit) IsValid() bool {
	return u == UnitPounds || u == UnitKilograms
}

// Exercise is a single exercise inside a workout day template,
// e.g. "Bicep Curl", 3 sets x 10 reps @ 20 lbs.
type Exercise struct {
	ID           string     `bson:"id" json:"id"`
	Name         string     `bson:"name" json:"name"`
	TargetSets   int        `bson:"targetSets" json:"targetSets"`
	TargetReps   int        `bson:"targetReps" json:"targetReps"`
	TargetWeight float64    `bson:"targetWeight" json:"targetWeight"`
	WeightUnit   WeightUnit `bson:"weightUnit" json:"weightUnit"`
	Notes        string     `bson:"notes" json:"notes"`
	Order        int        `bson:"order" json:"order"`
	RestSeconds  int        `bson:"restSeconds" json:"restSeconds"`
}

// NewExercise creates an exercise template with a fresh ID and the
// usual starting defaults (3x10, 60s rest).
func NewExercise(name string) Exercise {
	return Exercise{
		ID:          uuid.NewString(),
		Name:        name,
		TargetSets:  3,
		TargetReps:  10,
		WeightUnit:  UnitPounds,
		RestSeconds: 60,
	}
}

// FormattedTarget renders the target for display, e.g. "3 × 10 @ 20 lbs".
func (e Exercise) FormattedTarget() string {
	if e.TargetWeight > 0 {
		return fmt.Sprintf("%d × %d @ %d %s", e.TargetSets, e.TargetReps, int(e.TargetWeight), e.WeightUnit.Abbreviation())
	}
	return fmt.Sprintf("%d × %d", e.TargetSets, e.TargetReps)
}

// EstimatedVolume is the planned volume (sets * reps * weight).
func (e Exercise) EstimatedVolume() float64 {
	return float64(e.TargetSets*e.TargetReps) * e.TargetWeight
}

// WorkoutDay groups the exercises performed together in one session
// template, e.g. "Arm Day" or "Leg Day".
type WorkoutDay struct {
	ID        string     `bson:"id" json:"id"`
	Name      string     `bson:"name" json:"name"`
	Exercises []Exercise `bson:"exercises" json:"exercises"`
	Order     int        `bson:"order" json:"order"`
	Notes     string     `bson:"notes" json:"notes"`
}

// NewWorkoutDay creates an empty day template with a fresh ID.
func NewWorkoutDay(name string) WorkoutDay {
	return WorkoutDay{
		ID:   uuid.NewString(),
		Name: name,
	}
}

// TotalSets is the number of sets planned across all exercises of the day.
func (d WorkoutDay) TotalSets() int {
	total := 0
	for _, e := range d.Exercises {
		total += e.TargetSets
	}
	return total
}

func (d WorkoutDay) ExerciseCount() int {
	return len(d.Exercises)
}
