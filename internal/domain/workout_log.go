package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SetLog is one performed set within an exercise log.
type SetLog struct {
	ID           string     `bson:"id" json:"id"`
	SetNumber    int        `bson:"setNumber" json:"setNumber"`
	TargetReps   int        `bson:"targetReps" json:"targetReps"`
	TargetWeight float64    `bson:"targetWeight" json:"targetWeight"`
	ActualReps   int        `bson:"actualReps" json:"actualReps"`
	Weight       float64    `bson:"weight" json:"weight"`
	WeightUnit   WeightUnit `bson:"weightUnit" json:"weightUnit"`
	IsCompleted  bool       `bson:"isCompleted" json:"isCompleted"`
	IsPR         bool       `bson:"isPR" json:"isPR"`
	// RPE is the Rate of Perceived Exertion, 1-10, when the user logged one.
	RPE *int `bson:"rpe,omitempty" json:"rpe,omitempty"`
	// PreviousPerformance is a display hint like "10×135" from the last
	// session this exercise appeared in.
	PreviousPerformance *string `bson:"previousPerformance,omitempty" json:"previousPerformance,omitempty"`
}

// Volume is reps times weight for this set.
func (s SetLog) Volume() float64 {
	return float64(s.ActualReps) * s.Weight
}

// FormattedSet renders the set for display, e.g. "10 × 135 lbs".
func (s SetLog) FormattedSet() string {
	if s.Weight > 0 {
		return fmt.Sprintf("%d × %d %s", s.ActualReps, int(s.Weight), s.WeightUnit.Abbreviation())
	}
	return fmt.Sprintf("%d reps", s.ActualReps)
}

// ExerciseLog is the performed-exercise record inside a workout log.
type ExerciseLog struct {
	ID            string   `bson:"id" json:"id"`
	ExerciseID    *string  `bson:"exerciseId,omitempty" json:"exerciseId,omitempty"`
	Name          string   `bson:"name" json:"name"`
	CompletedSets []SetLog `bson:"completedSets" json:"completedSets"`
	Notes         string   `bson:"notes" json:"notes"`
	Order         int      `bson:"order" json:"order"`
}

// TotalVolume sums the volume of every set of this exercise.
func (e ExerciseLog) TotalVolume() float64 {
	total := 0.0
	for _, s := range e.CompletedSets {
		total += s.Volume()
	}
	return total
}

// BestSet returns the set with the highest weight. The first set wins a
// tie. ok is false when the exercise has no sets.
func (e ExerciseLog) BestSet() (best SetLog, ok bool) {
	for i, s := range e.CompletedSets {
		if i == 0 || s.Weight > best.Weight {
			best = s
			ok = true
		}
	}
	return best, ok
}

// NewExerciseLogFromTemplate expands an exercise template into a log
// skeleton: targetSets sets, numbered from 1, with the template's target
// reps and weight pre-filled as both target and initial actual values.
func NewExerciseLogFromTemplate(ex Exercise) ExerciseLog {
	exerciseID := ex.ID
	sets := make([]SetLog, 0, ex.TargetSets)
	for i := 0; i < ex.TargetSets; i++ {
		sets = append(sets, SetLog{
			ID:           uuid.NewString(),
			SetNumber:    i + 1,
			TargetReps:   ex.TargetReps,
			TargetWeight: ex.TargetWeight,
			ActualReps:   ex.TargetReps,
			Weight:       ex.TargetWeight,
			WeightUnit:   ex.WeightUnit,
		})
	}
	return ExerciseLog{
		ID:            uuid.NewString(),
		ExerciseID:    &exerciseID,
		Name:          ex.Name,
		CompletedSets: sets,
		Order:         ex.Order,
	}
}

// WorkoutLog records an actually-performed session. It keeps a snapshot of
// the program and day names so the log stays meaningful if the source
// template is later changed or deleted.
type WorkoutLog struct {
	ID          string        `bson:"_id" json:"id"`
	UserID      string        `bson:"userId" json:"userId"`
	ProgramID   *string       `bson:"programId,omitempty" json:"programId,omitempty"`
	ProgramName string        `bson:"programName" json:"programName"`
	DayID       *string       `bson:"dayId,omitempty" json:"dayId,omitempty"`
	DayName     string        `bson:"dayName" json:"dayName"`
	Exercises   []ExerciseLog `bson:"exercises" json:"exercises"`
	StartedAt   time.Time     `bson:"startedAt" json:"startedAt"`
	CompletedAt *time.Time    `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	// Duration is the session length in seconds, stamped on completion.
	Duration int64  `bson:"duration" json:"duration"`
	Notes    string `bson:"notes" json:"notes"`
	Rating   *int   `bson:"rating,omitempty" json:"rating,omitempty"`
}

// NewWorkoutLogFromDay instantiates a log skeleton from a day template.
// program may be nil for ad-hoc sessions started outside any program.
func NewWorkoutLogFromDay(day WorkoutDay, program *Program, userID string) WorkoutLog {
	log := WorkoutLog{
		ID:        uuid.NewString(),
		UserID:    userID,
		DayName:   day.Name,
		StartedAt: time.Now().UTC(),
	}
	dayID := day.ID
	log.DayID = &dayID
	if program != nil {
		programID := program.ID
		log.ProgramID = &programID
		log.ProgramName = program.Name
	}
	log.Exercises = make([]ExerciseLog, 0, len(day.Exercises))
	for _, ex := range day.Exercises {
		log.Exercises = append(log.Exercises, NewExerciseLogFromTemplate(ex))
	}
	return log
}

// NewBlankWorkoutLog starts an empty ad-hoc session.
func NewBlankWorkoutLog(userID, dayName string) WorkoutLog {
	return WorkoutLog{
		ID:        uuid.NewString(),
		UserID:    userID,
		DayName:   dayName,
		StartedAt: time.Now().UTC(),
	}
}

// TotalVolume is the volume lifted in this workout across all exercises.
func (w WorkoutLog) TotalVolume() float64 {
	total := 0.0
	for _, e := range w.Exercises {
		total += e.TotalVolume()
	}
	return total
}

// TotalSetsCompleted counts the sets marked completed across all exercises.
func (w WorkoutLog) TotalSetsCompleted() int {
	total := 0
	for _, e := range w.Exercises {
		for _, s := range e.CompletedSets {
			if s.IsCompleted {
				total++
			}
		}
	}
	return total
}

// IsCompleted reports whether the session has been explicitly completed.
func (w WorkoutLog) IsCompleted() bool {
	return w.CompletedAt != nil
}

// ExerciseLogByName returns the first exercise log with the given name.
func (w WorkoutLog) ExerciseLogByName(name string) (ExerciseLog, bool) {
	for _, e := range w.Exercises {
		if e.Name == name {
			return e, true
		}
	}
	return ExerciseLog{}, false
}

// FormattedDuration renders the duration for display, e.g. "1h 23m".
func (w WorkoutLog) FormattedDuration() string {
	hours := w.Duration / 3600
	minutes := (w.Duration % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
