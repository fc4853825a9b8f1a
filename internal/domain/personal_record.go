package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PersonalRecord is one best-ever (weight, reps) entry for a named
// exercise. Storage keeps an append-only history per (user, exercise):
// there is no unique constraint, old rows are never deleted, and "the PR"
// is recomputed on every read with BestRecord.
type PersonalRecord struct {
	ID           string     `bson:"_id" json:"id"`
	UserID       string     `bson:"userId" json:"userId"`
	ExerciseName string     `bson:"exerciseName" json:"exerciseName"`
	Weight       float64    `bson:"weight" json:"weight"`
	Reps         int        `bson:"reps" json:"reps"`
	WeightUnit   WeightUnit `bson:"weightUnit" json:"weightUnit"`
	AchievedAt   time.Time  `bson:"achievedAt" json:"achievedAt"`
	WorkoutLogID *string    `bson:"workoutLogId,omitempty" json:"workoutLogId,omitempty"`
}

// NewPersonalRecord creates a record row for a just-achieved lift.
func NewPersonalRecord(userID, exerciseName string, weight float64, reps int, unit WeightUnit, workoutLogID *string) PersonalRecord {
	return PersonalRecord{
		ID:           uuid.NewString(),
		UserID:       userID,
		ExerciseName: exerciseName,
		Weight:       weight,
		Reps:         reps,
		WeightUnit:   unit,
		AchievedAt:   time.Now().UTC(),
		WorkoutLogID: workoutLogID,
	}
}

// FormattedRecord renders the record for display, e.g. "135 lbs × 10".
func (r PersonalRecord) FormattedRecord() string {
	return fmt.Sprintf("%d %s × %d", int(r.Weight), r.WeightUnit.Abbreviation(), r.Reps)
}

// Estimated1RM is the estimated one-rep max via the Epley formula.
// Undefined for reps < 1; returns 0 there.
func (r PersonalRecord) Estimated1RM() float64 {
	return EpleyOneRepMax(r.Weight, r.Reps)
}

// EpleyOneRepMax estimates a one-rep max: weight for a single, otherwise
// weight * (1 + reps/30). Returns 0 for reps < 1.
func EpleyOneRepMax(weight float64, reps int) float64 {
	if reps < 1 {
		return 0
	}
	if reps == 1 {
		return weight
	}
	return weight * (1 + float64(reps)/30)
}

// IsNewRecord decides whether a candidate (weight, reps) supersedes the
// existing best: strictly heavier, or equally heavy with strictly more
// reps. A nil existing best always loses.
func IsNewRecord(existing *PersonalRecord, weight float64, reps int) bool {
	if existing == nil {
		return true
	}
	if weight > existing.Weight {
		return true
	}
	return weight == existing.Weight && reps > existing.Reps
}

// BestRecord selects the winner among all history rows for one exercise
// under the (weight desc, reps desc) ordering. Returns nil for an empty
// history. Callers must pass the full row set for the (user, exercise)
// pair since storage does not keep a single canonical row.
func BestRecord(records []PersonalRecord) *PersonalRecord {
	var best *PersonalRecord
	for i := range records {
		r := &records[i]
		if best == nil ||
			r.Weight > best.Weight ||
			(r.Weight == best.Weight && r.Reps > best.Reps) {
			best = r
		}
	}
	return best
}

// ProgressDataPoint is a derived, never-persisted point on an exercise's
// progress chart: the best set of one workout log.
type ProgressDataPoint struct {
	Date   time.Time `json:"date"`
	Weight float64   `json:"weight"`
	Reps   int       `json:"reps"`
	Volume float64   `json:"volume"`
}

// Estimated1RM for the point, same Epley estimate as records.
func (p ProgressDataPoint) Estimated1RM() float64 {
	return EpleyOneRepMax(p.Weight, p.Reps)
}

// ExerciseProgress is a derived time series for one exercise.
type ExerciseProgress struct {
	ExerciseName string              `json:"exerciseName"`
	DataPoints   []ProgressDataPoint `json:"dataPoints"`
}

// MaxWeight is the heaviest best-set weight over the series.
func (p ExerciseProgress) MaxWeight() float64 {
	max := 0.0
	for _, dp := range p.DataPoints {
		if dp.Weight > max {
			max = dp.Weight
		}
	}
	return max
}

// LatestWeight is the most recent best-set weight, 0 for an empty series.
func (p ExerciseProgress) LatestWeight() float64 {
	if len(p.DataPoints) == 0 {
		return 0
	}
	return p.DataPoints[len(p.DataPoints)-1].Weight
}

// ProgressPercentage is the relative weight change from the first to the
// last point, in percent. Zero when fewer than two points exist or the
// first point's weight is 0.
func (p ExerciseProgress) ProgressPercentage() float64 {
	if len(p.DataPoints) < 2 {
		return 0
	}
	first := p.DataPoints[0].Weight
	last := p.DataPoints[len(p.DataPoints)-1].Weight
	if first <= 0 {
		return 0
	}
	return (last - first) / first * 100
}
