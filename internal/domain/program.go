package domain

import (
	"time"

	"github.com/google/uuid"
)

// Program is a workout program template, the highest level container:
// a named, ordered list of workout days owned by exactly one user.
// Example: "Winter Workout", "Strength Building", "Cut Phase".
type Program struct {
	ID          string       `bson:"_id" json:"id"`
	UserID      string       `bson:"userId" json:"userId"`
	Name        string       `bson:"name" json:"name"`
	Description string       `bson:"description" json:"description"`
	Days        []WorkoutDay `bson:"days" json:"days"`
	CreatedAt   time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time    `bson:"updatedAt" json:"updatedAt"`
}

// NewProgram creates an empty program for the given user.
func NewProgram(userID, name string) Program {
	now := time.Now().UTC()
	return Program{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Copy deep-clones the program for the given user (possibly a different
// one), regenerating the IDs of the program and of every nested day and
// exercise so the copy has no shared identity with the source.
func (p Program) Copy(forUserID string) Program {
	now := time.Now().UTC()
	copied := p
	copied.ID = uuid.NewString()
	copied.UserID = forUserID
	copied.CreatedAt = now
	copied.UpdatedAt = now

	copied.Days = make([]WorkoutDay, len(p.Days))
	for i, day := range p.Days {
		newDay := day
		newDay.ID = uuid.NewString()
		newDay.Exercises = make([]Exercise, len(day.Exercises))
		for j, ex := range day.Exercises {
			newEx := ex
			newEx.ID = uuid.NewString()
			newDay.Exercises[j] = newEx
		}
		copied.Days[i] = newDay
	}
	return copied
}

// DayByID finds a day template within the program.
func (p Program) DayByID(dayID string) (WorkoutDay, bool) {
	for _, d := range p.Days {
		if d.ID == dayID {
			return d, true
		}
	}
	return WorkoutDay{}, false
}
