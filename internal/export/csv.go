// Package export turns in-memory workout collections into CSV and PDF
// documents.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"liftledger/workout-tracker/internal/domain"
)

const dateFormat = "Jan 2, 2006"

// WriteLogsCSV writes one row per completed set across all logs.
// encoding/csv takes care of RFC 4180 quoting for notes and names.
func WriteLogsCSV(w io.Writer, logs []domain.WorkoutLog) error {
	cw := csv.NewWriter(w)

	header := []string{"Date", "Program", "Day", "Exercise", "Set", "Reps", "Weight", "Volume", "Duration", "Notes"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, workoutLog := range logs {
		date := workoutLog.StartedAt.Format(dateFormat)
		duration := workoutLog.FormattedDuration()

		for _, exerciseLog := range workoutLog.Exercises {
			for _, set := range exerciseLog.CompletedSets {
				if !set.IsCompleted {
					continue
				}
				row := []string{
					date,
					workoutLog.ProgramName,
					workoutLog.DayName,
					exerciseLog.Name,
					fmt.Sprintf("%d", set.SetNumber),
					fmt.Sprintf("%d", set.ActualReps),
					fmt.Sprintf("%g", set.Weight),
					fmt.Sprintf("%g", set.Volume()),
					duration,
					exerciseLog.Notes,
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteRecordsCSV writes one row per personal record.
func WriteRecordsCSV(w io.Writer, records []domain.PersonalRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Exercise", "Weight", "Reps", "Date", "Estimated 1RM"}); err != nil {
		return err
	}

	for _, record := range records {
		row := []string{
			record.ExerciseName,
			fmt.Sprintf("%g", record.Weight),
			fmt.Sprintf("%d", record.Reps),
			record.AchievedAt.Format(dateFormat),
			fmt.Sprintf("%.1f", record.Estimated1RM()),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
