package export

import (
	"fmt"
	"io"
	"time"

	"liftledger/workout-tracker/internal/domain"

	"github.com/go-pdf/fpdf"
)

// Display caps for the summary sections.
const (
	summaryRecentLogs = 10
	summaryRecordRows = 15
)

// WriteSummaryPDF renders a paginated workout summary: overall stats, the
// most recent workouts, and the personal record list. logs are expected
// newest-first; records are rendered in the given order.
func WriteSummaryPDF(w io.Writer, logs []domain.WorkoutLog, records []domain.PersonalRecord, totalVolume float64, workoutCount int) error {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(50, 50, 50)
	pdf.SetAutoPageBreak(true, 50)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 30, "Workout Summary Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(0, 20, "Generated: "+time.Now().Format("Jan 2, 2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(10)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 14)
	stats := []string{
		fmt.Sprintf("Total Workouts: %d", workoutCount),
		fmt.Sprintf("Total Volume: %.0f lbs", totalVolume),
		fmt.Sprintf("Personal Records: %d", len(records)),
	}
	for _, stat := range stats {
		pdf.CellFormat(0, 20, stat, "", 1, "L", false, 0, "")
	}
	pdf.Ln(20)

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 24, "Recent Workouts", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	for i, workoutLog := range logs {
		if i >= summaryRecentLogs {
			break
		}
		line := fmt.Sprintf("- %s - %s: %d exercises, %.0f lbs",
			workoutLog.StartedAt.Format(dateFormat),
			workoutLog.DayName,
			len(workoutLog.Exercises),
			workoutLog.TotalVolume(),
		)
		pdf.CellFormat(0, 18, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(20)

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 24, "Personal Records", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	for i, record := range records {
		if i >= summaryRecordRows {
			break
		}
		line := fmt.Sprintf("- %s: %s (Est. 1RM: %.0f lbs)",
			record.ExerciseName,
			record.FormattedRecord(),
			record.Estimated1RM(),
		)
		pdf.CellFormat(0, 18, tr(line), "", 1, "L", false, 0, "")
	}

	return pdf.Output(w)
}
