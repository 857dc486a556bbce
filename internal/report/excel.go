package report

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/xuri/excelize/v2"

	"github.com/dmitrijs2005/patientwatch/internal/analyze"
	"github.com/dmitrijs2005/patientwatch/internal/roster"
)

const (
	activitySheet = "Activity"
	followupSheet = "Follow-up"
)

// BuildRows produces the tabular export: a header row (name, email, one
// column per day) followed by one row per roster user.
//
// Unlike the Markdown grid, a day cell carries a single activity marker:
// conversation wins over meal when both are present. A weight sample is
// appended in parentheses, or stands alone when the cell is otherwise
// empty.
func BuildRows(snap *analyze.Snapshot, emails []string, start, today civil.Date) [][]string {
	days := DateRange(start, today)

	header := make([]string, 0, len(days)+2)
	header = append(header, "name", "email")
	for _, d := range days {
		header = append(header, d.String())
	}

	rows := make([][]string, 0, len(emails)+1)
	rows = append(rows, header)

	for _, email := range emails {
		row := make([]string, 0, len(days)+2)
		row = append(row, displayName(snap, email), roster.LocalPart(email))
		for _, d := range days {
			row = append(row, exportCell(snap, email, d))
		}
		rows = append(rows, row)
	}

	return rows
}

func exportCell(snap *analyze.Snapshot, email string, d civil.Date) string {
	var cell string
	if _, ok := snap.ConversationDates[email][d]; ok {
		cell = conversationMarker
	} else if _, ok := snap.MealDates[email][d]; ok {
		cell = mealMarker
	}

	if w, ok := snap.Weights[email][d]; ok {
		v := fmt.Sprintf("(%.1f)", w)
		if cell == "" {
			cell = v
		} else {
			cell += " " + v
		}
	}

	return cell
}

// WriteWorkbook serializes the activity rows and the follow-up cohorts
// into a two-sheet xlsx workbook at path.
func WriteWorkbook(path string, rows [][]string, cohorts analyze.Cohorts, names map[string]string) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), activitySheet)

	for i, row := range rows {
		if err := setRow(f, activitySheet, i+1, row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(followupSheet); err != nil {
		return fmt.Errorf("new sheet %s: %w", followupSheet, err)
	}
	if err := writeFollowupSheet(f, cohorts, names); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func writeFollowupSheet(f *excelize.File, cohorts analyze.Cohorts, names map[string]string) error {
	sections := []struct {
		title  string
		emails []string
	}{
		{"past follow-up window", cohorts.PastFollowupWindow},
		{"no recent weight", cohorts.NoRecentWeight},
		{"no weight recorded", cohorts.NeverWeight},
	}

	if err := setRow(f, followupSheet, 1, []string{"cohort", "count"}); err != nil {
		return err
	}
	for i, s := range sections {
		row := []string{s.title, fmt.Sprintf("%d", len(s.emails))}
		if err := setRow(f, followupSheet, i+2, row); err != nil {
			return err
		}
	}

	// Name lists below the summary, one cohort per block.
	line := len(sections) + 3
	for _, s := range sections {
		if err := setRow(f, followupSheet, line, []string{s.title}); err != nil {
			return err
		}
		line++
		for _, email := range s.emails {
			name := names[email]
			if name == "" {
				name = roster.LocalPart(email)
			}
			if err := setRow(f, followupSheet, line, []string{name, email}); err != nil {
				return err
			}
			line++
		}
		line++
	}

	return nil
}

func setRow(f *excelize.File, sheet string, line int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, line)
	if err != nil {
		return fmt.Errorf("cell coordinates: %w", err)
	}

	row := make([]any, len(values))
	for i, v := range values {
		row[i] = v
	}

	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("set row %d on %s: %w", line, sheet, err)
	}
	return nil
}
