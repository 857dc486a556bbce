package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dmitrijs2005/patientwatch/internal/analyze"
	"github.com/dmitrijs2005/patientwatch/internal/roster"
)

func TestBuildRows_HeaderAndIdentityColumns(t *testing.T) {
	snap := emptySnapshot("alice@example.com")
	snap.Names["alice@example.com"] = "Alice Park"

	rows := BuildRows(snap, []string{"alice@example.com"},
		date(2025, time.January, 1), date(2025, time.January, 3))

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"name", "email", "2025-01-01", "2025-01-02", "2025-01-03"}, rows[0])
	assert.Equal(t, []string{"Alice Park", "alice", "", "", ""}, rows[1])
}

func TestBuildRows_ConversationWinsTieBreak(t *testing.T) {
	day := date(2025, time.January, 1)
	snap := emptySnapshot("alice@example.com")
	snap.ConversationDates["alice@example.com"][day] = struct{}{}
	snap.MealDates["alice@example.com"][day] = struct{}{}

	rows := BuildRows(snap, []string{"alice@example.com"}, day, day)

	require.Len(t, rows, 2)
	assert.Equal(t, "C", rows[1][2], "conversation label only, never both")
}

func TestBuildRows_MealOnlyDay(t *testing.T) {
	day := date(2025, time.January, 1)
	snap := emptySnapshot("bob@example.com")
	snap.MealDates["bob@example.com"][day] = struct{}{}

	rows := BuildRows(snap, []string{"bob@example.com"}, day, day)
	assert.Equal(t, "M", rows[1][2])
}

func TestBuildRows_WeightAnnotation(t *testing.T) {
	day1 := date(2025, time.January, 1)
	day2 := date(2025, time.January, 2)
	snap := emptySnapshot("alice@example.com")
	snap.ConversationDates["alice@example.com"][day1] = struct{}{}
	snap.Weights["alice@example.com"] = roster.WeightSeries{
		day1: 63.5,
		day2: 63.0,
	}

	rows := BuildRows(snap, []string{"alice@example.com"}, day1, day2)

	require.Len(t, rows, 2)
	assert.Equal(t, "C (63.5)", rows[1][2], "weight appended to activity marker")
	assert.Equal(t, "(63.0)", rows[1][3], "weight stands alone in an empty cell")
}

func TestWriteWorkbook(t *testing.T) {
	day := date(2025, time.January, 1)
	snap := emptySnapshot("alice@example.com")
	snap.Names["alice@example.com"] = "Alice Park"
	snap.ConversationDates["alice@example.com"][day] = struct{}{}

	rows := BuildRows(snap, []string{"alice@example.com"}, day, day)
	cohorts := analyze.Cohorts{NeverWeight: []string{"alice@example.com"}}

	path := filepath.Join(t.TempDir(), "patient_activity.xlsx")
	require.NoError(t, WriteWorkbook(path, rows, cohorts, snap.Names))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{activitySheet, followupSheet}, f.GetSheetList())

	got, err := f.GetCellValue(activitySheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Alice Park", got)

	got, err = f.GetCellValue(activitySheet, "C1")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", got)

	got, err = f.GetCellValue(activitySheet, "C2")
	require.NoError(t, err)
	assert.Equal(t, "C", got)

	// Follow-up summary: third cohort row carries the never-weight count.
	got, err = f.GetCellValue(followupSheet, "B4")
	require.NoError(t, err)
	assert.Equal(t, "1", got)
}
