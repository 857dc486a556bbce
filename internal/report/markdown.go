// Package report renders the aggregated activity snapshot into the two
// output artifacts: a Markdown report and a spreadsheet export.
package report

import (
	"fmt"
	"sort"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/dmitrijs2005/patientwatch/internal/analyze"
	"github.com/dmitrijs2005/patientwatch/internal/roster"
)

const (
	conversationMarker = "C"
	mealMarker         = "M"

	conversationLabel = "conversation"
	mealLabel         = "meal log"

	placeholder = "-"
)

// DateRange returns every day in the closed interval [start, end],
// ascending. An inverted range yields an empty slice.
func DateRange(start, end civil.Date) []civil.Date {
	if end.Before(start) {
		return nil
	}

	days := make([]civil.Date, 0, end.DaysSince(start)+1)
	for d := start; !d.After(end); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// RenderMarkdown produces the full Markdown report. It is a pure function
// of its inputs: rendering twice with the same snapshot and the same today
// yields byte-identical output.
func RenderMarkdown(snap *analyze.Snapshot, emails, exclude []string,
	cohorts analyze.Cohorts, policy analyze.FollowupPolicy, start, today civil.Date) string {

	days := DateRange(start, today)

	var b strings.Builder
	b.WriteString("# Patient Activity Report\n\n")
	fmt.Fprintf(&b, "Analysed: %s\n\n", today)

	writeActivityGrid(&b, snap, emails, days)
	writeWeightHistory(&b, snap, emails)
	writeRecentActivity(&b, snap, emails, today)
	writeLatestRecords(&b, snap, emails)
	writeNotificationCandidates(&b, snap, emails, exclude, today)
	writeExcludedUsers(&b, snap, exclude)
	writeCohorts(&b, snap, cohorts, policy)

	return b.String()
}

func writeActivityGrid(b *strings.Builder, snap *analyze.Snapshot, emails []string, days []civil.Date) {
	b.WriteString("## Activity grid\n\n")

	b.WriteString("| Name | Email |")
	for _, d := range days {
		fmt.Fprintf(b, " %s |", d)
	}
	b.WriteString("\n|---|---|")
	b.WriteString(strings.Repeat("---|", len(days)))
	b.WriteString("\n")

	for _, email := range emails {
		fmt.Fprintf(b, "| %s | %s |", displayName(snap, email), roster.LocalPart(email))
		for _, d := range days {
			fmt.Fprintf(b, " %s |", gridCell(snap, email, d))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(b, "\n**Legend**: %s = %s, %s = %s, (X.Xkg) = weight\n\n",
		conversationMarker, conversationLabel, mealMarker, mealLabel)
}

// gridCell concatenates one marker per activity kind present on the day,
// conversation first, followed by the weight annotation when a sample
// exists.
func gridCell(snap *analyze.Snapshot, email string, d civil.Date) string {
	var cell strings.Builder
	if _, ok := snap.ConversationDates[email][d]; ok {
		cell.WriteString(conversationMarker)
	}
	if _, ok := snap.MealDates[email][d]; ok {
		cell.WriteString(mealMarker)
	}
	if w, ok := snap.Weights[email][d]; ok {
		fmt.Fprintf(&cell, "(%.1fkg)", w)
	}
	return cell.String()
}

func writeWeightHistory(b *strings.Builder, snap *analyze.Snapshot, emails []string) {
	b.WriteString("## Weight history\n\n")

	found := false
	for _, email := range emails {
		weights := snap.Weights[email]
		if len(weights) == 0 {
			continue
		}
		found = true

		fmt.Fprintf(b, "### %s\n\n", displayName(snap, email))
		b.WriteString("| Date | Weight (kg) |\n|---|---:|\n")

		for _, d := range sortedDatesDesc(weights) {
			fmt.Fprintf(b, "| %s | %.1f |\n", d, weights[d])
		}
		b.WriteString("\n")
	}

	if !found {
		b.WriteString("No weight records for any user.\n\n")
	}
}

func writeRecentActivity(b *strings.Builder, snap *analyze.Snapshot, emails []string, today civil.Date) {
	b.WriteString("## Recent activity\n\n")

	sections := []struct {
		title  string
		offset int
	}{
		{"Today", 0},
		{"Yesterday", -1},
		{"2 days ago", -2},
	}

	for _, s := range sections {
		day := today.AddDays(s.offset)
		fmt.Fprintf(b, "### %s (%s)\n\n", s.title, day)
		b.WriteString("| User | Activity |\n|---|---|\n")

		found := false
		for _, email := range emails {
			var kinds []string
			if _, ok := snap.ConversationDates[email][day]; ok {
				kinds = append(kinds, conversationLabel)
			}
			if _, ok := snap.MealDates[email][day]; ok {
				kinds = append(kinds, mealLabel)
			}
			if len(kinds) > 0 {
				found = true
				fmt.Fprintf(b, "| %s | %s |\n", displayName(snap, email), strings.Join(kinds, ", "))
			}
		}

		if !found {
			fmt.Fprintf(b, "| %s | no activity |\n", placeholder)
		}
		b.WriteString("\n")
	}
}

func writeLatestRecords(b *strings.Builder, snap *analyze.Snapshot, emails []string) {
	b.WriteString("## Latest records\n\n")
	b.WriteString("| User | Last conversation | Last meal log | Last weight |\n|---|---|---|---|\n")

	for _, email := range emails {
		conversation := placeholder
		if d, ok := latestDate(snap.ConversationDates[email]); ok {
			conversation = d.String()
		}

		meal := placeholder
		if d, ok := latestMealDate(snap, email); ok {
			meal = d.String()
		}

		weight := placeholder
		if d, ok := latestWeightDate(snap.Weights[email]); ok {
			weight = fmt.Sprintf("%s (%.1fkg)", d, snap.Weights[email][d])
		}

		fmt.Fprintf(b, "| %s | %s | %s | %s |\n", displayName(snap, email), conversation, meal, weight)
	}
	b.WriteString("\n")
}

func writeNotificationCandidates(b *strings.Builder, snap *analyze.Snapshot, emails, exclude []string, today civil.Date) {
	yesterday := today.AddDays(-1)

	b.WriteString("## Notification candidates\n\n")
	fmt.Fprintf(b, "Users not on the exclusion list without a meal record on %s.\n\n", yesterday)
	b.WriteString("| Name | Email | Registered | Last meal log |\n|---|---|---|---|\n")

	excluded := make(map[string]struct{}, len(exclude))
	for _, email := range exclude {
		excluded[email] = struct{}{}
	}

	found := false
	for _, email := range emails {
		if _, ok := excluded[email]; ok {
			continue
		}
		if _, ok := snap.MealDates[email][yesterday]; ok {
			continue
		}
		found = true

		registered := placeholder
		if d := snap.RegistrationDates[email]; d != nil {
			registered = d.String()
		}

		meal := placeholder
		if d, ok := latestMealDate(snap, email); ok {
			meal = d.String()
		}

		fmt.Fprintf(b, "| %s | %s | %s | %s |\n", displayName(snap, email), email, registered, meal)
	}

	if !found {
		fmt.Fprintf(b, "| %s | %s | %s | %s |\n", placeholder, placeholder, placeholder, placeholder)
	}
	b.WriteString("\n")
}

func writeExcludedUsers(b *strings.Builder, snap *analyze.Snapshot, exclude []string) {
	b.WriteString("## Excluded users\n\n")
	b.WriteString("| Name | Email | Registered |\n|---|---|---|\n")

	// Configured order, not sorted.
	for _, email := range exclude {
		registered := placeholder
		if d := snap.RegistrationDates[email]; d != nil {
			registered = d.String()
		}
		fmt.Fprintf(b, "| %s | %s | %s |\n", displayName(snap, email), email, registered)
	}
	b.WriteString("\n")
}

func writeCohorts(b *strings.Builder, snap *analyze.Snapshot, cohorts analyze.Cohorts, policy analyze.FollowupPolicy) {
	b.WriteString("## Follow-up cohorts\n\n")

	writeCohortList(b, snap,
		fmt.Sprintf("Past the %d-week window (%d)", policy.FollowupWeeks, len(cohorts.PastFollowupWindow)),
		cohorts.PastFollowupWindow)
	writeCohortList(b, snap,
		fmt.Sprintf("No weight in the last %d days (%d)", policy.WeightWindowDays, len(cohorts.NoRecentWeight)),
		cohorts.NoRecentWeight)
	writeCohortList(b, snap,
		fmt.Sprintf("No weight recorded (%d)", len(cohorts.NeverWeight)),
		cohorts.NeverWeight)
}

func writeCohortList(b *strings.Builder, snap *analyze.Snapshot, title string, emails []string) {
	fmt.Fprintf(b, "### %s\n\n", title)
	if len(emails) == 0 {
		b.WriteString("None.\n\n")
		return
	}
	for i, email := range emails {
		fmt.Fprintf(b, "%d. %s (%s)\n", i+1, displayName(snap, email), email)
	}
	b.WriteString("\n")
}

// --- small shared helpers ---

func displayName(snap *analyze.Snapshot, email string) string {
	if name, ok := snap.Names[email]; ok && name != "" {
		return name
	}
	return roster.LocalPart(email)
}

func latestDate(set roster.DateSet) (civil.Date, bool) {
	var latest civil.Date
	found := false
	for d := range set {
		if !found || d.After(latest) {
			latest = d
			found = true
		}
	}
	return latest, found
}

func latestMealDate(snap *analyze.Snapshot, email string) (civil.Date, bool) {
	return latestDate(snap.MealDates[email])
}

func latestWeightDate(weights roster.WeightSeries) (civil.Date, bool) {
	var latest civil.Date
	found := false
	for d := range weights {
		if !found || d.After(latest) {
			latest = d
			found = true
		}
	}
	return latest, found
}

func sortedDatesDesc(weights roster.WeightSeries) []civil.Date {
	dates := make([]civil.Date, 0, len(weights))
	for d := range weights {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })
	return dates
}
