package analyze

import "cloud.google.com/go/civil"

// FollowupPolicy holds the clinic's follow-up thresholds. The onboarding
// grace window is plain configuration; it deliberately does not encode
// any deployment-weekday assumption.
type FollowupPolicy struct {
	// FollowupWeeks is the engagement horizon after registration.
	FollowupWeeks int

	// OnboardingDays is subtracted from the time since registration
	// before comparing against the horizon.
	OnboardingDays int

	// WeightWindowDays is the recency window for weight follow-up.
	WeightWindowDays int
}

// Cohorts are roster subsets flagged for clinical follow-up, each in
// roster order.
type Cohorts struct {
	// PastFollowupWindow lists users whose effective time since
	// registration exceeds the follow-up horizon. Users without a known
	// registration date are skipped.
	PastFollowupWindow []string

	// NoRecentWeight lists users with weight history but no sample
	// within the recency window.
	NoRecentWeight []string

	// NeverWeight lists users with no weight sample at all.
	NeverWeight []string
}

// Cohorts derives the follow-up lists from an aggregated snapshot.
func (p FollowupPolicy) Cohorts(snap *Snapshot, emails []string, today civil.Date) Cohorts {
	var c Cohorts
	cutoff := today.AddDays(-p.WeightWindowDays)

	for _, email := range emails {
		if registered := snap.RegistrationDates[email]; registered != nil {
			effectiveDays := today.DaysSince(*registered) - p.OnboardingDays
			if effectiveDays > 7*p.FollowupWeeks {
				c.PastFollowupWindow = append(c.PastFollowupWindow, email)
			}
		}

		weights := snap.Weights[email]
		if len(weights) == 0 {
			c.NeverWeight = append(c.NeverWeight, email)
			continue
		}

		recent := false
		for d := range weights {
			if !d.Before(cutoff) {
				recent = true
				break
			}
		}
		if !recent {
			c.NoRecentWeight = append(c.NoRecentWeight, email)
		}
	}

	return c
}
