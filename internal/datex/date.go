// Package datex decodes calendar dates embedded in document identifiers.
//
// The source store names activity documents with a trailing YYYYMMDD
// suffix (e.g. "session_log_20250115"), but identifier formats are
// heterogeneous, so a failed decode is an expected outcome rather than
// an error.
package datex

import (
	"time"

	"cloud.google.com/go/civil"
)

const suffixLen = 8

// Extract returns the date encoded in the last eight characters of id,
// interpreted as YYYYMMDD. The second return value is false when the
// identifier is too short or the tail is not a valid calendar date.
func Extract(id string) (civil.Date, bool) {
	if len(id) < suffixLen {
		return civil.Date{}, false
	}

	// time.Parse validates the calendar, rejecting days like 20250431.
	t, err := time.Parse("20060102", id[len(id)-suffixLen:])
	if err != nil {
		return civil.Date{}, false
	}

	return civil.DateOf(t), true
}
