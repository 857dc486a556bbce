// Package roster reads per-user activity records and registry data from
// the document store and reduces them into date-keyed collections.
package roster

import (
	"context"

	"cloud.google.com/go/civil"

	"github.com/dmitrijs2005/patientwatch/internal/datex"
	"github.com/dmitrijs2005/patientwatch/internal/store"
)

// Sub-collection names under session/{userID} in the source store.
const (
	CollectionConversation = "cheddar"
	CollectionMeal         = "meal_tracking"

	weeklyDataCollection = "chat_ignore_weekly_data"
	weightField          = "weight"
)

// DateSet is a set of calendar days on which some activity was recorded.
type DateSet map[civil.Date]struct{}

// WeightSeries maps calendar days to measured weight in kilograms.
type WeightSeries map[civil.Date]float64

// Fetcher reduces raw store documents into per-user activity collections.
type Fetcher struct {
	store store.DocumentStore
}

func NewFetcher(s store.DocumentStore) *Fetcher {
	return &Fetcher{store: s}
}

// FetchDates returns the set of days with at least one document in the
// given activity collection. Documents whose identifier does not decode
// to a date are dropped silently; duplicate dates collapse.
func (f *Fetcher) FetchDates(ctx context.Context, userID, collection string) (DateSet, error) {
	docs, err := f.store.SessionDocs(ctx, userID, collection)
	if err != nil {
		return nil, err
	}

	dates := make(DateSet)
	for _, doc := range docs {
		if d, ok := datex.Extract(doc.ID); ok {
			dates[d] = struct{}{}
		}
	}

	return dates, nil
}

// FetchWeights returns the per-day weight readings for a user. A reading
// is kept only when the document identifier decodes to a date and the
// weight field is numeric and strictly positive. When two documents decode
// to the same date the one read last wins; the store does not guarantee an
// iteration order.
func (f *Fetcher) FetchWeights(ctx context.Context, userID string) (WeightSeries, error) {
	docs, err := f.store.SessionDocs(ctx, userID, weeklyDataCollection)
	if err != nil {
		return nil, err
	}

	weights := make(WeightSeries)
	for _, doc := range docs {
		d, ok := datex.Extract(doc.ID)
		if !ok {
			continue
		}
		if w, ok := numericValue(doc.Data[weightField]); ok && w > 0 {
			weights[d] = w
		}
	}

	return weights, nil
}

// numericValue unwraps the numeric types the store client may decode a
// number field into.
func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}
