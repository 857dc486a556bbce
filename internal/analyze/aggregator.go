// Package analyze orchestrates per-user fetches across the configured
// roster and derives summary cohorts from the aggregated snapshot.
package analyze

import (
	"context"

	"cloud.google.com/go/civil"

	"github.com/dmitrijs2005/patientwatch/internal/logging"
	"github.com/dmitrijs2005/patientwatch/internal/roster"
)

// ActivityFetcher reads per-user activity collections from the store.
type ActivityFetcher interface {
	FetchDates(ctx context.Context, userID, collection string) (roster.DateSet, error)
	FetchWeights(ctx context.Context, userID string) (roster.WeightSeries, error)
}

// UserDirectory resolves identifiers against the patient registry.
type UserDirectory interface {
	ResolveName(ctx context.Context, userID string) (string, error)
	ResolveRegistrationDate(ctx context.Context, userID string) (*civil.Date, error)
}

// Snapshot is the aggregated view over the whole roster, keyed by user
// identifier. It is built once per run and not mutated afterwards.
type Snapshot struct {
	ConversationDates map[string]roster.DateSet
	MealDates         map[string]roster.DateSet
	Weights           map[string]roster.WeightSeries
	Names             map[string]string
	RegistrationDates map[string]*civil.Date
}

// Aggregator walks the roster sequentially and collects activity data.
// A failed lookup or fetch for one user is logged and degrades to an
// empty value for that field; it never aborts the run.
type Aggregator struct {
	fetcher   ActivityFetcher
	directory UserDirectory
	log       logging.Logger
}

func NewAggregator(f ActivityFetcher, d UserDirectory, log logging.Logger) *Aggregator {
	return &Aggregator{fetcher: f, directory: d, log: log}
}

// Run fetches all configured users in roster order.
func (a *Aggregator) Run(ctx context.Context, emails []string) *Snapshot {
	snap := &Snapshot{
		ConversationDates: make(map[string]roster.DateSet, len(emails)),
		MealDates:         make(map[string]roster.DateSet, len(emails)),
		Weights:           make(map[string]roster.WeightSeries, len(emails)),
		Names:             make(map[string]string, len(emails)),
		RegistrationDates: make(map[string]*civil.Date, len(emails)),
	}

	for _, email := range emails {
		a.log.Debug(ctx, "processing user", "user", email)

		name, err := a.directory.ResolveName(ctx, email)
		if err != nil {
			a.log.Error(ctx, "name lookup failed", "user", email, "error", err)
			name = roster.LocalPart(email)
		}
		snap.Names[email] = name

		registered, err := a.directory.ResolveRegistrationDate(ctx, email)
		if err != nil {
			a.log.Error(ctx, "registration date lookup failed", "user", email, "error", err)
			registered = nil
		}
		snap.RegistrationDates[email] = registered

		snap.ConversationDates[email] = a.fetchDates(ctx, email, roster.CollectionConversation)
		snap.MealDates[email] = a.fetchDates(ctx, email, roster.CollectionMeal)
		snap.Weights[email] = a.fetchWeights(ctx, email)
	}

	return snap
}

func (a *Aggregator) fetchDates(ctx context.Context, email, collection string) roster.DateSet {
	dates, err := a.fetcher.FetchDates(ctx, email, collection)
	if err != nil {
		a.log.Error(ctx, "activity fetch failed",
			"user", email, "collection", collection, "error", err)
		return roster.DateSet{}
	}
	return dates
}

func (a *Aggregator) fetchWeights(ctx context.Context, email string) roster.WeightSeries {
	weights, err := a.fetcher.FetchWeights(ctx, email)
	if err != nil {
		a.log.Error(ctx, "weight fetch failed", "user", email, "error", err)
		return roster.WeightSeries{}
	}
	return weights
}
