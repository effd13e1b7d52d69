// Package query computes the summary views over a loaded store
// snapshot. Nothing here mutates the store or touches disk.
package query

import (
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/UbiwanKenobi/Stepper-bot/internal/model"
	"github.com/UbiwanKenobi/Stepper-bot/internal/utils"
)

var (
	// ErrNoData means the store holds nothing at all.
	ErrNoData = errors.New("no step data recorded")
	// ErrNoRecords means the requested user has no records (or is unknown).
	ErrNoRecords = errors.New("user has no records")
)

// Rank is one leaderboard row.
type Rank struct {
	Username string
	Total    int
}

// Leaderboard sums every user's steps and ranks them by total,
// descending. Ties keep a stable order.
func Leaderboard(store model.Store) ([]Rank, error) {
	if len(store) == 0 {
		return nil, ErrNoData
	}

	ranks := make([]Rank, 0, len(store))
	for _, userID := range sortedUserIDs(store) {
		ledger := store[userID]
		total := 0
		for _, r := range ledger.Records {
			total += r.Steps
		}
		ranks = append(ranks, Rank{Username: ledger.Username, Total: total})
	}

	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Total > ranks[j].Total
	})
	return ranks, nil
}

// History returns one user's records sorted ascending by date.
// The store keeps insertion order, so the sort happens here.
func History(store model.Store, userID string) ([]model.StepRecord, error) {
	ledger, ok := store[userID]
	if !ok || len(ledger.Records) == 0 {
		return nil, ErrNoRecords
	}

	records := append([]model.StepRecord(nil), ledger.Records...)
	sort.Slice(records, func(i, j int) bool {
		// ISO dates compare correctly as strings.
		return records[i].Date < records[j].Date
	})
	return records, nil
}

// Missed enumerates every day between the user's first and last
// record with no record of its own, ascending. An empty result with
// a nil error means the span has no gaps, which is distinct from
// having no records at all.
func Missed(store model.Store, userID string) ([]time.Time, error) {
	records, err := History(store, userID)
	if err != nil {
		return nil, err
	}

	recorded := make(map[string]bool, len(records))
	for _, r := range records {
		recorded[r.Date] = true
	}

	start, err := utils.ParseISODate(records[0].Date)
	if err != nil {
		return nil, err
	}
	end, err := utils.ParseISODate(records[len(records)-1].Date)
	if err != nil {
		return nil, err
	}

	var missed []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !recorded[utils.FormatISODate(d)] {
			missed = append(missed, d)
		}
	}
	return missed, nil
}

// Export flattens the whole store into CSV-shaped rows with a fixed
// header. Users come out in sorted-ID order; within a user, records
// keep their stored order.
func Export(store model.Store) [][]string {
	rows := [][]string{{"username", "date", "steps"}}
	for _, userID := range sortedUserIDs(store) {
		ledger := store[userID]
		for _, r := range ledger.Records {
			rows = append(rows, []string{ledger.Username, r.Date, strconv.Itoa(r.Steps)})
		}
	}
	return rows
}

func sortedUserIDs(store model.Store) []string {
	ids := make([]string, 0, len(store))
	for id := range store {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
