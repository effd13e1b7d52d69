package model

import (
	"fmt"
	"time"

	"github.com/UbiwanKenobi/Stepper-bot/internal/utils"
)

// StepRecord is one self-reported day of steps. Date is stored in
// ISO form (YYYY-MM-DD) so the on-disk document stays sortable and
// human-readable.
type StepRecord struct {
	Date  string `json:"date"`
	Steps int    `json:"steps"`
}

// UserLedger holds one user's records in the order they were first
// reported. Date is the natural key: at most one record per date.
// Consumers that need chronological order must sort themselves.
type UserLedger struct {
	Username string       `json:"username"`
	Records  []StepRecord `json:"records"`
}

// Store is the full durable document, keyed by the stable Telegram
// user ID rendered as a string.
type Store map[string]*UserLedger

// Upsert records steps for a date. An unknown user gets a fresh
// ledger; a known user has their username refreshed. If the date is
// already present its steps are replaced in place, otherwise the
// record is appended.
func (s Store) Upsert(userID, username string, date time.Time, steps int) {
	key := utils.FormatISODate(date)

	ledger, ok := s[userID]
	if !ok {
		s[userID] = &UserLedger{
			Username: username,
			Records:  []StepRecord{{Date: key, Steps: steps}},
		}
		return
	}

	ledger.Username = username
	for i := range ledger.Records {
		if ledger.Records[i].Date == key {
			ledger.Records[i].Steps = steps
			return
		}
	}
	ledger.Records = append(ledger.Records, StepRecord{Date: key, Steps: steps})
}

// Validate checks a freshly decoded document before anyone computes
// over it: parsable dates, non-negative steps, one record per date.
func (s Store) Validate() error {
	for userID, ledger := range s {
		if ledger == nil {
			return fmt.Errorf("user %s: ledger is null", userID)
		}
		seen := make(map[string]bool, len(ledger.Records))
		for _, r := range ledger.Records {
			if _, err := utils.ParseISODate(r.Date); err != nil {
				return fmt.Errorf("user %s: bad record date %q: %w", userID, r.Date, err)
			}
			if r.Steps < 0 {
				return fmt.Errorf("user %s: negative steps %d on %s", userID, r.Steps, r.Date)
			}
			if seen[r.Date] {
				return fmt.Errorf("user %s: duplicate record for %s", userID, r.Date)
			}
			seen[r.Date] = true
		}
	}
	return nil
}
