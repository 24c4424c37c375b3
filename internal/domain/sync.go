package domain

import "time"

// SyncStats holds statistics about a sync operation.
type SyncStats struct {
	Job      string
	Fetched  int
	New      int
	Updated  int
	Linked   int
	Pushed   int
	Skipped  int
	Errors   int
	Duration time.Duration
}

// ReconcileOutcome reports what a reconcile call did to the local store.
type ReconcileOutcome string

const (
	OutcomeInserted  ReconcileOutcome = "inserted"
	OutcomeUpdated   ReconcileOutcome = "updated"
	OutcomeUnchanged ReconcileOutcome = "unchanged"
)
