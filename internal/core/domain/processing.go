package domain

// FileIdentity identifies one source extract for idempotency purposes: the
// base file name plus a modification fingerprint taken at check time. Any
// fingerprint change makes the file eligible for a full reload.
type FileIdentity struct {
	Name        string `json:"name"`
	Fingerprint int64  `json:"fingerprint"`
}

// LoadStatus is the per-row outcome of a sales batch insert.
type LoadStatus string

const (
	// LoadInserted means the row was written.
	LoadInserted LoadStatus = "INSERTED"
	// LoadSkippedDuplicate means a row with the same order ID already exists.
	LoadSkippedDuplicate LoadStatus = "SKIPPED_DUPLICATE"
	// LoadSkippedUnresolvedRate means no exchange rate resolved for the row's
	// (date, currency) pair, so it cannot satisfy the foreign key.
	LoadSkippedUnresolvedRate LoadStatus = "SKIPPED_UNRESOLVED_RATE"
)

// LoadOutcome reports what happened to a single attempted sale row.
type LoadOutcome struct {
	OrderID int64      `json:"orderID"`
	Status  LoadStatus `json:"status"`
}

// LoadSummary aggregates the result of one per-file load transaction.
type LoadSummary struct {
	RatesInserted int           `json:"ratesInserted"`
	Outcomes      []LoadOutcome `json:"outcomes"`
}

// Counts tallies outcomes by status.
func (s LoadSummary) Counts() map[LoadStatus]int {
	counts := make(map[LoadStatus]int, 3)
	for _, o := range s.Outcomes {
		counts[o.Status]++
	}
	return counts
}

// RunState is the terminal state of a pipeline run over one file.
type RunState string

const (
	RunSkipped RunState = "SKIPPED"
	RunLoaded  RunState = "LOADED"
	RunFailed  RunState = "FAILED"
)

// RunResult describes how a pipeline run over a single extract ended.
type RunResult struct {
	RunID      string       `json:"runID"`
	File       FileIdentity `json:"file"`
	State      RunState     `json:"state"`
	RawRows    int          `json:"rawRows"`
	Normalized int          `json:"normalized"`
	Load       LoadSummary  `json:"load"`
}
