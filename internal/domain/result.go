package domain

// Location is the line/column a spec result points at, when the engine
// reported a call site.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// AssertionResult is the normalized per-spec output record in the host
// framework's schema.
type AssertionResult struct {
	AncestorTitles  []string          `json:"ancestorTitles"`
	Title           string            `json:"title"`
	FullName        string            `json:"fullName"`
	Status          Status            `json:"status"`
	Duration        *int64            `json:"duration"` // milliseconds, null when the spec did not run
	Location        *Location         `json:"location"`
	FailureMessages []string          `json:"failureMessages"`
	FailureDetails  []FailedAssertion `json:"failureDetails"`
	// NumPassingAsserts is always 0: the legacy engine does not track
	// per-assertion pass counts.
	NumPassingAsserts int `json:"numPassingAsserts"`
}

// SnapshotSummary is the host schema's per-file snapshot block. The
// legacy engine has no snapshot support, so the block is always the
// zeroed "no snapshot activity" record.
type SnapshotSummary struct {
	Added         int      `json:"added"`
	FileDeleted   bool     `json:"fileDeleted"`
	Matched       int      `json:"matched"`
	Unchecked     int      `json:"unchecked"`
	UncheckedKeys []string `json:"uncheckedKeys"`
	Unmatched     int      `json:"unmatched"`
	Updated       int      `json:"updated"`
}

// RunSummary is the full aggregated result for one test file's run.
type RunSummary struct {
	NumFailingTests int               `json:"numFailingTests"`
	NumPassingTests int               `json:"numPassingTests"`
	NumPendingTests int               `json:"numPendingTests"`
	NumTodoTests    int               `json:"numTodoTests"`
	TestResults     []AssertionResult `json:"testResults"`
	FailureMessage  string            `json:"failureMessage"`
	Snapshot        SnapshotSummary   `json:"snapshot"`
	TestFilePath    string            `json:"testFilePath"`
}

// ArchiveMeta describes one archived replay batch.
type ArchiveMeta struct {
	TotalStreams    int     `json:"total_streams"`
	TotalSpecs      int     `json:"total_specs"`
	FailingSpecs    int     `json:"failing_specs"`
	PassingSpecs    int     `json:"passing_specs"`
	PendingSpecs    int     `json:"pending_specs"`
	TodoSpecs       int     `json:"todo_specs"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Workers         int     `json:"workers"`
	Timestamp       string  `json:"timestamp"`
}

// RunArchive is the persisted output of a replay batch: one RunSummary
// per event stream, plus viewer bookkeeping. Resolved is keyed by
// "<testFilePath>::<fullName>".
type RunArchive struct {
	Meta     ArchiveMeta     `json:"meta"`
	Runs     []*RunSummary   `json:"runs"`
	Resolved map[string]bool `json:"resolved,omitempty"`
}
