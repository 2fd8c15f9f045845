package domain

// Status classifies the outcome of a single spec.
type Status string

const (
	StatusPassed   Status = "passed"
	StatusFailed   Status = "failed"
	StatusPending  Status = "pending"
	StatusDisabled Status = "disabled"
	StatusTodo     Status = "todo"
	StatusSkipped  Status = "skipped"
)

// SuiteEvent marks a suite boundary. Suites carry no identity beyond
// their display name.
type SuiteEvent struct {
	Description string `json:"description"`
}

// SourceLocation is the optional call site a spec was declared at.
type SourceLocation struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// SpecEvent describes a single spec at its start or done boundary.
// ID is unique per spec within a run and stable across the start/done
// pair. Events are owned by the emitting engine and read-only here.
type SpecEvent struct {
	ID                 string            `json:"id"`
	Description        string            `json:"description"`
	FullName           string            `json:"fullName"`
	Status             Status            `json:"status"`
	FailedExpectations []FailedAssertion `json:"failedExpectations,omitempty"`
	SourceLocation     *SourceLocation   `json:"sourceLocation,omitempty"`
}
