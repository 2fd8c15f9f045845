package aggregate

import (
	"context"
	"sync"

	"sra/internal/domain"
	"sra/internal/failure"
)

// MessageFormatter builds the combined human-readable failure message
// for a completed run. Stack cleanup, code frames and colorization are
// entirely its concern.
type MessageFormatter interface {
	FormatRun(results []domain.AssertionResult, testFilePath string) string
}

// TemplateProvider supplies the baseline summary shape (zeroed
// counters, empty snapshot block) the aggregator overlays with its
// computed fields.
type TemplateProvider interface {
	Empty(testFilePath string) *domain.RunSummary
}

type runState int

const (
	stateIdle runState = iota
	stateRunning
	stateDone
)

// Aggregator folds one test file's lifecycle event stream into a
// RunSummary. The engine must invoke the event methods synchronously
// and in order from a single goroutine; only Summary may be called
// from elsewhere.
type Aggregator struct {
	testFilePath string
	formatter    MessageFormatter
	template     TemplateProvider
	extractor    *failure.Extractor

	suites  *SuiteStack
	timer   *SpecTimer
	results []domain.AssertionResult
	state   runState

	done    chan struct{}
	resolve sync.Once
	summary *domain.RunSummary
}

// New creates an Aggregator for one test file's run.
func New(testFilePath string, formatter MessageFormatter, template TemplateProvider) *Aggregator {
	return &Aggregator{
		testFilePath: testFilePath,
		formatter:    formatter,
		template:     template,
		extractor:    failure.NewExtractor(),
		suites:       NewSuiteStack(),
		timer:        NewSpecTimer(),
		done:         make(chan struct{}),
	}
}

// RunStarted marks the run as running.
func (a *Aggregator) RunStarted() {
	if a.state == stateIdle {
		a.state = stateRunning
	}
}

// SuiteStarted opens a suite scope.
func (a *Aggregator) SuiteStarted(suite domain.SuiteEvent) {
	a.suites.Enter(suite.Description)
}

// SuiteDone closes the innermost suite scope.
func (a *Aggregator) SuiteDone(domain.SuiteEvent) {
	a.suites.Exit()
}

// SpecStarted records the spec's start time.
func (a *Aggregator) SpecStarted(spec domain.SpecEvent) {
	a.timer.Start(spec.ID)
}

// SpecDone normalizes the completed spec into an AssertionResult and
// appends it. The accumulated list is append-only and keeps completion
// order.
func (a *Aggregator) SpecDone(spec domain.SpecEvent) {
	status := spec.Status
	if status == domain.StatusDisabled {
		status = domain.StatusPending
	}

	var location *domain.Location
	if spec.SourceLocation != nil {
		location = &domain.Location{
			Line:   spec.SourceLocation.Line,
			Column: spec.SourceLocation.Column,
		}
	}

	messages := make([]string, 0, len(spec.FailedExpectations))
	details := make([]domain.FailedAssertion, 0, len(spec.FailedExpectations))
	for _, fe := range spec.FailedExpectations {
		messages = append(messages, a.extractor.Extract(fe))
		details = append(details, fe)
	}

	a.results = append(a.results, domain.AssertionResult{
		AncestorTitles:  a.suites.Snapshot(),
		Title:           spec.Description,
		FullName:        spec.FullName,
		Status:          status,
		Duration:        a.timer.Stop(spec.ID, status),
		Location:        location,
		FailureMessages: messages,
		FailureDetails:  details,
	})
}

// RunDone tallies the accumulated results, assembles the RunSummary and
// resolves the future. The future is resolved on every path: a
// formatter fault costs the combined failure message, never liveness.
func (a *Aggregator) RunDone() {
	if a.state == stateDone {
		return
	}
	a.state = stateDone

	summary := a.template.Empty(a.testFilePath)
	if len(a.results) > 0 {
		summary.TestResults = a.results
	}
	for _, r := range a.results {
		switch r.Status {
		case domain.StatusFailed:
			summary.NumFailingTests++
		case domain.StatusPending:
			summary.NumPendingTests++
		case domain.StatusTodo:
			summary.NumTodoTests++
		default:
			summary.NumPassingTests++
		}
	}
	summary.FailureMessage = a.formatDefensively()

	a.resolve.Do(func() {
		a.summary = summary
		close(a.done)
	})
}

// Summary blocks until the run completes and returns the one
// RunSummary. Every call, before or after RunDone, yields the identical
// value; callers that must not wait forever bound ctx themselves.
func (a *Aggregator) Summary(ctx context.Context) (*domain.RunSummary, error) {
	select {
	case <-a.done:
		return a.summary, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (a *Aggregator) formatDefensively() (msg string) {
	defer func() {
		if r := recover(); r != nil {
			msg = ""
		}
	}()
	return a.formatter.FormatRun(a.results, a.testFilePath)
}
