package aggregate

import (
	"context"
	"reflect"
	"testing"
	"time"

	"sra/internal/domain"
)

type stubFormatter struct {
	calls    int
	panics   bool
	rendered string
}

func (s *stubFormatter) FormatRun(results []domain.AssertionResult, testFilePath string) string {
	s.calls++
	if s.panics {
		panic("formatter fault")
	}
	return s.rendered
}

type stubTemplate struct{}

func (stubTemplate) Empty(testFilePath string) *domain.RunSummary {
	return &domain.RunSummary{
		TestResults:  []domain.AssertionResult{},
		Snapshot:     domain.SnapshotSummary{UncheckedKeys: []string{}},
		TestFilePath: testFilePath,
	}
}

func newTestAggregator() (*Aggregator, *stubFormatter) {
	formatter := &stubFormatter{rendered: "combined failure message"}
	return New("spec/example.test.js", formatter, stubTemplate{}), formatter
}

func spec(id, description, fullName string, status domain.Status) domain.SpecEvent {
	return domain.SpecEvent{ID: id, Description: description, FullName: fullName, Status: status}
}

func TestAggregator_NestingFidelity(t *testing.T) {
	agg, _ := newTestAggregator()

	agg.RunStarted()
	agg.SuiteStarted(domain.SuiteEvent{Description: "parent"})
	agg.SuiteStarted(domain.SuiteEvent{Description: "child"})
	agg.SpecDone(spec("s1", "spec 1", "parent child spec 1", domain.StatusPassed))
	agg.SuiteDone(domain.SuiteEvent{Description: "child"})
	agg.SuiteStarted(domain.SuiteEvent{Description: "child 2"})
	agg.SpecDone(spec("s2", "spec 2", "parent child 2 spec 2", domain.StatusPassed))
	agg.RunDone()

	summary, err := agg.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if len(summary.TestResults) != 2 {
		t.Fatalf("expected 2 results, got %d", len(summary.TestResults))
	}
	if got := summary.TestResults[0].AncestorTitles; !reflect.DeepEqual(got, []string{"parent", "child"}) {
		t.Errorf("result[0] ancestors: expected [parent child], got %v", got)
	}
	if got := summary.TestResults[1].AncestorTitles; !reflect.DeepEqual(got, []string{"parent", "child 2"}) {
		t.Errorf("result[1] ancestors: expected [parent child 2], got %v", got)
	}
}

func TestAggregator_StatusCounting(t *testing.T) {
	agg, _ := newTestAggregator()

	agg.RunStarted()
	statuses := []domain.Status{
		domain.StatusPassed,
		domain.StatusFailed,
		domain.StatusPending,
		domain.StatusTodo,
		domain.StatusFailed,
	}
	for i, status := range statuses {
		ev := spec(string(rune('a'+i)), "spec", "spec", status)
		if status == domain.StatusFailed {
			ev.FailedExpectations = []domain.FailedAssertion{{Message: "boom"}}
		}
		agg.SpecDone(ev)
	}
	agg.RunDone()

	summary, _ := agg.Summary(context.Background())
	if summary.NumFailingTests != 2 {
		t.Errorf("expected 2 failing, got %d", summary.NumFailingTests)
	}
	if summary.NumPassingTests != 1 {
		t.Errorf("expected 1 passing, got %d", summary.NumPassingTests)
	}
	if summary.NumPendingTests != 1 {
		t.Errorf("expected 1 pending, got %d", summary.NumPendingTests)
	}
	if summary.NumTodoTests != 1 {
		t.Errorf("expected 1 todo, got %d", summary.NumTodoTests)
	}
	total := summary.NumFailingTests + summary.NumPassingTests + summary.NumPendingTests + summary.NumTodoTests
	if total != len(statuses) {
		t.Errorf("counts sum to %d, expected %d", total, len(statuses))
	}
}

func TestAggregator_DisabledNormalizesToPending(t *testing.T) {
	agg, _ := newTestAggregator()
	agg.RunStarted()
	agg.SpecDone(spec("s1", "off", "off", domain.StatusDisabled))
	agg.RunDone()

	summary, _ := agg.Summary(context.Background())
	if got := summary.TestResults[0].Status; got != domain.StatusPending {
		t.Errorf("expected pending, got %s", got)
	}
	if summary.NumPendingTests != 1 {
		t.Errorf("expected 1 pending, got %d", summary.NumPendingTests)
	}
}

func TestAggregator_DurationSuppression(t *testing.T) {
	agg, _ := newTestAggregator()
	agg.RunStarted()
	agg.SpecStarted(spec("s1", "later", "later", domain.StatusPending))
	agg.SpecDone(spec("s1", "later", "later", domain.StatusPending))
	agg.RunDone()

	summary, _ := agg.Summary(context.Background())
	if got := summary.TestResults[0].Duration; got != nil {
		t.Errorf("expected nil duration for pending spec, got %d", *got)
	}
}

func TestAggregator_SpecDoneWithoutStartHasNilDuration(t *testing.T) {
	agg, _ := newTestAggregator()
	agg.RunStarted()
	agg.SpecDone(spec("s1", "orphan", "orphan", domain.StatusPassed))
	agg.RunDone()

	summary, _ := agg.Summary(context.Background())
	if got := summary.TestResults[0].Duration; got != nil {
		t.Errorf("expected nil duration without a start, got %d", *got)
	}
}

func TestAggregator_FailureExtraction(t *testing.T) {
	agg, _ := newTestAggregator()
	agg.RunStarted()
	ev := spec("s1", "explodes", "suite explodes", domain.StatusFailed)
	ev.FailedExpectations = []domain.FailedAssertion{
		{
			Message: "assertion text",
			Error: &domain.ErrorLike{
				Message: "error during f",
				Cause:   &domain.ErrorLike{Message: "error during g"},
			},
		},
		{Message: "second failure", MatcherName: "toBe"},
	}
	agg.SpecDone(ev)
	agg.RunDone()

	summary, _ := agg.Summary(context.Background())
	result := summary.TestResults[0]
	if len(result.FailureMessages) != 2 {
		t.Fatalf("expected 2 failure messages, got %d", len(result.FailureMessages))
	}
	if result.FailureMessages[0] != "error during f\n\n[cause]: error during g" {
		t.Errorf("unexpected chained message: %q", result.FailureMessages[0])
	}
	if result.FailureMessages[1] != "second failure" {
		t.Errorf("unexpected plain message: %q", result.FailureMessages[1])
	}
	if len(result.FailureDetails) != 2 {
		t.Errorf("expected raw records retained, got %d", len(result.FailureDetails))
	}
}

func TestAggregator_Location(t *testing.T) {
	agg, _ := newTestAggregator()
	agg.RunStarted()
	ev := spec("s1", "here", "here", domain.StatusPassed)
	ev.SourceLocation = &domain.SourceLocation{Line: 12, Column: 4}
	agg.SpecDone(ev)
	agg.SpecDone(spec("s2", "nowhere", "nowhere", domain.StatusPassed))
	agg.RunDone()

	summary, _ := agg.Summary(context.Background())
	if loc := summary.TestResults[0].Location; loc == nil || loc.Line != 12 || loc.Column != 4 {
		t.Errorf("expected location 12:4, got %+v", loc)
	}
	if loc := summary.TestResults[1].Location; loc != nil {
		t.Errorf("expected nil location, got %+v", loc)
	}
}

func TestAggregator_IdempotentFuture(t *testing.T) {
	agg, formatter := newTestAggregator()
	agg.RunStarted()

	// A caller may ask before the run completes; it must see the same
	// eventual value as late callers.
	early := make(chan *domain.RunSummary, 1)
	go func() {
		s, err := agg.Summary(context.Background())
		if err != nil {
			t.Errorf("early Summary error: %v", err)
		}
		early <- s
	}()

	agg.SpecDone(spec("s1", "one", "one", domain.StatusPassed))
	agg.RunDone()
	agg.RunDone() // second run-end must not re-resolve

	first, _ := agg.Summary(context.Background())
	second, _ := agg.Summary(context.Background())
	if first != second {
		t.Error("expected identical summary reference across calls")
	}
	select {
	case s := <-early:
		if s != first {
			t.Error("early caller got a different summary reference")
		}
	case <-time.After(time.Second):
		t.Fatal("early Summary call never resolved")
	}
	if formatter.calls != 1 {
		t.Errorf("expected formatter invoked once, got %d", formatter.calls)
	}
	if first.FailureMessage != "combined failure message" {
		t.Errorf("unexpected failure message: %q", first.FailureMessage)
	}
}

func TestAggregator_SummaryBeforeRunDoneDefers(t *testing.T) {
	agg, _ := newTestAggregator()
	agg.RunStarted()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := agg.Summary(ctx); err == nil {
		t.Fatal("expected deferral (context deadline) before run-end")
	}

	agg.RunDone()
	if _, err := agg.Summary(context.Background()); err != nil {
		t.Fatalf("expected resolution after run-end, got %v", err)
	}
}

func TestAggregator_FormatterPanicStillResolves(t *testing.T) {
	formatter := &stubFormatter{panics: true}
	agg := New("spec/example.test.js", formatter, stubTemplate{})
	agg.RunStarted()
	agg.SpecDone(spec("s1", "one", "one", domain.StatusFailed))
	agg.RunDone()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	summary, err := agg.Summary(ctx)
	if err != nil {
		t.Fatalf("future left unresolved after formatter panic: %v", err)
	}
	if summary.FailureMessage != "" {
		t.Errorf("expected empty failure message, got %q", summary.FailureMessage)
	}
	if summary.NumFailingTests != 1 {
		t.Errorf("tallies lost: expected 1 failing, got %d", summary.NumFailingTests)
	}
}

func TestAggregator_CompletionOrderPreserved(t *testing.T) {
	agg, _ := newTestAggregator()
	agg.RunStarted()
	agg.SuiteStarted(domain.SuiteEvent{Description: "outer"})
	agg.SpecDone(spec("s1", "first", "outer first", domain.StatusPassed))
	agg.SuiteStarted(domain.SuiteEvent{Description: "inner"})
	agg.SpecDone(spec("s2", "second", "outer inner second", domain.StatusFailed))
	agg.SuiteDone(domain.SuiteEvent{Description: "inner"})
	agg.SpecDone(spec("s3", "third", "outer third", domain.StatusPassed))
	agg.RunDone()

	summary, _ := agg.Summary(context.Background())
	var titles []string
	for _, r := range summary.TestResults {
		titles = append(titles, r.Title)
	}
	if !reflect.DeepEqual(titles, []string{"first", "second", "third"}) {
		t.Errorf("expected completion order, got %v", titles)
	}
}
