package replay

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"sra/internal/aggregate"
	"sra/internal/domain"
)

type plainFormatter struct{}

func (plainFormatter) FormatRun(results []domain.AssertionResult, testFilePath string) string {
	return ""
}

type plainTemplate struct{}

func (plainTemplate) Empty(testFilePath string) *domain.RunSummary {
	return &domain.RunSummary{TestResults: []domain.AssertionResult{}, TestFilePath: testFilePath}
}

func newAggregator(path string) *aggregate.Aggregator {
	return aggregate.New(path, plainFormatter{}, plainTemplate{})
}

func TestPlayer_Play(t *testing.T) {
	events := []Event{
		{Kind: KindRunStart},
		{Kind: KindSuiteStart, Suite: &domain.SuiteEvent{Description: "parent"}},
		{Kind: KindSpecStart, Spec: &domain.SpecEvent{ID: "s1"}},
		{Kind: KindSpecDone, Spec: &domain.SpecEvent{ID: "s1", Description: "works", FullName: "parent works", Status: domain.StatusPassed}},
		{Kind: KindSuiteDone, Suite: &domain.SuiteEvent{Description: "parent"}},
		{Kind: KindRunDone},
	}

	agg := newAggregator("a.events.jsonl")
	if err := NewPlayer().Play(events, agg); err != nil {
		t.Fatalf("Play: %v", err)
	}

	summary, err := agg.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.NumPassingTests != 1 {
		t.Errorf("expected 1 passing spec, got %d", summary.NumPassingTests)
	}
	if got := summary.TestResults[0].AncestorTitles; !reflect.DeepEqual(got, []string{"parent"}) {
		t.Errorf("expected [parent], got %v", got)
	}
}

func TestPlayer_Play_Errors(t *testing.T) {
	tests := []struct {
		name     string
		events   []Event
		expected string
	}{
		{
			name:     "truncated stream",
			events:   []Event{{Kind: KindRunStart}},
			expected: "without runDone",
		},
		{
			name:     "unknown kind",
			events:   []Event{{Kind: "specRetry"}},
			expected: "unknown event kind",
		},
		{
			name:     "suiteStart without payload",
			events:   []Event{{Kind: KindSuiteStart}},
			expected: "without suite payload",
		},
		{
			name:     "specDone without payload",
			events:   []Event{{Kind: KindRunStart}, {Kind: KindSpecDone}},
			expected: "without spec payload",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewPlayer().Play(tt.events, newAggregator("a.events.jsonl"))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.expected) {
				t.Errorf("expected %q in %v", tt.expected, err)
			}
		})
	}
}
