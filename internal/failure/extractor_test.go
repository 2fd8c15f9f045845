package failure

import (
	"strings"
	"testing"

	"sra/internal/domain"
)

func TestExtractor_Extract(t *testing.T) {
	extractor := NewExtractor()

	tests := []struct {
		name      string
		assertion domain.FailedAssertion
		expected  string
	}{
		{
			name: "error with cause wins over message and stack",
			assertion: domain.FailedAssertion{
				Message: "assertion message",
				Stack:   "Error: assertion message\n  at spec (spec.js:1:1)",
				Error: &domain.ErrorLike{
					Message: "error during f",
					Cause:   "error during g",
				},
			},
			expected: "error during f\n\n[cause]: error during g",
		},
		{
			name: "matcher-less assertion returns its stack",
			assertion: domain.FailedAssertion{
				Message: "expected true",
				Stack:   "Error: expected true\n  at spec (spec.js:4:2)",
			},
			expected: "Error: expected true\n  at spec (spec.js:4:2)",
		},
		{
			name: "matcher present returns the message",
			assertion: domain.FailedAssertion{
				Message:     "expected 1 to be 2",
				Stack:       "Error: expected 1 to be 2\n  at spec (spec.js:7:9)",
				MatcherName: "toBe",
			},
			expected: "expected 1 to be 2",
		},
		{
			name: "error without a chain falls through to the stack",
			assertion: domain.FailedAssertion{
				Message: "plain failure",
				Stack:   "Error: plain failure\n  at spec (spec.js:3:3)",
				Error:   &domain.ErrorLike{Message: "plain failure"},
			},
			expected: "Error: plain failure\n  at spec (spec.js:3:3)",
		},
		{
			name:      "no message, no stack, no error",
			assertion: domain.FailedAssertion{},
			expected:  "",
		},
		{
			name: "message only",
			assertion: domain.FailedAssertion{
				Message:     "timed out",
				MatcherName: "toResolve",
			},
			expected: "timed out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractor.Extract(tt.assertion)
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestExtractor_StackRepair(t *testing.T) {
	extractor := NewExtractor()

	t.Run("prepends missing message and strips bare Error line", func(t *testing.T) {
		fa := domain.FailedAssertion{
			Message: "No provider for TokenService",
			Stack:   "Error\n  at injectionError (core.js:1:1)\n  at spec (spec.js:9:9)",
		}
		got := extractor.Extract(fa)
		expected := "No provider for TokenService\n  at injectionError (core.js:1:1)\n  at spec (spec.js:9:9)"
		if got != expected {
			t.Errorf("expected %q, got %q", expected, got)
		}
	})

	t.Run("strips bare Error-colon line", func(t *testing.T) {
		fa := domain.FailedAssertion{
			Message: "missing dependency",
			Stack:   "Error:\n  at spec (spec.js:2:2)",
		}
		got := extractor.Extract(fa)
		if !strings.HasPrefix(got, "missing dependency\n") {
			t.Errorf("expected message first, got %q", got)
		}
		if strings.Contains(got, "Error:") {
			t.Errorf("expected bare Error line stripped, got %q", got)
		}
	})

	t.Run("leaves stack alone when it already contains the message", func(t *testing.T) {
		stack := "Error: already here\n  at spec (spec.js:5:5)"
		fa := domain.FailedAssertion{Message: "already here", Stack: stack}
		if got := extractor.Extract(fa); got != stack {
			t.Errorf("expected untouched stack, got %q", got)
		}
	})

	t.Run("does not strip a mid-stack Error line", func(t *testing.T) {
		fa := domain.FailedAssertion{
			Message: "outer message",
			Stack:   "  at top (top.js:1:1)\nError\n  at spec (spec.js:2:2)",
		}
		got := extractor.Extract(fa)
		expected := "outer message\n  at top (top.js:1:1)\nError\n  at spec (spec.js:2:2)"
		if got != expected {
			t.Errorf("expected %q, got %q", expected, got)
		}
	})

	t.Run("repair skipped when a matcher is present", func(t *testing.T) {
		fa := domain.FailedAssertion{
			Message:     "mismatch",
			Stack:       "Error\n  at spec (spec.js:1:1)",
			MatcherName: "toEqual",
		}
		if got := extractor.Extract(fa); got != "mismatch" {
			t.Errorf("expected message, got %q", got)
		}
	})
}
