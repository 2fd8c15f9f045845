package failure

import (
	"regexp"
	"strings"

	"sra/internal/domain"
)

// leadingErrorLine matches a bare "Error"/"Error:" first line that some
// producers emit instead of "Error: <message>".
var leadingErrorLine = regexp.MustCompile(`^Error:?\s*\n`)

// Extractor converts failed-expectation records into failure messages.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the failure message for one failed assertion.
// An error object with a cause chain wins over the assertion's own
// message/stack; otherwise a matcher-less assertion with a stack yields
// the (repaired) stack; otherwise the plain message.
func (e *Extractor) Extract(fa domain.FailedAssertion) string {
	if HasCauseChain(fa.Error) {
		return FormatChain(fa.Error, make(map[*domain.ErrorLike]struct{}))
	}
	if fa.MatcherName == "" && fa.Stack != "" {
		return addMissingMessageToStack(fa.Stack, fa.Message)
	}
	return fa.Message
}

// addMissingMessageToStack repairs stacks whose first line is a bare
// "Error" line with the real message missing (seen with Angular-style
// injection errors). The repair applies only when the stack does not
// already contain the message.
func addMissingMessageToStack(stack, message string) string {
	if message != "" && !strings.Contains(stack, message) {
		return message + "\n" + leadingErrorLine.ReplaceAllString(stack, "")
	}
	return stack
}
