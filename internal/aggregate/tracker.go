// Package aggregate reconstructs hierarchical run results from the
// legacy engine's flat sequence of lifecycle events.
package aggregate

// SuiteStack tracks the names of the currently open ancestor suites.
// Enter/Exit must balance with the engine's suite boundaries.
type SuiteStack struct {
	names []string
}

// NewSuiteStack creates an empty SuiteStack.
func NewSuiteStack() *SuiteStack {
	return &SuiteStack{}
}

// Enter pushes a suite name.
func (s *SuiteStack) Enter(name string) {
	s.names = append(s.names, name)
}

// Exit pops the innermost suite. An exit on an empty stack is an
// unbalanced call by the engine; it is ignored rather than crashing.
func (s *SuiteStack) Exit() {
	if len(s.names) == 0 {
		return
	}
	s.names = s.names[:len(s.names)-1]
}

// Snapshot returns an independent copy of the open suite names, root
// first. The stack keeps mutating after a spec is recorded, so callers
// must never hold the live slice.
func (s *SuiteStack) Snapshot() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Depth returns the number of open suites.
func (s *SuiteStack) Depth() int {
	return len(s.names)
}
