// Package replay decodes recorded lifecycle event streams and plays
// them through the aggregator, standing in for the legacy engine.
package replay

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"sra/internal/domain"
)

// Event kinds as written by the stream recorder, one JSON object per
// line.
const (
	KindRunStart   = "runStart"
	KindSuiteStart = "suiteStart"
	KindSuiteDone  = "suiteDone"
	KindSpecStart  = "specStart"
	KindSpecDone   = "specDone"
	KindRunDone    = "runDone"
)

// Event is one recorded lifecycle callback. Suite is set for suite
// boundaries, Spec for spec boundaries; run boundaries carry no
// payload.
type Event struct {
	Kind  string             `json:"event"`
	Suite *domain.SuiteEvent `json:"suite,omitempty"`
	Spec  *domain.SpecEvent  `json:"spec,omitempty"`
}

// maxLineSize bounds a single stream line; failure stacks with deep
// cause chains can get large.
const maxLineSize = 4 * 1024 * 1024

// ReadFile decodes a JSON Lines event stream. Blank lines are skipped;
// malformed lines are errors carrying their line number.
func ReadFile(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open event stream: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, fmt.Errorf("%s:%d: decode event: %w", path, line, err)
		}
		if ev.Kind == "" {
			return nil, fmt.Errorf("%s:%d: event without kind", path, line)
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read event stream: %w", err)
	}
	return events, nil
}

// CountSpecs returns the number of completed specs in the stream.
func CountSpecs(events []Event) int {
	count := 0
	for _, ev := range events {
		if ev.Kind == KindSpecDone {
			count++
		}
	}
	return count
}

// SpecNames returns the full names of completed specs, in stream order.
func SpecNames(events []Event) []string {
	var names []string
	for _, ev := range events {
		if ev.Kind == KindSpecDone && ev.Spec != nil {
			names = append(names, ev.Spec.FullName)
		}
	}
	return names
}
