package replay

import (
	"fmt"

	"sra/internal/aggregate"
)

// Player dispatches a decoded event stream into an aggregator.
type Player struct{}

// NewPlayer creates a new Player
func NewPlayer() *Player {
	return &Player{}
}

// Play feeds events to agg in order. A stream that ends without runDone
// would leave the aggregator's future unresolved forever, so it is
// reported as an error instead of being replayed silently.
func (p *Player) Play(events []Event, agg *aggregate.Aggregator) error {
	sawRunDone := false
	for i, ev := range events {
		switch ev.Kind {
		case KindRunStart:
			agg.RunStarted()
		case KindSuiteStart:
			if ev.Suite == nil {
				return fmt.Errorf("event %d: suiteStart without suite payload", i+1)
			}
			agg.SuiteStarted(*ev.Suite)
		case KindSuiteDone:
			if ev.Suite == nil {
				return fmt.Errorf("event %d: suiteDone without suite payload", i+1)
			}
			agg.SuiteDone(*ev.Suite)
		case KindSpecStart:
			if ev.Spec == nil {
				return fmt.Errorf("event %d: specStart without spec payload", i+1)
			}
			agg.SpecStarted(*ev.Spec)
		case KindSpecDone:
			if ev.Spec == nil {
				return fmt.Errorf("event %d: specDone without spec payload", i+1)
			}
			agg.SpecDone(*ev.Spec)
		case KindRunDone:
			agg.RunDone()
			sawRunDone = true
		default:
			return fmt.Errorf("event %d: unknown event kind %q", i+1, ev.Kind)
		}
	}
	if !sawRunDone {
		return fmt.Errorf("event stream ended without runDone")
	}
	return nil
}
