package domain

import (
	"encoding/json"
	"fmt"
)

// FailedAssertion is one raw failed-expectation record attached to a
// spec-done event. Passed is always false for records in
// FailedExpectations.
type FailedAssertion struct {
	Message     string     `json:"message"`
	Stack       string     `json:"stack,omitempty"`
	MatcherName string     `json:"matcherName,omitempty"`
	Error       *ErrorLike `json:"error,omitempty"`
	Passed      bool       `json:"passed"`
}

// ErrorLike is the engine's polymorphic error shape. Cause is absent,
// a string, or another *ErrorLike; chains built in-process may be
// cyclic (a malformed chain can point back at an ancestor).
type ErrorLike struct {
	Message string `json:"message,omitempty"`
	Stack   string `json:"stack,omitempty"`
	Cause   any    `json:"-"`
}

// errorLikeJSON mirrors ErrorLike on the wire; the cause field is kept
// raw so it can be decoded as either a string or a nested object.
type errorLikeJSON struct {
	Message string          `json:"message,omitempty"`
	Stack   string          `json:"stack,omitempty"`
	Cause   json.RawMessage `json:"cause,omitempty"`
}

// UnmarshalJSON decodes the polymorphic cause field. Streams cannot
// express cycles, so decoded chains are always finite.
func (e *ErrorLike) UnmarshalJSON(data []byte) error {
	var raw errorLikeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Message = raw.Message
	e.Stack = raw.Stack
	e.Cause = nil

	if len(raw.Cause) == 0 || string(raw.Cause) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw.Cause, &s); err == nil {
		e.Cause = s
		return nil
	}
	var nested ErrorLike
	if err := json.Unmarshal(raw.Cause, &nested); err != nil {
		return fmt.Errorf("decode error cause: %w", err)
	}
	e.Cause = &nested
	return nil
}

// MarshalJSON encodes the cause back in its wire form. Cyclic chains
// are not encodable and yield an error rather than recursing forever.
func (e *ErrorLike) MarshalJSON() ([]byte, error) {
	raw := errorLikeJSON{Message: e.Message, Stack: e.Stack}
	switch cause := e.Cause.(type) {
	case nil:
	case string:
		b, err := json.Marshal(cause)
		if err != nil {
			return nil, err
		}
		raw.Cause = b
	case *ErrorLike:
		if chainHasCycle(e) {
			return nil, fmt.Errorf("cannot encode cyclic error cause chain")
		}
		b, err := json.Marshal(cause)
		if err != nil {
			return nil, err
		}
		raw.Cause = b
	default:
		return nil, fmt.Errorf("unsupported error cause type %T", cause)
	}
	return json.Marshal(raw)
}

func chainHasCycle(e *ErrorLike) bool {
	seen := map[*ErrorLike]struct{}{}
	for e != nil {
		if _, ok := seen[e]; ok {
			return true
		}
		seen[e] = struct{}{}
		next, ok := e.Cause.(*ErrorLike)
		if !ok {
			return false
		}
		e = next
	}
	return false
}
