package domain

import (
	"encoding/json"
	"testing"
)

func TestErrorLike_CauseRoundTrip(t *testing.T) {
	original := &ErrorLike{
		Message: "error during f",
		Cause: &ErrorLike{
			Message: "error during g",
			Cause:   "disk full",
		},
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded ErrorLike
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	inner, ok := decoded.Cause.(*ErrorLike)
	if !ok {
		t.Fatalf("expected error-like cause, got %T", decoded.Cause)
	}
	if inner.Message != "error during g" {
		t.Errorf("inner message: %q", inner.Message)
	}
	if tail, ok := inner.Cause.(string); !ok || tail != "disk full" {
		t.Errorf("expected string tail, got %#v", inner.Cause)
	}
}

func TestErrorLike_MarshalRejectsCycle(t *testing.T) {
	e := &ErrorLike{Message: "ouroboros"}
	e.Cause = e
	if _, err := json.Marshal(e); err == nil {
		t.Fatal("expected error encoding a cyclic cause chain")
	}
}

func TestErrorLike_UnmarshalWithoutCause(t *testing.T) {
	var e ErrorLike
	if err := json.Unmarshal([]byte(`{"message":"plain","stack":"Error: plain"}`), &e); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if e.Cause != nil {
		t.Errorf("expected nil cause, got %#v", e.Cause)
	}
}
