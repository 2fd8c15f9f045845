package aggregate

import (
	"reflect"
	"testing"
)

func TestSuiteStack_EnterExit(t *testing.T) {
	stack := NewSuiteStack()

	stack.Enter("parent")
	stack.Enter("child")
	if got := stack.Snapshot(); !reflect.DeepEqual(got, []string{"parent", "child"}) {
		t.Errorf("expected [parent child], got %v", got)
	}

	stack.Exit()
	stack.Enter("child 2")
	if got := stack.Snapshot(); !reflect.DeepEqual(got, []string{"parent", "child 2"}) {
		t.Errorf("expected [parent child 2], got %v", got)
	}

	stack.Exit()
	stack.Exit()
	if stack.Depth() != 0 {
		t.Errorf("expected empty stack, depth %d", stack.Depth())
	}
}

func TestSuiteStack_ExitOnEmptyIsNoOp(t *testing.T) {
	stack := NewSuiteStack()
	stack.Exit()
	stack.Exit()

	stack.Enter("suite")
	if got := stack.Snapshot(); !reflect.DeepEqual(got, []string{"suite"}) {
		t.Errorf("expected [suite], got %v", got)
	}
}

func TestSuiteStack_SnapshotIsIndependent(t *testing.T) {
	stack := NewSuiteStack()
	stack.Enter("parent")
	stack.Enter("child")

	snap := stack.Snapshot()
	stack.Exit()
	stack.Enter("sibling")

	if !reflect.DeepEqual(snap, []string{"parent", "child"}) {
		t.Errorf("snapshot mutated after stack changed: %v", snap)
	}
}
