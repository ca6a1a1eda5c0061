package history

import (
	"reflect"
	"testing"
)

func TestNewStackSeeded(t *testing.T) {
	s := NewStack("<p>A</p>", 0)

	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	if s.Cursor() != 0 {
		t.Errorf("Cursor() = %d, want 0", s.Cursor())
	}
	if s.Current() != "<p>A</p>" {
		t.Errorf("Current() = %q, want %q", s.Current(), "<p>A</p>")
	}
	if s.MaxEntries() != DefaultMaxEntries {
		t.Errorf("MaxEntries() = %d, want default %d", s.MaxEntries(), DefaultMaxEntries)
	}
}

func TestCommitAppends(t *testing.T) {
	s := NewStack("a", 0)
	s.Commit("b")
	s.Commit("c")

	want := []string{"a", "b", "c"}
	if got := s.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
	if s.Cursor() != 2 {
		t.Errorf("Cursor() = %d, want 2", s.Cursor())
	}
}

func TestCommitDuplicateDropped(t *testing.T) {
	s := NewStack("a", 0)
	s.Commit("b")
	s.Commit("b")
	s.Commit("b")

	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if s.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1", s.Cursor())
	}
}

func TestNoAdjacentDuplicates(t *testing.T) {
	s := NewStack("a", 0)
	for _, snap := range []string{"a", "b", "b", "c", "c", "c", "b", "a", "a"} {
		s.Commit(snap)
	}

	entries := s.Entries()
	for i := 1; i < len(entries); i++ {
		if entries[i] == entries[i-1] {
			t.Errorf("adjacent duplicate %q at index %d", entries[i], i)
		}
	}
}

func TestCommitTruncatesRedoBranch(t *testing.T) {
	s := NewStack("A", 0)
	s.Commit("B")
	s.Commit("C")

	if _, ok := s.StepBack(); !ok {
		t.Fatal("StepBack() failed")
	}
	if s.Cursor() != 1 {
		t.Fatalf("Cursor() = %d, want 1", s.Cursor())
	}

	s.Commit("D")

	want := []string{"A", "B", "D"}
	if got := s.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
	if s.Cursor() != 2 {
		t.Errorf("Cursor() = %d, want 2", s.Cursor())
	}
	if s.CanStepForward() {
		t.Error("CanStepForward() should be false after truncating commit")
	}
}

func TestStepBackAtBottom(t *testing.T) {
	s := NewStack("a", 0)

	snap, ok := s.StepBack()
	if ok {
		t.Errorf("StepBack() at cursor 0 returned %q, want no-op", snap)
	}
	if s.Cursor() != 0 || s.Len() != 1 {
		t.Error("state changed by no-op StepBack")
	}
}

func TestStepForwardAtTop(t *testing.T) {
	s := NewStack("a", 0)
	s.Commit("b")

	snap, ok := s.StepForward()
	if ok {
		t.Errorf("StepForward() at top returned %q, want no-op", snap)
	}
	if s.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1", s.Cursor())
	}
}

func TestStepBackForwardRoundTrip(t *testing.T) {
	s := NewStack("a", 0)
	s.Commit("b")
	s.Commit("c")

	snap, ok := s.StepBack()
	if !ok || snap != "b" {
		t.Errorf("StepBack() = %q, %v, want %q, true", snap, ok, "b")
	}
	snap, ok = s.StepBack()
	if !ok || snap != "a" {
		t.Errorf("StepBack() = %q, %v, want %q, true", snap, ok, "a")
	}
	snap, ok = s.StepForward()
	if !ok || snap != "b" {
		t.Errorf("StepForward() = %q, %v, want %q, true", snap, ok, "b")
	}
	if s.Current() != "b" {
		t.Errorf("Current() = %q, want %q", s.Current(), "b")
	}
}

func TestCanStepQueries(t *testing.T) {
	s := NewStack("a", 0)

	if s.CanStepBack() {
		t.Error("CanStepBack() true on seeded stack")
	}
	if s.CanStepForward() {
		t.Error("CanStepForward() true on seeded stack")
	}

	s.Commit("b")
	if !s.CanStepBack() {
		t.Error("CanStepBack() false after commit")
	}
	if s.CanStepForward() {
		t.Error("CanStepForward() true at top")
	}

	s.StepBack()
	if s.CanStepBack() {
		t.Error("CanStepBack() true at bottom")
	}
	if !s.CanStepForward() {
		t.Error("CanStepForward() false after step back")
	}
}

func TestMaxEntriesTrims(t *testing.T) {
	s := NewStack("0", 3)
	s.Commit("1")
	s.Commit("2")
	s.Commit("3")
	s.Commit("4")

	want := []string{"2", "3", "4"}
	if got := s.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
	if s.Cursor() != 2 {
		t.Errorf("Cursor() = %d, want 2", s.Cursor())
	}
}

func TestSetMaxEntriesTrimsExisting(t *testing.T) {
	s := NewStack("0", 0)
	s.Commit("1")
	s.Commit("2")
	s.Commit("3")

	s.SetMaxEntries(2)

	want := []string{"2", "3"}
	if got := s.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
	if s.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1", s.Cursor())
	}
	if s.Current() != "3" {
		t.Errorf("Current() = %q, want %q", s.Current(), "3")
	}
}

func TestReset(t *testing.T) {
	s := NewStack("a", 0)
	s.Commit("b")
	s.Commit("c")

	s.Reset("fresh")

	if s.Len() != 1 || s.Cursor() != 0 {
		t.Errorf("after Reset: Len=%d Cursor=%d, want 1, 0", s.Len(), s.Cursor())
	}
	if s.Current() != "fresh" {
		t.Errorf("Current() = %q, want %q", s.Current(), "fresh")
	}
	if s.CanStepBack() || s.CanStepForward() {
		t.Error("navigation available after Reset")
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	s := NewStack("a", 0)
	s.Commit("b")

	entries := s.Entries()
	entries[0] = "mutated"

	if s.Entries()[0] != "a" {
		t.Error("Entries() exposed internal state")
	}
}
