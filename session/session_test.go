package session

import (
	"testing"

	"github.com/gorgonia/connectfour/board"
)

func TestMoveManyRollsBackOnIllegalMove(t *testing.T) {
	s := New()
	if err := s.MoveMany([]int{0, 0, 0, 0, 0, 0, 0}); err == nil {
		t.Fatal("expected error for 7 drops into a 6-tall column")
	}
	snap := s.Look()
	if len(snap.History) != 0 {
		t.Errorf("session mutated despite rollback: history = %v", snap.History)
	}
}

func TestMoveManyEndingExactlyAtLastMoveSucceeds(t *testing.T) {
	s := New()
	err := s.MoveMany([]int{1, 1, 2, 2, 3, 3, 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Look().Result != board.YellowWins {
		t.Errorf("Result = %v, want YellowWins", s.Look().Result)
	}
}

func TestMoveManyRejectsMovesAfterGameEnds(t *testing.T) {
	s := New()
	err := s.MoveMany([]int{1, 1, 2, 2, 3, 3, 4, 5})
	if err == nil {
		t.Fatal("expected error: move supplied after game ended mid-batch")
	}
	if len(s.Look().History) != 0 {
		t.Errorf("session mutated despite rollback: history = %v", s.Look().History)
	}
}

func TestMoveRejectsIllegalMoveAndPreservesState(t *testing.T) {
	s := New()
	if _, err := s.Move(0); err != nil {
		t.Fatal(err)
	}
	before := s.Look()
	if _, err := s.Move(9); err == nil {
		t.Fatal("expected IllegalMove error")
	}
	after := s.Look()
	if len(before.History) != len(after.History) {
		t.Errorf("state mutated after rejected move")
	}
}

func TestMoveRejectsAfterGameOver(t *testing.T) {
	s := New()
	if err := s.MoveMany([]int{1, 1, 2, 2, 3, 3, 4}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Move(0); err == nil {
		t.Fatal("expected GameOver error")
	}
}

func TestNewWithHistory(t *testing.T) {
	s, err := NewWithHistory([]int{3, 3, 4, 2, 2, 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Look().History) != 6 {
		t.Errorf("History length = %d, want 6", len(s.Look().History))
	}
}

func TestNewWithHistoryRejectsInvalid(t *testing.T) {
	if _, err := NewWithHistory([]int{0, 0, 0, 0, 0, 0, 0}); err == nil {
		t.Fatal("expected error for invalid history")
	}
}

func TestReset(t *testing.T) {
	s := New()
	if err := s.MoveMany([]int{0, 1, 2}); err != nil {
		t.Fatal(err)
	}
	s.Reset()
	if len(s.Look().History) != 0 {
		t.Errorf("Reset() left history %v, want empty", s.Look().History)
	}
	if s.Look().Result != board.InProgress {
		t.Errorf("Reset() left result %v, want InProgress", s.Look().Result)
	}
}
