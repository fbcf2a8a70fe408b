package board

import "testing"

func mustApplyAll(t *testing.T, b *Board, cols []int) {
	t.Helper()
	for _, c := range cols {
		if err := b.Apply(c); err != nil {
			t.Fatalf("Apply(%d) unexpected error: %v", c, err)
		}
	}
}

func TestHorizontalWin(t *testing.T) {
	b := New()
	mustApplyAll(t, b, []int{1, 1, 2, 2, 3, 3})
	if err := b.Apply(4); err != nil {
		t.Fatalf("Apply(4) unexpected error: %v", err)
	}
	if b.Result() != YellowWins {
		t.Errorf("Result = %v, want YellowWins", b.Result())
	}
}

func TestVerticalWin(t *testing.T) {
	b := New()
	mustApplyAll(t, b, []int{0, 6, 5, 6, 5, 6, 5})
	if err := b.Apply(6); err != nil {
		t.Fatalf("Apply(6) unexpected error: %v", err)
	}
	if b.Result() != RedWins {
		t.Errorf("Result = %v, want RedWins", b.Result())
	}
}

func TestDiagonalBackslashWin(t *testing.T) {
	b := New()
	mustApplyAll(t, b, []int{5, 4, 4, 5, 3, 3, 3, 2, 2, 2})
	if err := b.Apply(2); err != nil {
		t.Fatalf("Apply(2) unexpected error: %v", err)
	}
	if b.Result() != YellowWins {
		t.Errorf("Result = %v, want YellowWins", b.Result())
	}
}

func TestDiagonalSlashWin(t *testing.T) {
	b := New()
	mustApplyAll(t, b, []int{6, 1, 2, 2, 1, 3, 3, 3, 4, 4, 4})
	if err := b.Apply(4); err != nil {
		t.Fatalf("Apply(4) unexpected error: %v", err)
	}
	if b.Result() != RedWins {
		t.Errorf("Result = %v, want RedWins", b.Result())
	}
}

func TestDraw(t *testing.T) {
	b := New()
	seq := []int{
		0, 1, 0, 1, 1, 0, 1, 0, 0, 1, 0, 1,
		2, 3, 2, 3, 3, 2, 3, 2, 2, 3, 2, 3,
		4, 5, 4, 5, 5, 4, 5, 4, 4, 5, 4, 5,
		6, 6, 6, 6, 6,
	}
	mustApplyAll(t, b, seq)
	if err := b.Apply(6); err != nil {
		t.Fatalf("Apply(6) unexpected error: %v", err)
	}
	if b.Result() != Draw {
		t.Errorf("Result = %v, want Draw", b.Result())
	}
}

func TestLegalMovesExcludesFullColumns(t *testing.T) {
	b := New()
	for i := 0; i < Rows; i++ {
		if err := b.Apply(0); err != nil {
			t.Fatalf("Apply(0) unexpected error: %v", err)
		}
	}
	for _, c := range b.LegalMoves() {
		if c == 0 {
			t.Errorf("LegalMoves() still contains full column 0")
		}
	}
}

func TestApplyFullColumnIsIllegal(t *testing.T) {
	b := New()
	for i := 0; i < Rows; i++ {
		if err := b.Apply(0); err != nil {
			t.Fatalf("Apply(0) unexpected error: %v", err)
		}
	}
	if err := b.Apply(0); err == nil {
		t.Errorf("Apply(0) on a full column succeeded, want error")
	}
}

func TestApplyOutOfRangeColumnIsIllegal(t *testing.T) {
	b := New()
	if err := b.Apply(7); err == nil {
		t.Errorf("Apply(7) succeeded, want error")
	}
	if err := b.Apply(-1); err == nil {
		t.Errorf("Apply(-1) succeeded, want error")
	}
}

func TestApplyAfterGameOverIsRejected(t *testing.T) {
	b := New()
	mustApplyAll(t, b, []int{1, 1, 2, 2, 3, 3, 4})
	if b.Result() == InProgress {
		t.Fatal("setup failed: game should have ended")
	}
	before := b.plies
	if err := b.Apply(0); err == nil {
		t.Errorf("Apply after game over succeeded, want error")
	}
	if b.plies != before {
		t.Errorf("plies changed after rejected move: %d != %d", b.plies, before)
	}
}

func TestBitboardsStayDisjoint(t *testing.T) {
	b := New()
	seq := []int{0, 1, 0, 1, 2, 3, 4, 5, 6, 0, 1, 2}
	for _, c := range seq {
		if b.Result() != InProgress {
			break
		}
		if err := b.Apply(c); err != nil {
			continue
		}
		if b.bitboards[0]&b.bitboards[1] != 0 {
			t.Fatalf("bitboards overlap after playing column %d", c)
		}
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	b := New()
	seq := []int{3, 3, 4, 2, 2, 4}
	mustApplyAll(t, b, seq)

	replay := New()
	mustApplyAll(t, replay, b.History())
	if replay.bitboards != b.bitboards {
		t.Errorf("replaying history produced a different position")
	}
	if replay.Result() != b.Result() {
		t.Errorf("replay result %v != original result %v", replay.Result(), b.Result())
	}
}

func TestColourToMoveAlternates(t *testing.T) {
	b := New()
	if b.ToMove() != Yellow {
		t.Errorf("initial ToMove() = %v, want Yellow", b.ToMove())
	}
	if err := b.Apply(0); err != nil {
		t.Fatal(err)
	}
	if b.ToMove() != Red {
		t.Errorf("ToMove() after one move = %v, want Red", b.ToMove())
	}
}
