// Package session offers a mutable game session that sequences moves
// against a board.Board, reporting outcomes without exposing the board's
// internal state-handling to callers such as the MCTS engine.
package session

import (
	"github.com/pkg/errors"

	"github.com/gorgonia/connectfour/board"
)

// ErrInvalidGame is returned when a supplied history contains an illegal
// move, or reaches a terminal position before its last element.
var ErrInvalidGame = errors.New("invalid game")

// Snapshot is a non-mutating view of a session's state.
type Snapshot struct {
	History []int
	Result  board.Result
}

// Session sequences moves against a board.Board.
type Session struct {
	b *board.Board
}

// New returns an empty session.
func New() *Session {
	return &Session{b: board.New()}
}

// NewWithHistory returns a session at the position reached by playing
// history from the empty board. It fails atomically: if any move in
// history is illegal, or the game ends before the last supplied move, no
// session is returned.
func NewWithHistory(history []int) (*Session, error) {
	s := New()
	if err := s.MoveMany(history); err != nil {
		return nil, err
	}
	return s, nil
}

// Move applies a single move for the colour to move. On IllegalMove or
// GameOver the session is left unchanged.
func (s *Session) Move(c int) (Snapshot, error) {
	if err := s.b.Apply(c); err != nil {
		return Snapshot{}, err
	}
	return s.look(), nil
}

// MoveMany applies cs atomically: if any move is illegal, or the game ends
// mid-batch and a later move is still supplied, the session is left
// unchanged and ErrInvalidGame is returned. Ending exactly at the last
// supplied move is acceptable.
func (s *Session) MoveMany(cs []int) error {
	trial := s.b.Clone()
	for i, c := range cs {
		if err := trial.Apply(c); err != nil {
			return errors.Wrapf(ErrInvalidGame, "move %d (column %d): %v", i, c, err)
		}
		if trial.Result() != board.InProgress && i != len(cs)-1 {
			return errors.Wrapf(ErrInvalidGame, "game ended at move %d before the end of the supplied history", i)
		}
	}
	s.b = trial
	return nil
}

// LegalMoves returns the ordered columns that can currently be played.
func (s *Session) LegalMoves() []int { return s.b.LegalMoves() }

// Look returns a non-mutating snapshot of the current history and result.
func (s *Session) Look() Snapshot { return s.look() }

func (s *Session) look() Snapshot {
	return Snapshot{History: s.b.History(), Result: s.b.Result()}
}

// Reset returns the session to the empty initial position.
func (s *Session) Reset() { s.b = board.New() }

// Board exposes the underlying position for read-only inspection (e.g.
// rendering). Callers must not mutate the returned value.
func (s *Session) Board() *board.Board { return s.b }
