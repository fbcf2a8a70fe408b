// Package board implements the Connect Four rules engine: a bit-packed
// board representation with four-in-a-row detection by shifted-AND, in the
// style of Tromp's bitboard layout.
package board

import (
	"fmt"

	"github.com/pkg/errors"
)

// Colour identifies a disc colour. Yellow always moves first.
type Colour uint8

const (
	None Colour = iota
	Yellow
	Red
)

func (c Colour) String() string {
	switch c {
	case Yellow:
		return "Yellow"
	case Red:
		return "Red"
	default:
		return "None"
	}
}

func (c Colour) glyph() string {
	switch c {
	case Yellow:
		return "○"
	case Red:
		return "●"
	default:
		return "·"
	}
}

// Result is the terminal status of a position.
type Result uint8

const (
	InProgress Result = iota
	YellowWins
	RedWins
	Draw
)

func (r Result) String() string {
	switch r {
	case YellowWins:
		return "YellowWins"
	case RedWins:
		return "RedWins"
	case Draw:
		return "Draw"
	default:
		return "None"
	}
}

const (
	// Cols and Rows are the fixed dimensions of a Connect Four board.
	Cols = 7
	Rows = 6
	// toWin is the number of same-coloured discs in a row required to win.
	toWin = 4
)

// base holds the bit index of the bottom cell of each column, per Tromp's
// 7*c + r layout (row 6 in every column is a guard bit).
var base = [Cols]uint8{0, 7, 14, 21, 28, 35, 42}

// topMask has the guard bit of every column set; a column is full exactly
// when its height bit is a member of this mask.
var topMask = func() uint64 {
	var m uint64
	for _, b := range base {
		m |= 1 << (b + 6)
	}
	return m
}()

// Board is a complete, self-contained Connect Four position.
type Board struct {
	bitboards [2]uint64 // indexed by Colour-1: [0]=Yellow, [1]=Red
	heights   [Cols]uint8
	history   []int
	plies     int
	result    Result
}

// New returns an empty board with Yellow to move.
func New() *Board {
	b := &Board{heights: base}
	return b
}

// Clone returns an independent copy of b.
func (b *Board) Clone() *Board {
	cp := *b
	cp.history = append([]int(nil), b.history...)
	return &cp
}

// ToMove returns the colour to move: Yellow iff plies is even.
func (b *Board) ToMove() Colour {
	if b.plies%2 == 0 {
		return Yellow
	}
	return Red
}

// Plies returns the number of moves played so far.
func (b *Board) Plies() int { return b.plies }

// Result returns the terminal status of the position.
func (b *Board) Result() Result { return b.result }

// History returns the ordered sequence of columns played. The caller must
// not mutate the returned slice.
func (b *Board) History() []int { return b.history }

// LegalMoves returns every column whose height bit is not a guard bit, in
// ascending order, omitting full columns. It is empty iff the position is
// terminal or the board is full.
func (b *Board) LegalMoves() []int {
	if b.result != InProgress {
		return nil
	}
	var moves []int
	for c := 0; c < Cols; c++ {
		if topMask&(1<<b.heights[c]) == 0 {
			moves = append(moves, c)
		}
	}
	return moves
}

// legal reports whether column c can be played.
func (b *Board) legal(c int) bool {
	if c < 0 || c >= Cols {
		return false
	}
	return topMask&(1<<b.heights[c]) == 0
}

var (
	// ErrIllegalMove is returned when a move targets a full or out-of-range column.
	ErrIllegalMove = errors.New("illegal move")
	// ErrGameOver is returned when a move is submitted after the result is terminal.
	ErrGameOver = errors.New("game over")
)

// Apply drops a disc for the colour to move into column c. It mutates b in
// place and returns an error without modifying b if the move is illegal or
// the game has already ended.
func (b *Board) Apply(c int) error {
	if b.result != InProgress {
		return errors.Wrapf(ErrGameOver, "column %d", c)
	}
	if !b.legal(c) {
		return errors.Wrapf(ErrIllegalMove, "column %d", c)
	}

	mover := b.ToMove()
	bit := uint64(1) << b.heights[c]
	b.bitboards[mover-1] |= bit
	b.heights[c]++
	b.history = append(b.history, c)
	b.plies++
	b.result = b.resultAfter(mover)
	return nil
}

// resultAfter computes the terminal status immediately after mover has
// played. mover is the colour that just moved, i.e. the opposite of
// ToMove() post-increment.
func (b *Board) resultAfter(mover Colour) Result {
	if connectedFour(b.bitboards[mover-1]) {
		if mover == Yellow {
			return YellowWins
		}
		return RedWins
	}
	if b.plies == Rows*Cols {
		return Draw
	}
	return InProgress
}

// connectedFour reports whether bitboard bb contains four set bits in a
// row along any of the four Connect Four directions. It exploits the
// 7-bit column stride: for direction offset d, x = bb & (bb>>d) marks every
// cell that starts a run of two; x & (x>>2d) marks every cell that starts a
// run of four.
func connectedFour(bb uint64) bool {
	for _, d := range [4]uint{1, 7, 6, 8} {
		x := bb & (bb >> d)
		if x&(x>>(2*d)) != 0 {
			return true
		}
	}
	return false
}

// String renders the board with Yellow as an open circle and Red as a
// filled circle, columns left (0) to right (6), row 0 at the bottom.
func (b *Board) String() string {
	buf := make([]byte, 0, (Rows+1)*(2*Cols+2))
	for r := Rows - 1; r >= 0; r-- {
		buf = append(buf, "| "...)
		for c := 0; c < Cols; c++ {
			buf = append(buf, b.at(c, r).glyph()...)
			buf = append(buf, ' ')
		}
		buf = append(buf, '|', '\n')
	}
	return string(buf)
}

func (b *Board) Format(s fmt.State, verb rune) {
	switch verb {
	case 's', 'v':
		fmt.Fprint(s, b.String())
	}
}

// at returns the colour occupying column c, row r (r=0 is the bottom row).
func (b *Board) at(c, r int) Colour {
	bit := uint64(1) << (base[c] + uint8(r))
	switch {
	case b.bitboards[Yellow-1]&bit != 0:
		return Yellow
	case b.bitboards[Red-1]&bit != 0:
		return Red
	default:
		return None
	}
}
