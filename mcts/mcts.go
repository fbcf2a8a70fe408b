// Package mcts implements the Monte Carlo Tree Search engine: it grows a
// tree.Tree against a session.Session by running the UCT selection rule
// with uniform-random simulations, and returns the most-visited root
// child's column once its budget is exhausted.
package mcts

import (
	"math/rand"
	"time"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"github.com/gorgonia/connectfour/board"
	"github.com/gorgonia/connectfour/session"
	"github.com/gorgonia/connectfour/tree"
)

// explorationConstant is a fixed additive term in the UCT bound below,
// computed once as a float32. It is the same for every child of a given
// parent, so it never changes which child selectByUCT picks; see
// DESIGN.md for why it is kept rather than folded away.
var explorationConstant = math32.Sqrt(2)

// ErrBudgetInvalid is returned when Search is invoked with a non-positive
// budget or an unrecognized budget kind.
var ErrBudgetInvalid = errors.New("invalid search budget")

// BudgetKind selects whether a Budget is measured in iterations or wall
// clock time.
type BudgetKind uint8

const (
	IterationBudget BudgetKind = iota
	TimeBudget
)

// Budget bounds one Search call.
type Budget struct {
	Kind       BudgetKind
	Iterations int
	Time       time.Duration
}

// Iterations returns a Budget of n playout iterations.
func Iterations(n int) Budget { return Budget{Kind: IterationBudget, Iterations: n} }

// Milliseconds returns a wall-clock Budget of ms milliseconds.
func Milliseconds(ms int) Budget { return Budget{Kind: TimeBudget, Time: time.Duration(ms) * time.Millisecond} }

func (b Budget) validate() error {
	switch b.Kind {
	case IterationBudget:
		if b.Iterations <= 0 {
			return errors.Wrap(ErrBudgetInvalid, "iteration budget must be positive")
		}
	case TimeBudget:
		if b.Time <= 0 {
			return errors.Wrap(ErrBudgetInvalid, "time budget must be positive")
		}
	default:
		return errors.Wrap(ErrBudgetInvalid, "unknown budget kind")
	}
	return nil
}

// Config configures an Engine.
type Config struct {
	// Seed seeds the uniform-random simulation source. Zero means
	// unseeded: the engine seeds itself from the current time. Set a
	// non-zero Seed to make a search reproducible across runs.
	Seed int64
}

// DefaultConfig returns an unseeded Config.
func DefaultConfig() Config { return Config{} }

// Engine runs MCTS searches. It holds no state between Search calls beyond
// its random source: the search tree and game session are both local to a
// single Search invocation.
type Engine struct {
	cfg Config
	rng *rand.Rand
}

// New builds an Engine from cfg.
func New(cfg Config) *Engine {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{cfg: cfg, rng: rand.New(rand.NewSource(seed))}
}

// Search grows a fresh tree from history and returns the column of the
// most-visited root child once budget is exhausted. history must be a
// legal move sequence whose resulting position is non-terminal; behavior
// is undefined (an error is returned rather than a silent bad answer) if
// it is not.
func (e *Engine) Search(history []int, budget Budget) (int, error) {
	if err := budget.validate(); err != nil {
		return 0, err
	}

	sess, err := session.NewWithHistory(history)
	if err != nil {
		return 0, errors.Wrap(err, "search: invalid history")
	}
	if sess.Look().Result != board.InProgress {
		return 0, errors.New("search: history is already terminal")
	}

	tr := tree.New(history)
	logf("SEARCH history=%v budget=%+v", history, budget)

	start := time.Now()
	iterations := 0
	for {
		e.iterate(tr, sess, history)
		iterations++

		if budget.Kind == IterationBudget {
			if iterations >= budget.Iterations {
				break
			}
			continue
		}
		if time.Since(start) >= budget.Time {
			break
		}
	}

	best := bestChild(tr)
	logf("SEARCH done iterations=%d nodes=%d best=%d", iterations, tr.Nodes(), tr.ChildMove(best))
	return tr.ChildMove(best), nil
}

// iterate runs one full selection/expansion/simulation/backpropagation
// pass, leaving the tree's focus back at the root when it returns.
func (e *Engine) iterate(tr *tree.Tree, sess *session.Session, rootHistory []int) {
	sess.Reset()
	if err := sess.MoveMany(rootHistory); err != nil {
		panic(errors.Wrap(err, "iterate: root history became invalid"))
	}

	result := board.InProgress

	// Selection.
	for tr.FocusExpanded() {
		child := selectByUCT(tr)
		move := tr.ChildMove(child)
		if err := tr.Down(child); err != nil {
			panic(err) // invariant violation: expanded implies children exist
		}
		snap, err := sess.Move(move)
		if err != nil {
			panic(errors.Wrap(err, "selection replayed an illegal move"))
		}
		result = snap.Result
		if result != board.InProgress {
			break
		}
	}

	// Expansion + simulation: descend uniformly at random through
	// newly-created children, expanding as needed, until a terminal
	// result is produced.
	for result == board.InProgress {
		if tr.NumChildren() == 0 {
			tr.Expand(sess.LegalMoves())
		}
		unvisited := tr.UnvisitedChildren()
		pick := unvisited[e.rng.Intn(len(unvisited))]
		move := tr.ChildMove(pick)
		if err := tr.Down(pick); err != nil {
			panic(err)
		}
		snap, err := sess.Move(move)
		if err != nil {
			panic(errors.Wrap(err, "simulation played an illegal move"))
		}
		result = snap.Result
	}

	// Backpropagation.
	for {
		mover := playerToMove(len(tr.FocusState()))
		tr.RecordVisit(rewardFor(result, mover))
		if tr.AtRoot() {
			break
		}
		tr.Up()
	}
}

// selectByUCT returns the index, among the focus's children, of the child
// with the largest UCT value, breaking ties by taking the first maximum in
// child order. The focus must be expanded (every child has visits >= 1)
// before calling this: an unvisited child would divide by zero.
//
//	UCT(k) = reward(k)/visits(k) + sqrt(2) + sqrt(ln(visits(p)) / visits(k))
func selectByUCT(tr *tree.Tree) int {
	parentVisits := tr.FocusVisits()
	lnParent := math32.Log(float32(parentVisits))

	best := 0
	bestValue := math32.Inf(-1)
	for i := 0; i < tr.NumChildren(); i++ {
		visits := float32(tr.ChildVisits(i))
		reward := float32(tr.ChildReward(i))
		uct := reward/visits + explorationConstant + math32.Sqrt(lnParent/visits)
		if uct > bestValue {
			bestValue = uct
			best = i
		}
	}
	return best
}

// bestChild returns the index, among the root's children, of the child
// with the most visits, breaking ties by the lowest index.
func bestChild(tr *tree.Tree) int {
	for !tr.AtRoot() {
		tr.Up()
	}
	best := 0
	var bestVisits uint32
	for i := 0; i < tr.NumChildren(); i++ {
		if v := tr.ChildVisits(i); v > bestVisits {
			bestVisits = v
			best = i
		}
	}
	return best
}

// playerToMove attributes a node identified by a state of the given length
// to a colour for backpropagation: Red when the state is empty, Yellow
// when its length is odd, Red otherwise. See DESIGN.md for why this
// differs from board.Board.ToMove's parity rule.
func playerToMove(stateLen int) board.Colour {
	if stateLen == 0 {
		return board.Red
	}
	if stateLen%2 == 1 {
		return board.Yellow
	}
	return board.Red
}

// rewardFor computes the backpropagated reward contribution of a terminal
// result from the point of view of mover.
func rewardFor(result board.Result, mover board.Colour) float64 {
	switch result {
	case board.YellowWins:
		if mover == board.Yellow {
			return 1
		}
		return 0
	case board.RedWins:
		if mover == board.Red {
			return 1
		}
		return 0
	case board.Draw:
		return 0.5
	default:
		return 0
	}
}
