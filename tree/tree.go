// Package tree implements the MCTS search tree: an arena of nodes,
// addressed by index, with a "focus" cursor that supports O(1) structural
// mutation and traversal without copying the tree spine.
//
// The focus behaves like a zipper (a breadcrumb stack of parent payloads
// and untaken siblings) without actually keeping one: each node carries a
// parent index instead, so Up is an O(1) index lookup rather than a stack
// pop. Down/Up still satisfy the round-trip invariant a zipper would:
// down(i) then up restores the original focus.
package tree

import (
	"github.com/pkg/errors"
)

var (
	// ErrOutOfBounds is returned when Down is asked for a child index that
	// does not exist.
	ErrOutOfBounds = errors.New("child index out of bounds")
	// ErrNoChildren is returned when Down is called on a childless focus.
	ErrNoChildren = errors.New("focus has no children")
)

// Tree owns an arena of nodes for a single MCTS search call. It is created
// fresh (root only) at the start of each search and discarded when the
// call returns; no tree is reused across external move requests, so this
// arena never frees or recycles a node: there is nothing to reclaim within
// the lifetime of one search.
type Tree struct {
	nodes []node

	root  int32
	focus int32
}

// New creates a tree with a single root node holding the given state (the
// move-history prefix the search was asked to search from).
func New(rootState []int) *Tree {
	t := &Tree{nodes: make([]node, 0, 64)}
	root := t.alloc()
	n := &t.nodes[root]
	n.state = append([]int(nil), rootState...)
	n.move = -1
	n.parent = nilIdx
	t.root = root
	t.focus = root
	return t
}

func (t *Tree) alloc() int32 {
	t.nodes = append(t.nodes, node{parent: nilIdx})
	return int32(len(t.nodes) - 1)
}

func (t *Tree) at(i int32) *node { return &t.nodes[i] }

// AtRoot reports whether the focus is currently the root.
func (t *Tree) AtRoot() bool { return t.focus == t.root }

// FocusState returns the move-history identifying the focused node's
// position. The caller must not mutate the returned slice.
func (t *Tree) FocusState() []int { return t.at(t.focus).state }

// FocusMove returns the column played to reach the focus from its parent,
// or -1 at the root.
func (t *Tree) FocusMove() int { return t.at(t.focus).move }

// FocusVisits returns the focused node's visit count.
func (t *Tree) FocusVisits() uint32 { return t.at(t.focus).visits }

// FocusReward returns the focused node's cumulative reward.
func (t *Tree) FocusReward() float64 { return t.at(t.focus).reward }

// FocusExpanded reports whether the focus has children and every child has
// been visited at least once.
func (t *Tree) FocusExpanded() bool { return t.at(t.focus).expanded }

// NumChildren returns the number of children of the focus (zero before the
// focus has ever been expanded).
func (t *Tree) NumChildren() int { return len(t.at(t.focus).children) }

// ChildMove returns the column associated with the i-th child of the
// focus, without moving the focus.
func (t *Tree) ChildMove(i int) int {
	c := t.at(t.focus).children[i]
	return t.at(c).move
}

// ChildVisits returns the visit count of the i-th child of the focus.
func (t *Tree) ChildVisits(i int) uint32 {
	c := t.at(t.focus).children[i]
	return t.at(c).visits
}

// ChildReward returns the cumulative reward of the i-th child of the focus.
func (t *Tree) ChildReward(i int) float64 {
	c := t.at(t.focus).children[i]
	return t.at(c).reward
}

// UnvisitedChildren returns the indices, among the focus's children, of
// every child with zero visits.
func (t *Tree) UnvisitedChildren() []int {
	kids := t.at(t.focus).children
	var out []int
	for i, c := range kids {
		if t.at(c).visits == 0 {
			out = append(out, i)
		}
	}
	return out
}

// Down moves the focus to its i-th child. It fails with ErrNoChildren if
// the focus has no children yet, or ErrOutOfBounds if i is out of range.
func (t *Tree) Down(i int) error {
	n := t.at(t.focus)
	if len(n.children) == 0 {
		return errors.Wrapf(ErrNoChildren, "focus %d", t.focus)
	}
	if i < 0 || i >= len(n.children) {
		return errors.Wrapf(ErrOutOfBounds, "index %d, %d children", i, len(n.children))
	}
	t.focus = n.children[i]
	return nil
}

// Up moves the focus to its parent. It returns false and leaves the focus
// unchanged if already at the root.
func (t *Tree) Up() bool {
	if t.AtRoot() {
		return false
	}
	t.focus = t.at(t.focus).parent
	return true
}

// Expand attaches one fresh child per move in moves, in the given order.
// It is meant to be called at most once per node: expansion is one-shot,
// and callers are expected to guard on NumChildren() == 0 before calling.
func (t *Tree) Expand(moves []int) {
	parent := t.focus
	parentState := t.at(parent).state
	children := make([]int32, len(moves))
	for i, m := range moves {
		idx := t.alloc()
		child := t.at(idx)
		child.state = append(append([]int(nil), parentState...), m)
		child.move = m
		child.parent = parent
		children[i] = idx
	}
	pn := t.at(parent)
	pn.children = children
	pn.unvisited = len(children)
	pn.expanded = pn.unvisited == 0 && len(children) > 0
}

// RecordVisit increments the focus's visit count and accumulates reward
// into it, then recomputes its parent's cached "expanded" bit if this was
// the focus's first visit. Backpropagation calls this once per node on the
// path from the simulated leaf up to and including the root.
func (t *Tree) RecordVisit(reward float64) {
	n := t.at(t.focus)
	firstVisit := n.visits == 0
	n.visits++
	n.reward += reward

	if firstVisit && n.parent != nilIdx {
		p := t.at(n.parent)
		p.unvisited--
		p.expanded = p.unvisited == 0 && len(p.children) > 0
	}
}

// Nodes reports the number of nodes currently live in the arena.
func (t *Tree) Nodes() int { return len(t.nodes) }

// NodeInfo is a read-only view of one arena node, used by diagnostics such
// as Graphviz export; it is not part of the search's hot path.
type NodeInfo struct {
	ID       int
	ParentID int // -1 for the root
	Move     int
	Visits   uint32
	Reward   float64
	State    []int
}

// Walk visits every node currently in the arena, in allocation order (the
// root is always first). It does not move the focus.
func (t *Tree) Walk(fn func(NodeInfo)) {
	for i := range t.nodes {
		n := &t.nodes[i]
		fn(NodeInfo{
			ID:       i,
			ParentID: int(n.parent),
			Move:     n.move,
			Visits:   n.visits,
			Reward:   n.reward,
			State:    n.state,
		})
	}
}
