package tree

// node is one entry in the arena. It is addressed by its index; -1 (nilIdx)
// stands in for "no such node".
type node struct {
	state  []int // move history identifying this node's position
	move   int   // the column played to reach this node from its parent, -1 at root
	visits uint32
	reward float64

	children  []int32 // arena indices, one per legal move, in ascending column order
	unvisited int      // count of children with visits == 0; caches "expanded"
	expanded  bool

	parent int32
}

const nilIdx int32 = -1
