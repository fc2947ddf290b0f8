package tskit

import "fmt"

// Tree is a forward-only cursor over the trees of a tree sequence. After
// AdvanceTo(x) its parent/child relation is the local genealogy covering x.
//
// A Tree is not safe for concurrent use; each reader owns its own.
type Tree struct {
	ts *TreeSequence

	parent     []NodeID
	leftChild  []NodeID
	rightChild []NodeID
	leftSib    []NodeID
	rightSib   []NodeID

	left  float64
	right float64
	index int

	insertionIdx int
	removalIdx   int
}

// NewTree returns a cursor positioned before the first tree.
func NewTree(ts *TreeSequence) *Tree {
	n := ts.NumNodes()
	t := &Tree{
		ts:         ts,
		parent:     make([]NodeID, n),
		leftChild:  make([]NodeID, n),
		rightChild: make([]NodeID, n),
		leftSib:    make([]NodeID, n),
		rightSib:   make([]NodeID, n),
		index:      -1,
	}
	for i := 0; i < n; i++ {
		t.parent[i] = NullNode
		t.leftChild[i] = NullNode
		t.rightChild[i] = NullNode
		t.leftSib[i] = NullNode
		t.rightSib[i] = NullNode
	}
	return t
}

// AdvanceTo moves the cursor forward to the tree covering position, crossing
// as many breakpoints as needed. Moving backwards is an error.
func (t *Tree) AdvanceTo(position float64) error {
	if !(position >= 0 && position < t.ts.SequenceLength()) {
		return fmt.Errorf("%w: %v not in [0, %v)", ErrOutOfBounds, position, t.ts.SequenceLength())
	}
	if t.index >= 0 && position < t.left {
		return fmt.Errorf("%w: %v is before the current tree at %v", ErrOutOfBounds, position, t.left)
	}
	for t.index < 0 || position >= t.right {
		t.next()
	}
	return nil
}

func (t *Tree) next() {
	edges := t.ts.tables.Edges
	ins := t.ts.insertion
	rem := t.ts.removal

	x := 0.0
	if t.index >= 0 {
		x = t.right
		for t.removalIdx < len(rem) && edges[rem[t.removalIdx]].Right == x {
			e := edges[rem[t.removalIdx]]
			t.removeEdge(e.Parent, e.Child)
			t.removalIdx++
		}
	}
	for t.insertionIdx < len(ins) && edges[ins[t.insertionIdx]].Left == x {
		e := edges[ins[t.insertionIdx]]
		t.insertEdge(e.Parent, e.Child)
		t.insertionIdx++
	}

	right := t.ts.SequenceLength()
	if t.insertionIdx < len(ins) && edges[ins[t.insertionIdx]].Left < right {
		right = edges[ins[t.insertionIdx]].Left
	}
	if t.removalIdx < len(rem) && edges[rem[t.removalIdx]].Right < right {
		right = edges[rem[t.removalIdx]].Right
	}
	t.left = x
	t.right = right
	t.index++
}

func (t *Tree) insertEdge(p, c NodeID) {
	t.parent[c] = p
	u := t.rightChild[p]
	if u == NullNode {
		t.leftChild[p] = c
		t.leftSib[c] = NullNode
	} else {
		t.rightSib[u] = c
		t.leftSib[c] = u
	}
	t.rightSib[c] = NullNode
	t.rightChild[p] = c
}

func (t *Tree) removeEdge(p, c NodeID) {
	lsib := t.leftSib[c]
	rsib := t.rightSib[c]
	if lsib == NullNode {
		t.leftChild[p] = rsib
	} else {
		t.rightSib[lsib] = rsib
	}
	if rsib == NullNode {
		t.rightChild[p] = lsib
	} else {
		t.leftSib[rsib] = lsib
	}
	t.parent[c] = NullNode
	t.leftSib[c] = NullNode
	t.rightSib[c] = NullNode
}

// Interval returns the genomic interval [left, right) covered by the current
// tree.
func (t *Tree) Interval() (left, right float64) { return t.left, t.right }

// Index returns the index of the current tree, or -1 before the first
// AdvanceTo.
func (t *Tree) Index() int { return t.index }

func (t *Tree) NumNodes() int { return len(t.parent) }
func (t *Tree) Parent(u NodeID) NodeID { return t.parent[u] }
func (t *Tree) LeftChild(u NodeID) NodeID { return t.leftChild[u] }
func (t *Tree) RightSib(u NodeID) NodeID { return t.rightSib[u] }
func (t *Tree) IsSample(u NodeID) bool { return t.ts.IsSample(u) }

// Root returns the root of the tree containing u.
func (t *Tree) Root(u NodeID) NodeID {
	for t.parent[u] != NullNode {
		u = t.parent[u]
	}
	return u
}

// IsIsolated reports whether u has neither a parent nor children in the
// current tree.
func (t *Tree) IsIsolated(u NodeID) bool {
	return t.parent[u] == NullNode && t.leftChild[u] == NullNode
}
