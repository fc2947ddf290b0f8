package tskit

import (
	"fmt"
	"sort"
)

// Site is an immutable view of one site and its mutations, in application
// order.
type Site struct {
	ID             int32
	Position       float64
	AncestralState Allele
	Mutations      []Mutation
}

// Mutation is an immutable view of one mutation. Rank is the mutation's
// position within its site's mutation list; at a single node the highest
// rank wins.
type Mutation struct {
	ID           int32
	Site         int32
	Node         NodeID
	DerivedState Allele
	Rank         int
}

// TreeSequence is a validated, read-only tree sequence. Any number of
// readers may share one TreeSequence concurrently.
type TreeSequence struct {
	tables      *TableCollection
	samples     []NodeID
	sites       []Site
	breakpoints []float64

	// Edge indexes ordered for insertion (by left, then parent time
	// ascending) and removal (by right, then parent time descending).
	insertion []int
	removal   []int
}

// NewTreeSequence validates tc and builds the indexes needed to walk its
// trees. The tree sequence takes ownership of tc; callers must not modify
// it afterwards.
func NewTreeSequence(tc *TableCollection) (*TreeSequence, error) {
	if err := checkTables(tc); err != nil {
		return nil, err
	}

	ts := &TreeSequence{tables: tc}

	for i, n := range tc.Nodes {
		if n.IsSample() {
			ts.samples = append(ts.samples, NodeID(i))
		}
	}

	ts.sites = make([]Site, len(tc.Sites))
	for i, s := range tc.Sites {
		ts.sites[i] = Site{ID: int32(i), Position: s.Position, AncestralState: s.AncestralState}
	}
	for i, m := range tc.Mutations {
		site := &ts.sites[m.Site]
		site.Mutations = append(site.Mutations, Mutation{
			ID:           int32(i),
			Site:         m.Site,
			Node:         m.Node,
			DerivedState: m.DerivedState,
			Rank:         len(site.Mutations),
		})
	}

	nodes := tc.Nodes
	edges := tc.Edges
	ts.insertion = make([]int, len(edges))
	ts.removal = make([]int, len(edges))
	for i := range edges {
		ts.insertion[i] = i
		ts.removal[i] = i
	}
	sort.SliceStable(ts.insertion, func(a, b int) bool {
		ea, eb := edges[ts.insertion[a]], edges[ts.insertion[b]]
		if ea.Left != eb.Left {
			return ea.Left < eb.Left
		}
		return nodes[ea.Parent].Time < nodes[eb.Parent].Time
	})
	sort.SliceStable(ts.removal, func(a, b int) bool {
		ea, eb := edges[ts.removal[a]], edges[ts.removal[b]]
		if ea.Right != eb.Right {
			return ea.Right < eb.Right
		}
		return nodes[ea.Parent].Time > nodes[eb.Parent].Time
	})

	ts.breakpoints = []float64{0}
	for _, e := range edges {
		ts.breakpoints = append(ts.breakpoints, e.Left, e.Right)
	}
	ts.breakpoints = append(ts.breakpoints, tc.SequenceLength)
	sort.Float64s(ts.breakpoints)
	uniq := ts.breakpoints[:1]
	for _, x := range ts.breakpoints[1:] {
		if x != uniq[len(uniq)-1] {
			uniq = append(uniq, x)
		}
	}
	ts.breakpoints = uniq

	return ts, nil
}

func checkTables(tc *TableCollection) error {
	if tc == nil {
		return fmt.Errorf("%w: nil table collection", ErrBadTables)
	}
	L := tc.SequenceLength
	if !(L > 0) {
		return fmt.Errorf("%w: sequence length %v must be positive", ErrBadTables, L)
	}
	numNodes := NodeID(len(tc.Nodes))
	validNode := func(u NodeID) bool { return u >= 0 && u < numNodes }

	for j, e := range tc.Edges {
		if !(e.Left >= 0 && e.Left < e.Right && e.Right <= L) {
			return fmt.Errorf("%w: edge %d has interval [%v, %v) outside [0, %v)", ErrBadTables, j, e.Left, e.Right, L)
		}
		if !validNode(e.Parent) || !validNode(e.Child) {
			return fmt.Errorf("%w: edge %d references node out of range (parent %d, child %d)", ErrBadTables, j, e.Parent, e.Child)
		}
		if tc.Nodes[e.Parent].Time <= tc.Nodes[e.Child].Time {
			return fmt.Errorf("%w: edge %d parent %d is not older than child %d", ErrBadTables, j, e.Parent, e.Child)
		}
	}

	// A child may have at most one parent at any position.
	byChild := make([]int, len(tc.Edges))
	for j := range byChild {
		byChild[j] = j
	}
	sort.SliceStable(byChild, func(a, b int) bool {
		ea, eb := tc.Edges[byChild[a]], tc.Edges[byChild[b]]
		if ea.Child != eb.Child {
			return ea.Child < eb.Child
		}
		return ea.Left < eb.Left
	})
	for k := 1; k < len(byChild); k++ {
		prev, e := tc.Edges[byChild[k-1]], tc.Edges[byChild[k]]
		if e.Child == prev.Child && e.Left < prev.Right {
			return fmt.Errorf("%w: edges %d and %d give child %d overlapping parents", ErrBadTables, byChild[k-1], byChild[k], e.Child)
		}
	}

	for j, s := range tc.Sites {
		if !(s.Position >= 0 && s.Position < L) {
			return fmt.Errorf("%w: site %d position %v outside [0, %v)", ErrBadTables, j, s.Position, L)
		}
		if j > 0 && s.Position <= tc.Sites[j-1].Position {
			return fmt.Errorf("%w: site %d position %v is not after site %d", ErrBadTables, j, s.Position, j-1)
		}
	}

	numSites := int32(len(tc.Sites))
	for j, m := range tc.Mutations {
		if m.Site < 0 || m.Site >= numSites {
			return fmt.Errorf("%w: mutation %d references site %d out of range", ErrBadTables, j, m.Site)
		}
		if j > 0 && m.Site < tc.Mutations[j-1].Site {
			return fmt.Errorf("%w: mutation %d is not grouped by site", ErrBadTables, j)
		}
		if !validNode(m.Node) {
			return fmt.Errorf("%w: mutation %d references node %d out of range", ErrBadTables, j, m.Node)
		}
	}

	return nil
}

func (ts *TreeSequence) NumNodes() int { return len(ts.tables.Nodes) }
func (ts *TreeSequence) NumSamples() int { return len(ts.samples) }
func (ts *TreeSequence) NumSites() int { return len(ts.sites) }
func (ts *TreeSequence) NumMutations() int { return len(ts.tables.Mutations) }
func (ts *TreeSequence) NumTrees() int { return len(ts.breakpoints) - 1 }
func (ts *TreeSequence) SequenceLength() float64 {
	return ts.tables.SequenceLength
}

// Samples returns the sample node ids in increasing order. The slice must not
// be modified.
func (ts *TreeSequence) Samples() []NodeID { return ts.samples }

// Sites returns all sites in position order. The slice must not be modified.
func (ts *TreeSequence) Sites() []Site { return ts.sites }

// Site returns the site at index i.
func (ts *TreeSequence) Site(i int) *Site { return &ts.sites[i] }

// Breakpoints returns the sorted tree boundaries, including 0 and the
// sequence length.
func (ts *TreeSequence) Breakpoints() []float64 { return ts.breakpoints }

func (ts *TreeSequence) Node(u NodeID) Node { return ts.tables.Nodes[u] }

func (ts *TreeSequence) ValidNode(u NodeID) bool {
	return u >= 0 && int(u) < len(ts.tables.Nodes)
}

func (ts *TreeSequence) IsSample(u NodeID) bool {
	return ts.ValidNode(u) && ts.tables.Nodes[u].IsSample()
}

// Provenances returns the provenance records carried by the tables.
func (ts *TreeSequence) Provenances() []Provenance { return ts.tables.Provenances }

// Tables returns the underlying tables. They must not be modified.
func (ts *TreeSequence) Tables() *TableCollection { return ts.tables }
