package tskit

import "fmt"

// topology is the view of the current local tree needed to propagate
// allelic state. *Tree satisfies it.
type topology interface {
	NumNodes() int
	Parent(u NodeID) NodeID
	LeftChild(u NodeID) NodeID
	RightSib(u NodeID) NodeID
	IsSample(u NodeID) bool
	IsIsolated(u NodeID) bool
	Root(u NodeID) NodeID
}

// stateAssigner propagates a site's allelic state from the roots of the
// current tree down to the samples. Its scratch space is sized to the node
// count once and reused for every site.
type stateAssigner struct {
	state    []int
	mutation []int32
	rootSeen []bool

	mutationCodes []int
	roots         []NodeID
	stack         []NodeID

	// written[j] == pass once sample row j has been set during this pass
	written []uint32
	pass    uint32
}

func newStateAssigner(numNodes int) *stateAssigner {
	sa := &stateAssigner{
		state:    make([]int, numNodes),
		mutation: make([]int32, numNodes),
		rootSeen: make([]bool, numNodes),
	}
	for i := range sa.mutation {
		sa.mutation[i] = -1
	}
	return sa
}

// assign writes the genotype of every selected sample at site into g and
// leaves the site's alleles in alleles. It returns the number of samples
// reported as missing.
func (sa *stateAssigner) assign(site *Site, tree topology, samples *sampleIndex, alleles *AlleleTable, g *Genotypes) (int, error) {
	alleles.Reset(site.AncestralState)

	for _, m := range site.Mutations {
		u := m.Node
		if u < 0 || int(u) >= tree.NumNodes() || (tree.IsIsolated(u) && !tree.IsSample(u)) {
			return 0, fmt.Errorf("%w: site %d mutation %d is attached to node %d", ErrUnknownMutationNode, site.ID, m.ID, u)
		}
	}

	// Derived alleles are interned in mutation order so codes do not depend
	// on traversal order.
	sa.mutationCodes = sa.mutationCodes[:0]
	for _, m := range site.Mutations {
		code, err := alleles.Intern(m.DerivedState)
		if err != nil {
			return 0, fmt.Errorf("site %d: %w", site.ID, err)
		}
		sa.mutationCodes = append(sa.mutationCodes, code)
	}

	// Mutations are held in rank order, so the highest rank at a node is
	// the one left in place.
	for _, m := range site.Mutations {
		sa.mutation[m.Node] = int32(m.Rank)
	}
	defer func() {
		for _, m := range site.Mutations {
			sa.mutation[m.Node] = -1
		}
	}()

	if len(sa.written) != samples.len() {
		sa.written = make([]uint32, samples.len())
		sa.pass = 0
	}
	sa.pass++
	if sa.pass == 0 {
		clear(sa.written)
		sa.pass = 1
	}

	nMissing := 0
	sa.roots = sa.roots[:0]
	for j, u := range samples.samples {
		if tree.IsIsolated(u) {
			g.setMissing(j)
			nMissing++
			continue
		}
		r := tree.Root(u)
		if !sa.rootSeen[r] {
			sa.rootSeen[r] = true
			sa.roots = append(sa.roots, r)
		}
	}

	nWritten := 0
	for _, r := range sa.roots {
		sa.rootSeen[r] = false

		sa.stack = append(sa.stack[:0], r)
		for len(sa.stack) > 0 {
			u := sa.stack[len(sa.stack)-1]
			sa.stack = sa.stack[:len(sa.stack)-1]

			state := 0
			if p := tree.Parent(u); p != NullNode {
				state = sa.state[p]
			}
			if k := sa.mutation[u]; k >= 0 {
				state = sa.mutationCodes[k]
			}
			sa.state[u] = state

			if j := samples.row(u); j >= 0 {
				g.set(j, state)
				if sa.written[j] != sa.pass {
					sa.written[j] = sa.pass
					nWritten++
				}
			}

			for c := tree.LeftChild(u); c != NullNode; c = tree.RightSib(c) {
				sa.stack = append(sa.stack, c)
			}
		}
	}

	if nWritten != samples.len()-nMissing {
		for j, u := range samples.samples {
			if sa.written[j] != sa.pass && !tree.IsIsolated(u) {
				return 0, fmt.Errorf("%w: site %d sample %d is not reachable from its root %d", ErrBadTables, site.ID, u, tree.Root(u))
			}
		}
	}

	return nMissing, nil
}
