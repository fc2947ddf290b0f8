package tskit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// linkedTopology is a hand-built tree whose child lists need not agree with
// its parent pointers.
type linkedTopology struct {
	parent, leftChild, rightSib []NodeID
	nSamples                    int
}

func (l *linkedTopology) NumNodes() int { return len(l.parent) }
func (l *linkedTopology) Parent(u NodeID) NodeID { return l.parent[u] }
func (l *linkedTopology) LeftChild(u NodeID) NodeID { return l.leftChild[u] }
func (l *linkedTopology) RightSib(u NodeID) NodeID { return l.rightSib[u] }
func (l *linkedTopology) IsSample(u NodeID) bool { return int(u) < l.nSamples }
func (l *linkedTopology) IsIsolated(u NodeID) bool {
	return l.parent[u] == NullNode && l.leftChild[u] == NullNode
}
func (l *linkedTopology) Root(u NodeID) NodeID {
	for l.parent[u] != NullNode {
		u = l.parent[u]
	}
	return u
}

// cherry is 2(0, 1); cut drops 1 from the child list of 2 while keeping its
// parent pointer.
func cherry(cut bool) *linkedTopology {
	l := &linkedTopology{
		parent:    []NodeID{2, 2, NullNode},
		leftChild: []NodeID{NullNode, NullNode, 0},
		rightSib:  []NodeID{1, NullNode, NullNode},
		nSamples:  2,
	}
	if cut {
		l.rightSib[0] = NullNode
	}
	return l
}

func TestStateAssignerUnreachableSample(t *testing.T) {
	site := &Site{ID: 7, AncestralState: "A", Mutations: []Mutation{
		{ID: 0, Site: 7, Node: 2, DerivedState: "T", Rank: 0},
	}}
	samples := &sampleIndex{samples: []NodeID{0, 1}, rows: []int32{0, 1, -1}}

	sa := newStateAssigner(3)
	g := newGenotypes(Genotypes8Bit, 2)

	nMissing, err := sa.assign(site, cherry(false), samples, NewAlleleTable(Genotypes8Bit.MaxAlleles()), &g)
	require.NoError(t, err)
	assert.Zero(t, nMissing)
	assert.Equal(t, []int{1, 1}, g.Codes())

	// The scratch space carries over between sites; a sample written on the
	// previous pass must not count as written on this one.
	_, err = sa.assign(site, cherry(true), samples, NewAlleleTable(Genotypes8Bit.MaxAlleles()), &g)
	assert.True(t, errors.Is(err, ErrBadTables), "got %v", err)
	assert.ErrorContains(t, err, "sample 1")
}

func TestStateAssignerHighestRankWins(t *testing.T) {
	site := &Site{ID: 0, AncestralState: "A", Mutations: []Mutation{
		{ID: 0, Node: 0, DerivedState: "C", Rank: 0},
		{ID: 1, Node: 0, DerivedState: "G", Rank: 1},
	}}
	samples := &sampleIndex{samples: []NodeID{0, 1}, rows: []int32{0, 1, -1}}
	alleles := NewAlleleTable(Genotypes8Bit.MaxAlleles())
	g := newGenotypes(Genotypes8Bit, 2)

	_, err := newStateAssigner(3).assign(site, cherry(false), samples, alleles, &g)
	require.NoError(t, err)
	assert.Equal(t, []Allele{"A", "C", "G"}, alleles.Alleles())
	assert.Equal(t, []int{2, 0}, g.Codes())
}
