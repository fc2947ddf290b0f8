package tskit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTreeSequence(t *testing.T) {
	tc := threeSampleTables()
	site := tc.AddSite(1, "A")
	tc.AddMutation(site, 3, "T")
	tc.AddMutation(site, 0, "G")
	tc.AddSite(2, "C")

	ts := mustTreeSequence(t, tc)
	assert.Equal(t, 5, ts.NumNodes())
	assert.Equal(t, 3, ts.NumSamples())
	assert.Equal(t, 2, ts.NumSites())
	assert.Equal(t, 2, ts.NumMutations())
	assert.Equal(t, 1, ts.NumTrees())
	assert.Equal(t, []NodeID{0, 1, 2}, ts.Samples())
	assert.True(t, ts.IsSample(2))
	assert.False(t, ts.IsSample(3))
	assert.False(t, ts.IsSample(17))

	s := ts.Site(0)
	require.Len(t, s.Mutations, 2)
	assert.Equal(t, 0, s.Mutations[0].Rank)
	assert.Equal(t, NodeID(0), s.Mutations[1].Node)
	assert.Equal(t, 1, s.Mutations[1].Rank)
	assert.Empty(t, ts.Site(1).Mutations)
}

func TestNewTreeSequenceRejectsBadTables(t *testing.T) {
	for name, mutate := range map[string]func(tc *TableCollection){
		"zero length":         func(tc *TableCollection) { tc.SequenceLength = 0 },
		"edge past end":       func(tc *TableCollection) { tc.AddEdge(5, 11, 4, 0) },
		"empty edge":          func(tc *TableCollection) { tc.AddEdge(5, 5, 4, 0) },
		"edge node range":     func(tc *TableCollection) { tc.AddEdge(0, 1, 9, 0) },
		"child older":         func(tc *TableCollection) { tc.AddEdge(0, 1, 0, 4) },
		"overlapping parents": func(tc *TableCollection) { tc.AddEdge(0, 10, 4, 0) },
		"partial overlap":     func(tc *TableCollection) { tc.AddEdge(9.5, 10, 4, 1) },
		"site past end":       func(tc *TableCollection) { tc.AddSite(10, "A") },
		"mutation site range": func(tc *TableCollection) { tc.AddMutation(0, 0, "T") },
		"unsorted sites": func(tc *TableCollection) {
			tc.AddSite(3, "A")
			tc.AddSite(2, "A")
		},
		"duplicate position": func(tc *TableCollection) {
			tc.AddSite(3, "A")
			tc.AddSite(3, "A")
		},
		"mutation node range": func(tc *TableCollection) {
			s := tc.AddSite(1, "A")
			tc.AddMutation(s, 12, "T")
		},
		"ungrouped mutations": func(tc *TableCollection) {
			tc.AddSite(1, "A")
			tc.AddSite(2, "A")
			tc.AddMutation(1, 0, "T")
			tc.AddMutation(0, 0, "T")
		},
	} {
		t.Run(name, func(t *testing.T) {
			tc := threeSampleTables()
			mutate(tc)
			_, err := NewTreeSequence(tc)
			assert.True(t, errors.Is(err, ErrBadTables), "got %v", err)
		})
	}
}
