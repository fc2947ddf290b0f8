package tskit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// threeSampleTables builds the single tree
//
//	    4
//	   / \
//	  3   \
//	 / \   \
//	0   1   2
//
// over [0, 10) with no sites.
func threeSampleTables() *TableCollection {
	tc := NewTableCollection(10)
	for i := 0; i < 3; i++ {
		tc.AddNode(NodeIsSample, 0)
	}
	tc.AddNode(0, 1)
	tc.AddNode(0, 2)
	tc.AddEdge(0, 10, 3, 0)
	tc.AddEdge(0, 10, 3, 1)
	tc.AddEdge(0, 10, 4, 2)
	tc.AddEdge(0, 10, 4, 3)
	return tc
}

// twoTreeTables builds two trees over [0, 10) split at 5:
//
//	[0, 5):  4(3(0, 1), 2)
//	[5, 10): 4(0, 5(1, 2))
func twoTreeTables() *TableCollection {
	tc := NewTableCollection(10)
	for i := 0; i < 3; i++ {
		tc.AddNode(NodeIsSample, 0)
	}
	tc.AddNode(0, 1)
	tc.AddNode(0, 2)
	tc.AddNode(0, 1)
	tc.AddEdge(0, 5, 3, 0)
	tc.AddEdge(0, 5, 3, 1)
	tc.AddEdge(0, 5, 4, 3)
	tc.AddEdge(0, 5, 4, 2)
	tc.AddEdge(5, 10, 5, 1)
	tc.AddEdge(5, 10, 5, 2)
	tc.AddEdge(5, 10, 4, 0)
	tc.AddEdge(5, 10, 4, 5)
	return tc
}

func mustTreeSequence(t *testing.T, tc *TableCollection) *TreeSequence {
	t.Helper()
	ts, err := NewTreeSequence(tc)
	require.NoError(t, err)
	return ts
}

// readAll decodes every site, copying each variant.
func readAll(t *testing.T, vr *VariantReader) []*Variant {
	t.Helper()
	var out []*Variant
	for v := vr.Read(); v != nil; v = vr.Read() {
		out = append(out, v.Copy())
	}
	require.NoError(t, vr.Error())
	return out
}
