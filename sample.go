package tskit

import "fmt"

// sampleIndex maps node ids to dense output rows. Nodes that are not
// selected map to -1.
type sampleIndex struct {
	samples []NodeID
	rows    []int32
}

func newSampleIndex(ts *TreeSequence, samples []NodeID) (*sampleIndex, error) {
	if samples == nil {
		samples = ts.Samples()
	}

	si := &sampleIndex{
		samples: make([]NodeID, len(samples)),
		rows:    make([]int32, ts.NumNodes()),
	}
	copy(si.samples, samples)
	for i := range si.rows {
		si.rows[i] = -1
	}

	for j, u := range samples {
		if !ts.ValidNode(u) {
			return nil, fmt.Errorf("%w: node %d out of range [0, %d)", ErrInvalidSampleList, u, ts.NumNodes())
		}
		if !ts.IsSample(u) {
			return nil, fmt.Errorf("%w: node %d is not a sample", ErrInvalidSampleList, u)
		}
		if si.rows[u] != -1 {
			return nil, fmt.Errorf("%w: node %d listed twice", ErrInvalidSampleList, u)
		}
		si.rows[u] = int32(j)
	}

	return si, nil
}

// row returns the output row of u, or -1.
func (si *sampleIndex) row(u NodeID) int {
	if u < 0 || int(u) >= len(si.rows) {
		return -1
	}
	return int(si.rows[u])
}

func (si *sampleIndex) len() int {
	return len(si.samples)
}
