package tskit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariantBIMRow(t *testing.T) {
	tc := threeSampleTables()
	s0 := tc.AddSite(5.7, "A")
	tc.AddMutation(s0, 3, "T")
	tc.AddSite(6, "C")
	ts := mustTreeSequence(t, tc)

	vr, err := ts.NewVariantReader(nil, Options{})
	require.NoError(t, err)

	row, err := vr.Read().BIMRow("20")
	require.NoError(t, err)
	assert.Equal(t, "20", row.Chromosome)
	assert.Equal(t, uint32(5), row.Coordinate)
	assert.Equal(t, "20:5", row.VariantID)
	assert.Equal(t, "T", row.Allele1)
	assert.Equal(t, "A", row.Allele2)

	_, err = vr.Read().BIMRow("20")
	assert.Error(t, err)
}
