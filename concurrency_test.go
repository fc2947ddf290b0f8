package tskit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestConcurrentReadersShareTreeSequence(t *testing.T) {
	ts := multiSiteTreeSequence(t)

	vr, err := ts.NewVariantReader(nil, Options{})
	require.NoError(t, err)
	want := readAll(t, vr)

	const nReaders = 8
	got := make([][]*Variant, nReaders)
	var g errgroup.Group
	for i := 0; i < nReaders; i++ {
		i := i
		g.Go(func() error {
			vr, err := ts.NewVariantReader(nil, Options{Width: []GenotypeWidth{Genotypes8Bit, Genotypes16Bit}[i%2]})
			if err != nil {
				return err
			}
			return vr.Each(func(v *Variant) error {
				got[i] = append(got[i], v.Copy())
				return nil
			})
		})
	}
	require.NoError(t, g.Wait())

	for i := range got {
		require.Len(t, got[i], len(want))
		for k := range want {
			assert.Equal(t, want[k].Alleles, got[i][k].Alleles)
			assert.Equal(t, want[k].Genotypes.Codes(), got[i][k].Genotypes.Codes())
		}
	}
}
