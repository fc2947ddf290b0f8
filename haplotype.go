package tskit

import (
	"fmt"
	"io"
	"time"
)

// HaplotypeGenerator materializes the haplotype of every sample at
// construction and then answers lookups from the resulting matrix. Alleles
// must be single characters; multi-character alleles cannot be represented.
// Haplotype looks samples up by node id and Row by their index in
// TreeSequence.Samples.
type HaplotypeGenerator struct {
	*HaplotypeMatrix

	ts      *TreeSequence
	options Options
}

// NewHaplotypeGenerator decodes every site of ts for all samples. Missing
// genotypes are written as options.MissingDataCharacter.
func (ts *TreeSequence) NewHaplotypeGenerator(options Options) (*HaplotypeGenerator, error) {
	options, err := options.normalize()
	if err != nil {
		return nil, err
	}
	start := time.Now()

	// Alleles are capped by the single character check, not the width.
	readerOptions := options
	readerOptions.Width = Genotypes16Bit
	vr, err := ts.NewVariantReader(nil, readerOptions)
	if err != nil {
		return nil, err
	}
	defer vr.Close()

	m := newHaplotypeMatrix(ts.Samples(), ts.NumSites())
	nSites := ts.NumSites()
	missing := options.MissingDataCharacter[0]
	chars := make([]byte, 0, 8)

	err = vr.Each(func(v *Variant) error {
		chars = chars[:0]
		for code, a := range v.Alleles {
			if len(a) != 1 {
				return fmt.Errorf("%w: site %d allele %d is %q", ErrMultiCharacterAllele, v.Site.ID, code, a)
			}
			chars = append(chars, a[0])
		}

		k := int(v.Site.ID)
		for j := 0; j < v.Genotypes.Len(); j++ {
			c := missing
			if code := v.Genotypes.At(j); code != MissingData {
				c = chars[code]
			}
			m.data[j*nSites+k] = c
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	haplotypeBuildSeconds.Observe(time.Since(start).Seconds())
	options.Logger.Debug("haplotype matrix built",
		"samples", m.NSamples,
		"sites", m.NSites,
		"elapsed", time.Since(start))

	return &HaplotypeGenerator{
		HaplotypeMatrix: m,
		ts:              ts,
		options:         options,
	}, nil
}

// Close releases the matrix. Haplotypes returned earlier must not be used
// afterwards.
func (hg *HaplotypeGenerator) Close() error {
	hg.HaplotypeMatrix = &HaplotypeMatrix{rowOf: map[NodeID]int{}}
	return nil
}

// PrintState writes a human readable dump of the generator, including every
// haplotype.
func (hg *HaplotypeGenerator) PrintState(w io.Writer) {
	fmt.Fprintf(w, "Haplotype generator state\n")
	fmt.Fprintf(w, "num_samples = %d\n", hg.NSamples)
	fmt.Fprintf(w, "num_sites = %d\n", hg.NSites)
	fmt.Fprintf(w, "sequence_length = %v\n", hg.ts.SequenceLength())
	fmt.Fprintf(w, "missing_data_character = %q\n", hg.options.MissingDataCharacter)
	for j, u := range hg.Samples {
		fmt.Fprintf(w, "%d\tnode %d\t%s\n", j, u, hg.Row(j))
	}
}
