package tskit

import (
	"fmt"
	"io"
	"log/slog"
)

// VariantReader decodes the sites of a tree sequence into genotypes, one site
// per Read, in position order. It makes a single forward pass and cannot be
// restarted. A VariantReader is not safe for concurrent use, but any number
// of readers may run over the same TreeSequence at once.
type VariantReader struct {
	VariantsSeen uint32

	ts       *TreeSequence
	tree     *Tree
	samples  *sampleIndex
	alleles  *AlleleTable
	assigner *stateAssigner
	options  Options
	logger   *slog.Logger

	siteIndex int
	finished  bool
	err       error

	// Reused by every Read
	variant Variant
}

// NewVariantReader prepares a reader over the given samples, which become
// genotype rows in the order listed. A nil samples slice selects every sample
// of the tree sequence.
func (ts *TreeSequence) NewVariantReader(samples []NodeID, options Options) (*VariantReader, error) {
	options, err := options.normalize()
	if err != nil {
		return nil, err
	}

	si, err := newSampleIndex(ts, samples)
	if err != nil {
		return nil, err
	}

	vr := &VariantReader{
		ts:       ts,
		tree:     NewTree(ts),
		samples:  si,
		alleles:  NewAlleleTable(options.Width.MaxAlleles()),
		assigner: newStateAssigner(ts.NumNodes()),
		options:  options,
		logger:   options.Logger,
		finished: ts.NumSites() == 0,
	}
	vr.variant.Genotypes = newGenotypes(options.Width, si.len())

	vr.logger.Debug("variant reader ready",
		"samples", si.len(),
		"sites", ts.NumSites(),
		"trees", ts.NumTrees(),
		"width", options.Width.String())

	return vr, nil
}

// Error returns the error that stopped the reader, if any.
func (vr *VariantReader) Error() error {
	return vr.err
}

// Finished reports whether every site has been read.
func (vr *VariantReader) Finished() bool {
	return vr.finished
}

// Read decodes the next site. It returns nil once all sites have been read
// or after an error; check Error to tell the two apart. The returned Variant
// is only valid until the next call to Read.
func (vr *VariantReader) Read() *Variant {
	if vr.finished || vr.err != nil {
		return nil
	}

	site := vr.ts.Site(vr.siteIndex)

	before := vr.tree.Index()
	if err := vr.tree.AdvanceTo(site.Position); err != nil {
		vr.err = fmt.Errorf("site %d: %w", site.ID, err)
		return nil
	}
	if vr.tree.Index() != before {
		left, right := vr.tree.Interval()
		vr.logger.Debug("advanced tree", "index", vr.tree.Index(), "left", left, "right", right)
	}

	nMissing, err := vr.assigner.assign(site, vr.tree, vr.samples, vr.alleles, &vr.variant.Genotypes)
	if err != nil {
		vr.err = err
		vr.logger.Debug("variant decoding failed", "site", site.ID, "err", err)
		return nil
	}

	vr.variant.Site = site
	vr.variant.Alleles = vr.alleles.Alleles()

	vr.VariantsSeen++
	vr.siteIndex++
	if vr.siteIndex == vr.ts.NumSites() {
		vr.finished = true
	}

	variantsDecoded.WithLabelValues(vr.options.Width.String()).Inc()
	if nMissing > 0 {
		missingGenotypes.Add(float64(nMissing))
	}

	return &vr.variant
}

// Each reads every remaining site and calls fn with it. The Variant passed to
// fn must not be retained after fn returns. Each stops at the first error
// from fn or from decoding.
func (vr *VariantReader) Each(fn func(v *Variant) error) error {
	for v := vr.Read(); v != nil; v = vr.Read() {
		if err := fn(v); err != nil {
			return err
		}
	}
	return vr.Error()
}

// Close releases the reader's buffers. The reader cannot be used afterwards.
func (vr *VariantReader) Close() error {
	vr.tree = nil
	vr.assigner = nil
	vr.variant = Variant{}
	vr.finished = true
	return nil
}

// PrintState writes a human readable dump of the reader's state.
func (vr *VariantReader) PrintState(w io.Writer) {
	fmt.Fprintf(w, "Variant reader state\n")
	fmt.Fprintf(w, "num_samples = %d\n", vr.samples.len())
	fmt.Fprintf(w, "num_sites = %d\n", vr.ts.NumSites())
	fmt.Fprintf(w, "width = %s\n", vr.options.Width)
	fmt.Fprintf(w, "max_alleles = %d\n", vr.options.Width.MaxAlleles())
	fmt.Fprintf(w, "site_index = %d\n", vr.siteIndex)
	fmt.Fprintf(w, "variants_seen = %d\n", vr.VariantsSeen)
	fmt.Fprintf(w, "finished = %v\n", vr.finished)
	fmt.Fprintf(w, "error = %v\n", vr.err)
	if vr.tree != nil {
		left, right := vr.tree.Interval()
		fmt.Fprintf(w, "tree = %d [%v, %v)\n", vr.tree.Index(), left, right)
	}
	fmt.Fprintf(w, "samples\n")
	for j, u := range vr.samples.samples {
		fmt.Fprintf(w, "\t%d -> node %d\n", j, u)
	}
	if vr.variant.Site != nil {
		fmt.Fprintf(w, "current site %d at %v\n", vr.variant.Site.ID, vr.variant.Site.Position)
		for code, a := range vr.variant.Alleles {
			fmt.Fprintf(w, "\tallele %d = %q\n", code, a)
		}
	}
}
