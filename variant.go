package tskit

// Variant is the decoded state of one site. A Variant returned by
// VariantReader.Read shares its Alleles and Genotypes with the reader and is
// overwritten by the next Read; use Copy to keep it.
type Variant struct {
	Site      *Site
	Alleles   []Allele
	Genotypes Genotypes
}

func (v *Variant) NAlleles() int {
	return len(v.Alleles)
}

// HasMissingData reports whether any sample is missing at this site.
func (v *Variant) HasMissingData() bool {
	for j := 0; j < v.Genotypes.Len(); j++ {
		if v.Genotypes.At(j) == MissingData {
			return true
		}
	}
	return false
}

// Copy returns a Variant that owns its alleles and genotypes.
func (v *Variant) Copy() *Variant {
	return &Variant{
		Site:      v.Site,
		Alleles:   append([]Allele(nil), v.Alleles...),
		Genotypes: v.Genotypes.clone(),
	}
}
