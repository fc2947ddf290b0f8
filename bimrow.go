package tskit

import (
	"fmt"
	"math"

	"github.com/carbocation/genomisc"
)

// BIMRow describes a biallelic site as a PLINK variant row. The coordinate is
// the site position rounded down to an integer base pair, and the variant id
// is "<chromosome>:<coordinate>". Allele1 is the derived allele and Allele2
// the ancestral one, following PLINK's minor/major convention.
func (v *Variant) BIMRow(chromosome string) (genomisc.BIMRow, error) {
	if len(v.Alleles) != 2 {
		return genomisc.BIMRow{}, fmt.Errorf("site %d has %d alleles; only biallelic sites have a BIM row", v.Site.ID, len(v.Alleles))
	}

	coord := uint32(math.Floor(v.Site.Position))
	return genomisc.BIMRow{
		Chromosome: chromosome,
		Coordinate: coord,
		VariantID:  fmt.Sprintf("%s:%d", chromosome, coord),
		Allele1:    v.Alleles[1].String(),
		Allele2:    v.Alleles[0].String(),
	}, nil
}
