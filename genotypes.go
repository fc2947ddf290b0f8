package tskit

// GenotypeWidth selects how many bits hold each genotype code.
type GenotypeWidth uint8

const (
	Genotypes8Bit  GenotypeWidth = 8
	Genotypes16Bit GenotypeWidth = 16
)

// MissingData is the code reported by Genotypes.At for samples that are
// isolated in the tree covering the site.
const MissingData = -1

const (
	missing8  = 0xFF
	missing16 = 0xFFFF
)

func (w GenotypeWidth) String() string {
	switch w {
	case Genotypes8Bit:
		return "8-bit"
	case Genotypes16Bit:
		return "16-bit"

	default:
		return "Illegal selection"
	}
}

// MaxAlleles is the number of distinct alleles a site may have at this
// width. The largest code value is reserved for missing data.
func (w GenotypeWidth) MaxAlleles() int {
	if w == Genotypes16Bit {
		return missing16
	}
	return missing8
}

// Genotypes holds one allele code per sample. Exactly one of U8 and U16 is
// in use, as chosen by Width.
type Genotypes struct {
	Width GenotypeWidth
	U8    []uint8
	U16   []uint16
}

func newGenotypes(w GenotypeWidth, n int) Genotypes {
	g := Genotypes{Width: w}
	if w == Genotypes16Bit {
		g.U16 = make([]uint16, n)
	} else {
		g.U8 = make([]uint8, n)
	}
	return g
}

func (g *Genotypes) Len() int {
	if g.Width == Genotypes16Bit {
		return len(g.U16)
	}
	return len(g.U8)
}

// At returns the allele code of the sample in row j, or MissingData.
func (g *Genotypes) At(j int) int {
	if g.Width == Genotypes16Bit {
		if g.U16[j] == missing16 {
			return MissingData
		}
		return int(g.U16[j])
	}
	if g.U8[j] == missing8 {
		return MissingData
	}
	return int(g.U8[j])
}

func (g *Genotypes) set(j int, code int) {
	if g.Width == Genotypes16Bit {
		g.U16[j] = uint16(code)
	} else {
		g.U8[j] = uint8(code)
	}
}

func (g *Genotypes) setMissing(j int) {
	if g.Width == Genotypes16Bit {
		g.U16[j] = missing16
	} else {
		g.U8[j] = missing8
	}
}

// Codes returns the genotypes widened to int, with MissingData for missing
// calls. It allocates; use At in loops.
func (g *Genotypes) Codes() []int {
	out := make([]int, g.Len())
	for j := range out {
		out[j] = g.At(j)
	}
	return out
}

func (g Genotypes) clone() Genotypes {
	c := Genotypes{Width: g.Width}
	if g.U8 != nil {
		c.U8 = append([]uint8(nil), g.U8...)
	}
	if g.U16 != nil {
		c.U16 = append([]uint16(nil), g.U16...)
	}
	return c
}
