package tskit

import "fmt"

// Allele is the byte string carried by a site's ancestral state or a
// mutation's derived state. It may be empty or longer than one character.
type Allele string

func (a Allele) String() string {
	return string(a)
}

// AlleleTable interns the alleles observed at one site. Codes are handed out
// in discovery order, starting with the ancestral allele at code 0.
type AlleleTable struct {
	maxAlleles int
	codes      map[Allele]int
	alleles    []Allele
}

// NewAlleleTable returns a table that holds at most maxAlleles distinct
// alleles per site.
func NewAlleleTable(maxAlleles int) *AlleleTable {
	return &AlleleTable{
		maxAlleles: maxAlleles,
		codes:      make(map[Allele]int),
	}
}

// Reset clears the table for a new site and registers ancestral as code 0.
func (at *AlleleTable) Reset(ancestral Allele) {
	for k := range at.codes {
		delete(at.codes, k)
	}
	at.alleles = at.alleles[:0]
	at.codes[ancestral] = 0
	at.alleles = append(at.alleles, ancestral)
}

// Intern returns the code for allele, assigning the next free code if the
// allele has not been seen at this site.
func (at *AlleleTable) Intern(allele Allele) (int, error) {
	if code, ok := at.codes[allele]; ok {
		return code, nil
	}
	if len(at.alleles) >= at.maxAlleles {
		return 0, fmt.Errorf("%w: allele %q would be number %d, limit is %d", ErrTooManyAlleles, allele, len(at.alleles)+1, at.maxAlleles)
	}
	code := len(at.alleles)
	at.codes[allele] = code
	at.alleles = append(at.alleles, allele)
	allelesInterned.Inc()
	return code, nil
}

// Alleles returns the interned alleles indexed by code. The slice is reused
// by the next Reset.
func (at *AlleleTable) Alleles() []Allele {
	return at.alleles
}

func (at *AlleleTable) Len() int {
	return len(at.alleles)
}
