package tskit

import "errors"

var (
	// ErrInvalidSampleList is returned when a sample list contains a
	// duplicate, a node that is not a sample, or an out of range id.
	ErrInvalidSampleList = errors.New("invalid sample list")

	// ErrUnknownMutationNode signals a store inconsistency: a mutation is
	// attached to a node that is not part of the tree covering its site.
	ErrUnknownMutationNode = errors.New("mutation node is not in the current tree")

	// ErrTooManyAlleles is returned when a site has more distinct alleles
	// than the genotype width can encode. Retrying with Genotypes16Bit may
	// succeed.
	ErrTooManyAlleles = errors.New("too many alleles at site")

	// ErrInvalidSampleID is returned by haplotype lookups for ids that are
	// not rows of the matrix.
	ErrInvalidSampleID = errors.New("invalid sample id")

	// ErrMultiCharacterAllele is returned when a haplotype matrix cannot
	// represent an allele as a single character.
	ErrMultiCharacterAllele = errors.New("allele is not a single character")

	ErrBadTables   = errors.New("bad tables")
	ErrOutOfBounds = errors.New("position out of bounds")
)
