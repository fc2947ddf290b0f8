package tskit

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/carbocation/pfx"
)

// MatrixMagicNumber opens every encoded haplotype matrix.
const MatrixMagicNumber = "tshm"

// MatrixVersion is the encoding version written by Encode.
const MatrixVersion uint32 = 1

const (
	offsetMagicNumber = 0
	offsetVersion     = 4
	offsetCompression = 8
	offsetNumSamples  = 12
	offsetNumSites    = 16
	matrixHeaderSize  = 20
)

// maxMatrixCells bounds the samples x sites product accepted from an encoded
// header.
const maxMatrixCells = math.MaxInt32

// HaplotypeMatrix holds one single-character allele per sample and site,
// row-major by sample.
type HaplotypeMatrix struct {
	NSamples uint32
	NSites   uint32
	Samples  []NodeID

	rowOf map[NodeID]int
	data  []byte
}

func newHaplotypeMatrix(samples []NodeID, nSites int) *HaplotypeMatrix {
	m := &HaplotypeMatrix{
		NSamples: uint32(len(samples)),
		NSites:   uint32(nSites),
		Samples:  append([]NodeID(nil), samples...),
		rowOf:    make(map[NodeID]int, len(samples)),
		data:     make([]byte, len(samples)*nSites),
	}
	for j, u := range m.Samples {
		m.rowOf[u] = j
	}
	return m
}

// Row returns the haplotype in row j. The slice aliases the matrix and must
// not be modified.
func (m *HaplotypeMatrix) Row(j int) []byte {
	n := int(m.NSites)
	return m.data[j*n : (j+1)*n : (j+1)*n]
}

// Haplotype returns the haplotype of sample node u. It is keyed by node id,
// not by row; use Row for the j'th sample. The slice aliases the matrix and
// must not be modified.
func (m *HaplotypeMatrix) Haplotype(u NodeID) ([]byte, error) {
	j, ok := m.rowOf[u]
	if !ok {
		return nil, fmt.Errorf("%w: node %d is not a row of the haplotype matrix", ErrInvalidSampleID, u)
	}
	return m.Row(j), nil
}

// Encode writes the matrix as a little-endian header followed by the sample
// ids and the rows, compressed as requested.
func (m *HaplotypeMatrix) Encode(w io.Writer, c Compression) error {
	header := make([]byte, matrixHeaderSize)
	copy(header[offsetMagicNumber:], MatrixMagicNumber)
	binary.LittleEndian.PutUint32(header[offsetVersion:], MatrixVersion)
	binary.LittleEndian.PutUint32(header[offsetCompression:], uint32(c))
	binary.LittleEndian.PutUint32(header[offsetNumSamples:], m.NSamples)
	binary.LittleEndian.PutUint32(header[offsetNumSites:], m.NSites)
	if _, err := w.Write(header); err != nil {
		return pfx.Err(err)
	}

	body, err := compressedWriter(w, c)
	if err != nil {
		return err
	}

	ids := make([]byte, 4*len(m.Samples))
	for j, u := range m.Samples {
		binary.LittleEndian.PutUint32(ids[4*j:], uint32(u))
	}
	if _, err := body.Write(ids); err != nil {
		body.Close()
		return pfx.Err(err)
	}
	if _, err := body.Write(m.data); err != nil {
		body.Close()
		return pfx.Err(err)
	}

	if err := body.Close(); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// ReadHaplotypeMatrix decodes a matrix written by Encode.
func ReadHaplotypeMatrix(r io.Reader) (*HaplotypeMatrix, error) {
	header := make([]byte, matrixHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, pfx.Err(err)
	}

	if magic := string(header[offsetMagicNumber : offsetMagicNumber+4]); magic != MatrixMagicNumber {
		return nil, fmt.Errorf("the header value at offset %d is expected to be the magic number %s, but was %q", offsetMagicNumber, MatrixMagicNumber, magic)
	}
	if v := binary.LittleEndian.Uint32(header[offsetVersion:]); v != MatrixVersion {
		return nil, fmt.Errorf("haplotype matrix version %d is not supported", v)
	}
	c := Compression(binary.LittleEndian.Uint32(header[offsetCompression:]))
	nSamples := binary.LittleEndian.Uint32(header[offsetNumSamples:])
	nSites := binary.LittleEndian.Uint32(header[offsetNumSites:])
	if uint64(nSamples)*4 > maxMatrixCells || uint64(nSamples)*uint64(nSites) > maxMatrixCells {
		return nil, fmt.Errorf("haplotype matrix of %d samples by %d sites exceeds the limit of %d cells", nSamples, nSites, maxMatrixCells)
	}

	body, release, err := decompressedReader(r, c)
	if err != nil {
		return nil, err
	}
	defer release()

	ids := make([]byte, 4*int(nSamples))
	if _, err := io.ReadFull(body, ids); err != nil {
		return nil, pfx.Err(err)
	}
	samples := make([]NodeID, nSamples)
	for j := range samples {
		samples[j] = NodeID(binary.LittleEndian.Uint32(ids[4*j:]))
	}

	m := newHaplotypeMatrix(samples, int(nSites))
	if len(m.rowOf) != len(samples) {
		return nil, fmt.Errorf("%w: duplicate sample ids in encoded matrix", ErrInvalidSampleList)
	}
	if _, err := io.ReadFull(body, m.data); err != nil {
		return nil, pfx.Err(err)
	}

	return m, nil
}
