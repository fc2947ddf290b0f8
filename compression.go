package tskit

import (
	"fmt"
	"io"

	"github.com/carbocation/pfx"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// Compression indicates how (and whether) the body of an encoded haplotype
// matrix is compressed
type Compression uint32

const (
	CompressionDisabled Compression = iota
	CompressionZLIB
	CompressionZStandard
)

func (c Compression) String() string {
	switch c {
	case CompressionDisabled:
		return "none"
	case CompressionZLIB:
		return "zlib"
	case CompressionZStandard:
		return "zstd"

	default:
		return "Illegal selection"
	}
}

// ParseCompression maps "none", "zlib" or "zstd" to a Compression.
func ParseCompression(name string) (Compression, error) {
	for _, c := range []Compression{CompressionDisabled, CompressionZLIB, CompressionZStandard} {
		if c.String() == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown compression %q", name)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func compressedWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case CompressionDisabled:
		return nopWriteCloser{w}, nil
	case CompressionZLIB:
		return zlib.NewWriter(w), nil
	case CompressionZStandard:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return nil, pfx.Err(err)
		}
		return enc, nil
	}
	return nil, fmt.Errorf("compression choice %s is not supported", c)
}

// decompressedReader returns a reader over the decompressed stream and a
// function releasing the decoder.
func decompressedReader(r io.Reader, c Compression) (io.Reader, func(), error) {
	switch c {
	case CompressionDisabled:
		return r, func() {}, nil
	case CompressionZLIB:
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, nil, pfx.Err(err)
		}
		return zr, func() { zr.Close() }, nil
	case CompressionZStandard:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, pfx.Err(err)
		}
		return dec, dec.Close, nil
	}
	return nil, nil, fmt.Errorf("compression choice %s is not supported", c)
}
