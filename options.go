package tskit

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/carbocation/pfx"
	"gopkg.in/yaml.v3"
)

// DefaultMissingDataCharacter stands in for missing genotypes in haplotypes.
const DefaultMissingDataCharacter = "-"

// Options configures variant readers and haplotype generators. The zero
// value selects 8-bit genotypes, "-" for missing data and no logging.
type Options struct {
	// Width is Genotypes8Bit (default) or Genotypes16Bit.
	Width GenotypeWidth `yaml:"width"`

	// MissingDataCharacter must be exactly one byte.
	MissingDataCharacter string `yaml:"missing_data_character"`

	// Logger receives debug records. If nil, nothing is logged.
	Logger *slog.Logger `yaml:"-"`
}

func (o Options) normalize() (Options, error) {
	if o.Width == 0 {
		o.Width = Genotypes8Bit
	}
	if o.Width != Genotypes8Bit && o.Width != Genotypes16Bit {
		return o, fmt.Errorf("genotype width %d is not supported; use 8 or 16", o.Width)
	}
	if o.MissingDataCharacter == "" {
		o.MissingDataCharacter = DefaultMissingDataCharacter
	}
	if len(o.MissingDataCharacter) != 1 {
		return o, fmt.Errorf("missing data character %q must be a single byte", o.MissingDataCharacter)
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o, nil
}

// LoadOptions reads Options from a YAML file such as
//
//	width: 16
//	missing_data_character: N
func LoadOptions(path string) (Options, error) {
	var o Options

	data, err := os.ReadFile(path)
	if err != nil {
		return o, pfx.Err(err)
	}
	if err := yaml.Unmarshal(data, &o); err != nil {
		return o, pfx.Err(err)
	}

	if _, err := o.normalize(); err != nil {
		return o, pfx.Err(err)
	}

	return o, nil
}
