// Command tsgeno decodes genotypes and haplotypes from tree sequence tables
// stored in SQLite, locally or in Google Cloud Storage.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/andrewkern/tskit"
	"github.com/carbocation/pfx"
	"github.com/spf13/cobra"
)

var (
	dbPath     string
	configPath string
	width      int
	verbose    bool

	outPath     string
	compression string
)

var rootCmd = &cobra.Command{
	Use:   "tsgeno",
	Short: "Decode genotypes and haplotypes from a tree sequence",
	Long: `tsgeno reads tree sequence tables from a SQLite database (a local path or
gs://bucket/object) and writes per-site genotypes or per-sample haplotypes.`,
	SilenceUsage: true,
}

var genotypesCmd = &cobra.Command{
	Use:   "genotypes",
	Short: "Print one line per site: position, alleles, genotype codes",
	RunE:  runGenotypes,
}

var haplotypesCmd = &cobra.Command{
	Use:   "haplotypes",
	Short: "Print one line per sample: node id and haplotype",
	RunE:  runHaplotypes,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the haplotype matrix in binary form",
	RunE:  runExport,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Tables database (path or gs://bucket/object)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML options file")
	rootCmd.PersistentFlags().IntVar(&width, "width", 0, "Genotype width in bits (8 or 16); overrides the config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug records to stderr")
	rootCmd.MarkPersistentFlagRequired("db")

	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file")
	exportCmd.Flags().StringVar(&compression, "compression", "zstd", "none, zlib or zstd")
	exportCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(genotypesCmd, haplotypesCmd, exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadOptions() (tskit.Options, error) {
	var opts tskit.Options
	if configPath != "" {
		var err error
		if opts, err = tskit.LoadOptions(configPath); err != nil {
			return opts, err
		}
	}
	if width != 0 {
		opts.Width = tskit.GenotypeWidth(width)
	}
	if verbose {
		opts.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return opts, nil
}

func loadTreeSequence(ctx context.Context) (*tskit.TreeSequence, error) {
	db, cleanup, err := tskit.OpenTablesDBContext(ctx, dbPath)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	defer db.Close()

	tc, err := db.Load()
	if err != nil {
		return nil, err
	}

	ts, err := tskit.NewTreeSequence(tc)
	if err != nil {
		return nil, pfx.Err(err)
	}
	log.Printf("Loaded %d samples, %d sites, %d trees from %s\n", ts.NumSamples(), ts.NumSites(), ts.NumTrees(), dbPath)

	return ts, nil
}

func runGenotypes(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions()
	if err != nil {
		return err
	}
	ts, err := loadTreeSequence(cmd.Context())
	if err != nil {
		return err
	}

	vr, err := ts.NewVariantReader(nil, opts)
	if err != nil {
		return err
	}
	defer vr.Close()

	w := bufio.NewWriter(cmd.OutOrStdout())
	defer w.Flush()

	alleles := make([]string, 0, 4)
	return vr.Each(func(v *tskit.Variant) error {
		alleles = alleles[:0]
		for _, a := range v.Alleles {
			alleles = append(alleles, a.String())
		}
		fmt.Fprintf(w, "%v\t%s\t", v.Site.Position, strings.Join(alleles, ","))
		for j := 0; j < v.Genotypes.Len(); j++ {
			if j > 0 {
				w.WriteByte(' ')
			}
			if code := v.Genotypes.At(j); code == tskit.MissingData {
				w.WriteByte('.')
			} else {
				fmt.Fprint(w, code)
			}
		}
		return w.WriteByte('\n')
	})
}

func runHaplotypes(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions()
	if err != nil {
		return err
	}
	ts, err := loadTreeSequence(cmd.Context())
	if err != nil {
		return err
	}

	hg, err := ts.NewHaplotypeGenerator(opts)
	if err != nil {
		return err
	}
	defer hg.Close()

	w := bufio.NewWriter(cmd.OutOrStdout())
	defer w.Flush()
	for _, u := range ts.Samples() {
		h, err := hg.Haplotype(u)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d\t%s\n", u, h)
	}

	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	c, err := tskit.ParseCompression(compression)
	if err != nil {
		return err
	}
	opts, err := loadOptions()
	if err != nil {
		return err
	}
	ts, err := loadTreeSequence(cmd.Context())
	if err != nil {
		return err
	}

	hg, err := ts.NewHaplotypeGenerator(opts)
	if err != nil {
		return err
	}
	defer hg.Close()

	f, err := os.Create(outPath)
	if err != nil {
		return pfx.Err(err)
	}
	w := bufio.NewWriter(f)
	if err := hg.Encode(w, c); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return pfx.Err(err)
	}
	if err := f.Close(); err != nil {
		return pfx.Err(err)
	}

	log.Printf("Wrote %d x %d haplotype matrix (%s) to %s\n", hg.NSamples, hg.NSites, c, outPath)
	return nil
}
