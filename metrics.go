package tskit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	variantsDecoded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tskit_variants_decoded_total",
			Help: "Sites decoded into genotypes by variant readers",
		},
		[]string{"width"},
	)

	missingGenotypes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tskit_missing_genotypes_total",
			Help: "Genotype calls set to missing because the sample was isolated",
		},
	)

	allelesInterned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tskit_derived_alleles_interned_total",
			Help: "Derived alleles assigned a new code",
		},
	)

	haplotypeBuildSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tskit_haplotype_matrix_build_seconds",
			Help:    "Time taken to materialize a haplotype matrix",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		},
	)
)
