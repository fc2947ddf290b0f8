package main

import (
	"flag"
	"fmt"
	"log"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/andrewkern/tskit"
	"github.com/carbocation/pfx"
)

func main() {
	path := flag.String("db", "", "Filename of the tables database to process")
	flag.Parse()

	if *path == "" {
		flag.PrintDefaults()
		log.Fatalln("No tables database given")
	}

	if strings.HasPrefix(*path, "~/") {
		usr, err := user.Current()
		if err != nil {
			log.Fatalln(pfx.Err(err))
		}
		*path = filepath.Join(usr.HomeDir, (*path)[2:])
	}

	db, err := tskit.OpenTablesDB(*path)
	if err != nil {
		log.Fatalln(err)
	}
	tc, err := db.Load()
	db.Close()
	if err != nil {
		log.Fatalln(err)
	}
	ts, err := tskit.NewTreeSequence(tc)
	if err != nil {
		log.Fatalln(err)
	}

	// Each worker reads every site for its own slice of the samples. The
	// tree sequence is shared read-only; readers are not.
	nWorkers := runtime.NumCPU()
	if nWorkers > ts.NumSamples() {
		nWorkers = ts.NumSamples()
	}
	log.Println("Launching", nWorkers, "workers over", ts.NumSamples(), "samples")

	output := make(chan DerivedCounter)
	var wg sync.WaitGroup
	samples := ts.Samples()
	for i := 0; i < nWorkers; i++ {
		lo := i * len(samples) / nWorkers
		hi := (i + 1) * len(samples) / nWorkers
		wg.Add(1)
		go func(workerID int, part []tskit.NodeID) {
			defer wg.Done()
			Worker(workerID, ts, part, output)
		}(i, samples[lo:hi])
	}
	go func() {
		wg.Wait()
		close(output)
	}()

	accumulator := DerivedCounter{Derived: make([]int, ts.NumSites())}
	for o := range output {
		accumulator.Missing += o.Missing
		for k, n := range o.Derived {
			accumulator.Derived[k] += n
		}
	}

	for k, n := range accumulator.Derived {
		if k > 10 {
			break
		}
		site := ts.Site(k)
		fmt.Printf("%d) position %v: %d of %d samples carry a derived allele\n", k, site.Position, n, ts.NumSamples())
	}
	log.Println("Missing genotype calls:", accumulator.Missing)
}

// DerivedCounter tallies, per site, the samples carrying any allele other
// than the ancestral one.
type DerivedCounter struct {
	Derived []int
	Missing int
}

func Worker(workerID int, ts *tskit.TreeSequence, samples []tskit.NodeID, output chan<- DerivedCounter) {
	vr, err := ts.NewVariantReader(samples, tskit.Options{Width: tskit.Genotypes16Bit})
	if err != nil {
		log.Printf("Worker %d exited: %v\n", workerID, err)
		return
	}
	defer vr.Close()

	counts := DerivedCounter{Derived: make([]int, ts.NumSites())}
	err = vr.Each(func(v *tskit.Variant) error {
		for j := 0; j < v.Genotypes.Len(); j++ {
			switch code := v.Genotypes.At(j); {
			case code == tskit.MissingData:
				counts.Missing++
			case code > 0:
				counts.Derived[v.Site.ID]++
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Worker %d exited: %v\n", workerID, err)
		return
	}

	output <- counts
}
