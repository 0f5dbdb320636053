// Command generate-golden writes the Fibonacci golden file used by the
// calculator tests. Values come from a plain iterative math/big loop that
// shares no code with the calculators.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
)

type goldenEntry struct {
	N      uint64 `json:"n"`
	Result string `json:"result"`
}

// goldenIndices covers the base cases, the uint64 boundary and powers of two
// where limb counts roll over.
var goldenIndices = []uint64{
	0, 1, 2, 3, 4, 5, 10, 20, 50, 92, 93, 94, 100,
	128, 256, 512, 1000, 1024, 2000, 2048, 5000, 8192, 10000,
}

// fibBig computes F(n) by repeated addition.
func fibBig(n uint64) *big.Int {
	a, b := big.NewInt(0), big.NewInt(1)
	for range n {
		a.Add(a, b)
		a, b = b, a
	}
	return a
}

func buildEntries(indices []uint64) []goldenEntry {
	entries := make([]goldenEntry, 0, len(indices))
	for _, n := range indices {
		entries = append(entries, goldenEntry{N: n, Result: fibBig(n).String()})
	}
	return entries
}

func writeGolden(w io.Writer, entries []goldenEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func main() {
	out := flag.String("o", filepath.Join("internal", "fibonacci", "testdata", "fibonacci_golden.json"), "output path")
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "generate-golden: %v\n", err)
		os.Exit(1)
	}
	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate-golden: %v\n", err)
		os.Exit(1)
	}
	if err := writeGolden(f, buildEntries(goldenIndices)); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "generate-golden: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "generate-golden: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d entries to %s\n", len(goldenIndices), *out)
}
