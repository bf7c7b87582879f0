package decenttreeio

import (
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// WriteDistanceFile writes a distance matrix to path, gzip-compressing
// it (klauspost/compress/gzip, per SPEC_FULL.md §4's domain-stack
// wiring table) when gzipped is true or path already ends in ".gz".
func WriteDistanceFile(path string, names []string, distances []float64, shape Shape, precision int, gzipped bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if gzipped || strings.HasSuffix(path, ".gz") {
		gw := gzip.NewWriter(f)
		defer gw.Close()

		return WriteDistances(gw, names, distances, shape, precision)
	}

	return WriteDistances(f, names, distances, shape, precision)
}

// ReadDistanceFile reads a distance matrix from path, transparently
// gzip-decompressing when the file starts with the gzip magic number
// (rather than trusting the ".gz" suffix alone, since a caller may
// rename a compressed file).
func ReadDistanceFile(path string) ([]string, []float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	magic := make([]byte, 2)
	n, _ := f.Read(magic)
	if _, err := f.Seek(0, 0); err != nil {
		return nil, nil, err
	}

	if n == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		gr, err := gzip.NewReader(f)
		if err != nil {
			return nil, nil, err
		}
		defer gr.Close()

		return ReadDistances(gr)
	}

	return ReadDistances(f)
}

// WriteNewickFile writes a single Newick-format tree line to path,
// gzip-compressing when gzipped is true or path ends in ".gz".
func WriteNewickFile(path, newick string, gzipped bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if gzipped || strings.HasSuffix(path, ".gz") {
		gw := gzip.NewWriter(f)
		defer gw.Close()
		_, err := gw.Write([]byte(newick + "\n"))

		return err
	}

	_, err = f.WriteString(newick + "\n")

	return err
}
