package decenttreeio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/caseysm/decenttree/internal/dmerrors"
)

// Shape selects which triangle of the distance matrix a file stores,
// matching original_source/flatmatrix.cpp's writeDistancesToOpenFile.
type Shape int

const (
	// Square writes every row in full (N values per row).
	Square Shape = iota
	// Upper writes only the strictly-upper triangle (row i has N-1-i
	// values: columns i+1..N-1).
	Upper
	// Lower writes only the strictly-lower triangle (row i has i
	// values: columns 0..i-1).
	Lower
)

func (s Shape) String() string {
	switch s {
	case Upper:
		return "upper"
	case Lower:
		return "lower"
	default:
		return "square"
	}
}

// minNameColumnWidth mirrors flatmatrix.cpp's getMaxSeqNameLength/
// writeDistancesToOpenFile convention: the name column is padded on the
// right to the longest name, but never narrower than 10.
const minNameColumnWidth = 10

// WriteDistances renders names/distances (row-major, n*n) to w in the
// requested shape and precision, matching flatmatrix.cpp's writer byte
// for byte: a first line holding N, then one line per taxon, the name
// left-justified and padded to at least 10 columns, followed by a
// space-prefixed value per column in the requested triangle. A
// non-positive length is written as the literal "0" (same convention
// clustertree.Newick uses for branch lengths).
func WriteDistances(w io.Writer, names []string, distances []float64, shape Shape, precision int) error {
	n := len(names)
	if len(distances) != n*n {
		return dmerrors.Newf(dmerrors.InputShape, "distances length %d, want %d (%d^2)", len(distances), n*n, n)
	}

	width := minNameColumnWidth
	for _, name := range names {
		if len(name) > width {
			width = len(name)
		}
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d\n", n); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		start, stop := 0, n
		switch shape {
		case Upper:
			start = i + 1
		case Lower:
			stop = i
		}

		if _, err := bw.WriteString(padName(names[i], width)); err != nil {
			return err
		}
		for j := start; j < stop; j++ {
			v := distances[i*n+j]
			if _, err := bw.WriteString(" "); err != nil {
				return err
			}
			if v <= 0 {
				if _, err := bw.WriteString("0"); err != nil {
					return err
				}

				continue
			}
			if _, err := bw.WriteString(strconv.FormatFloat(v, 'f', precision, 64)); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func padName(name string, width int) string {
	if len(name) >= width {
		return name
	}

	return name + strings.Repeat(" ", width-len(name))
}

// ReadDistances parses a distance file in any of the three shapes
// WriteDistances can produce, auto-detecting the shape from the first
// data row's value count: N values means square, N-1 means upper, 0
// means lower. The returned distances slice is always fully symmetric
// row-major n*n, regardless of which triangle the file stored.
func ReadDistances(r io.Reader) ([]string, []float64, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !sc.Scan() {
		return nil, nil, dmerrors.New(dmerrors.InputShape, "distance file is empty")
	}
	n, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil || n < 3 {
		return nil, nil, dmerrors.Newf(dmerrors.InputShape, "first line must be an integer taxon count >= 3, got %q", sc.Text())
	}

	names := make([]string, n)
	rows := make([][]float64, n)
	var shape Shape
	shapeKnown := false

	for i := 0; i < n; i++ {
		if !sc.Scan() {
			return nil, nil, dmerrors.Newf(dmerrors.InputShape, "expected %d taxon rows, found %d", n, i)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 1 {
			return nil, nil, dmerrors.Newf(dmerrors.InputShape, "row %d is empty", i)
		}
		names[i] = fields[0]
		values := fields[1:]

		if !shapeKnown {
			switch len(values) {
			case n:
				shape = Square
			case n - 1:
				shape = Upper
			case 0:
				shape = Lower
			default:
				return nil, nil, dmerrors.Newf(dmerrors.InputShape, "row 0 has %d values; expected %d (square), %d (upper), or 0 (lower)", len(values), n, n-1)
			}
			shapeKnown = true
		}

		row := make([]float64, len(values))
		for j, tok := range values {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, nil, dmerrors.Newf(dmerrors.InputShape, "row %d: invalid distance %q", i, tok)
			}
			row[j] = v
		}
		rows[i] = row
	}

	distances := make([]float64, n*n)
	for i := 0; i < n; i++ {
		switch shape {
		case Square:
			if len(rows[i]) != n {
				return nil, nil, dmerrors.Newf(dmerrors.InputShape, "row %d has %d values, want %d", i, len(rows[i]), n)
			}
			copy(distances[i*n:i*n+n], rows[i])
		case Upper:
			if len(rows[i]) != n-1-i {
				return nil, nil, dmerrors.Newf(dmerrors.InputShape, "row %d has %d values, want %d (upper)", i, len(rows[i]), n-1-i)
			}
			for k, v := range rows[i] {
				j := i + 1 + k
				distances[i*n+j] = v
				distances[j*n+i] = v
			}
		case Lower:
			if len(rows[i]) != i {
				return nil, nil, dmerrors.Newf(dmerrors.InputShape, "row %d has %d values, want %d (lower)", i, len(rows[i]), i)
			}
			for j, v := range rows[i] {
				distances[i*n+j] = v
				distances[j*n+i] = v
			}
		}
	}

	return names, distances, sc.Err()
}
