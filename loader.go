package clusteral

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Load errors. All of them are recoverable: a malformed file means the
// caller picked bad input, not that the clustering core is broken.
var (
	// ErrMalformedHeader is returned when the first line of a dataset
	// file does not hold the expected integer counts.
	ErrMalformedHeader = errors.New("malformed dataset header")

	// ErrColumnCount is returned when a line holds more or fewer
	// values than the header declared.
	ErrColumnCount = errors.New("unexpected column count")

	// ErrBadNumber is returned when a value cannot be parsed as a
	// number.
	ErrBadNumber = errors.New("invalid numeric value")

	// ErrUnexpectedEOF is returned when the file ends before the
	// declared number of points was read.
	ErrUnexpectedEOF = errors.New("unexpected end of dataset file")

	// ErrBadTrueCluster is returned when a true-cluster column holds a
	// value which is not a whole number.
	ErrBadTrueCluster = errors.New("invalid true cluster index")
)

// Load reads a whitespace-separated dataset from r.
//
// The first line is a header: the point count and the per-point column
// count, plus the true-cluster count when hasTrueClusters is set. Each
// following line holds one point. With true clusters, the header's
// column count includes the trailing label column, so the points have
// one fewer axis than the header says; the label itself is parsed with
// the axes and must be a whole number.
//
//	3 3 2
//	0.5 1.2 0
//	0.7 1.1 0
//	9.6 4.4 1
func Load(r io.Reader, hasTrueClusters bool) (*Dataset, error) {
	scanner := bufio.NewScanner(r)

	headerColumns := 2
	if hasTrueClusters {
		headerColumns++
	}
	header, err := readInts(scanner, headerColumns)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedHeader, err)
	}

	pointCount, dimensions := header[0], header[1]
	trueClusterCount := UnknownCluster
	if hasTrueClusters {
		// The header's column count includes the label column.
		dimensions--
		trueClusterCount = header[2]
	}
	if pointCount < 0 {
		return nil, fmt.Errorf("%w: negative point count", ErrMalformedHeader)
	}
	if dimensions <= 0 {
		return nil, fmt.Errorf("%w: dimensions must be positive", ErrMalformedHeader)
	}

	rows := make([][]float64, 0, pointCount)
	var labels []int
	if hasTrueClusters {
		labels = make([]int, 0, pointCount)
	}

	for i := 0; i < pointCount; i++ {
		columns := dimensions
		if hasTrueClusters {
			columns++
		}
		values, err := readFloats(scanner, columns)
		if err != nil {
			if errors.Is(err, ErrUnexpectedEOF) {
				return nil, fmt.Errorf("%w: want %d points, have %d",
					ErrUnexpectedEOF, pointCount, i)
			}
			return nil, fmt.Errorf("point %d: %w", i, err)
		}

		if hasTrueClusters {
			label := values[columns-1]
			if label != float64(int(label)) {
				return nil, fmt.Errorf("%w: point %d has %v",
					ErrBadTrueCluster, i, label)
			}
			labels = append(labels, int(label))
			values = values[:dimensions]
		}
		rows = append(rows, values)
	}

	if hasTrueClusters {
		return NewLabeledDataset(rows, labels, trueClusterCount)
	}
	return NewDataset(rows)
}

// Open reads a dataset file from disk with Load.
func Open(path string, hasTrueClusters bool) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dataset, err := Load(f, hasTrueClusters)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return dataset, nil
}

// nextFields returns the whitespace-separated fields of the next
// non-blank line.
func nextFields(scanner *bufio.Scanner, count int) ([]string, error) {
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue // blank line
		}
		if len(fields) != count {
			return nil, fmt.Errorf("%w: want %d values, have %d",
				ErrColumnCount, count, len(fields))
		}
		return fields, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return nil, ErrUnexpectedEOF
}

func readInts(scanner *bufio.Scanner, count int) ([]int, error) {
	fields, err := nextFields(scanner, count)
	if err != nil {
		return nil, err
	}
	values := make([]int, count)
	for i, field := range fields {
		value, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadNumber, field)
		}
		values[i] = value
	}
	return values, nil
}

func readFloats(scanner *bufio.Scanner, count int) ([]float64, error) {
	fields, err := nextFields(scanner, count)
	if err != nil {
		return nil, err
	}
	values := make([]float64, count)
	for i, field := range fields {
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadNumber, field)
		}
		values[i] = value
	}
	return values, nil
}
