package data

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/BoyarinO/dataroot2/pkg/core"
)

// Sample represents a single data point.
type Sample struct {
	X    []float64
	Y    int
	Line int
}

// CSVOptions describes the layout of a labeled CSV file.
type CSVOptions struct {
	// LabelColumn is the 0-based index of the label column. Negative values
	// count from the end, so -1 is the last column.
	LabelColumn int
	// Header skips the first record.
	Header bool
	// Comma is the field delimiter; zero means ','.
	Comma rune
	// AllowMissing reads empty, "NA" and "NaN" (any case) feature fields as
	// NaN instead of rejecting the record. Labels are never allowed to be
	// missing, and infinite values are always rejected.
	AllowMissing bool
}

// StreamCSV parses labeled records from r and sends them on out until EOF,
// the first malformed record, or ctx is done. out is closed when StreamCSV returns.
func StreamCSV(ctx context.Context, r io.Reader, opts CSVOptions, out chan<- Sample) error {
	defer close(out)

	reader := csv.NewReader(bufio.NewReader(r))
	reader.ReuseRecord = true
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}

	line := 0
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		line++
		if err != nil {
			return fmt.Errorf("data: read record %d: %w", line, err)
		}
		if line == 1 && opts.Header {
			continue
		}

		s, err := parseRecord(rec, opts.LabelColumn, opts.AllowMissing)
		if err != nil {
			return fmt.Errorf("data: record %d: %w", line, err)
		}
		s.Line = line

		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- s:
		}
	}
}

func isMissing(s string) bool {
	return s == "" || s == "NA" || strings.EqualFold(s, "nan")
}

func parseRecord(rec []string, labelCol int, allowMissing bool) (Sample, error) {
	if labelCol < 0 {
		labelCol += len(rec)
	}
	if labelCol < 0 || labelCol >= len(rec) {
		return Sample{}, fmt.Errorf("label column out of bounds for %d fields", len(rec))
	}

	x := make([]float64, 0, len(rec)-1)
	var y int
	for i, s := range rec {
		s = strings.TrimSpace(s)
		if isMissing(s) {
			if !allowMissing || i == labelCol {
				return Sample{}, fmt.Errorf("field %d: missing value", i)
			}
			x = append(x, math.NaN())
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Sample{}, fmt.Errorf("field %d: %w", i, err)
		}
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return Sample{}, fmt.Errorf("field %d: %w %q", i, core.ErrNonFinite, s)
		}

		if i != labelCol {
			x = append(x, v)
			continue
		}
		if v != math.Trunc(v) {
			return Sample{}, fmt.Errorf("label %q is not an integer class", s)
		}
		y = int(v)
	}
	return Sample{X: x, Y: y}, nil
}

// ReadCSV collects every record of r into a validated Dataset.
func ReadCSV(ctx context.Context, r io.Reader, opts CSVOptions) (Dataset, error) {
	out := make(chan Sample, 64)
	errc := make(chan error, 1)
	go func() {
		errc <- StreamCSV(ctx, r, opts, out)
	}()

	var ds Dataset
	for s := range out {
		ds.X = append(ds.X, s.X)
		ds.Y = append(ds.Y, s.Y)
	}
	if err := <-errc; err != nil {
		return Dataset{}, err
	}
	if err := ds.ValidateShape(); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

// LoadCSV opens path and reads it with ReadCSV.
func LoadCSV(ctx context.Context, path string, opts CSVOptions) (Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return Dataset{}, err
	}
	defer file.Close()

	ds, err := ReadCSV(ctx, file, opts)
	if err != nil {
		return Dataset{}, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}
