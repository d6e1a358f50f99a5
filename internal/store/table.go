package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/unitlab/internal/unit"
)

// Table is a sampled conversion from one unit to another.
type Table struct {
	From, To string
	In, Out  []float64
}

// Sample converts each value from one unit to another under the model
// active in ctx.
func Sample(ctx context.Context, from, to *unit.Unit, values []float64) (*Table, error) {
	c, err := unit.ConverterTo(ctx, from, to)
	if err != nil {
		return nil, err
	}
	t := &Table{
		From: from.String(),
		To:   to.String(),
		In:   make([]float64, len(values)),
		Out:  make([]float64, len(values)),
	}
	copy(t.In, values)
	parallelFor(len(values), parallelMin, func(start, end int) {
		for i := start; i < end; i++ {
			t.Out[i] = c.Convert(values[i])
		}
	})
	return t, nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{t.From, t.To}); err != nil {
		return err
	}
	for i := range t.In {
		row := []string{
			strconv.FormatFloat(t.In[i], 'g', -1, 64),
			strconv.FormatFloat(t.Out[i], 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func SaveCSV(path string, t *Table) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteCSV(file, t)
}

func LoadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("store: %s has no header", path)
	}
	if len(records[0]) != 2 {
		return nil, fmt.Errorf("store: %s has %d columns, want 2", path, len(records[0]))
	}

	t := &Table{From: records[0][0], To: records[0][1]}
	for i, record := range records[1:] {
		in, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("store: row %d: %w", i+1, err)
		}
		out, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("store: row %d: %w", i+1, err)
		}
		t.In = append(t.In, in)
		t.Out = append(t.Out, out)
	}
	return t, nil
}
