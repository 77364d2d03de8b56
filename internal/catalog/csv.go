package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// table reads a delimited file with a header row and exposes columns by name.
type table struct {
	r       *csv.Reader
	columns map[string]int
	line    int
}

func newTable(r io.Reader, comma rune, required ...string) (*table, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing header", ErrMalformed)
		}
		return nil, fmt.Errorf("%w: header: %v", ErrMalformed, err)
	}

	t := &table{r: cr, columns: make(map[string]int, len(header)), line: 1}
	for i, name := range header {
		// Strip a UTF-8 BOM on the first column
		name = strings.TrimPrefix(name, "\uFEFF")
		t.columns[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := t.columns[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformed, name)
		}
	}
	return t, nil
}

// next returns the following row, or io.EOF when the file is exhausted.
func (t *table) next() (row, error) {
	rec, err := t.r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return row{}, io.EOF
		}
		return row{}, fmt.Errorf("%w: line %d: %v", ErrMalformed, t.line+1, err)
	}
	t.line++
	return row{t: t, rec: rec}, nil
}

type row struct {
	t   *table
	rec []string
}

// get returns the trimmed value of a named column, or "" when the row is short
// or the column is absent.
func (r row) get(name string) string {
	i, ok := r.t.columns[name]
	if !ok || i >= len(r.rec) {
		return ""
	}
	return strings.TrimSpace(r.rec[i])
}

func (r row) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: line %d: %s", ErrMalformed, r.t.line, fmt.Sprintf(format, args...))
}

// parseFinite parses a float and rejects NaN and infinities, which cannot be
// written as JSON.
func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}
