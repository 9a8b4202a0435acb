package rental

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
)

var (
	// ErrMissingColumn is returned when a required column is absent from the header.
	ErrMissingColumn = errors.New("missing required column")

	// ErrEmptyDataset is returned when the file has a header but no rows.
	ErrEmptyDataset = errors.New("dataset has no rows")
)

// ParseError reports a value that could not be parsed. Any ParseError fails
// the whole load.
type ParseError struct {
	Line   int // 1-based line in the file, header included
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: column %q: cannot parse %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// LoadOptions holds the column mapping and format of the source table.
type LoadOptions struct {
	DateColumn       string
	SeasonColumn     string
	CasualColumn     string
	RegisteredColumn string
	TotalColumn      string
	DateLayout       string // Go time layout (default: "2006-01-02")
	Delimiter        rune   // Field delimiter (default: ',')
}

// DefaultLoadOptions returns the column names of the cleaned daily dataset.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		DateColumn:       "date",
		SeasonColumn:     "season",
		CasualColumn:     "casual_user",
		RegisteredColumn: "registered_user",
		TotalColumn:      "total_user",
		DateLayout:       "2006-01-02",
		Delimiter:        ',',
	}
}

func (o LoadOptions) withDefaults() LoadOptions {
	def := DefaultLoadOptions()
	if o.DateColumn == "" {
		o.DateColumn = def.DateColumn
	}
	if o.SeasonColumn == "" {
		o.SeasonColumn = def.SeasonColumn
	}
	if o.CasualColumn == "" {
		o.CasualColumn = def.CasualColumn
	}
	if o.RegisteredColumn == "" {
		o.RegisteredColumn = def.RegisteredColumn
	}
	if o.TotalColumn == "" {
		o.TotalColumn = def.TotalColumn
	}
	if o.DateLayout == "" {
		o.DateLayout = def.DateLayout
	}
	if o.Delimiter == 0 {
		o.Delimiter = def.Delimiter
	}
	return o
}

// LoadFile loads a dataset from a delimited text file.
func LoadFile(path string, opts LoadOptions) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Load(path, file, opts)
}

// Load reads a delimited table with a header row and returns the parsed
// dataset. Every row must parse; the first bad value aborts the load.
func Load(name string, r io.Reader, opts LoadOptions) (*Dataset, error) {
	opts = opts.withDefaults()

	// Type detection is off so every column arrives as raw text and the
	// parse errors below can point at the offending line.
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.WithDelimiter(opts.Delimiter),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("read table: %w", df.Err)
	}

	columns := map[string][]string{}
	for _, column := range []string{
		opts.DateColumn, opts.SeasonColumn, opts.CasualColumn, opts.RegisteredColumn, opts.TotalColumn,
	} {
		col := df.Col(column)
		if col.Err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, column)
		}
		columns[column] = col.Records()
	}

	n := df.Nrow()
	if n == 0 {
		return nil, ErrEmptyDataset
	}

	records := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		line := i + 2

		date, err := parseDate(columns[opts.DateColumn][i], opts.DateLayout)
		if err != nil {
			return nil, &ParseError{Line: line, Column: opts.DateColumn, Value: columns[opts.DateColumn][i], Err: err}
		}

		rec := Record{
			Date:   date,
			Season: Season(strings.TrimSpace(columns[opts.SeasonColumn][i])),
		}

		counts := []struct {
			column string
			dst    *int
		}{
			{opts.CasualColumn, &rec.CasualUser},
			{opts.RegisteredColumn, &rec.RegisteredUser},
			{opts.TotalColumn, &rec.TotalUser},
		}
		for _, c := range counts {
			raw := columns[c.column][i]
			v, err := parseCount(raw)
			if err != nil {
				return nil, &ParseError{Line: line, Column: c.column, Value: raw, Err: err}
			}
			*c.dst = v
		}

		records = append(records, rec)
	}

	return NewDataset(name, records), nil
}

func parseDate(s, layout string) (time.Time, error) {
	t, err := time.Parse(layout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

func parseCount(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, errors.New("negative count")
	}
	return v, nil
}
