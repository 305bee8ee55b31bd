package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pivolan/go_utils"
)

const Separator = ','

type Kind string

const (
	KindNumeric     Kind = "numeric"
	KindDateTime    Kind = "datetime"
	KindCategorical Kind = "categorical"
)

// Date and amount columns recognized by exact header name. Columns not
// present in a source are simply skipped.
var (
	DateColumns = []string{
		"POLICY EFF DATE", "POLICY EXP DATE", "SICK/FROM", "SICK/TO",
		"RECEIPT/DT", "PAYDATE", "CHQDATE", "CREATE_DATE", "UPDATE_DATE",
	}
	AmountColumns = []string{
		"INCURRED", "APPROVED", "CLAIMED", "OUTSTANDING",
		"DED_AMT", "COPAY_AMT", "MANUAL_REJECTED_AMT", "AGE",
	}
)

// The primary datetime column; derived time buckets are computed from it.
const PrimaryDateColumn = "PAYDATE"

var dateLayouts = []string{
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"02.01.2006",
}

func tryParseDateTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Column is a typed value sequence. Exactly one of Nums/Times/Strs is
// populated depending on Kind; Nulls is always row-count long.
type Column struct {
	Name  string
	Kind  Kind
	DType string
	Nums  []float64
	Times []time.Time
	Strs  []string
	Nulls []bool
}

func (c *Column) Len() int { return len(c.Nulls) }

func (c *Column) IsNull(i int) bool { return c.Nulls[i] }

// Float returns the numeric value at i, false when the cell is null or
// the column is not numeric.
func (c *Column) Float(i int) (float64, bool) {
	if c.Kind != KindNumeric || c.Nulls[i] {
		return 0, false
	}
	return c.Nums[i], true
}

func (c *Column) Time(i int) (time.Time, bool) {
	if c.Kind != KindDateTime || c.Nulls[i] {
		return time.Time{}, false
	}
	return c.Times[i], true
}

// Display renders cell i as a string: dates as YYYY-MM-DD, numbers
// without trailing zeros, nulls as the empty string.
func (c *Column) Display(i int) string {
	if c.Nulls[i] {
		return ""
	}
	switch c.Kind {
	case KindNumeric:
		return strconv.FormatFloat(c.Nums[i], 'f', -1, 64)
	case KindDateTime:
		return c.Times[i].Format("2006-01-02")
	default:
		return c.Strs[i]
	}
}

func (c *Column) nullCount() int64 {
	var n int64
	for _, isNull := range c.Nulls {
		if isNull {
			n++
		}
	}
	return n
}

// Table is an immutable in-memory columnar dataset. Columns keep the
// source header order and share one row count.
type Table struct {
	columns []*Column
	byName  map[string]*Column
	rows    int
}

func (t *Table) NumRows() int { return t.rows }

func (t *Table) NumColumns() int { return len(t.columns) }

func (t *Table) Column(name string) (*Column, bool) {
	c, ok := t.byName[name]
	return c, ok
}

func (t *Table) Has(name string) bool {
	_, ok := t.byName[name]
	return ok
}

func (t *Table) Columns() []*Column { return t.columns }

func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

func (t *Table) addColumn(c *Column) {
	t.columns = append(t.columns, c)
	t.byName[c.Name] = c
}

const loadCheckInterval = 1000

// LoadTable parses a delimited file into a typed Table. Individual cells
// that fail coercion become nulls; only an unreadable source fails the
// load. The context bounds parsing of large files.
func LoadTable(ctx context.Context, path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = Separator
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	firstRow, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	analysis := AnalyzeHeaders(firstRow)
	if analysis == nil {
		return nil, fmt.Errorf("empty header row")
	}
	headers := analysis.Headers

	raw := make([][]string, len(headers))
	appendRow := func(record []string) {
		for i := range headers {
			if i < len(record) {
				raw[i] = append(raw[i], record[i])
			} else {
				raw[i] = append(raw[i], "")
			}
		}
	}
	if analysis.FirstRowIsData {
		appendRow(analysis.FirstDataRow)
	}

	for n := 0; ; n++ {
		if n%loadCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		appendRow(record)
	}

	t := &Table{byName: map[string]*Column{}}
	if len(raw) > 0 {
		t.rows = len(raw[0])
	}
	for i, name := range headers {
		t.addColumn(buildColumn(name, raw[i]))
	}
	deriveDateParts(t)
	return t, nil
}

// buildColumn infers a column kind and materializes typed storage.
// Known date and amount columns are coerced by name; everything else
// goes through the type-priority ladder.
func buildColumn(name string, values []string) *Column {
	switch {
	case go_utils.InArray(name, DateColumns):
		return newDateTimeColumn(name, values)
	case go_utils.InArray(name, AmountColumns):
		return newNumericColumn(name, values, "Float64")
	}
	switch sniffType(values) {
	case "DateTime64", "Date":
		return newDateTimeColumn(name, values)
	case "Int64":
		return newNumericColumn(name, values, "Int64")
	case "Float64":
		return newNumericColumn(name, values, "Float64")
	default:
		return newCategoricalColumn(name, values)
	}
}

// sniffType walks sample values through the same type-priority ladder
// the ClickHouse importer used: a heavier type observed anywhere in the
// column wins.
func sniffType(values []string) string {
	typesWeight := []string{"", "DateTime64", "Date", "Int64", "Float64", "String"}
	sample := values
	if len(sample) > 50000 {
		sample = sample[:50000]
	}
	saved := ""
	for _, value := range sample {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		t := "String"
		if ts, ok := tryParseDateTime(value); ok {
			if ts.Hour() == 0 && ts.Minute() == 0 && ts.Second() == 0 && ts.Nanosecond() == 0 {
				t = "Date"
			} else {
				t = "DateTime64"
			}
		} else if _, err := strconv.ParseInt(value, 10, 64); err == nil {
			t = "Int64"
		} else if _, err := strconv.ParseFloat(value, 64); err == nil {
			t = "Float64"
		}
		if SearchStrings(typesWeight, t) > SearchStrings(typesWeight, saved) {
			saved = t
		}
	}
	return saved
}

func newNumericColumn(name string, values []string, dtype string) *Column {
	c := &Column{
		Name:  name,
		Kind:  KindNumeric,
		DType: dtype,
		Nums:  make([]float64, len(values)),
		Nulls: make([]bool, len(values)),
	}
	for i, value := range values {
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			c.Nulls[i] = true
			continue
		}
		c.Nums[i] = v
	}
	return c
}

func newDateTimeColumn(name string, values []string) *Column {
	c := &Column{
		Name:  name,
		Kind:  KindDateTime,
		DType: "DateTime64",
		Times: make([]time.Time, len(values)),
		Nulls: make([]bool, len(values)),
	}
	for i, value := range values {
		ts, ok := tryParseDateTime(value)
		if !ok {
			c.Nulls[i] = true
			continue
		}
		c.Times[i] = ts
	}
	return c
}

func newCategoricalColumn(name string, values []string) *Column {
	c := &Column{
		Name:  name,
		Kind:  KindCategorical,
		DType: "String",
		Strs:  make([]string, len(values)),
		Nulls: make([]bool, len(values)),
	}
	for i, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			c.Nulls[i] = true
			continue
		}
		c.Strs[i] = value
	}
	return c
}

// deriveDateParts adds YEAR, MONTH, QUARTER and YEAR_MONTH computed from
// the primary date column. Nothing is added when that column is missing
// or entirely null, so consumers can distinguish "not available" from
// "empty".
func deriveDateParts(t *Table) {
	src, ok := t.Column(PrimaryDateColumn)
	if !ok || src.Kind != KindDateTime {
		return
	}
	hasValue := false
	for i := 0; i < src.Len(); i++ {
		if !src.IsNull(i) {
			hasValue = true
			break
		}
	}
	if !hasValue {
		return
	}

	n := src.Len()
	year := &Column{Name: "YEAR", Kind: KindNumeric, DType: "Int64", Nums: make([]float64, n), Nulls: make([]bool, n)}
	month := &Column{Name: "MONTH", Kind: KindNumeric, DType: "Int64", Nums: make([]float64, n), Nulls: make([]bool, n)}
	quarter := &Column{Name: "QUARTER", Kind: KindNumeric, DType: "Int64", Nums: make([]float64, n), Nulls: make([]bool, n)}
	yearMonth := &Column{Name: "YEAR_MONTH", Kind: KindCategorical, DType: "String", Strs: make([]string, n), Nulls: make([]bool, n)}

	for i := 0; i < n; i++ {
		ts, ok := src.Time(i)
		if !ok {
			year.Nulls[i] = true
			month.Nulls[i] = true
			quarter.Nulls[i] = true
			yearMonth.Nulls[i] = true
			continue
		}
		year.Nums[i] = float64(ts.Year())
		month.Nums[i] = float64(int(ts.Month()))
		quarter.Nums[i] = float64((int(ts.Month())-1)/3 + 1)
		yearMonth.Strs[i] = ts.Format("2006-01")
	}
	t.addColumn(year)
	t.addColumn(month)
	t.addColumn(quarter)
	t.addColumn(yearMonth)
}
