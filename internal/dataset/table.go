// Package dataset loads the match-level dataset, partitions it into player
// and team rows, and provides the immutable Table type every query runs on.
package dataset

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Column is one named column. Cells keep the raw string, a null flag and the
// parsed float so numeric coercion happens once at construction.
type Column struct {
	Name  string
	raw   []string
	null  []bool
	num   []float64
	isNum []bool
}

func newColumn(name string, n int) *Column {
	return &Column{
		Name:  name,
		raw:   make([]string, n),
		null:  make([]bool, n),
		num:   make([]float64, n),
		isNum: make([]bool, n),
	}
}

func (c *Column) set(i int, v string, null bool) {
	c.raw[i] = v
	c.null[i] = null
	if null {
		return
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		c.num[i] = f
		c.isNum[i] = true
	}
}

// Len returns the number of cells.
func (c *Column) Len() int { return len(c.raw) }

// Str returns the raw cell value and whether it is non-null.
func (c *Column) Str(i int) (string, bool) {
	if c.null[i] {
		return "", false
	}
	return c.raw[i], true
}

// Float returns the numeric value of a cell and whether it parsed.
func (c *Column) Float(i int) (float64, bool) {
	return c.num[i], c.isNum[i]
}

// FloatOr returns the numeric value of a cell, or def when it is null or
// non-numeric.
func (c *Column) FloatOr(i int, def float64) float64 {
	if c.isNum[i] {
		return c.num[i]
	}
	return def
}

// Numeric reports whether every non-null cell parsed as a number and at least
// one cell is non-null.
func (c *Column) Numeric() bool {
	seen := false
	for i := range c.raw {
		if c.null[i] {
			continue
		}
		if !c.isNum[i] {
			return false
		}
		seen = true
	}
	return seen
}

// Mean averages the numeric cells, skipping nulls and non-numeric values.
// ok is false when no cell is numeric.
func (c *Column) Mean() (mean float64, ok bool) {
	var sum float64
	var n int
	for i := range c.num {
		if c.isNum[i] {
			sum += c.num[i]
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// Sum adds the numeric cells; nulls and non-numeric values count as 0.
func (c *Column) Sum() float64 {
	var sum float64
	for i := range c.num {
		if c.isNum[i] {
			sum += c.num[i]
		}
	}
	return sum
}

// Table is an immutable column-oriented table. Filtering and selection always
// produce a new Table; the receiver is never modified.
type Table struct {
	cols   []*Column
	index  map[string]int
	n      int
	schema Schema
}

// NewTable builds a table from a header row and string rows. Short rows are
// padded with nulls. isNull decides which raw values are null; a nil isNull
// treats only the empty string as null.
func NewTable(headers []string, rows [][]string, isNull func(string) bool) *Table {
	if isNull == nil {
		isNull = func(s string) bool { return s == "" }
	}
	cols := make([]*Column, len(headers))
	for j, h := range headers {
		cols[j] = newColumn(h, len(rows))
	}
	for i, row := range rows {
		for j, c := range cols {
			v := ""
			if j < len(row) {
				v = row[j]
			}
			c.set(i, v, isNull(v))
		}
	}
	return newTable(cols, len(rows))
}

func newTable(cols []*Column, n int) *Table {
	t := &Table{cols: cols, index: make(map[string]int, len(cols)), n: n}
	names := make([]string, len(cols))
	for j, c := range cols {
		t.index[c.Name] = j
		names[j] = c.Name
	}
	t.schema = DetectSchema(names)
	return t
}

// Len returns the row count.
func (t *Table) Len() int { return t.n }

// Columns returns the column names in source order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.cols))
	for j, c := range t.cols {
		out[j] = c.Name
	}
	return out
}

// Has reports whether the table has a column with exactly this name.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the named column or nil.
func (t *Table) Column(name string) *Column {
	j, ok := t.index[name]
	if !ok {
		return nil
	}
	return t.cols[j]
}

// Schema returns the column mapping resolved when the table was built.
func (t *Table) Schema() Schema { return t.schema }

// Str returns the raw value at (row, col). ok is false for a null cell or an
// unknown column.
func (t *Table) Str(row int, col string) (string, bool) {
	c := t.Column(col)
	if c == nil {
		return "", false
	}
	return c.Str(row)
}

// Float returns the numeric value at (row, col).
func (t *Table) Float(row int, col string) (float64, bool) {
	c := t.Column(col)
	if c == nil {
		return 0, false
	}
	return c.Float(row)
}

// Select returns a new table holding the given rows in the given order.
func (t *Table) Select(rows []int) *Table {
	cols := make([]*Column, len(t.cols))
	for j, src := range t.cols {
		c := newColumn(src.Name, len(rows))
		for i, r := range rows {
			c.raw[i] = src.raw[r]
			c.null[i] = src.null[r]
			c.num[i] = src.num[r]
			c.isNum[i] = src.isNum[r]
		}
		cols[j] = c
	}
	return newTable(cols, len(rows))
}

// RowsWhere returns the indices of rows whose raw value in col equals value.
func (t *Table) RowsWhere(col, value string) []int {
	c := t.Column(col)
	if c == nil {
		return nil
	}
	var rows []int
	for i := 0; i < t.n; i++ {
		if v, ok := c.Str(i); ok && v == value {
			rows = append(rows, i)
		}
	}
	return rows
}

// Where returns the rows whose raw value in col equals value. An unknown
// column yields an empty table.
func (t *Table) Where(col, value string) *Table {
	return t.Select(t.RowsWhere(col, value))
}

// Distinct returns the distinct non-null values of col. Numeric columns sort
// by value, so "9.5" comes before "10.1"; others sort as strings.
func (t *Table) Distinct(col string) []string {
	c := t.Column(col)
	if c == nil {
		return nil
	}
	seen := make(map[string]float64)
	for i := 0; i < t.n; i++ {
		if v, ok := c.Str(i); ok {
			seen[v] = c.num[i]
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	if c.Numeric() {
		sort.Slice(out, func(i, j int) bool {
			if seen[out[i]] != seen[out[j]] {
				return seen[out[i]] < seen[out[j]]
			}
			return out[i] < out[j]
		})
	} else {
		sort.Strings(out)
	}
	return out
}

// GroupBy splits the rows by the non-null raw value of col. Keys are returned
// sorted; rows with a null key are dropped.
func (t *Table) GroupBy(col string) (keys []string, groups map[string][]int) {
	groups = make(map[string][]int)
	c := t.Column(col)
	if c == nil {
		return nil, groups
	}
	for i := 0; i < t.n; i++ {
		v, ok := c.Str(i)
		if !ok {
			continue
		}
		if _, seen := groups[v]; !seen {
			keys = append(keys, v)
		}
		groups[v] = append(groups[v], i)
	}
	sort.Strings(keys)
	return keys, groups
}

// withColumn returns a copy of t sharing the existing columns plus c. A
// column whose name equals c.Name ignoring case is replaced in place.
func (t *Table) withColumn(c *Column) *Table {
	cols := make([]*Column, 0, len(t.cols)+1)
	replaced := false
	for _, src := range t.cols {
		if strings.EqualFold(src.Name, c.Name) {
			if !replaced {
				cols = append(cols, c)
				replaced = true
			}
			continue
		}
		cols = append(cols, src)
	}
	if !replaced {
		cols = append(cols, c)
	}
	return newTable(cols, t.n)
}

// Mean averages the numeric cells of col. ok is false when the column is
// absent or holds no numbers.
func (t *Table) Mean(col string) (float64, bool) {
	c := t.Column(col)
	if c == nil {
		return 0, false
	}
	return c.Mean()
}

// MeanOf averages col over the given rows only.
func (t *Table) MeanOf(col string, rows []int) (float64, bool) {
	c := t.Column(col)
	if c == nil {
		return 0, false
	}
	var sum float64
	var n int
	for _, r := range rows {
		if v, ok := c.Float(r); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
