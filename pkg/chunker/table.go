// Package chunker partitions spreadsheet rows into labeled groups based on
// an automatically or manually selected column.
package chunker

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Kind is the inferred type of a column.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	}
	return "text"
}

// Cell is one value of a column. Exactly one of Text, Num or Time is
// meaningful, according to the column kind. Missing cells hold no value.
type Cell struct {
	Missing bool
	Text    string
	Num     float64
	Time    time.Time
}

// Column is a named, typed column of a table.
type Column struct {
	Name  string
	Kind  Kind
	Cells []Cell
}

// Table is a loaded sheet with its columns in file order.
type Table struct {
	Columns []*Column
	Rows    int
}

// Column returns the named column, or nil.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// add appends a column, replacing an existing one of the same name in place.
func (t *Table) add(col *Column) {
	for i, c := range t.Columns {
		if c.Name == col.Name {
			t.Columns[i] = col
			return
		}
	}
	t.Columns = append(t.Columns, col)
}

// Load reads the first sheet of an xlsx workbook, or a CSV/TSV file, and
// prepares it for chunking. The first row is the header. Workbook columns
// whose cells are all formatted as dates load as date columns.
func Load(path string) (*Table, error) {
	var (
		rows  [][]string
		dates map[int]bool
		err   error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readDelimited(path, ',')
	case ".tsv":
		rows, err = readDelimited(path, '\t')
	default:
		rows, dates, err = readWorkbook(path)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("load %s: no header row", path)
	}

	t := FromRows(rows[0], rows[1:])
	for i, col := range t.Columns {
		if dates[i] {
			t.Columns[i] = toDates(col)
		}
	}
	t.prepareDates()
	return t, nil
}

func readWorkbook(path string) ([][]string, map[int]bool, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, err
	}
	dates, err := dateColumns(f, sheets[0], rows)
	if err != nil {
		return nil, nil, err
	}
	return rows, dates, nil
}

// dateColumns returns the indexes of columns whose non-empty data cells
// all carry a date number format.
func dateColumns(f *excelize.File, sheet string, rows [][]string) (map[int]bool, error) {
	styled := make(map[int]bool)
	plain := make(map[int]bool)
	formats := make(map[int]bool)

	for r := 1; r < len(rows); r++ {
		for c, v := range rows[r] {
			if strings.TrimSpace(v) == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			id, err := f.GetCellStyle(sheet, cell)
			if err != nil {
				return nil, err
			}
			isDate, ok := formats[id]
			if !ok {
				style, err := f.GetStyle(id)
				if err != nil {
					return nil, err
				}
				isDate = isDateFormat(style)
				formats[id] = isDate
			}
			if isDate {
				styled[c] = true
			} else {
				plain[c] = true
			}
		}
	}

	dates := make(map[int]bool, len(styled))
	for c := range styled {
		if !plain[c] {
			dates[c] = true
		}
	}
	return dates, nil
}

// isDateFormat reports whether a cell style displays its number as a date
// or time, either through a built-in format or a custom format code.
func isDateFormat(style *excelize.Style) bool {
	if style == nil {
		return false
	}
	if style.CustomNumFmt != nil {
		return isDateCode(*style.CustomNumFmt)
	}
	n := style.NumFmt
	return (n >= 14 && n <= 22) || (n >= 27 && n <= 36) || (n >= 45 && n <= 47) || (n >= 50 && n <= 58)
}

// isDateCode looks for date or time tokens in a custom format code,
// ignoring quoted literals, escaped characters and bracketed sections.
func isDateCode(code string) bool {
	var quoted, bracket, escaped bool
	for _, r := range strings.ToLower(code) {
		switch {
		case escaped:
			escaped = false
		case quoted:
			quoted = r != '"'
		case bracket:
			bracket = r != ']'
		case r == '\\':
			escaped = true
		case r == '"':
			quoted = true
		case r == '[':
			bracket = true
		case r == 'y' || r == 'd' || r == 'h':
			return true
		}
	}
	return false
}

// toDates converts a column of spreadsheet serial numbers, or date text,
// into a date column. Unparseable values become missing.
func toDates(col *Column) *Column {
	dates := &Column{Name: col.Name, Kind: KindDate, Cells: make([]Cell, len(col.Cells))}
	for i, c := range col.Cells {
		ts, ok := parseDate(c, col.Kind)
		if !ok {
			dates.Cells[i] = Cell{Missing: true}
			continue
		}
		dates.Cells[i] = Cell{Time: ts}
	}
	return dates
}

func readDelimited(path string, comma rune) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = comma
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

// FromRows builds a table from a header and string rows. Short rows are
// padded with missing cells. A column whose present cells all parse as
// numbers is numeric; anything else is text.
func FromRows(header []string, rows [][]string) *Table {
	t := &Table{Rows: len(rows)}
	for i, name := range header {
		raw := make([]string, len(rows))
		for r, row := range rows {
			if i < len(row) {
				raw[r] = strings.TrimSpace(row[i])
			}
		}
		t.Columns = append(t.Columns, inferColumn(strings.TrimSpace(name), raw))
	}
	return t
}

func inferColumn(name string, raw []string) *Column {
	nums := make([]float64, len(raw))
	numeric := true
	for i, v := range raw {
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) {
			numeric = false
			break
		}
		nums[i] = f
	}

	col := &Column{Name: name, Cells: make([]Cell, len(raw))}
	if numeric {
		col.Kind = KindNumber
	}
	for i, v := range raw {
		switch {
		case v == "":
			col.Cells[i] = Cell{Missing: true}
		case numeric:
			col.Cells[i] = Cell{Num: nums[i]}
		default:
			col.Cells[i] = Cell{Text: v}
		}
	}
	return col
}

// prepareDates converts every column whose name mentions "date" into a
// date column and derives <name>_year and <name>_month from it.
// Unparseable values become missing.
func (t *Table) prepareDates() {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}

	for _, name := range names {
		if !strings.Contains(strings.ToLower(name), "date") {
			continue
		}
		dates := toDates(t.Column(name))
		t.add(dates)
		t.add(derive(dates, name+"_year", func(ts time.Time) float64 { return float64(ts.Year()) }))
		t.add(derive(dates, name+"_month", func(ts time.Time) float64 { return float64(ts.Month()) }))
	}
}

func derive(dates *Column, name string, part func(time.Time) float64) *Column {
	col := &Column{Name: name, Kind: KindNumber, Cells: make([]Cell, len(dates.Cells))}
	for i, c := range dates.Cells {
		if c.Missing {
			col.Cells[i] = Cell{Missing: true}
			continue
		}
		col.Cells[i] = Cell{Num: part(c.Time)}
	}
	return col
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"02 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// parseDate reads a date cell. Numbers are spreadsheet serial dates.
func parseDate(c Cell, kind Kind) (time.Time, bool) {
	if c.Missing {
		return time.Time{}, false
	}
	switch kind {
	case KindDate:
		return c.Time, true
	case KindNumber:
		ts, err := excelize.ExcelDateToTime(c.Num, false)
		return ts, err == nil
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, c.Text); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
