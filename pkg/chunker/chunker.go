package chunker

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cognicore/qnorm/internal/logging"
)

// StrategyAuto selects the grouping column by score.
const StrategyAuto = "auto"

// Score caps per column kind. A column scores its distinct value count,
// bounded by the cap of its kind.
const (
	numberScoreCap = 10
	dateScoreCap   = 8
	textScoreCap   = 15
)

// Bins is the number of quantile bins numeric columns are split into.
const Bins = 5

var (
	ErrNoColumn      = errors.New("no column to group by")
	ErrUnknownColumn = errors.New("unknown column")
)

// Chunk is one group of rows sharing a key.
type Chunk struct {
	ID      string
	Key     string
	Records []Record
}

// Chunker groups table rows.
type Chunker struct {
	log logrus.FieldLogger
}

// New creates a chunker. log may be nil.
func New(log logrus.FieldLogger) *Chunker {
	if log == nil {
		log = logging.Discard()
	}
	return &Chunker{log: log}
}

// Load reads a table from path. See the package-level Load.
func (c *Chunker) Load(path string) (*Table, error) {
	t, err := Load(path)
	if err != nil {
		return nil, err
	}
	c.log.WithFields(logrus.Fields{"path": path, "rows": t.Rows, "columns": len(t.Columns)}).Debug("table loaded")
	return t, nil
}

// Chunk groups the rows of t. strategy is StrategyAuto (or empty) to pick
// the highest scoring column, or a column name. Numeric columns are split
// into quantile bins, date columns are grouped by year, and text columns by
// value. Chunks come out in key order; rows without a key are left out.
func (c *Chunker) Chunk(t *Table, strategy string) ([]Chunk, error) {
	col, err := c.selectColumn(t, strategy)
	if err != nil {
		return nil, err
	}

	var key *Column
	switch col.Kind {
	case KindNumber:
		key = binColumn(col)
	case KindDate:
		key = derive(col, col.Name+"_year", func(ts time.Time) float64 { return float64(ts.Year()) })
	default:
		key = col
	}
	t.add(key)

	c.log.WithFields(logrus.Fields{
		"column": col.Name,
		"kind":   col.Kind.String(),
		"key":    key.Name,
	}).Debug("grouping rows")

	return group(t, key), nil
}

func (c *Chunker) selectColumn(t *Table, strategy string) (*Column, error) {
	if strategy != "" && strategy != StrategyAuto {
		col := t.Column(strategy)
		if col == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, strategy)
		}
		return col, nil
	}

	var (
		best      *Column
		bestScore int
	)
	for _, col := range t.Columns {
		s := score(col)
		c.log.WithFields(logrus.Fields{"column": col.Name, "score": s}).Debug("column scored")
		if s > bestScore {
			best, bestScore = col, s
		}
	}
	if best == nil {
		return nil, ErrNoColumn
	}
	return best, nil
}

func score(col *Column) int {
	n := distinct(col)
	switch col.Kind {
	case KindNumber:
		return min(n, numberScoreCap)
	case KindDate:
		return min(n, dateScoreCap)
	}
	return min(n, textScoreCap)
}

func distinct(col *Column) int {
	seen := make(map[string]struct{})
	for _, c := range col.Cells {
		if !c.Missing {
			seen[keyOf(col.Kind, c)] = struct{}{}
		}
	}
	return len(seen)
}

func keyOf(kind Kind, c Cell) string {
	switch kind {
	case KindNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case KindDate:
		return c.Time.Format(timeLayout)
	}
	return c.Text
}

// binColumn labels every value of a numeric column with its quantile bin,
// as <name>_bin_<n> in a new <name>_bins column.
func binColumn(col *Column) *Column {
	var values []float64
	for _, c := range col.Cells {
		if !c.Missing {
			values = append(values, c.Num)
		}
	}
	edges := quantileEdges(values, Bins)

	bins := &Column{Name: col.Name + "_bins", Kind: KindText, Cells: make([]Cell, len(col.Cells))}
	for i, c := range col.Cells {
		if c.Missing {
			bins.Cells[i] = Cell{Missing: true}
			continue
		}
		bins.Cells[i] = Cell{Text: fmt.Sprintf("%s_bin_%d", col.Name, binIndex(edges, c.Num)+1)}
	}
	return bins
}

// group collects rows by key value. Keys sort numerically for numeric key
// columns and lexically otherwise; rows keep file order within a chunk.
func group(t *Table, key *Column) []Chunk {
	rows := make(map[string][]int)
	nums := make(map[string]float64)
	for i, c := range key.Cells {
		if c.Missing {
			continue
		}
		k := keyOf(key.Kind, c)
		rows[k] = append(rows[k], i)
		nums[k] = c.Num
	}

	keys := make([]string, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if key.Kind == KindNumber {
			return nums[keys[i]] < nums[keys[j]]
		}
		return keys[i] < keys[j]
	})

	chunks := make([]Chunk, 0, len(keys))
	for _, k := range keys {
		ch := Chunk{ID: key.Name + "_" + k, Key: k}
		for _, r := range rows[k] {
			ch.Records = append(ch.Records, t.record(r))
		}
		chunks = append(chunks, ch)
	}
	return chunks
}

// Records flattens chunks into one list, chunk by chunk.
func Records(chunks []Chunk) []Record {
	out := []Record{}
	for _, ch := range chunks {
		out = append(out, ch.Records...)
	}
	return out
}
