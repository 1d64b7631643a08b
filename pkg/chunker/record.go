package chunker

import (
	jsoniter "github.com/json-iterator/go"
)

// Field is one named value of a record.
type Field struct {
	Name  string
	Value any
}

// Record is one table row with its fields in column order. Missing cells
// hold a nil Value.
type Record []Field

// MarshalJSON encodes the record as an object whose keys keep column order.
func (r Record) MarshalJSON() ([]byte, error) {
	cfg := jsoniter.ConfigCompatibleWithStandardLibrary
	stream := cfg.BorrowStream(nil)
	defer cfg.ReturnStream(stream)

	stream.WriteObjectStart()
	for i, f := range r {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(f.Name)
		stream.WriteVal(f.Value)
	}
	stream.WriteObjectEnd()

	if stream.Error != nil {
		return nil, stream.Error
	}
	return append([]byte(nil), stream.Buffer()...), nil
}

const timeLayout = "2006-01-02T15:04:05"

func (t *Table) record(row int) Record {
	rec := make(Record, len(t.Columns))
	for i, col := range t.Columns {
		c := col.Cells[row]
		rec[i].Name = col.Name
		if c.Missing {
			continue
		}
		switch col.Kind {
		case KindNumber:
			rec[i].Value = c.Num
		case KindDate:
			rec[i].Value = c.Time.Format(timeLayout)
		default:
			rec[i].Value = c.Text
		}
	}
	return rec
}
