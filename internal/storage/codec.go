package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/leengari/tabledb/internal/domain/data"
	"github.com/leengari/tabledb/internal/domain/errors"
	"github.com/leengari/tabledb/internal/domain/schema"
	"github.com/leengari/tabledb/internal/domain/table"
)

// recordDocument marshals one row as an object whose keys follow schema order
type recordDocument struct {
	columns []schema.Column
	row     data.Row
}

func (r recordDocument) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.row[i].Value())
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Encode serialises the table head to tail, position 1 first
func Encode(t *table.Table) ([]byte, error) {
	sc := t.Schema()

	doc := tableDocument{
		NumColumns: sc.NumColumns(),
		Columns:    make([]columnDocument, len(sc.Columns)),
		Records:    make([]recordDocument, 0, t.Len()),
	}
	for i, col := range sc.Columns {
		doc.Columns[i] = columnDocument{Name: col.Name, Type: int(col.Kind)}
	}
	t.Each(func(_ int, rec *table.Record) bool {
		doc.Records = append(doc.Records, recordDocument{columns: sc.Columns, row: rec.Cells()})
		return true
	})

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal table: %w", err)
	}
	return out, nil
}

// Decode rebuilds a table from its persisted form, appending records in file order.
// It is all-or-nothing: any problem yields ErrMalformedPersisted and no table.
func Decode(raw []byte) (*table.Table, error) {
	var meta tableMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, malformed("parse: %v", err)
	}

	if meta.NumColumns == nil {
		return nil, malformed("missing numColumns")
	}
	if meta.Columns == nil {
		return nil, malformed("missing columns")
	}
	if meta.Records == nil {
		return nil, malformed("missing records")
	}
	if *meta.NumColumns != len(meta.Columns) {
		return nil, malformed("numColumns is %d but %d columns are defined", *meta.NumColumns, len(meta.Columns))
	}

	cols := make([]schema.Column, len(meta.Columns))
	for i, c := range meta.Columns {
		if c.Name == nil || c.Type == nil {
			return nil, malformed("column %d: missing name or type", i)
		}
		cols[i] = schema.Column{Name: *c.Name, Kind: schema.Kind(*c.Type)}
	}
	sc, err := schema.New(cols...)
	if err != nil {
		return nil, malformed("%v", err)
	}

	t, err := table.New(sc)
	if err != nil {
		return nil, malformed("%v", err)
	}

	for i, rawRecord := range meta.Records {
		row, err := decodeRecord(sc, rawRecord)
		if err != nil {
			return nil, malformed("record %d: %v", i, err)
		}
		if _, err := t.Append(row); err != nil {
			return nil, malformed("record %d: %v", i, err)
		}
	}

	t.MarkClean()
	return t, nil
}

func decodeRecord(sc schema.Schema, raw json.RawMessage) (data.Row, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, fmt.Errorf("record is null")
	}

	row := make(data.Row, len(sc.Columns))
	for i, col := range sc.Columns {
		v, ok := fields[col.Name]
		if !ok {
			return nil, fmt.Errorf("missing column %q", col.Name)
		}
		if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return nil, fmt.Errorf("column %q is null", col.Name)
		}

		switch col.Kind {
		case schema.KindInteger:
			var n int64
			if err := json.Unmarshal(v, &n); err != nil {
				return nil, fmt.Errorf("column %q: %w", col.Name, err)
			}
			row[i] = data.Int(n)
		case schema.KindText:
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				return nil, fmt.Errorf("column %q: %w", col.Name, err)
			}
			row[i] = data.Text(s)
		}
	}
	return row, nil
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), errors.ErrMalformedPersisted)
}
