package models

import "time"

// Table is a flat, uniform-shape tabular view of engine output, suitable for
// handing to delimited or spreadsheet serializers. The engine itself never
// serializes tables to files. Stale and AsOf carry the provenance of the
// underlying RecordSet so exports of stored data announce themselves.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Stale   bool       `json:"stale,omitempty"`
	AsOf    time.Time  `json:"as_of,omitempty"`
}

func NewTable(columns ...string) *Table {
	return &Table{Columns: columns}
}

func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

func (t *Table) Len() int {
	return len(t.Rows)
}
