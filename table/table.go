// Copyright 2024 The vvSQL Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package table implements the column-oriented Table value of spec.md §3:
// a finite, ordered, immutable sequence of rows with a fixed schema, plus
// the temporal normalization rules every Data Adapter must apply before
// handing a Table to the emitter.
package table

import (
	"fmt"
	"time"
)

// LogicalType is one of the closed set of column types named in spec.md §3.
type LogicalType int

const (
	Integer LogicalType = iota
	Floating
	Boolean
	Text
	TemporalDate
	TemporalDatetime
	NullMaskBearing
)

func (t LogicalType) String() string {
	switch t {
	case Integer:
		return "integer"
	case Floating:
		return "floating"
	case Boolean:
		return "boolean"
	case Text:
		return "text"
	case TemporalDate:
		return "temporal-date"
	case TemporalDatetime:
		return "temporal-datetime"
	case NullMaskBearing:
		return "null-mask-bearing"
	default:
		return "unknown"
	}
}

// IsTemporal reports whether t is one of the two temporal logical types.
func (t LogicalType) IsTemporal() bool {
	return t == TemporalDate || t == TemporalDatetime
}

// Column describes one column of a Table: its name (unique within the
// table) and logical type.
type Column struct {
	Name string
	Type LogicalType
}

// Table is an immutable, column-oriented result set. Construct one with
// New; there is no mutator after that.
type Table struct {
	columns []Column
	rows    [][]interface{}
}

// New builds a Table from an ordered column schema and ordered rows. Each
// row must have exactly len(columns) values, in column order. Temporal
// columns must already contain normalized ISO-8601 strings (or nil for a
// null) — see NormalizeDate/NormalizeDatetime.
func New(columns []Column, rows [][]interface{}) (*Table, error) {
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if seen[c.Name] {
			return nil, fmt.Errorf("table: duplicate column name %q", c.Name)
		}
		seen[c.Name] = true
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("table: row %d has %d values, want %d", i, len(row), len(columns))
		}
	}
	cols := make([]Column, len(columns))
	copy(cols, columns)
	out := make([][]interface{}, len(rows))
	for i, row := range rows {
		r := make([]interface{}, len(row))
		copy(r, row)
		out[i] = r
	}
	return &Table{columns: cols, rows: out}, nil
}

// Columns returns the table's schema, in order.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// ColumnNames returns just the column names, in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Column looks up a column by name.
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// RowCount returns the number of rows (may be zero).
func (t *Table) RowCount() int {
	return len(t.rows)
}

// Rows returns the rows as a slice of maps keyed by column name, in row
// order — the shape the emitter inlines as data.values.
func (t *Table) Rows() []map[string]interface{} {
	out := make([]map[string]interface{}, len(t.rows))
	for i, row := range t.rows {
		m := make(map[string]interface{}, len(t.columns))
		for j, c := range t.columns {
			m[c.Name] = row[j]
		}
		out[i] = m
	}
	return out
}

// NormalizeDate converts t to the day-precision ISO-8601 form required by
// spec.md §3 and §4.5: "YYYY-MM-DD".
func NormalizeDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// NormalizeDatetime converts t to the millisecond-precision ISO-8601 UTC
// form required by spec.md §3 and §4.5: "YYYY-MM-DDThh:mm:ss.sssZ".
func NormalizeDatetime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
