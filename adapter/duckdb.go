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

package adapter

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"time"

	_ "github.com/marcboeker/go-duckdb"

	verrors "github.com/vvsql/vvsql/errors"
	"github.com/vvsql/vvsql/table"
)

// DuckDB is the Adapter implementation for connection URIs of the form
// "duckdb://memory" (ephemeral) or "duckdb:///PATH" (file-backed), per
// spec.md §4.5. It keeps one pooled *sql.DB per distinct location, since
// spec.md §6 "Concurrency" requires the connection pool, not the
// compiler, to own connection lifetime across parallel requests.
type DuckDB struct {
	mu    sync.Mutex
	pools map[string]*sql.DB
}

// NewDuckDB returns a DuckDB adapter with an empty pool cache.
func NewDuckDB() *DuckDB {
	return &DuckDB{pools: map[string]*sql.DB{}}
}

func (d *DuckDB) Supports(connURI string) bool {
	return strings.HasPrefix(connURI, "duckdb://")
}

// Pool exposes the pooled *sql.DB backing connURI so callers outside
// this package (package preload, specifically) can register views on
// it before a query runs through Execute.
func (d *DuckDB) Pool(connURI string) (*sql.DB, error) {
	return d.pool(connURI)
}

// Execute runs dataText (the relational prefix stripped by package
// splitter) against the database at connURI and returns the resulting
// Table, with logical types and temporal normalization per spec.md §4.5.
func (d *DuckDB) Execute(ctx context.Context, dataText, connURI string) (*table.Table, error) {
	db, err := d.pool(connURI)
	if err != nil {
		return nil, verrors.NewBackendError("duckdb", dataText, "open connection: %s", err)
	}

	rows, err := db.QueryContext(ctx, dataText)
	if err != nil {
		return nil, verrors.NewBackendError("duckdb", dataText, "%s", err)
	}
	defer rows.Close()

	return scanRows(rows, dataText)
}

// pool returns (creating if necessary) the *sql.DB backing connURI's
// location, caching one *sql.DB per distinct location for the lifetime
// of this adapter — including "duckdb://memory", so that a preload
// registered through Pool survives into a later Execute against the
// same adapter instance. "Ephemeral" describes the data's lifetime (it
// is gone once this adapter is closed, never written to disk), not a
// guarantee of a fresh database on every call.
func (d *DuckDB) pool(connURI string) (*sql.DB, error) {
	loc := strings.TrimPrefix(connURI, "duckdb://")

	d.mu.Lock()
	defer d.mu.Unlock()
	if db, ok := d.pools[loc]; ok {
		return db, nil
	}

	dsn := ""
	if loc != "memory" {
		dsn = strings.TrimPrefix(loc, "/")
	}
	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, err
	}
	d.pools[loc] = db
	return db, nil
}

// Close releases every pooled connection.
func (d *DuckDB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	var first error
	for loc, db := range d.pools {
		if err := db.Close(); err != nil && first == nil {
			first = err
		}
		delete(d.pools, loc)
	}
	return first
}

func scanRows(rows *sql.Rows, sqlSnippet string) (*table.Table, error) {
	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, verrors.NewBackendError("duckdb", sqlSnippet, "inspect columns: %s", err)
	}
	columns := make([]table.Column, len(colTypes))
	for i, ct := range colTypes {
		columns[i] = table.Column{Name: ct.Name(), Type: logicalTypeOf(ct.DatabaseTypeName())}
	}

	var out [][]interface{}
	dest := make([]interface{}, len(columns))
	ptrs := make([]interface{}, len(columns))
	for i := range dest {
		ptrs[i] = &dest[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, verrors.NewBackendError("duckdb", sqlSnippet, "scan row: %s", err)
		}
		row := make([]interface{}, len(columns))
		for i, c := range columns {
			row[i] = normalizeValue(c.Type, dest[i])
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, verrors.NewBackendError("duckdb", sqlSnippet, "%s", err)
	}

	return table.New(columns, out)
}

// logicalTypeOf maps a DuckDB DATABASE_TYPE name (as reported by the
// database/sql driver) to the closed LogicalType set of spec.md §3.
func logicalTypeOf(dbType string) table.LogicalType {
	switch strings.ToUpper(dbType) {
	case "TINYINT", "SMALLINT", "INTEGER", "BIGINT", "HUGEINT",
		"UTINYINT", "USMALLINT", "UINTEGER", "UBIGINT":
		return table.Integer
	case "FLOAT", "DOUBLE", "DECIMAL":
		return table.Floating
	case "BOOLEAN":
		return table.Boolean
	case "DATE":
		return table.TemporalDate
	case "TIMESTAMP", "TIMESTAMP WITH TIME ZONE", "TIMESTAMPTZ":
		return table.TemporalDatetime
	default:
		return table.Text
	}
}

// normalizeValue applies spec.md §4.5's temporal normalization to
// values DuckDB returns as time.Time; every other logical type passes
// through unchanged (nil included, representing SQL NULL).
func normalizeValue(lt table.LogicalType, v interface{}) interface{} {
	if v == nil {
		return nil
	}
	t, ok := v.(time.Time)
	if !ok {
		return v
	}
	switch lt {
	case table.TemporalDate:
		return table.NormalizeDate(t)
	case table.TemporalDatetime:
		return table.NormalizeDatetime(t)
	default:
		return v
	}
}
