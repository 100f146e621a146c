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

// Package preload registers CSV, Parquet, and JSON files as queryable
// views before a compilation runs, per spec.md §6 "Data formats for
// preload: CSV, Parquet, JSON (one table per file, file stem becomes
// table name)".
package preload

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apache/arrow-go/v18/parquet/file"

	verrors "github.com/vvsql/vvsql/errors"
)

// Spec is one --preload argument: a source file, optionally renamed with
// "path:table" (spec.md §6 CLI surface).
type Spec struct {
	Path  string
	Table string // "" means derive from the file stem
}

// ParseSpec splits a "--preload" flag value into its path and optional
// table-name override.
func ParseSpec(arg string) Spec {
	if path, tbl, ok := strings.Cut(arg, ":"); ok {
		return Spec{Path: path, Table: tbl}
	}
	return Spec{Path: arg}
}

func (s Spec) tableName() string {
	if s.Table != "" {
		return s.Table
	}
	stem := filepath.Base(s.Path)
	return strings.TrimSuffix(stem, filepath.Ext(stem))
}

// Load registers one view per Spec on db. Parquet files are opened with
// arrow-go first so a corrupt or unreadable file surfaces as an IOError
// before any view is registered; the view itself still reads the file
// through DuckDB's own read_parquet table function, since DuckDB (not
// this process) must own the actual query execution.
func Load(db *sql.DB, specs []Spec) error {
	var list *verrors.List
	for _, s := range specs {
		if err := loadOne(db, s); err != nil {
			list = verrors.Append(list, err)
		}
	}
	return list.AsError()
}

func loadOne(db *sql.DB, s Spec) error {
	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".parquet":
		if err := checkParquet(s.Path); err != nil {
			return err
		}
		return registerView(db, s.tableName(), "read_parquet", s.Path)
	case ".csv":
		return registerView(db, s.tableName(), "read_csv_auto", s.Path)
	case ".json":
		return registerView(db, s.tableName(), "read_json_auto", s.Path)
	default:
		return verrors.NewIOError(s.Path, fmt.Errorf("unrecognized preload format %q", filepath.Ext(s.Path)))
	}
}

// checkParquet opens path with the arrow-go parquet file reader purely
// to validate it is a well-formed Parquet file before handing it to
// DuckDB; it reads only the file footer, not row data.
func checkParquet(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return verrors.NewIOError(path, err)
	}
	defer f.Close()

	r, err := file.NewParquetReader(f)
	if err != nil {
		return verrors.NewIOError(path, fmt.Errorf("not a valid Parquet file: %w", err))
	}
	defer r.Close()
	return nil
}

func registerView(db *sql.DB, tableName, readerFn, path string) error {
	stmt := fmt.Sprintf(`CREATE OR REPLACE VIEW %s AS SELECT * FROM %s(%s)`,
		quoteIdent(tableName), readerFn, quoteLiteral(path))
	if _, err := db.Exec(stmt); err != nil {
		return verrors.NewBackendError("duckdb", stmt, "preload %q: %s", path, err)
	}
	return nil
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func quoteLiteral(s string) string {
	return `'` + strings.ReplaceAll(s, `'`, `''`) + `'`
}
