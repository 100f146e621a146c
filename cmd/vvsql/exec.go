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

package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvsql/vvsql/adapter"
	"github.com/vvsql/vvsql/adapter/preload"
	"github.com/vvsql/vvsql/compiler"
	"github.com/vvsql/vvsql/emit"
)

func newExecCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec [query]",
		Short: "run the full pipeline against a data backend and print the Vega-Lite document",
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := readQuery(flags, args)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(flags, cmd.Flags())
			if err != nil {
				return err
			}
			uri := cfg.ConnURI

			db := adapter.NewDuckDB()
			if err := preloadInto(db, uri, flags); err != nil {
				return err
			}

			res, err := compiler.New(db).Compile(context.Background(), query, uri)
			if err != nil {
				return err
			}
			return emitDocument(flags, res)
		},
	}
	return cmd
}

// preloadInto opens connURI's pool through db and registers every
// --preload entry as a view on it before the query runs.
func preloadInto(db *adapter.DuckDB, connURI string, flags *rootFlags) error {
	specs := preloadSpecs(flags)
	if len(specs) == 0 {
		return nil
	}
	pool, err := db.Pool(connURI)
	if err != nil {
		return err
	}
	return preload.Load(pool, specs)
}

// emitDocument prints every document compiler.Result holds, one per
// VISUALISE AS block in source order (spec.md §4.1). A single-document
// result is printed bare, matching the pre-multi-spec output shape.
func emitDocument(flags *rootFlags, res *compiler.Result) error {
	if flags.format == "human" {
		var s string
		for i, meta := range res.Metadata {
			if len(res.Metadata) > 1 {
				s += fmt.Sprintf("--- document %d ---\n", i)
			}
			s += humanDocument(meta)
		}
		return writeOutput(flags, []byte(s))
	}
	var v interface{} = res.Documents
	if len(res.Documents) == 1 {
		v = res.Documents[0]
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return writeOutput(flags, b)
}

func humanDocument(meta *emit.Metadata) string {
	return fmt.Sprintf("viz_type: %s\nlayers: %d\nrows: %d\ncolumns: %v\nwarnings: %d\n",
		meta.VizType, meta.Layers, meta.Rows, meta.Columns, len(meta.Warnings))
}
