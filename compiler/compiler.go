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

// Package compiler ties the pipeline stages of spec.md §4 together behind
// one entry point, in the ordering spec.md §5 requires: splitter ->
// parse/build -> validate must all complete before adapter execution is
// issued, and the emitter runs strictly after that. It is the vvSQL
// analog of cuelang.org/go/cue's package root, which is the one place
// that knows the full Runtime -> Instance -> Value pipeline order.
package compiler

import (
	"context"
	"fmt"

	"github.com/vvsql/vvsql/adapter"
	"github.com/vvsql/vvsql/build"
	"github.com/vvsql/vvsql/emit"
	"github.com/vvsql/vvsql/model"
	"github.com/vvsql/vvsql/parser"
	"github.com/vvsql/vvsql/splitter"
	"github.com/vvsql/vvsql/table"
)

// Result is the product of one end-to-end compilation. A query's viz
// sub-language may hold more than one VISUALISE AS block (spec.md §4.1:
// "Specs are emitted in source order"), so every slice here has one
// entry per VizSpec, aligned by index and sharing the one data fetch.
type Result struct {
	Specs     []*model.VizSpec
	Documents []*emit.Document
	Metadata  []*emit.Metadata
}

// Compiler wires one Adapter set to the pipeline. Adapters is consulted
// in order; the first one whose Supports(connURI) returns true executes
// the data-sublanguage prefix.
type Compiler struct {
	Adapters []adapter.Adapter
}

// New returns a Compiler backed by adapters, tried in the given order.
func New(adapters ...adapter.Adapter) *Compiler {
	return &Compiler{Adapters: adapters}
}

// Parse runs the splitter, parser, builder, and validator, and returns
// every well-formed VizSpec the query's viz sub-language holds, in
// source order, without ever reaching the adapter or emitter. It backs
// the `parse` CLI subcommand and the `POST /api/v1/parse` HTTP route
// (spec.md §6).
func (c *Compiler) Parse(query string) ([]*model.VizSpec, string, error) {
	dataText, vizText := splitter.Split(query)

	prog, err := parser.Parse("", vizText)
	if err != nil {
		return nil, dataText, err
	}
	specs, err := build.Build(prog)
	if err != nil {
		return nil, dataText, err
	}
	for _, spec := range specs {
		if err := model.Validate(spec); err != nil {
			return nil, dataText, err
		}
	}
	return specs, dataText, nil
}

// Compile runs the full pipeline: split, parse, build, validate, fetch
// the data via the first supporting Adapter, then emit a Vega-Lite
// document for every VizSpec the query held, against that one fetch.
// connURI selects the backend for the data sub-language prefix; it is
// ignored if vizText alone was given (dataText empty).
func (c *Compiler) Compile(ctx context.Context, query, connURI string) (*Result, error) {
	specs, dataText, err := c.Parse(query)
	if err != nil {
		return nil, err
	}

	tbl, err := c.fetch(ctx, dataText, connURI)
	if err != nil {
		return nil, err
	}

	docs := make([]*emit.Document, 0, len(specs))
	metas := make([]*emit.Metadata, 0, len(specs))
	for _, spec := range specs {
		doc, meta, err := emit.Emit(tbl, spec)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
		metas = append(metas, meta)
	}
	return &Result{Specs: specs, Documents: docs, Metadata: metas}, nil
}

func (c *Compiler) fetch(ctx context.Context, dataText, connURI string) (*table.Table, error) {
	if dataText == "" {
		return nil, nil
	}
	for _, a := range c.Adapters {
		if a.Supports(connURI) {
			return a.Execute(ctx, dataText, connURI)
		}
	}
	return nil, fmt.Errorf("no adapter registered for connection %q", connURI)
}
