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
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvsql/vvsql/model"
)

func newParseCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [query]",
		Short: "parse and validate a query, printing the built VizSpec",
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := readQuery(flags, args)
			if err != nil {
				return err
			}
			specs, _, err := newCompiler().Parse(query)
			if err != nil {
				return err
			}
			return emitSpecs(flags, specs)
		},
	}
}

// emitSpecs prints every VizSpec the query's viz sub-language held, in
// source order (spec.md §4.1).
func emitSpecs(flags *rootFlags, specs []*model.VizSpec) error {
	if flags.format == "human" {
		var s string
		for i, spec := range specs {
			if len(specs) > 1 {
				s += fmt.Sprintf("--- spec %d ---\n", i)
			}
			s += humanSpec(spec)
		}
		return writeOutput(flags, []byte(s))
	}
	var v interface{} = specs
	if len(specs) == 1 {
		v = specs[0]
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return writeOutput(flags, b)
}

func humanSpec(spec *model.VizSpec) string {
	s := fmt.Sprintf("viz_type: %s\nlayers: %d\n", spec.VizType, len(spec.Layers))
	for i, l := range spec.Layers {
		s += fmt.Sprintf("  layer %d: geom=%s aesthetics=%d\n", i, l.Geom, len(l.Aesthetics))
	}
	if spec.Facet != nil {
		shape := "wrap"
		if spec.Facet.Grid {
			shape = "grid"
		}
		s += fmt.Sprintf("facet: %s\n", shape)
	}
	if spec.Coord != nil {
		s += fmt.Sprintf("coord: %s\n", spec.Coord.Kind)
	}
	if spec.Theme != nil {
		s += fmt.Sprintf("theme: %s\n", spec.Theme.Name)
	}
	if len(spec.Warnings) > 0 {
		s += fmt.Sprintf("warnings: %d\n", len(spec.Warnings))
		for _, w := range spec.Warnings {
			s += fmt.Sprintf("  - %s: %s\n", w.Code, w.Message)
		}
	}
	return s
}
