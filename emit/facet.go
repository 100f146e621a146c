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

package emit

import "github.com/vvsql/vvsql/model"

// facetObject lowers a Facet to its top-level "facet" object, per
// spec.md §4.6: Wrap emits a single field channel, Grid emits row and
// column channels.
func facetObject(f *model.Facet) *OrderedMap {
	o := NewOrderedMap()
	if !f.Grid {
		o.Set("field", f.Vars[0])
		o.Set("type", "nominal")
		if f.Columns != 0 {
			o.Set("columns", f.Columns)
		}
		return o
	}
	if len(f.Vars) > 0 {
		row := NewOrderedMap()
		row.Set("field", f.Vars[0])
		row.Set("type", "nominal")
		o.Set("row", row)
	}
	if len(f.ColVars) > 0 {
		col := NewOrderedMap()
		col.Set("field", f.ColVars[0])
		col.Set("type", "nominal")
		o.Set("column", col)
	}
	return o
}

// resolveObject builds the top-level "resolve" object a non-fixed facet
// scale mode propagates to (spec.md §4.6: "scales != fixed propagates to
// resolve.scale.{x|y}: independent"), or nil when scales are fixed.
func resolveObject(f *model.Facet) *OrderedMap {
	freeX := f.Scales == model.ScalesFree || f.Scales == model.ScalesFreeX
	freeY := f.Scales == model.ScalesFree || f.Scales == model.ScalesFreeY
	if !freeX && !freeY {
		return nil
	}
	scale := NewOrderedMap()
	if freeX {
		scale.Set("x", "independent")
	}
	if freeY {
		scale.Set("y", "independent")
	}
	resolve := NewOrderedMap()
	resolve.Set("scale", scale)
	return resolve
}
