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

// markTable is the geom -> Vega-Lite mark lowering of spec.md §4.6.
var markTable = map[model.Geom]string{
	model.GeomPoint:     "point",
	model.GeomLine:      "line",
	model.GeomBar:       "bar",
	model.GeomArea:      "area",
	model.GeomTile:      "rect",
	model.GeomText:      "text",
	model.GeomSegment:   "rule",
	model.GeomHline:     "rule",
	model.GeomVline:     "rule",
	model.GeomHistogram: "bar",
	model.GeomDensity:   "area",
	model.GeomSmooth:    "line",
	model.GeomBoxplot:   "boxplot",
	model.GeomRibbon:    "area",
}

// markFor resolves geom to its Vega-Lite mark type, falling back to
// "point" with a warning for anything the table does not cover (spec.md
// §4.6: "Unknown geoms fall back to point with a non-fatal diagnostic").
func markFor(g model.Geom) (mark string, warning *model.Warning) {
	if m, ok := markTable[g]; ok {
		return m, nil
	}
	return "point", &model.Warning{
		Code:    "unknown-geom",
		Message: "geom \"" + string(g) + "\" is not recognized; falling back to point",
		Context: "WITH " + string(g),
	}
}

// layerTransform returns the implicit transform spec.md §4.6 attaches to
// density (kernel density) and smooth (regression) geoms, or nil for
// every other geom. histogram's implicit binning is expressed on the
// encoding itself (encoding.x.bin = true), not as a transform, and is
// handled in channel.go.
func layerTransform(g model.Geom, aesthetics map[string]model.AestheticValue) *OrderedMap {
	switch g {
	case model.GeomDensity:
		t := NewOrderedMap()
		if col, ok := aesthetics["x"].(model.Column); ok {
			t.Set("density", col.Name)
		}
		return t
	case model.GeomSmooth:
		t := NewOrderedMap()
		if col, ok := aesthetics["y"].(model.Column); ok {
			t.Set("regression", col.Name)
		}
		if col, ok := aesthetics["x"].(model.Column); ok {
			t.Set("on", col.Name)
		}
		return t
	default:
		return nil
	}
}
