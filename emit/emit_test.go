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

package emit_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/vvsql/vvsql/build"
	"github.com/vvsql/vvsql/emit"
	"github.com/vvsql/vvsql/model"
	"github.com/vvsql/vvsql/parser"
	"github.com/vvsql/vvsql/table"
)

func compile(t *testing.T, src string) *model.VizSpec {
	t.Helper()
	prog, err := parser.Parse("", src)
	require.NoError(t, err)
	specs, err := build.Build(prog)
	require.NoError(t, err)
	require.NoError(t, model.Validate(specs[0]))
	return specs[0]
}

func asJSON(t *testing.T, v interface{}) map[string]interface{} {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &m))
	return m
}

// S1 — single line, temporal x.
func TestEmitSingleLineTemporalX(t *testing.T) {
	spec := compile(t, "VISUALISE AS PLOT WITH line USING x=d,y=r SCALE x USING type=date")
	tbl, err := table.New(
		[]table.Column{{Name: "d", Type: table.TemporalDate}, {Name: "r", Type: table.Integer}},
		[][]interface{}{{"2024-01-01", 0}, {"2024-01-02", 10}},
	)
	require.NoError(t, err)

	doc, meta, err := emit.Emit(tbl, spec)
	require.NoError(t, err)

	m := asJSON(t, doc)
	require.Equal(t, "line", m["mark"])
	enc := m["encoding"].(map[string]interface{})
	if diff := cmp.Diff(map[string]interface{}{"field": "d", "type": "temporal"}, enc["x"]); diff != "" {
		t.Errorf("encoding.x mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]interface{}{"field": "r", "type": "quantitative"}, enc["y"]); diff != "" {
		t.Errorf("encoding.y mismatch (-want +got):\n%s", diff)
	}

	require.Equal(t, 2, meta.Rows)
	require.Equal(t, []string{"d", "r"}, meta.Columns)
	require.Equal(t, "PLOT", meta.VizType)
	require.Equal(t, 1, meta.Layers)
}

// S2 — multi-layer with labels.
func TestEmitMultiLayerWithLabels(t *testing.T) {
	spec := compile(t, `VISUALISE AS PLOT
		WITH line USING x=d,y=r
		WITH point USING x=d,y=r
		LABEL x=Date, y=Revenue`)

	doc, _, err := emit.Emit(nil, spec)
	require.NoError(t, err)

	m := asJSON(t, doc)
	layers := m["layer"].([]interface{})
	require.Len(t, layers, 2)
	require.Equal(t, "line", layers[0].(map[string]interface{})["mark"])
	require.Equal(t, "point", layers[1].(map[string]interface{})["mark"])
	for _, l := range layers {
		enc := l.(map[string]interface{})["encoding"].(map[string]interface{})
		require.Equal(t, "Date", enc["x"].(map[string]interface{})["title"])
		require.Equal(t, "Revenue", enc["y"].(map[string]interface{})["title"])
	}
}

// S3 — facet wrap, free_y.
func TestEmitFacetWrapFreeY(t *testing.T) {
	spec := compile(t, "VISUALISE AS PLOT WITH point USING x=d,y=r FACET WRAP region USING scales=free_y")

	doc, _, err := emit.Emit(nil, spec)
	require.NoError(t, err)

	m := asJSON(t, doc)
	require.Equal(t, map[string]interface{}{"field": "region", "type": "nominal"}, m["facet"])
	resolve := m["resolve"].(map[string]interface{})
	scale := resolve["scale"].(map[string]interface{})
	require.Equal(t, "independent", scale["y"])
	require.NotContains(t, scale, "x")
}

// S4 (adapted) — coord flip swaps field/type wholesale but the title
// travels with the channel object it was set on, so it still reads as
// "attached to the aesthetic originally called x" (spec.md §4.6).
func TestEmitCoordFlipPreservesLabelByAesthetic(t *testing.T) {
	spec := compile(t, `VISUALISE AS PLOT WITH bar USING x=category,y=value
		COORD flip
		LABEL x=Category, y=Count`)

	doc, _, err := emit.Emit(nil, spec)
	require.NoError(t, err)

	m := asJSON(t, doc)
	enc := m["encoding"].(map[string]interface{})
	require.Equal(t, "category", enc["y"].(map[string]interface{})["field"])
	require.Equal(t, "Category", enc["y"].(map[string]interface{})["title"])
	require.Equal(t, "value", enc["x"].(map[string]interface{})["field"])
	require.Equal(t, "Count", enc["x"].(map[string]interface{})["title"])
}

// S6 — reversed xlim normalized by the validator, lowered to scale.domain.
func TestEmitReversedXlimNormalized(t *testing.T) {
	spec := compile(t, "VISUALISE AS PLOT WITH line USING x=d,y=r COORD cartesian USING xlim=[100,0]")

	doc, _, err := emit.Emit(nil, spec)
	require.NoError(t, err)

	m := asJSON(t, doc)
	enc := m["encoding"].(map[string]interface{})
	scale := enc["x"].(map[string]interface{})["scale"].(map[string]interface{})
	require.Equal(t, []interface{}{0.0, 100.0}, scale["domain"])
}

func TestEmitUnknownGeomFallsBackToPointWithWarning(t *testing.T) {
	spec := compile(t, "VISUALISE AS PLOT WITH violin USING x=d,y=r")

	doc, meta, err := emit.Emit(nil, spec)
	require.NoError(t, err)

	m := asJSON(t, doc)
	require.Equal(t, "point", m["mark"])
	require.Len(t, meta.Warnings, 1)
	require.Equal(t, "unknown-geom", meta.Warnings[0].Code)
}

func TestEmitSingleLayerIsFlatNotWrapped(t *testing.T) {
	spec := compile(t, "VISUALISE AS PLOT WITH line USING x=d,y=r")

	doc, _, err := emit.Emit(nil, spec)
	require.NoError(t, err)

	m := asJSON(t, doc)
	require.Contains(t, m, "mark")
	require.NotContains(t, m, "layer")
}

func TestEmitThemeAppliesConfigAndOverrides(t *testing.T) {
	spec := compile(t, "VISUALISE AS PLOT WITH line USING x=d,y=r THEME dark USING background=black")

	doc, _, err := emit.Emit(nil, spec)
	require.NoError(t, err)

	m := asJSON(t, doc)
	cfg := m["config"].(map[string]interface{})
	require.Equal(t, "black", cfg["background"])
}

func TestEmitLiteralAestheticRendersAsValue(t *testing.T) {
	spec := compile(t, "VISUALISE AS PLOT WITH line USING x=d,y=r,color='red'")

	doc, _, err := emit.Emit(nil, spec)
	require.NoError(t, err)

	m := asJSON(t, doc)
	enc := m["encoding"].(map[string]interface{})
	require.Equal(t, map[string]interface{}{"value": "red"}, enc["color"])
}

func TestEmitTopLevelKeyOrderIsCanonical(t *testing.T) {
	spec := compile(t, "VISUALISE AS PLOT WITH line USING x=d,y=r")

	doc, _, err := emit.Emit(nil, spec)
	require.NoError(t, err)

	b, err := json.Marshal(doc)
	require.NoError(t, err)

	schemaIdx := indexOf(string(b), `"$schema"`)
	dataIdx := indexOf(string(b), `"data"`)
	markIdx := indexOf(string(b), `"mark"`)
	require.True(t, schemaIdx < dataIdx)
	require.True(t, dataIdx < markIdx)
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
