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

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vvsql/vvsql/model"
)

func TestFacetObjectWrap(t *testing.T) {
	f := &model.Facet{Grid: false, Vars: []string{"region"}}
	o := facetObject(f)
	require.Equal(t, "region", mustField(o))
	typ, _ := o.Get("type")
	require.Equal(t, "nominal", typ)
}

func TestFacetObjectGrid(t *testing.T) {
	f := &model.Facet{Grid: true, Vars: []string{"row1"}, ColVars: []string{"col1"}}
	o := facetObject(f)
	row, ok := o.Get("row")
	require.True(t, ok)
	require.Equal(t, "row1", mustField(row))
	col, ok := o.Get("column")
	require.True(t, ok)
	require.Equal(t, "col1", mustField(col))
}

func TestFacetObjectWrapWithColumnsProperty(t *testing.T) {
	f := &model.Facet{Grid: false, Vars: []string{"region"}, Columns: 3}
	o := facetObject(f)
	require.Equal(t, "region", mustField(o))
	columns, ok := o.Get("columns")
	require.True(t, ok)
	require.Equal(t, 3, columns)
}

func TestFacetObjectWrapWithoutColumnsOmitsKey(t *testing.T) {
	f := &model.Facet{Grid: false, Vars: []string{"region"}}
	o := facetObject(f)
	require.False(t, o.Has("columns"))
}

func TestResolveObjectFixedIsNil(t *testing.T) {
	require.Nil(t, resolveObject(&model.Facet{Scales: model.ScalesFixed}))
}

func TestResolveObjectFreeSetsBothAxes(t *testing.T) {
	r := resolveObject(&model.Facet{Scales: model.ScalesFree})
	scale, _ := r.Get("scale")
	x, _ := scale.(*OrderedMap).Get("x")
	y, _ := scale.(*OrderedMap).Get("y")
	require.Equal(t, "independent", x)
	require.Equal(t, "independent", y)
}

func TestResolveObjectFreeXOnly(t *testing.T) {
	r := resolveObject(&model.Facet{Scales: model.ScalesFreeX})
	scale, _ := r.Get("scale")
	require.True(t, scale.(*OrderedMap).Has("x"))
	require.False(t, scale.(*OrderedMap).Has("y"))
}
