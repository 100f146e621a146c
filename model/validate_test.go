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

package model_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vvsql/vvsql/model"
)

func minimalSpec() *model.VizSpec {
	return &model.VizSpec{
		VizType: model.PLOT,
		Layers: []*model.Layer{
			{Geom: model.GeomLine, Aesthetics: map[string]model.AestheticValue{
				"x": model.Column{Name: "d"},
				"y": model.Column{Name: "r"},
			}},
		},
	}
}

func TestValidateRejectsEmptyLayers(t *testing.T) {
	spec := &model.VizSpec{VizType: model.PLOT}
	require.Error(t, model.Validate(spec))
}

func TestValidateResolvesDefaults(t *testing.T) {
	spec := minimalSpec()
	require.NoError(t, model.Validate(spec))
	require.Equal(t, model.CoordCartesian, spec.Coord.Kind)
	require.Equal(t, "minimal", spec.Theme.Name)
}

func TestValidateIsIdempotent(t *testing.T) {
	spec := minimalSpec()
	require.NoError(t, model.Validate(spec))
	spec.Coord.Kind = model.CoordFlip // simulate external mutation attempt marker
	require.NoError(t, model.Validate(spec))
	require.Equal(t, model.CoordFlip, spec.Coord.Kind) // Validate is a no-op, does not reset
}

func TestValidateRequiresAestheticsPerGeom(t *testing.T) {
	spec := &model.VizSpec{
		VizType: model.PLOT,
		Layers: []*model.Layer{
			{Geom: model.GeomSegment, Aesthetics: map[string]model.AestheticValue{
				"x": model.Column{Name: "a"},
				"y": model.Column{Name: "b"},
			}},
		},
	}
	err := model.Validate(spec)
	require.Error(t, err)
	require.Contains(t, err.Error(), "xend")
}

func TestValidateDomainConflictIsModelError(t *testing.T) {
	spec := &model.VizSpec{
		VizType: model.PLOT,
		Layers: []*model.Layer{
			{Geom: model.GeomPoint, Aesthetics: map[string]model.AestheticValue{
				"x":     model.Column{Name: "a"},
				"y":     model.Column{Name: "b"},
				"color": model.Column{Name: "c"},
			}},
		},
		Scales: map[string]*model.Scale{
			"color": {Aesthetic: "color", Properties: map[string]interface{}{
				"domain": []interface{}{"a", "b"},
			}},
		},
		Coord: &model.Coord{Kind: model.CoordCartesian, Properties: map[string]interface{}{
			"color": []interface{}{"a", "c"},
		}},
	}
	err := model.Validate(spec)
	require.Error(t, err)
	require.Contains(t, err.Error(), "color")
}

func TestValidateReversedXlimIsSwapped(t *testing.T) {
	spec := minimalSpec()
	spec.Coord = &model.Coord{Kind: model.CoordCartesian, Properties: map[string]interface{}{
		"xlim": []interface{}{100.0, 0.0},
	}}
	require.NoError(t, model.Validate(spec))
	lim := spec.Coord.Properties["xlim"].([]interface{})
	require.Equal(t, 0.0, lim[0])
	require.Equal(t, 100.0, lim[1])
}

func TestValidatePolarRequiresXOrYTheta(t *testing.T) {
	spec := minimalSpec()
	spec.Coord = &model.Coord{Kind: model.CoordPolar, Properties: map[string]interface{}{
		"theta": "z",
	}}
	require.Error(t, model.Validate(spec))
}

func TestValidateMapRestrictsCoordKinds(t *testing.T) {
	spec := minimalSpec()
	spec.VizType = model.MAP
	spec.Coord = &model.Coord{Kind: model.CoordFlip}
	require.Error(t, model.Validate(spec))
}

func TestValidateScaleMustBeUsedOrXY(t *testing.T) {
	spec := minimalSpec()
	spec.Scales = map[string]*model.Scale{
		"color": {Aesthetic: "color", Properties: map[string]interface{}{}},
	}
	require.Error(t, model.Validate(spec))
}
