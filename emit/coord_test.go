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

func newFieldChannel(field, typ string) *OrderedMap {
	o := NewOrderedMap()
	o.Set("field", field)
	o.Set("type", typ)
	return o
}

func TestApplyCartesianDomainSetsScaleDomain(t *testing.T) {
	enc := NewOrderedMap()
	enc.Set("x", newFieldChannel("n", "quantitative"))
	coord := &model.Coord{Kind: model.CoordCartesian, Properties: map[string]interface{}{
		"xlim": []interface{}{0.0, 100.0},
	}}

	applyCartesianDomain(coord, enc)

	x, _ := enc.Get("x")
	scale, ok := x.(*OrderedMap).Get("scale")
	require.True(t, ok)
	domain, _ := scale.(*OrderedMap).Get("domain")
	require.Equal(t, []interface{}{0.0, 100.0}, domain)
}

func TestApplyFlipSwapsWholeChannelObjects(t *testing.T) {
	enc := NewOrderedMap()
	xChan := newFieldChannel("category", "nominal")
	xChan.Set("title", "Category")
	yChan := newFieldChannel("value", "quantitative")
	yChan.Set("title", "Count")
	enc.Set("x", xChan)
	enc.Set("y", yChan)

	applyFlip(enc)

	newX, _ := enc.Get("x")
	newY, _ := enc.Get("y")
	require.Equal(t, "value", mustField(newX))
	title, _ := newX.(*OrderedMap).Get("title")
	require.Equal(t, "Count", title)
	require.Equal(t, "category", mustField(newY))
	title, _ = newY.(*OrderedMap).Get("title")
	require.Equal(t, "Category", title)
}

func TestApplyPolarSoleBarBecomesArc(t *testing.T) {
	enc := NewOrderedMap()
	mark := applyPolar(&model.Coord{Properties: map[string]interface{}{}}, "bar", enc, true)
	require.Equal(t, "arc", mark)
}

func TestApplyPolarRenamesThetaAndRadius(t *testing.T) {
	enc := NewOrderedMap()
	enc.Set("x", newFieldChannel("category", "nominal"))
	enc.Set("y", newFieldChannel("value", "quantitative"))

	mark := applyPolar(&model.Coord{Properties: map[string]interface{}{"theta": "y"}}, "point", enc, false)

	require.Equal(t, "point", mark)
	require.True(t, enc.Has("theta"))
	require.True(t, enc.Has("radius"))
	require.False(t, enc.Has("x"))
	require.False(t, enc.Has("y"))
	require.Equal(t, "value", mustField(mustGet(enc, "theta")))
	require.Equal(t, "category", mustField(mustGet(enc, "radius")))
}

func TestApplyPolarDefaultsThetaToY(t *testing.T) {
	enc := NewOrderedMap()
	enc.Set("x", newFieldChannel("category", "nominal"))
	enc.Set("y", newFieldChannel("value", "quantitative"))

	mark := applyPolar(&model.Coord{Properties: map[string]interface{}{}}, "point", enc, false)

	require.Equal(t, "point", mark)
	require.Equal(t, "value", mustField(mustGet(enc, "theta")))
	require.Equal(t, "category", mustField(mustGet(enc, "radius")))
}

func mustGet(m *OrderedMap, key string) interface{} {
	v, _ := m.Get(key)
	return v
}

func TestUnsupportedCoordWarningOnlyForNamedKinds(t *testing.T) {
	require.NotNil(t, unsupportedCoordWarning(model.CoordFixed))
	require.NotNil(t, unsupportedCoordWarning(model.CoordTrans))
	require.NotNil(t, unsupportedCoordWarning(model.CoordMap))
	require.NotNil(t, unsupportedCoordWarning(model.CoordQuickmap))
	require.Nil(t, unsupportedCoordWarning(model.CoordCartesian))
}
