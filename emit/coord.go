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

// applyCartesianDomain lowers a cartesian Coord's xlim/ylim properties
// onto an already-built layer encoding, per spec.md §4.6 (the auto-swap
// for a reversed limit pair already happened in model.Validate).
func applyCartesianDomain(c *model.Coord, enc *OrderedMap) {
	setDomain := func(channel, prop string) {
		lim, ok := c.Properties[prop].([]interface{})
		if !ok {
			return
		}
		v, ok := enc.Get(channel)
		if !ok {
			return
		}
		chanObj, ok := v.(*OrderedMap)
		if !ok {
			return
		}
		scale := NewOrderedMap()
		scale.Set("domain", lim)
		chanObj.Set("scale", scale)
	}
	setDomain("x", "xlim")
	setDomain("y", "ylim")
}

// applyFlip swaps the x/y (and x2/y2) encoding objects of a layer
// wholesale, per spec.md §4.6. Because each channel object already
// carries any LABEL-assigned title (labels.go runs before coord
// lowering), moving the whole object preserves "a LABEL x=... stays on
// the aesthetic originally called x" without any extra bookkeeping.
func applyFlip(enc *OrderedMap) {
	swap := func(a, b string) {
		va, hasA := enc.Get(a)
		vb, hasB := enc.Get(b)
		enc.Delete(a)
		enc.Delete(b)
		if hasA {
			enc.Set(b, va)
		}
		if hasB {
			enc.Set(a, vb)
		}
	}
	swap("x", "y")
	swap("x2", "y2")
}

// applyPolar lowers a polar Coord, per spec.md §4.6: a sole bar layer
// becomes an "arc" mark; otherwise the theta property selects which of
// x/y supplies the angular channel, and that channel is renamed "theta"
// (the other becomes "radius" when present).
func applyPolar(c *model.Coord, mark string, enc *OrderedMap, soleBarLayer bool) string {
	if soleBarLayer {
		return "arc"
	}
	theta, _ := c.Properties["theta"].(string)
	if theta == "" {
		theta = "y"
	}
	radius := "y"
	if theta == "y" {
		radius = "x"
	}
	if v, ok := enc.Get(theta); ok {
		enc.Delete(theta)
		enc.Set("theta", v)
	}
	if v, ok := enc.Get(radius); ok {
		enc.Delete(radius)
		enc.Set("radius", v)
	}
	return mark
}

// unsupportedCoordWarning reports the non-fatal diagnostic for
// fixed/trans/map/quickmap Coord kinds, which parse and lower as an
// identity transform of the cartesian layout (an explicit Open Question
// resolution recorded in DESIGN.md: vvSQL has no aspect-ratio-locking or
// projection engine of its own).
func unsupportedCoordWarning(kind model.CoordKind) *model.Warning {
	switch kind {
	case model.CoordFixed, model.CoordTrans, model.CoordMap, model.CoordQuickmap:
		return &model.Warning{
			Code:    "coord-unsupported",
			Message: "coordinate system \"" + string(kind) + "\" has no dedicated lowering; rendered as cartesian",
			Context: "COORD " + string(kind),
		}
	default:
		return nil
	}
}
