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

package model

import (
	"fmt"

	verrors "github.com/vvsql/vvsql/errors"
	"github.com/vvsql/vvsql/token"
)

// Validate enforces the invariants of spec.md §3, resolves the defaults of
// spec.md §4.4, and appends non-fatal Warnings. It is idempotent: calling
// it again on an already-validated spec returns nil immediately and never
// mutates the spec further (spec.md §8 property 4).
func Validate(v *VizSpec) error {
	if v.validated {
		return nil
	}

	var list *verrors.List

	// Invariant 1: layers.size() >= 1.
	if len(v.Layers) == 0 {
		list = verrors.Append(list, verrors.NewModelError(token.NoPos, "VizSpec", "a visualization spec needs at least one layer"))
	}

	resolveDefaults(v)

	list = validateScales(v, list)
	list = validateCoordDomainConflict(v, list)
	list = validateCoordPolarTheta(v, list)
	list = validateFacetScales(v, list)
	list = validateRequiredAesthetics(v, list)
	list = validateVizTypeCoordRestriction(v, list)
	list = validateLimitsShape(v, list)

	if err := list.AsError(); err != nil {
		return err
	}

	normalizeLimits(v)
	v.validated = true
	return nil
}

// resolveDefaults fills in the defaults named in spec.md §4.4: an absent
// coord is cartesian with no limits, an absent facet.scales is "fixed",
// and an absent theme is "minimal" for PLOT (none for TABLE/MAP).
func resolveDefaults(v *VizSpec) {
	if v.Coord == nil {
		v.Coord = &Coord{Kind: CoordCartesian, Properties: map[string]interface{}{}}
	}
	if v.Coord.Kind == "" {
		v.Coord.Kind = CoordCartesian
	}
	if v.Facet != nil && v.Facet.Scales == "" {
		v.Facet.Scales = ScalesFixed
	}
	if v.Theme == nil && v.VizType == PLOT {
		v.Theme = &Theme{Name: "minimal", Overrides: map[string]interface{}{}}
	}
	if v.Scales == nil {
		v.Scales = map[string]*Scale{}
	}
	if v.Guides == nil {
		v.Guides = map[string]*Guide{}
	}
}

// validateScales enforces invariant 2: a scale's aesthetic must appear in
// at least one layer, or be x/y.
func validateScales(v *VizSpec, list *verrors.List) *verrors.List {
	used := usedAesthetics(v)
	for aes, sc := range v.Scales {
		if aes != "x" && aes != "y" && !used[aes] {
			list = verrors.Append(list, verrors.NewModelError(sc.Pos, fmt.Sprintf("SCALE %s", aes),
				"aesthetic %q has a scale but is not used by any layer", aes))
		}
		if sc.Type != "" && !IsKnownScaleType(sc.Type) {
			list = verrors.Append(list, verrors.NewModelError(sc.Pos, fmt.Sprintf("SCALE %s", aes),
				"unknown scale type %q", sc.Type))
		}
	}
	return list
}

func usedAesthetics(v *VizSpec) map[string]bool {
	used := map[string]bool{}
	for _, l := range v.Layers {
		for aes := range l.Aesthetics {
			used[aes] = true
		}
	}
	return used
}

// validateCoordDomainConflict enforces invariant 4: no aesthetic may carry
// a domain in both its Scale and in Coord.Properties.
func validateCoordDomainConflict(v *VizSpec, list *verrors.List) *verrors.List {
	coordDomains := coordDomainAesthetics(v)
	for aes, sc := range v.Scales {
		if _, hasScaleDomain := sc.Properties["domain"]; hasScaleDomain {
			if coordDomains[aes] {
				list = verrors.Append(list, verrors.NewModelError(sc.Pos, fmt.Sprintf("SCALE %s / COORD", aes),
					"aesthetic %q has a domain in both its SCALE and its COORD — remove one", aes))
			}
		}
	}
	return list
}

// coordDomainAesthetics returns the set of aesthetics that have a domain
// property set directly on Coord.Properties, e.g. `COORD ... USING
// color=[...]` naming a per-aesthetic domain array. xlim/ylim are
// coordinate-system limits, not per-aesthetic domains, and are exempt.
func coordDomainAesthetics(v *VizSpec) map[string]bool {
	out := map[string]bool{}
	if v.Coord == nil {
		return out
	}
	for key := range v.Coord.Properties {
		switch key {
		case "xlim", "ylim", "theta":
		default:
			out[key] = true
		}
	}
	return out
}

// validateCoordPolarTheta enforces invariant 5.
func validateCoordPolarTheta(v *VizSpec, list *verrors.List) *verrors.List {
	if v.Coord == nil || v.Coord.Kind != CoordPolar {
		return list
	}
	theta, ok := v.Coord.Properties["theta"]
	if !ok {
		return list
	}
	s, ok := theta.(string)
	if !ok || (s != "x" && s != "y") {
		list = verrors.Append(list, verrors.NewModelError(v.Coord.Pos, "COORD polar",
			"theta must be 'x' or 'y', got %v", theta))
	}
	return list
}

// validateFacetScales enforces invariant 7.
func validateFacetScales(v *VizSpec, list *verrors.List) *verrors.List {
	if v.Facet == nil {
		return list
	}
	switch v.Facet.Scales {
	case ScalesFixed, ScalesFree, ScalesFreeX, ScalesFreeY:
	default:
		list = verrors.Append(list, verrors.NewModelError(v.Facet.Pos, "FACET",
			"invalid scales value %q", v.Facet.Scales))
	}
	return list
}

// validateRequiredAesthetics enforces the per-geom requirements of
// spec.md §4.4.
func validateRequiredAesthetics(v *VizSpec, list *verrors.List) *verrors.List {
	for _, l := range v.Layers {
		for _, required := range RequiredAesthetics(l.Geom) {
			if _, ok := l.Aesthetics[required]; !ok {
				list = verrors.Append(list, verrors.NewModelError(l.Pos, fmt.Sprintf("WITH %s", l.Geom),
					"geom %q requires aesthetic %q", l.Geom, required))
			}
		}
	}
	return list
}

// validateVizTypeCoordRestriction enforces invariant 8: a MAP spec
// restricts coord kinds to {map, quickmap, cartesian}.
func validateVizTypeCoordRestriction(v *VizSpec, list *verrors.List) *verrors.List {
	if v.VizType != MAP || v.Coord == nil {
		return list
	}
	switch v.Coord.Kind {
	case CoordMap, CoordQuickmap, CoordCartesian:
	default:
		list = verrors.Append(list, verrors.NewModelError(v.Coord.Pos, "COORD",
			"viz_type MAP does not support coord kind %q", v.Coord.Kind))
	}
	return list
}

// validateLimitsShape checks that limits/xlim/ylim are 2-element numeric
// arrays, and that domain/palette have the right surface shape, per
// spec.md §4.4.
func validateLimitsShape(v *VizSpec, list *verrors.List) *verrors.List {
	for aes, sc := range v.Scales {
		if lim, ok := sc.Properties["limits"]; ok {
			list = checkTwoElementNumericArray(lim, sc.Pos, fmt.Sprintf("SCALE %s", aes), "limits", list)
		}
		if dom, ok := sc.Properties["domain"]; ok {
			if _, isArray := dom.([]interface{}); !isArray {
				list = verrors.Append(list, verrors.NewModelError(sc.Pos, fmt.Sprintf("SCALE %s", aes),
					"domain must be an array"))
			}
		}
		if pal, ok := sc.Properties["palette"]; ok {
			if s, isStr := pal.(string); !isStr || s == "" {
				list = verrors.Append(list, verrors.NewModelError(sc.Pos, fmt.Sprintf("SCALE %s", aes),
					"palette must be a named identifier"))
			}
		}
	}
	if v.Coord != nil {
		if lim, ok := v.Coord.Properties["xlim"]; ok {
			list = checkTwoElementNumericArray(lim, v.Coord.Pos, "COORD", "xlim", list)
		}
		if lim, ok := v.Coord.Properties["ylim"]; ok {
			list = checkTwoElementNumericArray(lim, v.Coord.Pos, "COORD", "ylim", list)
		}
	}
	return list
}

func checkTwoElementNumericArray(v interface{}, pos token.Pos, context, name string, list *verrors.List) *verrors.List {
	arr, ok := v.([]interface{})
	if !ok || len(arr) != 2 {
		return verrors.Append(list, verrors.NewModelError(pos, context, "%s must be a 2-element numeric array", name))
	}
	for _, e := range arr {
		switch e.(type) {
		case float64, int:
		default:
			return verrors.Append(list, verrors.NewModelError(pos, context, "%s must be a 2-element numeric array", name))
		}
	}
	return list
}

// normalizeLimits implements invariant 6: for xlim/ylim specifically, a
// reversed [a, b] with a > b is silently swapped. Other domain-bearing
// properties preserve their declared order.
func normalizeLimits(v *VizSpec) {
	if v.Coord == nil {
		return
	}
	for _, key := range []string{"xlim", "ylim"} {
		if lim, ok := v.Coord.Properties[key]; ok {
			if arr, ok := lim.([]interface{}); ok && len(arr) == 2 {
				v.Coord.Properties[key] = swapIfReversed(arr)
			}
		}
	}
}

func swapIfReversed(arr []interface{}) []interface{} {
	a, aok := toFloat(arr[0])
	b, bok := toFloat(arr[1])
	if aok && bok && a > b {
		return []interface{}{arr[1], arr[0]}
	}
	return arr
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
