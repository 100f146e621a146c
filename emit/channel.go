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
	"github.com/vvsql/vvsql/model"
	"github.com/vvsql/vvsql/table"
)

// channelNames is the aesthetic -> Vega-Lite channel mapping of spec.md
// §4.6: most aesthetics map to a channel of the same name, a few are
// renamed, and xmin/xmax/ymin/ymax fan out to a *pair* of channels
// (handled separately in encodingForLayer since they are not 1:1).
var channelNames = map[string]string{
	"alpha": "opacity",
	"label": "text",
}

func channelFor(aesthetic string) string {
	if c, ok := channelNames[aesthetic]; ok {
		return c
	}
	return aesthetic
}

// scaleTypeToFieldType maps a declared Scale's Type to a Vega-Lite field
// type, per spec.md §4.6's field-type resolution table.
func scaleTypeToFieldType(st model.ScaleType) (string, bool) {
	switch st {
	case model.ScaleLinear, model.ScaleLog10, model.ScaleLog2, model.ScaleSqrt, model.ScaleReverse:
		return "quantitative", true
	case model.ScaleOrdinal, model.ScaleCategorical:
		return "nominal", true
	case model.ScaleDate, model.ScaleDatetime, model.ScaleTime:
		return "temporal", true
	case model.ScaleViridis, model.ScalePlasma, model.ScaleMagma, model.ScaleInferno, model.ScaleDiverging:
		return "nominal", true
	default:
		return "", false
	}
}

// logicalTypeToFieldType infers a Vega-Lite field type from a column's
// logical type, for aesthetics with no declared Scale (spec.md §4.6).
func logicalTypeToFieldType(lt table.LogicalType) string {
	switch lt {
	case table.TemporalDate, table.TemporalDatetime:
		return "temporal"
	case table.Integer, table.Floating:
		return "quantitative"
	default:
		return "nominal"
	}
}

// fieldType resolves the Vega-Lite type for a Column-valued aesthetic:
// a declared Scale wins, otherwise the referenced column's logical type
// is inferred. col may be the zero Column (not found in tbl), in which
// case the aesthetic is still typed nominal so the document stays valid.
func fieldType(aesthetic string, spec *model.VizSpec, tbl *table.Table, columnName string) string {
	if sc, ok := spec.Scales[aesthetic]; ok && sc.Type != "" {
		if ft, ok := scaleTypeToFieldType(sc.Type); ok {
			return ft
		}
	}
	if tbl != nil {
		if col, ok := tbl.Column(columnName); ok {
			return logicalTypeToFieldType(col.Type)
		}
	}
	return "nominal"
}

// encodingKeyOrder is the channel order applied within each layer's
// "encoding" object so it does not depend on Go's randomized map
// iteration. It is not one of spec.md §4.6's two explicitly normative
// orderings (top-level document keys, per-channel object keys) but is
// required for the same "byte-stable modulo nothing" determinism goal.
var encodingKeyOrder = []string{
	"x", "y", "x2", "y2", "color", "fill", "size", "shape", "opacity", "text",
}

// rangePairs lists, in a fixed order, the (min-aesthetic, max-aesthetic,
// primary-channel, secondary-channel) quadruples handled specially by
// encodingForLayer, so their output order never depends on Go's
// randomized map iteration.
var rangePairs = [][4]string{
	{"xmin", "xmax", "x", "x2"},
	{"ymin", "ymax", "y", "y2"},
}

// encodingForLayer builds the channel -> encoding-object map for one
// layer's aesthetics, resolved against tbl (may be nil when emitting
// without data, i.e. a query with no data prefix) and spec's declared Scales.
func encodingForLayer(l *model.Layer, spec *model.VizSpec, tbl *table.Table) *OrderedMap {
	enc := NewOrderedMap()
	inRange := map[string]bool{}

	for _, rp := range rangePairs {
		minAes, maxAes, primary, secondary := rp[0], rp[1], rp[2], rp[3]
		_, hasMin := l.Aesthetics[minAes]
		_, hasMax := l.Aesthetics[maxAes]
		if !hasMin && !hasMax {
			continue
		}
		inRange[minAes], inRange[maxAes] = true, true
		primaryAes := maxAes
		if hasMin {
			primaryAes = minAes
		}
		enc.Set(primary, channelObject(primaryAes, l.Aesthetics, spec, tbl))
		if hasMin && hasMax {
			enc.Set(secondary, channelObject(maxAes, l.Aesthetics, spec, tbl))
		}
	}

	for aes := range l.Aesthetics {
		if inRange[aes] {
			continue
		}
		enc.Set(channelFor(aes), channelObject(aes, l.Aesthetics, spec, tbl))
	}

	if l.Geom == model.GeomHistogram {
		if x, ok := enc.Get("x"); ok {
			if xo, ok := x.(*OrderedMap); ok {
				xo.Set("bin", true)
			}
		}
	}

	return canonicalOrder(enc, encodingKeyOrder)
}

// channelObject builds one channel's encoding object: {field,type,...}
// for a Column, {value} for a Literal.
func channelObject(aes string, aesthetics map[string]model.AestheticValue, spec *model.VizSpec, tbl *table.Table) *OrderedMap {
	o := NewOrderedMap()
	switch v := aesthetics[aes].(type) {
	case model.Column:
		o.Set("field", v.Name)
		o.Set("type", fieldType(aes, spec, tbl, v.Name))
		if sc, ok := spec.Scales[aes]; ok {
			applyScaleProperties(o, sc.Properties)
		}
	case model.Literal:
		o.Set("value", v.Value)
	}
	return canonicalOrder(o, channelOrder)
}

// applyScaleProperties lowers a SCALE clause's properties onto a channel
// object, per spec.md §4.6: limits/domain both lower to scale.domain
// (domain wins if both are given), breaks lowers to axis.values, and
// palette lowers to scale.scheme.
func applyScaleProperties(o *OrderedMap, props map[string]interface{}) {
	var domain interface{}
	if v, ok := props["limits"]; ok {
		domain = v
	}
	if v, ok := props["domain"]; ok {
		domain = v
	}
	if domain != nil {
		scaleObj := NewOrderedMap()
		scaleObj.Set("domain", domain)
		o.Set("scale", scaleObj)
	}
	if breaks, ok := props["breaks"]; ok {
		axisObj := NewOrderedMap()
		axisObj.Set("values", breaks)
		o.Set("axis", axisObj)
	}
	if palette, ok := props["palette"]; ok {
		scaleObj, ok := o.Get("scale")
		so, isOM := scaleObj.(*OrderedMap)
		if !ok || !isOM {
			so = NewOrderedMap()
			o.Set("scale", so)
		}
		so.Set("scheme", palette)
	}
}
