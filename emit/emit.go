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

// Package emit implements the Emitter of spec.md §4.6: it lowers a
// validated model.VizSpec, together with the table.Table fetched for it,
// into a Vega-Lite v5 document plus structural Metadata. Field-type
// resolution, mark selection, faceting, coordinate-system lowering, and
// theme application each have their own file; this file is the
// orchestration that spec.md §5 calls the final compiler stage.
package emit

import (
	"github.com/vvsql/vvsql/model"
	"github.com/vvsql/vvsql/table"
)

// Document is a Vega-Lite v5 chart specification with canonicalized key
// order (spec.md §4.6 "Determinism").
type Document = OrderedMap

// SchemaURL is the Vega-Lite v5 $schema value every emitted Document
// carries, and the value the HTTP surface's /api/v1/version route
// echoes back so a caller can pin it without parsing a document first.
const SchemaURL = "https://vega.github.io/schema/vega-lite/v5.json"

// Emit lowers spec against tbl into a Document and its accompanying
// Metadata. tbl may be nil (compiler.Compile passes nil when the query has
// no data prefix): the document then carries an empty data.values and
// field types come from declared scales or default to nominal. spec must
// already have passed model.Validate.
func Emit(tbl *table.Table, spec *model.VizSpec) (*Document, *Metadata, error) {
	warnings := append([]model.Warning(nil), spec.Warnings...)

	soleBar := len(spec.Layers) == 1 && spec.Layers[0].Geom == model.GeomBar
	var coordWarned bool

	layerDocs := make([]*OrderedMap, 0, len(spec.Layers))
	for _, layer := range spec.Layers {
		mark, warn := markFor(layer.Geom)
		if warn != nil {
			warnings = append(warnings, *warn)
		}

		enc := encodingForLayer(layer, spec, tbl)
		applyChannelLabels(spec.Labels, enc)

		if spec.Coord != nil {
			switch spec.Coord.Kind {
			case model.CoordCartesian:
				applyCartesianDomain(spec.Coord, enc)
			case model.CoordFlip:
				applyFlip(enc)
			case model.CoordPolar:
				mark = applyPolar(spec.Coord, mark, enc, soleBar)
			default:
				if w := unsupportedCoordWarning(spec.Coord.Kind); w != nil && !coordWarned {
					warnings = append(warnings, *w)
					coordWarned = true
				}
			}
		}

		layerObj := NewOrderedMap()
		layerObj.Set("mark", mark)
		layerObj.Set("encoding", canonicalOrder(enc, encodingKeyOrder))
		if t := layerTransform(layer.Geom, layer.Aesthetics); t != nil && t.Len() > 0 {
			layerObj.Set("transform", []*OrderedMap{t})
		}
		layerDocs = append(layerDocs, canonicalOrder(layerObj, topLevelOrder))
	}

	var body *OrderedMap
	if len(layerDocs) == 1 {
		body = layerDocs[0]
	} else {
		body = NewOrderedMap()
		body.Set("layer", layerDocs)
	}

	doc := NewOrderedMap()
	doc.Set("$schema", SchemaURL)
	if title, ok := spec.Labels["title"]; ok {
		doc.Set("title", title)
	}
	if subtitle, ok := spec.Labels["subtitle"]; ok {
		doc.Set("subtitle", subtitle)
	}

	data := NewOrderedMap()
	if tbl != nil {
		data.Set("values", tbl.Rows())
	} else {
		data.Set("values", []map[string]interface{}{})
	}
	doc.Set("data", data)
	doc.Set("width", 600)
	autosize := NewOrderedMap()
	autosize.Set("type", "fit")
	autosize.Set("contains", "padding")
	doc.Set("autosize", autosize)

	if spec.Facet != nil {
		doc.Set("facet", facetObject(spec.Facet))
		doc.Set("spec", body)
		if resolve := resolveObject(spec.Facet); resolve != nil {
			doc.Set("resolve", resolve)
		}
	} else {
		for _, k := range body.Keys() {
			v, _ := body.Get(k)
			doc.Set(k, v)
		}
	}

	if spec.Theme != nil {
		cfg, warn := configForTheme(spec.Theme)
		doc.Set("config", cfg)
		if warn != nil {
			warnings = append(warnings, *warn)
		}
	}

	if caption, ok := spec.Labels["caption"]; ok {
		usermeta := NewOrderedMap()
		usermeta.Set("caption", caption)
		doc.Set("usermeta", usermeta)
	}

	meta := &Metadata{
		VizType:  string(spec.VizType),
		Layers:   len(spec.Layers),
		Warnings: warnings,
	}
	if tbl != nil {
		meta.Rows = tbl.RowCount()
		meta.Columns = tbl.ColumnNames()
	}

	return canonicalOrder(doc, topLevelOrder), meta, nil
}
