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

// Package build implements the AST Builder of spec.md §4.3: it walks the
// concrete syntax tree produced by package parser and lifts it into the
// typed, unvalidated model.VizSpec values package model defines. It is
// the vvSQL analog of cuelang.org/go/internal/core/compile — the stage
// that turns surface syntax into a semantically classified internal tree,
// without yet checking cross-clause invariants (that is package model's
// job, run afterward).
package build

import (
	"fmt"
	"strings"

	"github.com/vvsql/vvsql/ast"
	verrors "github.com/vvsql/vvsql/errors"
	"github.com/vvsql/vvsql/model"
)

// Build converts every VizSpec in prog into a model.VizSpec. It reports a
// *errors.List of ModelErrors for a repeated SCALE aesthetic and for
// repeated FACET/COORD/LABEL/THEME clauses (spec.md §4.2: "a second
// occurrence is a model error, not a grammar error"); value shapes are
// not checked here (a value it cannot classify becomes nil), and grammar
// violations were already rejected by package parser.
func Build(prog *ast.Program) ([]*model.VizSpec, error) {
	var out []*model.VizSpec
	var list *verrors.List
	for _, s := range prog.Specs {
		spec, err := buildOne(s)
		if err != nil {
			list = verrors.Append(list, err)
			continue
		}
		out = append(out, spec)
	}
	if err := list.AsError(); err != nil {
		return nil, err
	}
	return out, nil
}

func buildOne(s *ast.VizSpec) (*model.VizSpec, error) {
	v := &model.VizSpec{
		VizType: model.VizType(strings.ToUpper(s.Header.Type.Name)),
		Scales:  map[string]*model.Scale{},
		Guides:  map[string]*model.Guide{},
	}
	var list *verrors.List
	var sawFacet, sawCoord, sawLabel, sawTheme bool

	for _, clause := range s.Clauses {
		switch c := clause.(type) {
		case *ast.WithClause:
			v.Layers = append(v.Layers, buildLayer(c))
		case *ast.ScaleClause:
			aes := c.Aesthetic.Name
			if _, dup := v.Scales[aes]; dup {
				list = verrors.Append(list, verrors.NewModelError(c.Pos(), fmt.Sprintf("SCALE %s", aes),
					"duplicate SCALE clause for aesthetic %q", aes))
				continue
			}
			v.Scales[aes] = buildScale(c)
		case *ast.FacetClause:
			if sawFacet {
				list = verrors.Append(list, verrors.NewModelError(c.Pos(), "FACET", "duplicate FACET clause"))
				continue
			}
			sawFacet = true
			v.Facet = buildFacet(c)
		case *ast.CoordClause:
			if sawCoord {
				list = verrors.Append(list, verrors.NewModelError(c.Pos(), "COORD", "duplicate COORD clause"))
				continue
			}
			sawCoord = true
			v.Coord = buildCoord(c)
		case *ast.LabelClause:
			if sawLabel {
				list = verrors.Append(list, verrors.NewModelError(c.Pos(), "LABEL", "duplicate LABEL clause"))
				continue
			}
			sawLabel = true
			v.Labels = buildLabels(c)
		case *ast.GuideClause:
			aes := c.Aesthetic.Name
			v.Guides[aes] = buildGuide(c)
		case *ast.ThemeClause:
			if sawTheme {
				list = verrors.Append(list, verrors.NewModelError(c.Pos(), "THEME", "duplicate THEME clause"))
				continue
			}
			sawTheme = true
			v.Theme = buildTheme(c)
		}
	}

	if err := list.AsError(); err != nil {
		return nil, err
	}
	return v, nil
}

func buildLayer(c *ast.WithClause) *model.Layer {
	l := &model.Layer{
		Geom:       model.Geom(c.Geom.Name),
		Aesthetics: map[string]model.AestheticValue{},
		Pos:        c.Pos(),
	}
	if c.As != nil {
		l.Name = c.As.Value
	}
	for _, kv := range c.Using {
		l.Aesthetics[kv.Key.Name] = buildAestheticValue(kv.Value)
	}
	return l
}

// buildAestheticValue implements spec.md §4.3 rule 1: within a WITH
// clause's aesthetic list, a bare identifier lifts to model.Column;
// everywhere else (buildProperties, below) it lifts to a plain string.
func buildAestheticValue(v ast.Value) model.AestheticValue {
	if id, ok := v.(ast.IdentValue); ok {
		return model.Column{Name: id.Name, Pos: id.Pos()}
	}
	return model.Literal{Value: literalValue(v), Pos: v.Pos()}
}

// buildProperties converts a kv_list outside of a WITH clause's aesthetic
// list into a plain map[string]interface{}, folding bare identifiers to
// strings (spec.md §4.3 rule 1, "elsewhere").
func buildProperties(kvs []ast.KV) map[string]interface{} {
	props := make(map[string]interface{}, len(kvs))
	for _, kv := range kvs {
		props[kv.Key.Name] = literalValue(kv.Value)
	}
	return props
}

// literalValue converts any ast.Value to its Go surface representation:
// string, float64, bool, or []interface{}. Numeric arrays are kept
// numeric; mixed or non-numeric arrays are kept as their surface values
// (spec.md §4.3 rule 2) — there is no separate "mixed" representation,
// since a []interface{} of mixed Go types already carries that shape.
func literalValue(v ast.Value) interface{} {
	switch val := v.(type) {
	case ast.IdentValue:
		return val.Name
	case *ast.StringLit:
		return val.Value
	case *ast.NumberLit:
		return val.Value
	case *ast.BoolLit:
		return val.Value
	case *ast.ArrayLit:
		elems := make([]interface{}, len(val.Elems))
		for i, e := range val.Elems {
			elems[i] = literalValue(e)
		}
		return elems
	default:
		return nil
	}
}

func buildScale(c *ast.ScaleClause) *model.Scale {
	props := buildProperties(c.Using)
	sc := &model.Scale{Aesthetic: c.Aesthetic.Name, Properties: props, Pos: c.Pos()}
	if t, ok := props["type"]; ok {
		if s, ok := t.(string); ok {
			sc.Type = model.ScaleType(ast.FoldKeyword(s))
			delete(props, "type")
		}
	}
	return sc
}

func buildFacet(c *ast.FacetClause) *model.Facet {
	f := &model.Facet{Grid: !c.Wrap, Pos: c.Pos()}
	f.Vars = identNames(c.Vars)
	if !c.Wrap {
		f.ColVars = identNames(c.ByVars)
	}
	props := buildProperties(c.Using)
	if s, ok := props["scales"].(string); ok {
		f.Scales = model.FacetScales(ast.FoldKeyword(s))
	}
	if n, ok := props["columns"].(float64); ok {
		f.Columns = int(n)
	}
	return f
}

func identNames(ids []ast.Ident) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.Name
	}
	return names
}

func buildCoord(c *ast.CoordClause) *model.Coord {
	kind := model.CoordCartesian
	if c.Kind != nil {
		kind = model.CoordKind(c.Kind.Name)
	}
	return &model.Coord{Kind: kind, Properties: buildProperties(c.Using), Pos: c.Pos()}
}

func buildLabels(c *ast.LabelClause) map[string]string {
	labels := make(map[string]string, len(c.KVs))
	for _, kv := range c.KVs {
		labels[kv.Key.Name] = fmt.Sprint(literalValue(kv.Value))
	}
	return labels
}

func buildGuide(c *ast.GuideClause) *model.Guide {
	return &model.Guide{Aesthetic: c.Aesthetic.Name, Properties: buildProperties(c.Using), Pos: c.Pos()}
}

func buildTheme(c *ast.ThemeClause) *model.Theme {
	return &model.Theme{Name: c.Name.Name, Overrides: buildProperties(c.Using), Pos: c.Pos()}
}
