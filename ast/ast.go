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

// Package ast defines the concrete syntax tree for the vvSQL visualization
// sub-language (spec.md §4.2). Nodes carry byte-range and line/column
// information so that later stages (build, model) can report precise
// diagnostics; positions are discarded once the AST Builder produces a
// frozen model.VizSpec (spec.md §9, "Location tracking").
package ast

import "github.com/vvsql/vvsql/token"

// Node is implemented by every concrete syntax tree node.
type Node interface {
	Pos() token.Pos
	End() token.Pos
}

// Program is the root of a parsed visualization program: viz_program :=
// viz_spec+.
type Program struct {
	Specs []*VizSpec
}

// VizSpec is one `VISUALISE AS <type> clause*` block.
type VizSpec struct {
	Header  Header
	Clauses []Clause
	From    token.Pos
	To      token.Pos
}

func (v *VizSpec) Pos() token.Pos { return v.From }
func (v *VizSpec) End() token.Pos { return v.To }

// Header is the `VISUALISE AS PLOT|TABLE|MAP` (or VISUALIZE) prologue.
type Header struct {
	Keyword string // "VISUALISE" or "VISUALIZE", as written
	Type    Ident  // plot | table | map, lower-cased by the parser
	From    token.Pos
	To      token.Pos
}

func (h Header) Pos() token.Pos { return h.From }
func (h Header) End() token.Pos { return h.To }

// Clause is implemented by each of the seven clause productions.
type Clause interface {
	Node
	clauseNode()
}

// WithClause corresponds to: "WITH" geom ("USING" kv_list)? ("AS" string)?
type WithClause struct {
	Geom  Ident
	Using []KV
	As    *StringLit // layer name, may be nil
	From  token.Pos
	To    token.Pos
}

func (c *WithClause) Pos() token.Pos { return c.From }
func (c *WithClause) End() token.Pos { return c.To }
func (*WithClause) clauseNode()      {}

// ScaleClause corresponds to: "SCALE" ident "USING" kv_list
type ScaleClause struct {
	Aesthetic Ident
	Using     []KV
	From      token.Pos
	To        token.Pos
}

func (c *ScaleClause) Pos() token.Pos { return c.From }
func (c *ScaleClause) End() token.Pos { return c.To }
func (*ScaleClause) clauseNode()      {}

// FacetClause corresponds to:
//
//	"FACET" , ("WRAP" ident_list | ident_list "BY" ident_list) , ("USING" kv_list)?
//
// For a WRAP facet, Vars holds the wrap variables and ByVars is nil. For a
// row-BY-col facet, Vars holds the row variables and ByVars the column
// variables.
type FacetClause struct {
	Wrap    bool
	Vars    []Ident
	ByVars  []Ident
	Using   []KV
	From    token.Pos
	To      token.Pos
}

func (c *FacetClause) Pos() token.Pos { return c.From }
func (c *FacetClause) End() token.Pos { return c.To }
func (*FacetClause) clauseNode()      {}

// CoordClause corresponds to: "COORD" (coord_kind)? ("USING" kv_list)?
type CoordClause struct {
	Kind  *Ident // nil means unspecified -> cartesian default
	Using []KV
	From  token.Pos
	To    token.Pos
}

func (c *CoordClause) Pos() token.Pos { return c.From }
func (c *CoordClause) End() token.Pos { return c.To }
func (*CoordClause) clauseNode()      {}

// LabelClause corresponds to: "LABEL" kv_list
type LabelClause struct {
	KVs  []KV
	From token.Pos
	To   token.Pos
}

func (c *LabelClause) Pos() token.Pos { return c.From }
func (c *LabelClause) End() token.Pos { return c.To }
func (*LabelClause) clauseNode()      {}

// GuideClause corresponds to: "GUIDE" ident "USING" kv_list
type GuideClause struct {
	Aesthetic Ident
	Using     []KV
	From      token.Pos
	To        token.Pos
}

func (c *GuideClause) Pos() token.Pos { return c.From }
func (c *GuideClause) End() token.Pos { return c.To }
func (*GuideClause) clauseNode()      {}

// ThemeClause corresponds to: "THEME" theme_name ("USING" kv_list)?
type ThemeClause struct {
	Name  Ident
	Using []KV
	From  token.Pos
	To    token.Pos
}

func (c *ThemeClause) Pos() token.Pos { return c.From }
func (c *ThemeClause) End() token.Pos { return c.To }
func (*ThemeClause) clauseNode()      {}

// KV is one `ident "=" value` pair in a kv_list.
type KV struct {
	Key   Ident
	Value Value
}

func (kv KV) Pos() token.Pos { return kv.Key.Pos() }
func (kv KV) End() token.Pos { return kv.Value.End() }

// Ident is an unquoted identifier. Whether it is column/case-sensitive or
// a keyword/case-insensitive token is determined by the grammar production
// it appears in, not by the node itself (spec.md §4.2).
type Ident struct {
	Name string
	From token.Pos
}

func (i Ident) Pos() token.Pos { return i.From }
func (i Ident) End() token.Pos {
	return token.Pos{Offset: i.From.Offset + len(i.Name), Line: i.From.Line, Column: i.From.Column + len(i.Name)}
}

// Value is implemented by each value production: bare_ident | string |
// number | boolean | array.
type Value interface {
	Node
	valueNode()
}

// IdentValue is a bare (unquoted) identifier used as a value, e.g.
// `type=date` or, inside a WITH clause's aesthetic list, `x=revenue`. The
// AST Builder is the stage that decides whether this lifts to
// model.Column or a plain string literal (spec.md §4.3 rule 1).
type IdentValue struct {
	Ident
}

func (IdentValue) valueNode() {}

// StringLit is a single- or double-quoted string literal. Value holds the
// unescaped/unquoted text.
type StringLit struct {
	Value string
	From  token.Pos
	To    token.Pos
}

func (s *StringLit) Pos() token.Pos { return s.From }
func (s *StringLit) End() token.Pos { return s.To }
func (*StringLit) valueNode()       {}

// NumberLit is an integer or decimal numeral.
type NumberLit struct {
	Value   float64
	IsInt   bool
	From    token.Pos
	To      token.Pos
}

func (n *NumberLit) Pos() token.Pos { return n.From }
func (n *NumberLit) End() token.Pos { return n.To }
func (*NumberLit) valueNode()       {}

// BoolLit is `true` or `false`.
type BoolLit struct {
	Value bool
	From  token.Pos
	To    token.Pos
}

func (b *BoolLit) Pos() token.Pos { return b.From }
func (b *BoolLit) End() token.Pos { return b.To }
func (*BoolLit) valueNode()       {}

// ArrayLit is `"[" value ("," value)* "]"`, heterogeneous at the grammar
// level (spec.md §4.2); the AST Builder decides whether it is numeric or
// surface-value (spec.md §4.3 rule 2).
type ArrayLit struct {
	Elems []Value
	From  token.Pos
	To    token.Pos
}

func (a *ArrayLit) Pos() token.Pos { return a.From }
func (a *ArrayLit) End() token.Pos { return a.To }
func (*ArrayLit) valueNode()       {}
