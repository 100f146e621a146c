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

// Package parser is a recursive-descent parser for the vvSQL
// visualization sub-language grammar of spec.md §4.2. It produces a
// concrete syntax tree (package ast); it performs no semantic analysis.
//
// Parse errors abort immediately at the earliest offending token — grammar
// recovery is explicitly not attempted (spec.md §7). Internally this is
// implemented with a single panic/recover boundary around one parse,
// following the compile-then-recover idiom of
// aclements-go-misc/dashquery/compile.go, rather than threading an error
// return through every recursive production.
package parser

import (
	"fmt"

	"github.com/vvsql/vvsql/ast"
	verrors "github.com/vvsql/vvsql/errors"
	"github.com/vvsql/vvsql/scanner"
	"github.com/vvsql/vvsql/token"
)

// Parse lexes and parses src (the visualization sub-program text, i.e.
// what splitter.Split returns as vizText) into a Program containing one
// or more VizSpec trees. filename is used only for diagnostics.
func Parse(filename, src string) (prog *ast.Program, err error) {
	file := token.NewFile(filename, src)
	p := &parser{file: file, sc: scanner.New(file, src)}

	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(*parseError)
			if !ok {
				panic(r)
			}
			err = verrors.NewParseError(pe.pos, pe.context, "%s", pe.msg)
		}
	}()

	p.next()
	prog = p.parseProgram()
	return prog, nil
}

// parseError is the panic payload used to unwind out of the recursive
// descent on the first grammar violation.
type parseError struct {
	pos     token.Pos
	context string
	msg     string
}

type parser struct {
	file *token.File
	sc   *scanner.Scanner
	tok  scanner.Token
	ctx  []string // stack of enclosing clause names, for error Context()
}

func (p *parser) pushCtx(name string) { p.ctx = append(p.ctx, name) }
func (p *parser) popCtx()             { p.ctx = p.ctx[:len(p.ctx)-1] }
func (p *parser) context() string {
	if len(p.ctx) == 0 {
		return ""
	}
	return p.ctx[len(p.ctx)-1]
}

func (p *parser) next() {
	tok, err := p.sc.Next()
	if err != nil {
		p.fail("%s", err)
	}
	p.tok = tok
}

func (p *parser) fail(format string, args ...interface{}) {
	panic(&parseError{pos: p.tok.Pos, context: p.context(), msg: fmt.Sprintf(format, args...)})
}

// folded returns the lower-cased text of the current token, valid for
// KEYWORD and IDENT tokens used as contextual keywords (geom, scale type,
// coord kind, theme name).
func (p *parser) folded() string {
	return ast.FoldKeyword(p.tok.Text)
}

func (p *parser) isKeyword(word string) bool {
	return p.tok.Kind == scanner.KEYWORD && p.folded() == word
}

func (p *parser) expectKeyword(word string) token.Pos {
	if !p.isKeyword(word) {
		p.fail("expected %q, found %q", word, p.tok.Text)
	}
	pos := p.tok.Pos
	p.next()
	return pos
}

func (p *parser) expectIdent() ast.Ident {
	if p.tok.Kind != scanner.IDENT && p.tok.Kind != scanner.KEYWORD {
		p.fail("expected identifier, found %q", p.tok.Text)
	}
	id := ast.Ident{Name: p.tok.Text, From: p.tok.Pos}
	p.next()
	return id
}

func (p *parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	for p.tok.Kind != scanner.EOF {
		prog.Specs = append(prog.Specs, p.parseVizSpec())
	}
	if len(prog.Specs) == 0 {
		p.fail("expected at least one VISUALISE AS header")
	}
	return prog
}

func (p *parser) parseVizSpec() *ast.VizSpec {
	spec := &ast.VizSpec{From: p.tok.Pos}
	spec.Header = p.parseHeader()
	for p.tok.Kind == scanner.KEYWORD {
		switch p.folded() {
		case "with":
			spec.Clauses = append(spec.Clauses, p.parseWithClause())
		case "scale":
			spec.Clauses = append(spec.Clauses, p.parseScaleClause())
		case "facet":
			spec.Clauses = append(spec.Clauses, p.parseFacetClause())
		case "coord":
			spec.Clauses = append(spec.Clauses, p.parseCoordClause())
		case "label":
			spec.Clauses = append(spec.Clauses, p.parseLabelClause())
		case "guide":
			spec.Clauses = append(spec.Clauses, p.parseGuideClause())
		case "theme":
			spec.Clauses = append(spec.Clauses, p.parseThemeClause())
		default:
			// "visualise"/"visualize" here means a new viz_spec starts.
			spec.To = p.tok.Pos
			return spec
		}
	}
	spec.To = p.tok.Pos
	return spec
}

func (p *parser) parseHeader() ast.Header {
	h := ast.Header{From: p.tok.Pos}
	if p.isKeyword("visualise") {
		h.Keyword = "VISUALISE"
	} else if p.isKeyword("visualize") {
		h.Keyword = "VISUALIZE"
	} else {
		p.fail("expected VISUALISE or VISUALIZE, found %q", p.tok.Text)
	}
	p.next()
	p.expectKeyword("as")
	typePos := p.tok.Pos
	typeName := p.expectIdent()
	folded := ast.FoldKeyword(typeName.Name)
	switch folded {
	case "plot", "table", "map":
	default:
		panic(&parseError{pos: typePos, context: "VISUALISE AS", msg: fmt.Sprintf("unknown viz_type %q, want PLOT, TABLE, or MAP", typeName.Name)})
	}
	h.Type = ast.Ident{Name: folded, From: typePos}
	h.To = p.tok.Pos
	return h
}

func (p *parser) parseKVList() []ast.KV {
	var kvs []ast.KV
	kvs = append(kvs, p.parseKV())
	for p.tok.Kind == scanner.COMMA {
		p.next()
		kvs = append(kvs, p.parseKV())
	}
	return kvs
}

func (p *parser) parseKV() ast.KV {
	key := p.expectIdent()
	if p.tok.Kind != scanner.EQUALS {
		p.fail("expected '=' after %q, found %q", key.Name, p.tok.Text)
	}
	p.next()
	val := p.parseValue()
	return ast.KV{Key: key, Value: val}
}

func (p *parser) parseValue() ast.Value {
	switch p.tok.Kind {
	case scanner.STRING:
		v := &ast.StringLit{Value: p.tok.Text, From: p.tok.Pos}
		v.To = token.Pos{Offset: p.tok.Pos.Offset + len(p.tok.Text) + 2, Line: p.tok.Pos.Line}
		p.next()
		return v
	case scanner.NUMBER:
		v := p.numberLit()
		p.next()
		return v
	case scanner.LBRACKET:
		return p.parseArray()
	case scanner.KEYWORD:
		if p.folded() == "true" || p.folded() == "false" {
			v := &ast.BoolLit{Value: p.folded() == "true", From: p.tok.Pos}
			p.next()
			return v
		}
		// Any other keyword used positionally as a value (rare, but the
		// grammar allows bare_ident here) is treated as an identifier.
		id := p.expectIdent()
		return ast.IdentValue{Ident: id}
	case scanner.IDENT:
		id := p.expectIdent()
		return ast.IdentValue{Ident: id}
	default:
		p.fail("expected a value, found %q", p.tok.Text)
		return nil
	}
}

func (p *parser) numberLit() *ast.NumberLit {
	text := p.tok.Text
	f, isInt := parseNumber(text)
	return &ast.NumberLit{Value: f, IsInt: isInt, From: p.tok.Pos, To: p.tok.Pos}
}

func (p *parser) parseArray() ast.Value {
	from := p.tok.Pos
	p.next() // consume '['
	arr := &ast.ArrayLit{From: from}
	if p.tok.Kind != scanner.RBRACKET {
		arr.Elems = append(arr.Elems, p.parseValue())
		for p.tok.Kind == scanner.COMMA {
			p.next()
			arr.Elems = append(arr.Elems, p.parseValue())
		}
	}
	if p.tok.Kind != scanner.RBRACKET {
		p.fail("expected ']', found %q", p.tok.Text)
	}
	arr.To = p.tok.Pos
	p.next()
	return arr
}

func (p *parser) parseIdentList() []ast.Ident {
	var ids []ast.Ident
	ids = append(ids, p.expectIdent())
	for p.tok.Kind == scanner.COMMA {
		p.next()
		ids = append(ids, p.expectIdent())
	}
	return ids
}

func (p *parser) parseWithClause() *ast.WithClause {
	p.pushCtx("WITH")
	defer p.popCtx()
	from := p.tok.Pos
	p.next() // consume WITH
	geom := p.expectIdent()
	c := &ast.WithClause{Geom: ast.Ident{Name: ast.FoldKeyword(geom.Name), From: geom.From}, From: from}
	if p.isKeyword("using") {
		p.next()
		c.Using = p.parseKVList()
	}
	if p.isKeyword("as") {
		p.next()
		if p.tok.Kind != scanner.STRING {
			p.fail("expected layer name string after AS, found %q", p.tok.Text)
		}
		name := &ast.StringLit{Value: p.tok.Text, From: p.tok.Pos}
		c.As = name
		p.next()
	}
	c.To = p.tok.Pos
	return c
}

func (p *parser) parseScaleClause() *ast.ScaleClause {
	p.pushCtx("SCALE")
	defer p.popCtx()
	from := p.tok.Pos
	p.next()
	aes := p.expectIdent()
	p.expectKeyword("using")
	kvs := p.parseKVList()
	return &ast.ScaleClause{Aesthetic: aes, Using: kvs, From: from, To: p.tok.Pos}
}

func (p *parser) parseFacetClause() *ast.FacetClause {
	p.pushCtx("FACET")
	defer p.popCtx()
	from := p.tok.Pos
	p.next()
	c := &ast.FacetClause{From: from}
	if p.isKeyword("wrap") {
		p.next()
		c.Wrap = true
		c.Vars = p.parseIdentList()
	} else {
		c.Vars = p.parseIdentList()
		p.expectKeyword("by")
		c.ByVars = p.parseIdentList()
	}
	if p.isKeyword("using") {
		p.next()
		c.Using = p.parseKVList()
	}
	c.To = p.tok.Pos
	return c
}

func (p *parser) parseCoordClause() *ast.CoordClause {
	p.pushCtx("COORD")
	defer p.popCtx()
	from := p.tok.Pos
	p.next()
	c := &ast.CoordClause{From: from}
	if p.tok.Kind == scanner.IDENT {
		kind := p.expectIdent()
		kind.Name = ast.FoldKeyword(kind.Name)
		c.Kind = &kind
	}
	if p.isKeyword("using") {
		p.next()
		c.Using = p.parseKVList()
	}
	c.To = p.tok.Pos
	return c
}

func (p *parser) parseLabelClause() *ast.LabelClause {
	p.pushCtx("LABEL")
	defer p.popCtx()
	from := p.tok.Pos
	p.next()
	kvs := p.parseKVList()
	return &ast.LabelClause{KVs: kvs, From: from, To: p.tok.Pos}
}

func (p *parser) parseGuideClause() *ast.GuideClause {
	p.pushCtx("GUIDE")
	defer p.popCtx()
	from := p.tok.Pos
	p.next()
	aes := p.expectIdent()
	p.expectKeyword("using")
	kvs := p.parseKVList()
	return &ast.GuideClause{Aesthetic: aes, Using: kvs, From: from, To: p.tok.Pos}
}

func (p *parser) parseThemeClause() *ast.ThemeClause {
	p.pushCtx("THEME")
	defer p.popCtx()
	from := p.tok.Pos
	p.next()
	name := p.expectIdent()
	name.Name = ast.FoldKeyword(name.Name)
	c := &ast.ThemeClause{Name: name, From: from}
	if p.isKeyword("using") {
		p.next()
		c.Using = p.parseKVList()
	}
	c.To = p.tok.Pos
	return c
}
