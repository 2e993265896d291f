package parser

import (
	"github.com/partiql-go/partiql/ast"
	"github.com/partiql-go/partiql/token"
)

// parsePathSuffix consumes one or more consecutive path components
// (".name", ".*", "[expr]", "[*]") following an already-parsed root,
// folding them into a single ast.Path. Called from the infix dispatcher
// whenever the current token is DOT or LEFT_BRACKET.
func (p *Parser) parsePathSuffix(root ast.Expr) ast.Expr {
	path, ok := root.(*ast.Path)
	if !ok {
		path = &ast.Path{Root: root, M: root.Metas()}
	}

	for {
		switch p.current().Type {
		case token.DOT:
			path.Components = append(path.Components, p.parseDotComponent())
		case token.LEFT_BRACKET:
			path.Components = append(path.Components, p.parseBracketComponent())
		default:
			return path
		}
	}
}

func (p *Parser) parseDotComponent() ast.PathComponent {
	dotPos := p.current().Pos
	p.advance() // "."

	if p.isType(token.STAR) {
		p.advance()
		return &ast.PathComponentUnpivot{M: ast.NewMetas(dotPos)}
	}

	tok := p.current()
	if tok.Type != token.IDENTIFIER && tok.Type != token.QUOTED_IDENTIFIER {
		abort(ErrInvalidPathComponent, tok.Pos, "expected an identifier or * after .", nil)
	}
	p.advance()
	return &ast.PathComponentExpr{
		Expr:            &ast.VariableReference{Name: tok.Text, CaseSensitivity: caseSensitivityOf(tok), ScopeQualifier: ast.ScopeUnqualified, M: ast.NewMetas(tok.Pos)},
		CaseSensitivity: caseSensitivityOf(tok),
		M:               ast.NewMetas(dotPos),
	}
}

func (p *Parser) parseBracketComponent() ast.PathComponent {
	openPos := p.current().Pos
	p.advance() // "["

	if p.isType(token.STAR) {
		p.advance()
		p.expectType(token.RIGHT_BRACKET)
		return &ast.PathComponentWildcard{M: ast.NewMetas(openPos)}
	}

	index := p.parseExpression(precLowest)
	p.expectType(token.RIGHT_BRACKET)
	return &ast.PathComponentExpr{
		Expr:            index,
		CaseSensitivity: ast.CaseSensitive,
		Bracketed:       true,
		M:               ast.NewMetas(openPos),
	}
}

// inspectPathExpression classifies a SELECT-list expression for the
// "foo.bar.*" projection form: an expression ending in ".*" becomes a
// SelectListItemProjectAll over the path with the trailing ".*"
// stripped. "[*]" is rejected everywhere in a select-list path, not
// just outside the final position — only ".*" may terminate a
// project-all path. ".*" elsewhere than the final position, or a "[*]"
// anywhere, is a hard error; a "[expr]" subscript anywhere before a
// terminating ".*" is also a hard error (mixing square-bracket
// subscripts with the ".*" wildcard).
func inspectPathExpression(expr ast.Expr) (ast.SelectListItem, bool) {
	path, ok := expr.(*ast.Path)
	if !ok {
		return nil, false
	}
	if len(path.Components) == 0 {
		return nil, false
	}

	sawBracket := false
	for i, comp := range path.Components {
		last := i == len(path.Components)-1
		switch c := comp.(type) {
		case *ast.PathComponentWildcard:
			abortInvalidWildcard(comp)
		case *ast.PathComponentUnpivot:
			if !last {
				abortInvalidWildcard(comp)
			}
			if sawBracket {
				abortMixedWildcard(comp)
			}
		case *ast.PathComponentExpr:
			if c.Bracketed {
				sawBracket = true
			}
		}
	}

	last := path.Components[len(path.Components)-1]
	if _, ok := last.(*ast.PathComponentUnpivot); ok {
		trimmed := &ast.Path{Root: path.Root, Components: path.Components[:len(path.Components)-1], M: path.M}
		var projected ast.Expr = trimmed
		if len(trimmed.Components) == 0 {
			projected = trimmed.Root
		}
		return &ast.SelectListItemProjectAll{Expr: projected, M: path.M}, true
	}
	return nil, false
}

func abortInvalidWildcard(comp ast.PathComponent) {
	pos, _ := comp.Metas().SourceLocation()
	abort(ErrInvalidWildcardContext, pos, "[*] is not allowed in a select-list path, and .* may only appear at its end", nil)
}

func abortMixedWildcard(comp ast.PathComponent) {
	pos, _ := comp.Metas().SourceLocation()
	abort(ErrCannotMixSqbAndWildcard, pos, "cannot mix [] subscripts and .* in the same select-list path", nil)
}
