package parser

import (
	"github.com/partiql-go/partiql/ast"
	"github.com/partiql-go/partiql/token"
)

// parseExpression is the Pratt driver: parse a unary term, then repeatedly
// consume infix/postfix operators whose precedence exceeds minPrec,
// binding right using the operator's own precedence (giving left
// associativity for every binary operator this grammar defines).
func (p *Parser) parseExpression(minPrec int) ast.Expr {
	left := p.parseUnary()
	for !p.atEOF() && p.infixPrecedence() > minPrec {
		left = p.parseInfix(left)
	}
	return left
}

// parseUnary handles the prefix operators (+, -, NOT, @) and otherwise
// defers to term parsing.
func (p *Parser) parseUnary() ast.Expr {
	tok := p.current()

	if tok.Type == token.OPERATOR && (tok.Text == "+" || tok.Text == "-") {
		p.advance()
		operand := p.parseExpression(precUnary)
		op := ast.OpPos
		if tok.Text == "-" {
			op = ast.OpNeg
		}
		return &ast.NAry{Op: op, Args: []ast.Expr{operand}, M: ast.NewMetas(tok.Pos)}
	}

	if tok.Type == token.KEYWORD && tok.Text == "not" {
		p.advance()
		operand := p.parseExpression(precNot)
		return &ast.NAry{Op: ast.OpNot, Args: []ast.Expr{operand}, M: ast.NewMetas(tok.Pos)}
	}

	if tok.Type == token.OPERATOR && tok.Text == "@" {
		p.advance()
		nameTok := p.current()
		if nameTok.Type != token.IDENTIFIER && nameTok.Type != token.QUOTED_IDENTIFIER {
			abort(ErrMissingIdentAfterAt, nameTok.Pos, "expected identifier after @", nil)
		}
		p.advance()
		return &ast.VariableReference{
			Name:            nameTok.Text,
			CaseSensitivity: caseSensitivityOf(nameTok),
			ScopeQualifier:  ast.ScopeLexical,
			M:               ast.NewMetas(tok.Pos),
		}
	}

	return p.parseTerm()
}

func caseSensitivityOf(tok token.Token) ast.CaseSensitivity {
	if tok.Type == token.QUOTED_IDENTIFIER {
		return ast.CaseSensitive
	}
	return ast.CaseInsensitive
}

// parseInfix consumes one infix/postfix operator application rooted at
// the already-parsed left operand.
func (p *Parser) parseInfix(left ast.Expr) ast.Expr {
	tok := p.current()

	switch {
	case tok.Type == token.DOT || tok.Type == token.LEFT_BRACKET:
		return p.parsePathSuffix(left)
	case tok.Type == token.STAR:
		p.advance()
		right := p.parseExpression(precMultiplicative)
		return &ast.NAry{Op: ast.OpStar, Args: []ast.Expr{left, right}, M: left.Metas()}
	case tok.Type == token.OPERATOR:
		return p.parseOperatorInfix(left, tok)
	case tok.Type == token.KEYWORD:
		return p.parseKeywordInfix(left, tok)
	}
	abort(ErrUnknownOperator, tok.Pos, "unknown operator "+tok.Type.String(), nil)
	return nil
}

func (p *Parser) parseOperatorInfix(left ast.Expr, tok token.Token) ast.Expr {
	var op ast.NAryOp
	switch tok.Text {
	case "+":
		op = ast.OpPlus
	case "-":
		op = ast.OpMinus
	case "*":
		op = ast.OpStar
	case "/":
		op = ast.OpDiv
	case "%":
		op = ast.OpMod
	case "||":
		op = ast.OpConcat
	case "=":
		op = ast.OpEq
	case "<>", "!=":
		op = ast.OpNe
	case "<":
		op = ast.OpLt
	case "<=":
		op = ast.OpLte
	case ">":
		op = ast.OpGt
	case ">=":
		op = ast.OpGte
	default:
		abort(ErrUnknownOperator, tok.Pos, "unknown operator "+tok.Text, nil)
	}
	prec := p.infixPrecedence()
	p.advance()
	right := p.parseExpression(prec)
	return &ast.NAry{Op: op, Args: []ast.Expr{left, right}, M: left.Metas()}
}

func (p *Parser) parseKeywordInfix(left ast.Expr, tok token.Token) ast.Expr {
	switch tok.Text {
	case "and":
		p.advance()
		right := p.parseExpression(precAnd)
		return &ast.NAry{Op: ast.OpAnd, Args: []ast.Expr{left, right}, M: left.Metas()}
	case "or":
		p.advance()
		right := p.parseExpression(precOr)
		return &ast.NAry{Op: ast.OpOr, Args: []ast.Expr{left, right}, M: left.Metas()}
	case "is":
		return p.parseIs(left, tok, false)
	case "is_not":
		return p.parseIs(left, tok, true)
	case "like":
		return p.parseLike(left, tok, false)
	case "not_like":
		return p.parseLike(left, tok, true)
	case "in":
		return p.parseIn(left, tok, false)
	case "not_in":
		return p.parseIn(left, tok, true)
	case "between":
		return p.parseBetween(left, tok, false)
	case "not_between":
		return p.parseBetween(left, tok, true)
	}
	abort(ErrUnknownOperator, tok.Pos, "unknown operator "+tok.Text, nil)
	return nil
}

// parseIs parses "expr IS type" / "expr IS NOT type": the right operand
// is a DataType, not an expression.
func (p *Parser) parseIs(left ast.Expr, tok token.Token, negated bool) ast.Expr {
	p.advance()
	dt := p.parseDataType()
	typed := &ast.Typed{Op: ast.OpIs, Value: left, DataType: dt, M: left.Metas()}
	if !negated {
		return typed
	}
	return wrapLegacyNot(typed, tok)
}

// parseLike parses "expr LIKE pattern [ESCAPE esc]" as ternary when
// ESCAPE follows, binary otherwise.
func (p *Parser) parseLike(left ast.Expr, tok token.Token, negated bool) ast.Expr {
	prec := p.infixPrecedence()
	p.advance()
	pattern := p.parseExpression(prec)
	args := []ast.Expr{left, pattern}
	if p.isKeyword("escape") {
		p.advance()
		esc := p.parseExpression(prec)
		args = append(args, esc)
	}
	positive := &ast.NAry{Op: ast.OpLike, Args: args, M: left.Metas()}
	if !negated {
		return positive
	}
	return wrapLegacyNot(positive, tok)
}

// parseIn disambiguates "IN (...)": a parenthesized, comma-separated
// argument list not starting with SELECT/VALUES becomes a LIST literal;
// anything else (subquery, table-value-constructor, bare expression) is
// parsed as a general expression.
func (p *Parser) parseIn(left ast.Expr, tok token.Token, negated bool) ast.Expr {
	prec := p.infixPrecedence()
	p.advance()

	var right ast.Expr
	if p.isType(token.LEFT_PAREN) && !p.peekStartsSelectOrValues() {
		openPos := p.current().Pos
		p.advance()
		items := p.parseExprList(token.RIGHT_PAREN)
		p.expectType(token.RIGHT_PAREN)
		right = &ast.ListExprNode{Items: items, M: ast.NewMetas(openPos)}
	} else {
		right = p.parseExpression(prec)
	}

	positive := &ast.NAry{Op: ast.OpIn, Args: []ast.Expr{left, right}, M: left.Metas()}
	if !negated {
		return positive
	}
	return wrapLegacyNot(positive, tok)
}

func (p *Parser) peekStartsSelectOrValues() bool {
	next := p.peek()
	return next.Type == token.KEYWORD && (next.Text == "select" || next.Text == "values")
}

// parseBetween parses "expr BETWEEN lo AND hi".
func (p *Parser) parseBetween(left ast.Expr, tok token.Token, negated bool) ast.Expr {
	prec := p.infixPrecedence()
	p.advance()
	lo := p.parseExpression(prec)
	p.expectKeyword("and")
	hi := p.parseExpression(prec)
	positive := &ast.NAry{Op: ast.OpBetween, Args: []ast.Expr{left, lo, hi}, M: left.Metas()}
	if !negated {
		return positive
	}
	return wrapLegacyNot(positive, tok)
}

// wrapLegacyNot builds the NAry(NOT, [positive]) wrapper used for every
// surface-negated operator (IS NOT, NOT LIKE, NOT BETWEEN, NOT IN),
// tagged with the legacy_logical_not meta.
func wrapLegacyNot(positive ast.Expr, tok token.Token) ast.Expr {
	m := ast.NewMetas(tok.Pos)
	m[ast.MetaLegacyLogicalNot] = true
	return &ast.NAry{Op: ast.OpNot, Args: []ast.Expr{positive}, M: m}
}

// parseExprList parses a comma-separated expression list up to (but not
// consuming) the closing token.
func (p *Parser) parseExprList(closing token.Type) []ast.Expr {
	var items []ast.Expr
	if p.isType(closing) {
		return items
	}
	items = append(items, p.parseExpression(precLowest))
	for p.isType(token.COMMA) {
		p.advance()
		items = append(items, p.parseExpression(precLowest))
	}
	return items
}
