package parser

import (
	"github.com/partiql-go/partiql/ast"
	"github.com/partiql-go/partiql/token"
	"github.com/partiql-go/partiql/value"
)

// parseTerm parses a single primary/term form: literals,
// NULL, MISSING, identifiers, parenthesized expressions or lists,
// bracketed list literals, bag literals, struct literals, CASE, CAST,
// SELECT/PIVOT/VALUES, and the SUBSTRING/TRIM/EXTRACT/generic call forms.
func (p *Parser) parseTerm() ast.Expr {
	tok := p.current()

	switch tok.Type {
	case token.LITERAL:
		p.advance()
		return &ast.Literal{Value: tok.Value.(value.Value), M: ast.NewMetas(tok.Pos)}

	case token.NULL:
		p.advance()
		return &ast.Literal{Value: value.Null, M: ast.NewMetas(tok.Pos)}

	case token.MISSING:
		p.advance()
		return &ast.LiteralMissing{M: ast.NewMetas(tok.Pos)}

	case token.IDENTIFIER, token.QUOTED_IDENTIFIER:
		return p.parseIdentifierTerm()

	case token.LEFT_PAREN:
		return p.parseParenTerm()

	case token.LEFT_BRACKET:
		return p.parseListLiteral()

	case token.LEFT_DOUBLE_ANGLE_BRACKET:
		return p.parseBagLiteral()

	case token.LEFT_CURLY:
		return p.parseStructLiteral()

	case token.KEYWORD:
		switch tok.Text {
		case "true":
			p.advance()
			return &ast.Literal{Value: value.NewBool(true), M: ast.NewMetas(tok.Pos)}
		case "false":
			p.advance()
			return &ast.Literal{Value: value.NewBool(false), M: ast.NewMetas(tok.Pos)}
		case "case":
			return p.parseCase()
		case "cast":
			return p.parseCast()
		case "select", "pivot":
			return p.parseSelectOrPivot()
		case "values":
			return p.parseValues()
		case "substring":
			return p.parseSubstring()
		case "trim":
			return p.parseTrim()
		case "extract":
			return p.parseExtract()
		case "count", "sum", "min", "max", "avg":
			if p.aggregateFunctions[tok.Text] {
				return p.parseAggregateCall(tok.Text)
			}
			return p.parseGenericCall(tok.Text)
		}
	}

	abort(ErrExpectedExpression, tok.Pos, "expected an expression, got "+tok.Type.String(), nil)
	return nil
}

func (p *Parser) parseIdentifierTerm() ast.Expr {
	tok := p.advance()

	// A bare identifier immediately followed by '(' is an aggregate call
	// when its lower-cased name is in the parser's aggregate set, and a
	// generic function call otherwise.
	if p.isType(token.LEFT_PAREN) {
		if name := lowerIdent(tok.Text); tok.Type == token.IDENTIFIER && p.aggregateFunctions[name] {
			p.pos-- // parseAggregateCall consumes the name token itself
			return p.parseAggregateCall(name)
		}
		return p.parseGenericCall(tok.Text)
	}

	return &ast.VariableReference{
		Name:            tok.Text,
		CaseSensitivity: caseSensitivityOf(tok),
		ScopeQualifier:  ast.ScopeUnqualified,
		M:               ast.NewMetas(tok.Pos),
	}
}

// parseParenTerm disambiguates "(expr)" grouping from a parenthesized
// list literal "(a, b, c)": more than one comma-separated item makes it
// a ListExprNode, matching the table-value-constructor shorthand.
func (p *Parser) parseParenTerm() ast.Expr {
	openPos := p.current().Pos
	p.advance()

	if p.isType(token.RIGHT_PAREN) {
		p.advance()
		return &ast.ListExprNode{M: ast.NewMetas(openPos)}
	}

	first := p.parseExpression(precLowest)
	if !p.isType(token.COMMA) {
		p.expectType(token.RIGHT_PAREN)
		return first
	}

	items := []ast.Expr{first}
	for p.isType(token.COMMA) {
		p.advance()
		items = append(items, p.parseExpression(precLowest))
	}
	p.expectType(token.RIGHT_PAREN)
	return &ast.ListExprNode{Items: items, M: ast.NewMetas(openPos)}
}

func (p *Parser) parseListLiteral() ast.Expr {
	openPos := p.current().Pos
	p.advance()
	items := p.parseExprList(token.RIGHT_BRACKET)
	p.expectType(token.RIGHT_BRACKET)
	return &ast.ListExprNode{Items: items, M: ast.NewMetas(openPos)}
}

func (p *Parser) parseBagLiteral() ast.Expr {
	openPos := p.current().Pos
	p.advance()
	items := p.parseExprList(token.RIGHT_DOUBLE_ANGLE_BRACKET)
	p.expectType(token.RIGHT_DOUBLE_ANGLE_BRACKET)
	return &ast.Bag{Items: items, M: ast.NewMetas(openPos)}
}

func (p *Parser) parseStructLiteral() ast.Expr {
	openPos := p.current().Pos
	p.advance()

	var fields []ast.StructField
	if !p.isType(token.RIGHT_CURLY) {
		fields = append(fields, p.parseStructField())
		for p.isType(token.COMMA) {
			p.advance()
			fields = append(fields, p.parseStructField())
		}
	}
	p.expectType(token.RIGHT_CURLY)
	return &ast.Struct{Fields: fields, M: ast.NewMetas(openPos)}
}

func (p *Parser) parseStructField() ast.StructField {
	key := p.parseExpression(precLowest)
	p.expectType(token.COLON)
	value := p.parseExpression(precLowest)
	return ast.StructField{Key: key, Value: value}
}

// parseCase parses both the simple ("CASE expr WHEN val THEN res ...
// [ELSE res] END") and searched ("CASE WHEN cond THEN res ... [ELSE res]
// END") forms.
func (p *Parser) parseCase() ast.Expr {
	pos := p.current().Pos
	p.advance() // "case"

	var subject ast.Expr
	if !p.isKeyword("when") {
		subject = p.parseExpression(precLowest)
	}

	if !p.isKeyword("when") {
		abort(ErrExpectedWhenClause, p.current().Pos, "expected WHEN clause in CASE", nil)
	}

	var branches []ast.WhenBranch
	for p.isKeyword("when") {
		p.advance()
		cond := p.parseExpression(precLowest)
		p.expectKeyword("then")
		result := p.parseExpression(precLowest)
		branches = append(branches, ast.WhenBranch{Cond: cond, Result: result})
	}

	var elseExpr ast.Expr
	if p.isKeyword("else") {
		p.advance()
		elseExpr = p.parseExpression(precLowest)
	}
	p.expectKeyword("end")

	m := ast.NewMetas(pos)
	if subject != nil {
		return &ast.SimpleCase{Value: subject, WhenBranches: branches, Else: elseExpr, M: m}
	}
	return &ast.SearchedCase{WhenBranches: branches, Else: elseExpr, M: m}
}

// parseCast parses "CAST(expr AS type)", validating the target type's
// argument arity.
func (p *Parser) parseCast() ast.Expr {
	pos := p.current().Pos
	p.advance() // "cast"
	p.expectType(token.LEFT_PAREN)
	value := p.parseExpression(precLowest)
	p.expectType(token.AS)
	dt := p.parseDataType()
	p.expectType(token.RIGHT_PAREN)
	return &ast.Typed{Op: ast.OpCast, Value: value, DataType: dt, M: ast.NewMetas(pos)}
}

func (p *Parser) parseValues() ast.Expr {
	pos := p.current().Pos
	p.advance() // "values"

	rows := []ast.Expr{p.parseValuesRow()}
	for p.isType(token.COMMA) {
		p.advance()
		rows = append(rows, p.parseValuesRow())
	}
	return &ast.Bag{Items: rows, M: ast.NewMetas(pos)}
}

// parseValuesRow parses one parenthesized row of a VALUES table-value
// constructor. Unlike a general parenthesized term, a single-column row
// still produces a ListExprNode rather than unwrapping to a bare
// expression, since every row must be a tuple.
func (p *Parser) parseValuesRow() ast.Expr {
	openPos := p.current().Pos
	p.expectType(token.LEFT_PAREN)
	items := p.parseExprList(token.RIGHT_PAREN)
	p.expectType(token.RIGHT_PAREN)
	return &ast.ListExprNode{Items: items, M: ast.NewMetas(openPos)}
}

// parseAggregateCall parses "NAME([ALL|DISTINCT] expr)" or "COUNT(*)"
// into a CallAgg. Aggregate calls are strictly unary; COUNT(*) is the
// sole exception, permitted only for count.
func (p *Parser) parseAggregateCall(name string) ast.Expr {
	pos := p.current().Pos
	p.advance()
	p.expectType(token.LEFT_PAREN)

	if p.isType(token.STAR) {
		if name != "count" {
			abort(ErrUnsupportedCallWithStar, p.current().Pos,
				"only COUNT supports the * argument", map[PropertyKey]any{PropBindingName: name})
		}
		p.advance()
		p.expectType(token.RIGHT_PAREN)
		return &ast.CallAgg{FuncRef: name, SetQuantifier: ast.QuantifierAll, Wildcard: true, M: ast.NewMetas(pos)}
	}

	quantifier := ast.QuantifierAll
	if p.isKeyword("distinct") {
		p.advance()
		quantifier = ast.QuantifierDistinct
	} else if p.isKeyword("all") {
		p.advance()
	}

	arg := p.parseExpression(precLowest)
	if p.isType(token.COMMA) {
		abort(ErrNonUnaryAggregateCall, p.current().Pos,
			"aggregate functions accept exactly one argument", map[PropertyKey]any{PropBindingName: name})
	}
	p.expectType(token.RIGHT_PAREN)
	return &ast.CallAgg{FuncRef: name, SetQuantifier: quantifier, Arg: arg, M: ast.NewMetas(pos)}
}

// parseGenericCall parses "name(arg, arg, ...)" as an ordinary function
// call, i.e. NAry{Op: OpCall}.
func (p *Parser) parseGenericCall(name string) ast.Expr {
	pos := p.current().Pos
	p.expectType(token.LEFT_PAREN)
	args := p.parseExprList(token.RIGHT_PAREN)
	p.expectType(token.RIGHT_PAREN)
	return &ast.NAry{Op: ast.OpCall, Name: name, Args: args, M: ast.NewMetas(pos)}
}

// parseSubstring parses both "SUBSTRING(str FROM start [FOR length])"
// and the ordinary comma-argument form "SUBSTRING(str, start[, length])",
// normalizing either into an OpCall NAry named "substring".
func (p *Parser) parseSubstring() ast.Expr {
	pos := p.current().Pos
	p.advance() // "substring"
	p.expectType(token.LEFT_PAREN)

	str := p.parseExpression(precLowest)
	args := []ast.Expr{str}

	if p.isType(token.FOR) {
		abort(ErrExpectedArgumentDelimiter, p.current().Pos, "expected FROM before start position", nil)
	}

	sawFrom := false
	if p.isKeyword("from") {
		p.advance()
		sawFrom = true
	} else {
		p.expectType(token.COMMA)
	}
	start := p.parseExpression(precLowest)
	args = append(args, start)

	if sawFrom {
		if p.isType(token.FOR) {
			p.advance()
			length := p.parseExpression(precLowest)
			args = append(args, length)
		}
	} else if p.isType(token.COMMA) {
		p.advance()
		length := p.parseExpression(precLowest)
		args = append(args, length)
	}

	p.expectType(token.RIGHT_PAREN)
	return &ast.NAry{Op: ast.OpCall, Name: "substring", Args: args, M: ast.NewMetas(pos)}
}

// trimSpecifications are recognized contextually, inside TRIM's argument
// list only; they are not reserved words elsewhere, keeping the global
// keyword set closed.
var trimSpecifications = map[string]bool{"leading": true, "trailing": true, "both": true}

// parseTrim parses "TRIM([spec] [chars] [FROM] src)" into an OpCall NAry
// named "trim". The canonical argument order is (spec, chars, src), but
// missing prefix arguments are simply absent rather than padded: TRIM(a)
// normalizes to a 1-arg call, TRIM(chars FROM a) to a 2-arg call, and
// only TRIM(spec chars FROM a) produces the full 3-arg call.
func (p *Parser) parseTrim() ast.Expr {
	pos := p.current().Pos
	p.advance() // "trim"
	p.expectType(token.LEFT_PAREN)

	var specExpr ast.Expr
	if tok := p.current(); tok.Type == token.IDENTIFIER && trimSpecifications[lowerIdent(tok.Text)] {
		specExpr = &ast.Literal{Value: value.NewSymbol(lowerIdent(tok.Text)), M: ast.NewMetas(tok.Pos)}
		p.advance()
	}

	if p.isKeyword("from") {
		p.advance()
		src := p.parseExpression(precLowest)
		p.expectType(token.RIGHT_PAREN)
		return &ast.NAry{Op: ast.OpCall, Name: "trim", Args: trimArgs(specExpr, src), M: ast.NewMetas(pos)}
	}

	first := p.parseExpression(precLowest)
	if p.isKeyword("from") {
		p.advance()
		src := p.parseExpression(precLowest)
		p.expectType(token.RIGHT_PAREN)
		return &ast.NAry{Op: ast.OpCall, Name: "trim", Args: trimArgs(specExpr, first, src), M: ast.NewMetas(pos)}
	}

	p.expectType(token.RIGHT_PAREN)
	return &ast.NAry{Op: ast.OpCall, Name: "trim", Args: []ast.Expr{first}, M: ast.NewMetas(pos)}
}

// trimArgs prepends spec to rest only when spec is present, keeping
// absent prefix arguments out of the canonical (spec, chars, src) call.
func trimArgs(spec ast.Expr, rest ...ast.Expr) []ast.Expr {
	if spec == nil {
		return rest
	}
	return append([]ast.Expr{spec}, rest...)
}

// datePartNames are recognized contextually inside EXTRACT's argument
// list, mirroring parseTrim's contextual handling of the trim
// specification words.
var datePartNames = map[string]bool{
	"year": true, "month": true, "day": true,
	"hour": true, "minute": true, "second": true,
	"timezone_hour": true, "timezone_minute": true,
}

// parseExtract parses "EXTRACT(datepart FROM expr)" into an OpCall NAry
// named "extract".
func (p *Parser) parseExtract() ast.Expr {
	pos := p.current().Pos
	p.advance() // "extract"
	p.expectType(token.LEFT_PAREN)

	tok := p.current()
	name := lowerIdent(tok.Text)
	if tok.Type != token.IDENTIFIER || !datePartNames[name] {
		abort(ErrExpectedDatePart, tok.Pos, "expected a date part name", nil)
	}
	p.advance()
	partExpr := &ast.Literal{Value: value.NewSymbol(name), M: ast.NewMetas(tok.Pos)}

	p.expectKeyword("from")
	from := p.parseExpression(precLowest)
	p.expectType(token.RIGHT_PAREN)
	return &ast.NAry{Op: ast.OpCall, Name: "extract", Args: []ast.Expr{partExpr, from}, M: ast.NewMetas(pos)}
}

func lowerIdent(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
