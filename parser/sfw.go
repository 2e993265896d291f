package parser

import (
	"github.com/partiql-go/partiql/ast"
	"github.com/partiql-go/partiql/token"
	"github.com/partiql-go/partiql/value"
)

// OrderByItem is one key of a supplemental ORDER BY clause. See
// OrderBySpec.
type OrderByItem struct {
	Expr ast.Expr
	Desc bool
}

// OrderBySpec is stashed under ast.MetaOrderBy on the enclosing *ast.Select
// rather than added as a dedicated AST field: ORDER BY has no bearing on
// the shape of the result, only its presentation, so a syntactically
// valid ORDER BY should not make an otherwise well-formed query
// unparseable, but it also should not be silently dropped.
type OrderBySpec struct {
	Items []OrderByItem
}

// parseSelectOrPivot parses a full SELECT or PIVOT query.
// PIVOT shares every clause with SELECT except its projection form.
func (p *Parser) parseSelectOrPivot() ast.Expr {
	pos := p.current().Pos

	var projection ast.SelectProjection
	var quantifier ast.SetQuantifier

	if p.isKeyword("select") {
		p.advance()
		quantifier = p.parseSetQuantifierOpt()
		projection = p.parseProjection()
	} else {
		p.expectKeyword("pivot")
		quantifier = ast.QuantifierAll
		valueExpr := p.parseExpression(precLowest)
		p.expectType(token.AT)
		keyExpr := p.parseExpression(precLowest)
		projection = &ast.SelectProjectionPivot{Key: keyExpr, Value: valueExpr, M: ast.NewMetas(pos)}
	}

	if !p.isKeyword("from") {
		abort(ErrSelectMissingFrom, p.current().Pos, "expected FROM", nil)
	}
	p.advance()
	from := p.parseFromClause()

	var where ast.Expr
	if p.isKeyword("where") {
		p.advance()
		where = p.parseExpression(precLowest)
	}

	groupBy := p.parseGroupByOpt()

	var having ast.Expr
	if p.isKeyword("having") {
		p.advance()
		having = p.parseExpression(precLowest)
	}

	var limit ast.Expr
	if p.isKeyword("limit") {
		p.advance()
		limit = p.parseExpression(precLowest)
	}

	m := ast.NewMetas(pos)
	if p.isKeyword("order") {
		m[ast.MetaOrderBy] = p.parseOrderBy()
	}

	return &ast.Select{
		SetQuantifier: quantifier,
		Projection:    projection,
		From:          from,
		Where:         where,
		GroupBy:       groupBy,
		Having:        having,
		Limit:         limit,
		M:             m,
	}
}

func (p *Parser) parseSetQuantifierOpt() ast.SetQuantifier {
	if p.isKeyword("distinct") {
		p.advance()
		return ast.QuantifierDistinct
	}
	if p.isKeyword("all") {
		p.advance()
	}
	return ast.QuantifierAll
}

// parseProjection parses the SELECT list body: "*", "VALUE expr", or a
// comma-separated list of select-list items.
func (p *Parser) parseProjection() ast.SelectProjection {
	pos := p.current().Pos

	if p.isType(token.STAR) {
		p.advance()
		if p.isType(token.COMMA) {
			abort(ErrAsteriskNotAlone, pos, "* must appear alone in the select list", nil)
		}
		return &ast.SelectProjectionList{
			Items: []ast.SelectListItem{&ast.SelectListItemStar{M: ast.NewMetas(pos)}},
			M:     ast.NewMetas(pos),
		}
	}

	if p.isKeyword("value") {
		p.advance()
		if p.isKeyword("from") || p.atEOF() {
			abort(ErrEmptySelect, p.current().Pos, "empty SELECT VALUE", nil)
		}
		expr := p.parseExpression(precLowest)
		return &ast.SelectProjectionValue{Expr: expr, M: ast.NewMetas(pos)}
	}

	if p.isKeyword("from") || p.atEOF() {
		abort(ErrEmptySelect, p.current().Pos, "empty SELECT list", nil)
	}

	items := []ast.SelectListItem{p.parseSelectListItem()}
	for p.isType(token.COMMA) {
		p.advance()
		items = append(items, p.parseSelectListItem())
	}
	if len(items) > 1 {
		for _, it := range items {
			if _, ok := it.(*ast.SelectListItemStar); ok {
				abort(ErrAsteriskNotAlone, pos, "* must appear alone in the select list", nil)
			}
		}
	}
	return &ast.SelectProjectionList{Items: items, M: ast.NewMetas(pos)}
}

func (p *Parser) parseSelectListItem() ast.SelectListItem {
	pos := p.current().Pos

	if p.isType(token.STAR) {
		p.advance()
		return &ast.SelectListItemStar{M: ast.NewMetas(pos)}
	}

	expr := p.parseExpression(precLowest)
	if item, ok := inspectPathExpression(expr); ok {
		return item
	}

	alias := ""
	if p.isType(token.AS) {
		p.advance()
		alias = p.expectIdentText(ErrExpectedIdentForAlias)
	}
	return &ast.SelectListItemExpr{Expr: expr, AsAlias: alias, M: ast.NewMetas(pos)}
}

// parseFromClause parses the from-item chain following FROM, folding
// comma-separated items into implicit inner joins (tagged
// MetaIsImplicitJoin) and explicit JOIN keywords into their designated
// ast.JoinOp.
func (p *Parser) parseFromClause() ast.FromSource {
	left := p.parseFromItem()

	for {
		pos := p.current().Pos

		if op, wasCross, ok := p.tryConsumeExplicitJoin(); ok {
			right := p.parseFromItem()
			var cond ast.Expr
			if wasCross {
				cond = literalTrue(pos)
			}
			if p.isKeyword("on") {
				p.advance()
				cond = p.parseExpression(precLowest)
			}
			left = &ast.FromSourceJoin{Op: op, Left: left, Right: right, Condition: cond, M: ast.NewMetas(pos)}
			continue
		}

		if p.isType(token.COMMA) {
			p.advance()
			right := p.parseFromItem()
			m := ast.NewMetas(pos)
			m[ast.MetaIsImplicitJoin] = true
			left = &ast.FromSourceJoin{Op: ast.JoinInner, Left: left, Right: right, Condition: literalTrue(pos), M: m}
			continue
		}

		break
	}
	return left
}

// tryConsumeExplicitJoin consumes a folded join keyword if the current
// token is one, returning its ast.JoinOp and whether it was CROSS JOIN
// specifically (which takes an implicit true condition rather than ON).
func (p *Parser) tryConsumeExplicitJoin() (op ast.JoinOp, wasCross bool, ok bool) {
	tok := p.current()
	if tok.Type != token.KEYWORD {
		return 0, false, false
	}
	switch tok.Text {
	case "join", "inner_join":
		p.advance()
		return ast.JoinInner, false, true
	case "cross_join":
		p.advance()
		return ast.JoinInner, true, true
	case "left_join":
		p.advance()
		return ast.JoinLeft, false, true
	case "right_join":
		p.advance()
		return ast.JoinRight, false, true
	case "outer_join":
		p.advance()
		return ast.JoinOuter, false, true
	}
	return 0, false, false
}

// literalTrue builds the Literal(true) node used as the implicit join
// condition for CROSS JOIN and comma-separated from-items.
func literalTrue(pos token.Position) ast.Expr {
	return &ast.Literal{Value: value.NewBool(true), M: ast.NewMetas(pos)}
}

func (p *Parser) parseFromItem() ast.FromSource {
	pos := p.current().Pos

	if p.isKeyword("unpivot") {
		p.advance()
		expr := p.parseExpression(precLowest)
		asAlias, atAlias := p.parseOptionalAliases()
		return &ast.FromSourceUnpivot{Expr: expr, AsAlias: asAlias, AtAlias: atAlias, M: ast.NewMetas(pos)}
	}

	expr := p.parseExpression(precLowest)
	asAlias, atAlias := p.parseOptionalAliases()
	return &ast.FromSourceExpr{Expr: expr, AsAlias: asAlias, AtAlias: atAlias, M: ast.NewMetas(pos)}
}

// parseOptionalAliases parses an optional "AS alias", "AT alias", or
// both, in either order: "AT k AS v" is accepted the same as
// "AS v AT k". The AS keyword may be omitted when the alias directly
// follows the source ("catalog v", "catalog v AT k").
func (p *Parser) parseOptionalAliases() (asAlias, atAlias string) {
	for i := 0; i < 2; i++ {
		switch {
		case p.isType(token.AS) && asAlias == "":
			p.advance()
			asAlias = p.expectIdentText(ErrExpectedIdentForAlias)
		case i == 0 && (p.isType(token.IDENTIFIER) || p.isType(token.QUOTED_IDENTIFIER)):
			asAlias = p.advance().Text
		case p.isType(token.AT) && atAlias == "":
			p.advance()
			atAlias = p.expectIdentText(ErrExpectedIdentForAt)
		default:
			return
		}
	}
	return
}

// parseGroupByOpt parses an optional "GROUP [PARTIAL] BY item, ... [GROUP
// AS name]" clause.
func (p *Parser) parseGroupByOpt() *ast.GroupBy {
	if !p.isKeyword("group") {
		return nil
	}
	p.advance()

	strategy := ast.GroupFull
	if p.isKeyword("partial") {
		p.advance()
		strategy = ast.GroupPartial
	}
	p.expectKeyword("by")

	items := []ast.GroupByItem{p.parseGroupByItem()}
	for p.isType(token.COMMA) {
		p.advance()
		items = append(items, p.parseGroupByItem())
	}

	groupAsName := ""
	if p.isKeyword("group") {
		p.advance()
		p.expectType(token.AS)
		groupAsName = p.expectIdentText(ErrExpectedIdentForGroupName)
	}

	return &ast.GroupBy{Strategy: strategy, Items: items, GroupAsName: groupAsName}
}

// parseGroupByItem rejects a bare literal grouping key: this grammar has
// no name-resolution pass, so an ordinal like "GROUP BY 1" referring to a
// select-list position can never be honored (PARSE_UNSUPPORTED_LITERALS_GROUPBY).
func (p *Parser) parseGroupByItem() ast.GroupByItem {
	tok := p.current()
	expr := p.parseExpression(precLowest)
	if _, ok := expr.(*ast.Literal); ok {
		abort(ErrUnsupportedLiteralsGroupBy, tok.Pos, "GROUP BY does not support literal grouping keys", nil)
	}

	alias := ""
	if p.isType(token.AS) {
		p.advance()
		alias = p.expectIdentText(ErrExpectedIdentForAlias)
	}
	return ast.GroupByItem{Expr: expr, AsAlias: alias}
}

func (p *Parser) parseOrderBy() OrderBySpec {
	p.expectKeyword("order")
	p.expectKeyword("by")

	items := []OrderByItem{p.parseOrderByItem()}
	for p.isType(token.COMMA) {
		p.advance()
		items = append(items, p.parseOrderByItem())
	}
	return OrderBySpec{Items: items}
}

func (p *Parser) parseOrderByItem() OrderByItem {
	expr := p.parseExpression(precLowest)
	desc := false
	if p.isKeyword("asc") {
		p.advance()
	} else if p.isKeyword("desc") {
		p.advance()
		desc = true
	}
	return OrderByItem{Expr: expr, Desc: desc}
}

func (p *Parser) expectIdentText(code ErrorCode) string {
	tok := p.current()
	if tok.Type != token.IDENTIFIER && tok.Type != token.QUOTED_IDENTIFIER {
		abort(code, tok.Pos, "expected an identifier", nil)
	}
	p.advance()
	return tok.Text
}
