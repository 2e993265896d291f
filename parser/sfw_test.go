package parser_test

import (
	"testing"

	"github.com/partiql-go/partiql/ast"
	"github.com/partiql-go/partiql/parser"

	"github.com/stretchr/testify/require"
)

func TestParseSimpleSelect(t *testing.T) {
	c := require.New(t)
	expr, err := parser.ParseExpression("SELECT a, b AS bb FROM t WHERE a > 1")
	c.NoError(err)

	sel, ok := expr.(*ast.Select)
	c.True(ok)
	c.NotNil(sel.Where)

	proj, ok := sel.Projection.(*ast.SelectProjectionList)
	c.True(ok)
	c.Len(proj.Items, 2)

	item, ok := proj.Items[1].(*ast.SelectListItemExpr)
	c.True(ok)
	c.Equal("bb", item.AsAlias)
}

func TestParseSelectStar(t *testing.T) {
	c := require.New(t)
	expr, err := parser.ParseExpression("SELECT * FROM t")
	c.NoError(err)
	sel := expr.(*ast.Select)
	proj := sel.Projection.(*ast.SelectProjectionList)
	c.Len(proj.Items, 1)
	_, ok := proj.Items[0].(*ast.SelectListItemStar)
	c.True(ok)
}

func TestParseSelectValue(t *testing.T) {
	c := require.New(t)
	expr, err := parser.ParseExpression("SELECT VALUE a FROM t")
	c.NoError(err)
	sel := expr.(*ast.Select)
	_, ok := sel.Projection.(*ast.SelectProjectionValue)
	c.True(ok)
}

func TestParsePivot(t *testing.T) {
	c := require.New(t)
	expr, err := parser.ParseExpression("PIVOT v.price AT v.name FROM catalog v")
	c.NoError(err)
	sel := expr.(*ast.Select)
	_, ok := sel.Projection.(*ast.SelectProjectionPivot)
	c.True(ok)
}

func TestParseMissingFrom(t *testing.T) {
	c := require.New(t)
	_, err := parser.ParseExpression("SELECT a")
	c.Error(err)
	var perr *parser.Error
	c.ErrorAs(err, &perr)
	c.Equal(parser.ErrSelectMissingFrom, perr.Code)
}

func TestParseEmptySelectList(t *testing.T) {
	c := require.New(t)
	_, err := parser.ParseExpression("SELECT FROM t")
	c.Error(err)
	var perr *parser.Error
	c.ErrorAs(err, &perr)
	c.Equal(parser.ErrEmptySelect, perr.Code)
}

func TestParseAsteriskNotAlone(t *testing.T) {
	c := require.New(t)
	_, err := parser.ParseExpression("SELECT *, a FROM t")
	c.Error(err)
	var perr *parser.Error
	c.ErrorAs(err, &perr)
	c.Equal(parser.ErrAsteriskNotAlone, perr.Code)
}

func TestParseImplicitJoin(t *testing.T) {
	c := require.New(t)
	expr, err := parser.ParseExpression("SELECT a FROM t1, t2")
	c.NoError(err)
	sel := expr.(*ast.Select)
	join, ok := sel.From.(*ast.FromSourceJoin)
	c.True(ok)
	c.Equal(ast.JoinInner, join.Op)
	implicit, _ := join.M[ast.MetaIsImplicitJoin].(bool)
	c.True(implicit)

	lit, ok := join.Condition.(*ast.Literal)
	c.True(ok)
	c.True(lit.Value.Bool())
}

func TestParseExplicitJoins(t *testing.T) {
	tests := []struct {
		name string
		text string
		op   ast.JoinOp
	}{
		{"inner", "SELECT a FROM t1 JOIN t2 ON t1.x = t2.x", ast.JoinInner},
		{"left", "SELECT a FROM t1 LEFT JOIN t2 ON t1.x = t2.x", ast.JoinLeft},
		{"right", "SELECT a FROM t1 RIGHT JOIN t2 ON t1.x = t2.x", ast.JoinRight},
		{"full outer", "SELECT a FROM t1 FULL OUTER JOIN t2 ON t1.x = t2.x", ast.JoinOuter},
		{"cross", "SELECT a FROM t1 CROSS JOIN t2", ast.JoinInner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := require.New(t)
			expr, err := parser.ParseExpression(tt.text)
			c.NoError(err)
			sel := expr.(*ast.Select)
			join, ok := sel.From.(*ast.FromSourceJoin)
			c.True(ok)
			c.Equal(tt.op, join.Op)
		})
	}
}

func TestParseCrossJoinImplicitCondition(t *testing.T) {
	c := require.New(t)
	expr, err := parser.ParseExpression("SELECT a FROM t1 CROSS JOIN t2")
	c.NoError(err)
	sel := expr.(*ast.Select)
	join, ok := sel.From.(*ast.FromSourceJoin)
	c.True(ok)
	c.Equal(ast.JoinInner, join.Op)

	lit, ok := join.Condition.(*ast.Literal)
	c.True(ok)
	c.True(lit.Value.Bool())
}

func TestParseExplicitInnerJoinRequiresOnForCondition(t *testing.T) {
	c := require.New(t)
	expr, err := parser.ParseExpression("SELECT a FROM t1 JOIN t2 ON t1.x = t2.x")
	c.NoError(err)
	sel := expr.(*ast.Select)
	join, ok := sel.From.(*ast.FromSourceJoin)
	c.True(ok)
	c.NotNil(join.Condition)
	_, isLiteral := join.Condition.(*ast.Literal)
	c.False(isLiteral)
}

func TestParseUnpivotFrom(t *testing.T) {
	c := require.New(t)
	expr, err := parser.ParseExpression("SELECT k, v FROM UNPIVOT doc AS v AT k")
	c.NoError(err)
	sel := expr.(*ast.Select)
	un, ok := sel.From.(*ast.FromSourceUnpivot)
	c.True(ok)
	c.Equal("v", un.AsAlias)
	c.Equal("k", un.AtAlias)
}

func TestParseFromAliasesEitherOrder(t *testing.T) {
	c := require.New(t)

	expr, err := parser.ParseExpression("SELECT v FROM catalog AT k AS v")
	c.NoError(err)
	sel := expr.(*ast.Select)
	from, ok := sel.From.(*ast.FromSourceExpr)
	c.True(ok)
	c.Equal("v", from.AsAlias)
	c.Equal("k", from.AtAlias)

	expr, err = parser.ParseExpression("SELECT v FROM catalog AS v AT k")
	c.NoError(err)
	sel = expr.(*ast.Select)
	from, ok = sel.From.(*ast.FromSourceExpr)
	c.True(ok)
	c.Equal("v", from.AsAlias)
	c.Equal("k", from.AtAlias)
}

func TestParseFromMalformedAtAlias(t *testing.T) {
	c := require.New(t)
	_, err := parser.ParseExpression("SELECT v FROM catalog AT 1")
	c.Error(err)
	var perr *parser.Error
	c.ErrorAs(err, &perr)
	c.Equal(parser.ErrExpectedIdentForAt, perr.Code)
}

func TestParseGroupByAndHavingAndLimit(t *testing.T) {
	c := require.New(t)
	expr, err := parser.ParseExpression("SELECT a, COUNT(*) FROM t GROUP BY a GROUP AS g HAVING COUNT(*) > 1 LIMIT 10")
	c.NoError(err)
	sel := expr.(*ast.Select)
	c.NotNil(sel.GroupBy)
	c.Equal("g", sel.GroupBy.GroupAsName)
	c.NotNil(sel.Having)
	c.NotNil(sel.Limit)
}

func TestParseGroupByRejectsLiteral(t *testing.T) {
	c := require.New(t)
	_, err := parser.ParseExpression("SELECT a FROM t GROUP BY 1")
	c.Error(err)
	var perr *parser.Error
	c.ErrorAs(err, &perr)
	c.Equal(parser.ErrUnsupportedLiteralsGroupBy, perr.Code)
}

func TestParseOrderBySupplemental(t *testing.T) {
	c := require.New(t)
	expr, err := parser.ParseExpression("SELECT a FROM t ORDER BY a DESC, b")
	c.NoError(err)
	sel := expr.(*ast.Select)
	spec, ok := sel.M[ast.MetaOrderBy].(parser.OrderBySpec)
	c.True(ok)
	c.Len(spec.Items, 2)
	c.True(spec.Items[0].Desc)
	c.False(spec.Items[1].Desc)
}

func TestParseSelectListWildcardProjection(t *testing.T) {
	c := require.New(t)
	expr, err := parser.ParseExpression("SELECT foo.bar.* FROM t")
	c.NoError(err)
	sel := expr.(*ast.Select)
	proj := sel.Projection.(*ast.SelectProjectionList)
	c.Len(proj.Items, 1)
	_, ok := proj.Items[0].(*ast.SelectListItemProjectAll)
	c.True(ok)
}
