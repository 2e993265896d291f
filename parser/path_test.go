package parser_test

import (
	"testing"

	"github.com/partiql-go/partiql/ast"
	"github.com/partiql-go/partiql/parser"

	"github.com/stretchr/testify/require"
)

func TestParsePathComponents(t *testing.T) {
	c := require.New(t)
	expr, err := parser.ParseExpression("a.b[0][*].c")
	c.NoError(err)

	path, ok := expr.(*ast.Path)
	c.True(ok)
	c.Len(path.Components, 4)

	_, ok = path.Components[0].(*ast.PathComponentExpr)
	c.True(ok)
	_, ok = path.Components[1].(*ast.PathComponentExpr)
	c.True(ok)
	_, ok = path.Components[2].(*ast.PathComponentWildcard)
	c.True(ok)
	_, ok = path.Components[3].(*ast.PathComponentExpr)
	c.True(ok)
}

func TestParsePathWildcardOnlyAtEnd(t *testing.T) {
	c := require.New(t)
	_, err := parser.ParseExpression("SELECT a[*].b FROM t")
	c.Error(err)
	var perr *parser.Error
	c.ErrorAs(err, &perr)
	c.Equal(parser.ErrInvalidWildcardContext, perr.Code)
}

func TestParseTrailingSquareBracketWildcardRejectedInSelectList(t *testing.T) {
	c := require.New(t)
	_, err := parser.ParseExpression("SELECT a[*] FROM t")
	c.Error(err)
	var perr *parser.Error
	c.ErrorAs(err, &perr)
	c.Equal(parser.ErrInvalidWildcardContext, perr.Code)
}

func TestParseUnpivotDotNotFinalRejected(t *testing.T) {
	c := require.New(t)
	_, err := parser.ParseExpression("SELECT foo.*.bar FROM t")
	c.Error(err)
	var perr *parser.Error
	c.ErrorAs(err, &perr)
	c.Equal(parser.ErrInvalidWildcardContext, perr.Code)
}

func TestParseMixedBracketAndDotWildcardRejected(t *testing.T) {
	c := require.New(t)
	_, err := parser.ParseExpression("SELECT foo[1].* FROM t")
	c.Error(err)
	var perr *parser.Error
	c.ErrorAs(err, &perr)
	c.Equal(parser.ErrCannotMixSqbAndWildcard, perr.Code)
}

func TestParseQuotedIdentifierCaseSensitivity(t *testing.T) {
	c := require.New(t)
	expr, err := parser.ParseExpression(`"MyCol"`)
	c.NoError(err)
	v, ok := expr.(*ast.VariableReference)
	c.True(ok)
	c.Equal(ast.CaseSensitive, v.CaseSensitivity)
	c.Equal("MyCol", v.Name)
}
