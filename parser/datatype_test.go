package parser_test

import (
	"testing"

	"github.com/partiql-go/partiql/ast"
	"github.com/partiql-go/partiql/parser"

	"github.com/stretchr/testify/require"
)

func TestParseDataTypeNames(t *testing.T) {
	tests := []struct {
		name string
		text string
		want ast.SQLType
	}{
		{"integer", "CAST(a AS INTEGER)", ast.TypeInteger},
		{"int alias", "CAST(a AS INT)", ast.TypeInteger},
		{"double precision", "CAST(a AS DOUBLE PRECISION)", ast.TypeDoublePrecision},
		{"struct", "CAST(a AS STRUCT)", ast.TypeStruct},
		{"list alias array", "CAST(a AS ARRAY)", ast.TypeList},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := require.New(t)
			expr, err := parser.ParseExpression(tt.text)
			c.NoError(err)
			typed, ok := expr.(*ast.Typed)
			c.True(ok)
			c.Equal(tt.want, typed.DataType.SQLType)
		})
	}
}

func TestParseDataTypeInvalidArg(t *testing.T) {
	c := require.New(t)
	_, err := parser.ParseExpression("CAST(a AS VARCHAR(-1))")
	c.Error(err)
	var perr *parser.Error
	c.ErrorAs(err, &perr)
	c.Equal(parser.ErrInvalidTypeParam, perr.Code)
}

func TestParseDataTypeTimestampArity(t *testing.T) {
	c := require.New(t)

	expr, err := parser.ParseExpression("CAST(a AS TIMESTAMP)")
	c.NoError(err)
	typed, ok := expr.(*ast.Typed)
	c.True(ok)
	c.Equal(ast.TypeTimestamp, typed.DataType.SQLType)

	expr, err = parser.ParseExpression("CAST(a AS TIMESTAMP(3))")
	c.NoError(err)
	typed, ok = expr.(*ast.Typed)
	c.True(ok)
	c.Equal(ast.TypeTimestamp, typed.DataType.SQLType)
	c.Equal([]int{3}, typed.DataType.ArgList)

	_, err = parser.ParseExpression("CAST(a AS TIMESTAMP(1, 2))")
	c.Error(err)
	var perr *parser.Error
	c.ErrorAs(err, &perr)
	c.Equal(parser.ErrCastArity, perr.Code)
}

func TestParseDataTypeUnknownName(t *testing.T) {
	c := require.New(t)
	_, err := parser.ParseExpression("CAST(a AS NOTATYPE)")
	c.Error(err)
	var perr *parser.Error
	c.ErrorAs(err, &perr)
	c.Equal(parser.ErrExpectedTypeName, perr.Code)
}
