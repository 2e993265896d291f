package ast_test

import (
	"testing"

	"github.com/partiql-go/partiql/ast"
	"github.com/partiql-go/partiql/token"
	"github.com/partiql-go/partiql/value"

	"github.com/stretchr/testify/require"
)

func TestExprSumTypeMembership(t *testing.T) {
	c := require.New(t)
	m := ast.NewMetas(token.Position{Line: 1, Column: 1})

	var exprs = []ast.Expr{
		&ast.Literal{Value: value.NewInt(1), M: m},
		&ast.LiteralMissing{M: m},
		&ast.VariableReference{Name: "a", M: m},
		&ast.ListExprNode{M: m},
		&ast.Bag{M: m},
		&ast.Struct{M: m},
		&ast.NAry{Op: ast.OpPlus, M: m},
		&ast.Typed{Op: ast.OpCast, M: m},
		&ast.Path{M: m},
		&ast.SimpleCase{M: m},
		&ast.SearchedCase{M: m},
		&ast.CallAgg{M: m},
		&ast.Select{M: m},
	}

	for _, e := range exprs {
		c.NotNil(e.Metas())
	}
}

func TestFromSourceSumTypeMembership(t *testing.T) {
	c := require.New(t)
	m := ast.NewMetas(token.Position{Line: 1, Column: 1})

	var sources = []ast.FromSource{
		&ast.FromSourceExpr{M: m},
		&ast.FromSourceUnpivot{M: m},
		&ast.FromSourceJoin{M: m},
	}
	for _, s := range sources {
		c.NotNil(s.Metas())
	}
}

func TestSelectListItemSumTypeMembership(t *testing.T) {
	c := require.New(t)
	m := ast.NewMetas(token.Position{Line: 1, Column: 1})

	var items = []ast.SelectListItem{
		&ast.SelectListItemStar{M: m},
		&ast.SelectListItemProjectAll{M: m},
		&ast.SelectListItemExpr{M: m},
	}
	for _, i := range items {
		c.NotNil(i.Metas())
	}
}

func TestPathComponentSumTypeMembership(t *testing.T) {
	c := require.New(t)
	m := ast.NewMetas(token.Position{Line: 1, Column: 1})

	var comps = []ast.PathComponent{
		&ast.PathComponentExpr{M: m},
		&ast.PathComponentWildcard{M: m},
		&ast.PathComponentUnpivot{M: m},
	}
	for _, comp := range comps {
		c.NotNil(comp.Metas())
	}
}

func TestNAryCallNamePopulatedOnlyForCallOp(t *testing.T) {
	c := require.New(t)
	call := &ast.NAry{Op: ast.OpCall, Name: "upper"}
	c.Equal("upper", call.Name)

	plus := &ast.NAry{Op: ast.OpPlus}
	c.Equal("", plus.Name)
}
