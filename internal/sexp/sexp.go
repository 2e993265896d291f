// Package sexp serializes a parsed PartiQL ast.Expr into a portable
// s-expression string. It is a pure, read-only tree walk: no node is
// mutated and no error can occur, since by the time an ast.Expr reaches
// here the parser has already validated its shape.
package sexp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/partiql-go/partiql/ast"
	"github.com/partiql-go/partiql/value"
)

// Render returns the s-expression form of expr.
func Render(expr ast.Expr) string {
	var sb strings.Builder
	writeExpr(&sb, expr)
	return sb.String()
}

func writeExpr(sb *strings.Builder, expr ast.Expr) {
	switch e := expr.(type) {
	case nil:
		sb.WriteString("(null)")
	case *ast.Literal:
		writeLiteral(sb, e)
	case *ast.LiteralMissing:
		sb.WriteString("(missing)")
	case *ast.VariableReference:
		writeVariableReference(sb, e)
	case *ast.ListExprNode:
		writeSeq(sb, "list", e.Items)
	case *ast.Bag:
		writeSeq(sb, "bag", e.Items)
	case *ast.Struct:
		writeStruct(sb, e)
	case *ast.NAry:
		writeNAry(sb, e)
	case *ast.Typed:
		writeTyped(sb, e)
	case *ast.Path:
		writePath(sb, e)
	case *ast.SimpleCase:
		writeSimpleCase(sb, e)
	case *ast.SearchedCase:
		writeSearchedCase(sb, e)
	case *ast.CallAgg:
		writeCallAgg(sb, e)
	case *ast.Select:
		writeSelect(sb, e)
	default:
		fmt.Fprintf(sb, "(unknown %T)", e)
	}
}

func writeLiteral(sb *strings.Builder, lit *ast.Literal) {
	sb.WriteString("(lit ")
	writeValue(sb, lit.Value)
	sb.WriteString(")")
}

func writeValue(sb *strings.Builder, v value.Value) {
	switch v.Kind() {
	case value.KindNull:
		sb.WriteString("null")
	case value.KindMissing:
		sb.WriteString("missing")
	case value.KindBool:
		sb.WriteString(strconv.FormatBool(v.Bool()))
	case value.KindInt:
		sb.WriteString(strconv.FormatInt(v.Int64(), 10))
	case value.KindDecimal:
		sb.WriteString(v.Decimal().RatString())
	case value.KindString:
		fmt.Fprintf(sb, "%q", v.Text())
	case value.KindSymbol:
		sb.WriteString("'" + v.Text())
	case value.KindTimestamp:
		sb.WriteString(v.Time().Format("2006-01-02T15:04:05.999999999Z07:00"))
	default:
		sb.WriteString("?")
	}
}

func writeVariableReference(sb *strings.Builder, v *ast.VariableReference) {
	tag := "var"
	if v.ScopeQualifier == ast.ScopeLexical {
		tag = "var@"
	}
	sensitivity := ""
	if v.CaseSensitivity == ast.CaseSensitive {
		sensitivity = "!"
	}
	fmt.Fprintf(sb, "(%s%s %s)", tag, sensitivity, v.Name)
}

func writeSeq(sb *strings.Builder, tag string, items []ast.Expr) {
	fmt.Fprintf(sb, "(%s", tag)
	for _, item := range items {
		sb.WriteString(" ")
		writeExpr(sb, item)
	}
	sb.WriteString(")")
}

func writeStruct(sb *strings.Builder, s *ast.Struct) {
	sb.WriteString("(struct")
	for _, f := range s.Fields {
		sb.WriteString(" (")
		writeExpr(sb, f.Key)
		sb.WriteString(" ")
		writeExpr(sb, f.Value)
		sb.WriteString(")")
	}
	sb.WriteString(")")
}

var narySymbols = map[ast.NAryOp]string{
	ast.OpNot:     "not",
	ast.OpAnd:     "and",
	ast.OpOr:      "or",
	ast.OpEq:      "=",
	ast.OpNe:      "<>",
	ast.OpLt:      "<",
	ast.OpLte:     "<=",
	ast.OpGt:      ">",
	ast.OpGte:     ">=",
	ast.OpPlus:    "+",
	ast.OpMinus:   "-",
	ast.OpStar:    "*",
	ast.OpDiv:     "/",
	ast.OpMod:     "%",
	ast.OpConcat:  "||",
	ast.OpLike:    "like",
	ast.OpIn:      "in",
	ast.OpBetween: "between",
	ast.OpCall:    "call",
	ast.OpPos:     "pos",
	ast.OpNeg:     "neg",
}

func writeNAry(sb *strings.Builder, n *ast.NAry) {
	sym := narySymbols[n.Op]
	sb.WriteString("(")
	sb.WriteString(sym)
	if n.Op == ast.OpCall {
		sb.WriteString(" ")
		sb.WriteString(n.Name)
	}
	if legacy, _ := n.M[ast.MetaLegacyLogicalNot].(bool); legacy {
		sb.WriteString(" :legacy")
	}
	for _, arg := range n.Args {
		sb.WriteString(" ")
		writeExpr(sb, arg)
	}
	sb.WriteString(")")
}

func writeTyped(sb *strings.Builder, t *ast.Typed) {
	tag := "cast"
	if t.Op == ast.OpIs {
		tag = "is"
	}
	fmt.Fprintf(sb, "(%s ", tag)
	writeExpr(sb, t.Value)
	sb.WriteString(" ")
	writeDataType(sb, t.DataType)
	sb.WriteString(")")
}

var sqlTypeNames = map[ast.SQLType]string{
	ast.TypeChar: "char", ast.TypeVarchar: "varchar",
	ast.TypeDecimal: "decimal", ast.TypeNumeric: "numeric",
	ast.TypeInteger: "integer", ast.TypeSmallint: "smallint",
	ast.TypeFloat: "float", ast.TypeReal: "real",
	ast.TypeDoublePrecision: "double_precision", ast.TypeTimestamp: "timestamp",
	ast.TypeBoolean: "boolean", ast.TypeString: "string",
	ast.TypeSymbol: "symbol", ast.TypeStruct: "struct",
	ast.TypeBag: "bag", ast.TypeList: "list",
	ast.TypeMissing: "missing", ast.TypeNull: "null",
}

func writeDataType(sb *strings.Builder, dt *ast.DataType) {
	sb.WriteString(sqlTypeNames[dt.SQLType])
	for _, arg := range dt.ArgList {
		fmt.Fprintf(sb, ":%d", arg)
	}
}

func writePath(sb *strings.Builder, p *ast.Path) {
	sb.WriteString("(path ")
	writeExpr(sb, p.Root)
	for _, comp := range p.Components {
		sb.WriteString(" ")
		writePathComponent(sb, comp)
	}
	sb.WriteString(")")
}

func writePathComponent(sb *strings.Builder, comp ast.PathComponent) {
	switch c := comp.(type) {
	case *ast.PathComponentExpr:
		if c.Bracketed {
			sb.WriteString("[")
			writeExpr(sb, c.Expr)
			sb.WriteString("]")
		} else {
			sb.WriteString(".")
			writeExpr(sb, c.Expr)
		}
	case *ast.PathComponentWildcard:
		sb.WriteString("[*]")
	case *ast.PathComponentUnpivot:
		sb.WriteString(".*")
	}
}

func writeWhenBranches(sb *strings.Builder, branches []ast.WhenBranch, elseExpr ast.Expr) {
	for _, b := range branches {
		sb.WriteString(" (")
		writeExpr(sb, b.Cond)
		sb.WriteString(" ")
		writeExpr(sb, b.Result)
		sb.WriteString(")")
	}
	if elseExpr != nil {
		sb.WriteString(" (else ")
		writeExpr(sb, elseExpr)
		sb.WriteString(")")
	}
}

func writeSimpleCase(sb *strings.Builder, c *ast.SimpleCase) {
	sb.WriteString("(case ")
	writeExpr(sb, c.Value)
	writeWhenBranches(sb, c.WhenBranches, c.Else)
	sb.WriteString(")")
}

func writeSearchedCase(sb *strings.Builder, c *ast.SearchedCase) {
	sb.WriteString("(case")
	writeWhenBranches(sb, c.WhenBranches, c.Else)
	sb.WriteString(")")
}

func writeCallAgg(sb *strings.Builder, c *ast.CallAgg) {
	fmt.Fprintf(sb, "(agg %s", c.FuncRef)
	if c.SetQuantifier == ast.QuantifierDistinct {
		sb.WriteString(" distinct")
	}
	if c.Wildcard {
		sb.WriteString(" *")
	} else {
		sb.WriteString(" ")
		writeExpr(sb, c.Arg)
	}
	sb.WriteString(")")
}

func writeSelect(sb *strings.Builder, s *ast.Select) {
	sb.WriteString("(select")
	if s.SetQuantifier == ast.QuantifierDistinct {
		sb.WriteString(" distinct")
	}
	sb.WriteString(" ")
	writeProjection(sb, s.Projection)
	sb.WriteString(" (from ")
	writeFromSource(sb, s.From)
	sb.WriteString(")")
	if s.Where != nil {
		sb.WriteString(" (where ")
		writeExpr(sb, s.Where)
		sb.WriteString(")")
	}
	if s.GroupBy != nil {
		writeGroupBy(sb, s.GroupBy)
	}
	if s.Having != nil {
		sb.WriteString(" (having ")
		writeExpr(sb, s.Having)
		sb.WriteString(")")
	}
	if s.Limit != nil {
		sb.WriteString(" (limit ")
		writeExpr(sb, s.Limit)
		sb.WriteString(")")
	}
	sb.WriteString(")")
}

func writeProjection(sb *strings.Builder, proj ast.SelectProjection) {
	switch p := proj.(type) {
	case *ast.SelectProjectionList:
		sb.WriteString("(project")
		for _, item := range p.Items {
			sb.WriteString(" ")
			writeSelectListItem(sb, item)
		}
		sb.WriteString(")")
	case *ast.SelectProjectionValue:
		sb.WriteString("(project_value ")
		writeExpr(sb, p.Expr)
		sb.WriteString(")")
	case *ast.SelectProjectionPivot:
		sb.WriteString("(pivot ")
		writeExpr(sb, p.Value)
		sb.WriteString(" ")
		writeExpr(sb, p.Key)
		sb.WriteString(")")
	}
}

func writeSelectListItem(sb *strings.Builder, item ast.SelectListItem) {
	switch it := item.(type) {
	case *ast.SelectListItemStar:
		sb.WriteString("*")
	case *ast.SelectListItemProjectAll:
		sb.WriteString("(project_all ")
		writeExpr(sb, it.Expr)
		sb.WriteString(")")
	case *ast.SelectListItemExpr:
		sb.WriteString("(item ")
		writeExpr(sb, it.Expr)
		if it.AsAlias != "" {
			sb.WriteString(" :as ")
			sb.WriteString(it.AsAlias)
		}
		sb.WriteString(")")
	}
}

func writeFromSource(sb *strings.Builder, src ast.FromSource) {
	switch s := src.(type) {
	case *ast.FromSourceExpr:
		writeExpr(sb, s.Expr)
		writeFromAliases(sb, s.AsAlias, s.AtAlias)
	case *ast.FromSourceUnpivot:
		sb.WriteString("(unpivot ")
		writeExpr(sb, s.Expr)
		sb.WriteString(")")
		writeFromAliases(sb, s.AsAlias, s.AtAlias)
	case *ast.FromSourceJoin:
		writeFromJoin(sb, s)
	}
}

func writeFromAliases(sb *strings.Builder, asAlias, atAlias string) {
	if asAlias != "" {
		sb.WriteString(" :as ")
		sb.WriteString(asAlias)
	}
	if atAlias != "" {
		sb.WriteString(" :at ")
		sb.WriteString(atAlias)
	}
}

var joinSymbols = map[ast.JoinOp]string{
	ast.JoinInner: "join", ast.JoinLeft: "left_join",
	ast.JoinRight: "right_join", ast.JoinOuter: "outer_join",
}

func writeFromJoin(sb *strings.Builder, j *ast.FromSourceJoin) {
	fmt.Fprintf(sb, "(%s ", joinSymbols[j.Op])
	writeFromSource(sb, j.Left)
	sb.WriteString(" ")
	writeFromSource(sb, j.Right)
	if j.Condition != nil {
		sb.WriteString(" (on ")
		writeExpr(sb, j.Condition)
		sb.WriteString(")")
	}
	sb.WriteString(")")
}

func writeGroupBy(sb *strings.Builder, g *ast.GroupBy) {
	sb.WriteString(" (group_by")
	if g.Strategy == ast.GroupPartial {
		sb.WriteString(" :partial")
	}
	for _, item := range g.Items {
		sb.WriteString(" ")
		writeExpr(sb, item.Expr)
		if item.AsAlias != "" {
			sb.WriteString(":as ")
			sb.WriteString(item.AsAlias)
		}
	}
	if g.GroupAsName != "" {
		sb.WriteString(" :group_as ")
		sb.WriteString(g.GroupAsName)
	}
	sb.WriteString(")")
}
