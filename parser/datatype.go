package parser

import (
	"strings"

	"github.com/partiql-go/partiql/ast"
	"github.com/partiql-go/partiql/token"
	"github.com/partiql-go/partiql/value"
)

// typeNames maps a type-name lexeme (already lower-cased) to its SQLType
// tag. Multi-word names are matched by parseDataType before falling back
// to this single-word table.
var typeNames = map[string]ast.SQLType{
	"char":             ast.TypeChar,
	"character":        ast.TypeChar,
	"varchar":          ast.TypeVarchar,
	"decimal":          ast.TypeDecimal,
	"dec":              ast.TypeDecimal,
	"numeric":          ast.TypeNumeric,
	"integer":          ast.TypeInteger,
	"int":              ast.TypeInteger,
	"smallint":         ast.TypeSmallint,
	"float":            ast.TypeFloat,
	"real":             ast.TypeReal,
	"timestamp":        ast.TypeTimestamp,
	"boolean":          ast.TypeBoolean,
	"bool":             ast.TypeBoolean,
	"string":           ast.TypeString,
	"symbol":           ast.TypeSymbol,
	"struct":           ast.TypeStruct,
	"tuple":            ast.TypeStruct,
	"bag":              ast.TypeBag,
	"list":             ast.TypeList,
	"array":            ast.TypeList,
	"missing":          ast.TypeMissing,
	"null":             ast.TypeNull,
}

// typeArity gives the [min,max] number of parenthesized integer
// arguments a SQLType accepts. Types absent from this table accept none.
var typeArity = map[ast.SQLType][2]int{
	ast.TypeChar:      {0, 1},
	ast.TypeVarchar:   {0, 1},
	ast.TypeDecimal:   {0, 2},
	ast.TypeNumeric:   {0, 2},
	ast.TypeTimestamp: {0, 1},
}

// parseDataType parses a SQL type name with optional parenthesized
// integer argument list, validating arity against typeArity
// (PARSE_CAST_ARITY) and each argument's shape (PARSE_INVALID_TYPE_PARAM).
func (p *Parser) parseDataType() *ast.DataType {
	tok := p.current()

	name, ok := dataTypeWord(tok)
	if !ok {
		abort(ErrExpectedTypeName, tok.Pos, "expected a type name", nil)
	}
	pos := tok.Pos
	p.advance()

	// "double precision" is the only two-word type name.
	if name == "double" {
		next := p.current()
		if next.Type != token.IDENTIFIER || strings.ToLower(next.Text) != "precision" {
			abort(ErrExpectedKeyword, next.Pos, "expected keyword precision",
				map[PropertyKey]any{PropTokenText: "precision"})
		}
		p.advance()
		name = "double precision"
	}

	sqlType, ok := resolveTypeName(name)
	if !ok {
		abort(ErrExpectedTypeName, pos, "unknown type name "+name, nil)
	}

	var args []int
	if p.isType(token.LEFT_PAREN) {
		p.advance()
		args = append(args, p.parseTypeArg())
		for p.isType(token.COMMA) {
			p.advance()
			args = append(args, p.parseTypeArg())
		}
		p.expectType(token.RIGHT_PAREN)
	}

	bounds, hasBounds := typeArity[sqlType]
	if hasBounds {
		if len(args) < bounds[0] || len(args) > bounds[1] {
			abort(ErrCastArity, pos, "wrong number of type arguments for "+name,
				map[PropertyKey]any{
					PropCastTo:           name,
					PropExpectedArityMin: bounds[0],
					PropExpectedArityMax: bounds[1],
				})
		}
	} else if len(args) > 0 {
		abort(ErrCastArity, pos, name+" does not accept type arguments",
			map[PropertyKey]any{PropCastTo: name, PropExpectedArityMin: 0, PropExpectedArityMax: 0})
	}

	return &ast.DataType{SQLType: sqlType, ArgList: args, M: ast.NewMetas(pos)}
}

func (p *Parser) parseTypeArg() int {
	tok := p.current()
	lit, ok := tok.Value.(value.Value)
	if tok.Type != token.LITERAL || !ok || !value.IsUnsignedInteger(lit) {
		abort(ErrInvalidTypeParam, tok.Pos, "expected an unsigned integer type argument", nil)
	}
	p.advance()
	return int(lit.Int64())
}

// dataTypeWord extracts the lower-cased word a type name starts with,
// from either an IDENTIFIER-shaped word or one of the type keywords the
// lexer already reserves (e.g. "string", "boolean" fold to KEYWORD only
// if listed in genericKeywords; type names are otherwise ordinary
// identifiers).
func dataTypeWord(tok token.Token) (string, bool) {
	switch tok.Type {
	case token.IDENTIFIER:
		return strings.ToLower(tok.Text), true
	case token.MISSING:
		return "missing", true
	case token.NULL:
		return "null", true
	}
	return "", false
}

func resolveTypeName(name string) (ast.SQLType, bool) {
	if name == "double precision" {
		return ast.TypeDoublePrecision, true
	}
	t, ok := typeNames[name]
	return t, ok
}
