// Package parser implements the PartiQL Pratt parser: it consumes the
// token sequence produced by the lexer and produces an ast.Expr, purely
// and synchronously, with no shared state between calls.
package parser

import (
	"github.com/partiql-go/partiql/ast"
	"github.com/partiql-go/partiql/internal/sexp"
	"github.com/partiql-go/partiql/lexer"
	"github.com/partiql-go/partiql/token"
)

// StandardAggregateFunctions is the default set of names recognized as
// aggregate calls (CallAgg) rather than ordinary function calls (NAry
// with Op == OpCall). Callers needing a different or extended set of
// aggregate names can override it per parser via WithAggregateFunctions.
var StandardAggregateFunctions = map[string]bool{
	"count": true,
	"sum":   true,
	"min":   true,
	"max":   true,
	"avg":   true,
}

// ExtendedAggregateFunctions is StandardAggregateFunctions plus common
// collection-building aggregates found in PartiQL implementations that
// extend the core grammar. A Parser uses it only when it is passed to
// WithAggregateFunctions; the default is StandardAggregateFunctions.
var ExtendedAggregateFunctions = mergedAggregateSets(StandardAggregateFunctions, map[string]bool{
	"array_agg":  true,
	"any":        true,
	"every":      true,
	"stddev":     true,
	"stddev_pop": true,
})

func mergedAggregateSets(sets ...map[string]bool) map[string]bool {
	merged := make(map[string]bool)
	for _, set := range sets {
		for k, v := range set {
			merged[k] = v
		}
	}
	return merged
}

// Option configures a Parser at construction time.
type Option func(*Parser)

// WithAggregateFunctions overrides the set of names treated as aggregate
// calls.
func WithAggregateFunctions(names map[string]bool) Option {
	return func(p *Parser) { p.aggregateFunctions = names }
}

// Parser holds the token cursor and injected configuration for a single
// parse. A Parser is not reused across calls to ParseExpression et al.;
// New constructs a fresh one each time.
type Parser struct {
	tokens             []token.Token
	pos                int
	aggregateFunctions map[string]bool
}

func New(tokens []token.Token, opts ...Option) *Parser {
	p := &Parser{
		tokens:             tokens,
		aggregateFunctions: StandardAggregateFunctions,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) current() token.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return p.eofToken()
}

func (p *Parser) peek() token.Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return p.eofToken()
}

func (p *Parser) eofToken() token.Token {
	pos := token.Position{Line: 1, Column: 1}
	if len(p.tokens) > 0 {
		pos = p.tokens[len(p.tokens)-1].Pos
	}
	return token.Token{Type: token.EOF, Pos: pos}
}

func (p *Parser) atEOF() bool {
	return p.pos >= len(p.tokens)
}

func (p *Parser) advance() token.Token {
	tok := p.current()
	p.pos++
	return tok
}

func (p *Parser) isType(t token.Type) bool {
	return p.current().Type == t
}

// isKeyword reports whether the current token is a KEYWORD with the
// given canonical keyword_text.
func (p *Parser) isKeyword(text string) bool {
	tok := p.current()
	return tok.Type == token.KEYWORD && tok.Text == text
}

func (p *Parser) expectType(t token.Type) token.Token {
	if !p.isType(t) {
		abort(ErrExpectedTokenType, p.current().Pos,
			"expected "+t.String()+", got "+p.current().Type.String(),
			map[PropertyKey]any{PropExpectedTokenType: t.String()})
	}
	return p.advance()
}

func (p *Parser) expectKeyword(text string) token.Token {
	if !p.isKeyword(text) {
		abort(ErrExpectedKeyword, p.current().Pos,
			"expected keyword "+text, map[PropertyKey]any{PropTokenText: text})
	}
	return p.advance()
}

// ---------------------------------------------------------------------
// Public entry points

// ParseExpression parses a single PartiQL expression (which may itself
// be a full SFW query) from text, returning the root ast.Expr. A single
// terminating ';' followed by nothing is tolerated; any other trailing
// tokens are PARSE_UNEXPECTED_TOKEN.
func ParseExpression(text string, opts ...Option) (expr ast.Expr, err error) {
	defer recoverParseError(&err)

	tokens, lexErr := lexer.Lex(text)
	if lexErr != nil {
		return nil, translateLexError(lexErr)
	}

	p := New(tokens, opts...)
	if p.atEOF() {
		abort(ErrExpectedExpression, token.Position{Line: 1, Column: 1}, "empty input", nil)
	}
	node := p.parseExpression(precLowest)

	if p.isType(token.SEMICOLON) {
		p.advance()
	}
	if !p.atEOF() {
		abort(ErrUnexpectedToken, p.current().Pos,
			"unexpected trailing token "+p.current().Type.String(), nil)
	}
	return node, nil
}

// ParseStatement is an alias for ParseExpression: in this grammar a
// top-level statement is itself an expression (typically a *ast.Select).
func ParseStatement(text string, opts ...Option) (ast.Expr, error) {
	return ParseExpression(text, opts...)
}

// ParseToSexp parses text and serializes the resulting AST to a portable
// s-expression string via the internal/sexp collaborator.
func ParseToSexp(text string, opts ...Option) (string, error) {
	expr, err := ParseExpression(text, opts...)
	if err != nil {
		return "", err
	}
	return sexp.Render(expr), nil
}

// lexErrorCodes maps a lexer.ErrorCode to its parser-level ErrorCode
// counterpart, preserving the distinction between an illegal character,
// an unterminated quoted form, and a malformed literal body.
var lexErrorCodes = map[lexer.ErrorCode]ErrorCode{
	lexer.ErrInvalidChar:    ErrLexInvalidChar,
	lexer.ErrInvalidLiteral: ErrLexInvalidLiteral,
	lexer.ErrUnterminated:   ErrLexUnterminatedString,
}

func translateLexError(err error) error {
	if le, ok := err.(*lexer.Error); ok {
		code, ok := lexErrorCodes[le.Code]
		if !ok {
			code = ErrLexInvalidChar
		}
		return newError(code, le.Pos, le.Message, nil)
	}
	return err
}
