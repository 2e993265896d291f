package parser

import "github.com/partiql-go/partiql/token"

// Precedence levels, lowest to highest.
const (
	precLowest = iota
	precOr
	precAnd
	precNot // prefix NOT's own operand binds at this level
	precEquality
	precRelational
	precPredicate // IN, LIKE, BETWEEN (and their negated forms)
	precConcat
	precAdditive
	precMultiplicative
	precUnary
	precPath
)

// infixPrecedence returns the binding power of the current token when
// used as an infix/postfix operator, or precLowest if it cannot be one.
func (p *Parser) infixPrecedence() int {
	tok := p.current()
	switch tok.Type {
	case token.DOT, token.LEFT_BRACKET:
		return precPath
	case token.STAR:
		return precMultiplicative
	case token.OPERATOR:
		switch tok.Text {
		case "*", "/", "%":
			return precMultiplicative
		case "+", "-":
			return precAdditive
		case "||":
			return precConcat
		case "=", "<>", "!=":
			return precEquality
		case "<", "<=", ">", ">=":
			return precRelational
		}
		return precLowest
	case token.KEYWORD:
		switch tok.Text {
		case "or":
			return precOr
		case "and":
			return precAnd
		case "is", "is_not":
			return precEquality
		case "in", "not_in", "like", "not_like", "between", "not_between":
			return precPredicate
		}
		return precLowest
	default:
		return precLowest
	}
}
