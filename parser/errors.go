package parser

import (
	"fmt"

	"github.com/partiql-go/partiql/token"
)

// ErrorCode is a closed tag identifying the kind of parse failure.
type ErrorCode string

const (
	// Lexical
	ErrLexInvalidChar       ErrorCode = "LEX_INVALID_CHAR"
	ErrLexInvalidLiteral    ErrorCode = "LEX_INVALID_LITERAL"
	ErrLexUnterminatedString ErrorCode = "LEX_UNTERMINATED_STRING"

	// Parse structural
	ErrExpectedTokenType    ErrorCode = "PARSE_EXPECTED_TOKEN_TYPE"
	ErrExpected2TokenTypes  ErrorCode = "PARSE_EXPECTED_2_TOKEN_TYPES"
	ErrExpectedExpression   ErrorCode = "PARSE_EXPECTED_EXPRESSION"
	ErrExpectedKeyword      ErrorCode = "PARSE_EXPECTED_KEYWORD"
	ErrUnexpectedToken      ErrorCode = "PARSE_UNEXPECTED_TOKEN"
	ErrUnexpectedTerm       ErrorCode = "PARSE_UNEXPECTED_TERM"
	ErrUnknownOperator      ErrorCode = "PARSE_UNKNOWN_OPERATOR"
	ErrMalformedParseTree   ErrorCode = "PARSE_MALFORMED_PARSE_TREE"

	// Parse semantic
	ErrExpectedIdentForAlias     ErrorCode = "PARSE_EXPECTED_IDENT_FOR_ALIAS"
	ErrExpectedIdentForAt        ErrorCode = "PARSE_EXPECTED_IDENT_FOR_AT"
	ErrExpectedIdentForGroupName ErrorCode = "PARSE_EXPECTED_IDENT_FOR_GROUP_NAME"
	ErrEmptySelect               ErrorCode = "PARSE_EMPTY_SELECT"
	ErrSelectMissingFrom         ErrorCode = "PARSE_SELECT_MISSING_FROM"
	ErrAsteriskNotAlone          ErrorCode = "PARSE_ASTERISK_IS_NOT_ALONE_IN_SELECT_LIST"
	ErrInvalidPathComponent      ErrorCode = "PARSE_INVALID_PATH_COMPONENT"
	ErrInvalidWildcardContext    ErrorCode = "PARSE_INVALID_CONTEXT_FOR_WILDCARD_IN_SELECT_LIST"
	ErrCannotMixSqbAndWildcard   ErrorCode = "PARSE_CANNOT_MIX_SQB_AND_WILDCARD_IN_SELECT_LIST"
	ErrUnsupportedLiteralsGroupBy ErrorCode = "PARSE_UNSUPPORTED_LITERALS_GROUPBY"
	ErrNonUnaryAggregateCall     ErrorCode = "PARSE_NON_UNARY_AGREGATE_FUNCTION_CALL"
	ErrUnsupportedCallWithStar   ErrorCode = "PARSE_UNSUPPORTED_CALL_WITH_STAR"
	ErrCastArity                 ErrorCode = "PARSE_CAST_ARITY"
	ErrInvalidTypeParam          ErrorCode = "PARSE_INVALID_TYPE_PARAM"
	ErrExpectedTypeName          ErrorCode = "PARSE_EXPECTED_TYPE_NAME"
	ErrMissingIdentAfterAt       ErrorCode = "PARSE_MISSING_IDENT_AFTER_AT"
	ErrExpectedLeftParen         ErrorCode = "PARSE_EXPECTED_LEFT_PAREN"
	ErrExpectedRightParen        ErrorCode = "PARSE_EXPECTED_RIGHT_PAREN"
	ErrExpectedArgumentDelimiter ErrorCode = "PARSE_EXPECTED_ARGUMENT_DELIMITER"
	ErrExpectedWhenClause        ErrorCode = "PARSE_EXPECTED_WHEN_CLAUSE"
	ErrExpectedDatePart          ErrorCode = "PARSE_EXPECTED_DATE_PART"

	// Semantic, reported downstream; defined here for interface completeness.
	ErrSemanticHavingWithoutGroupBy ErrorCode = "SEMANTIC_HAVING_USED_WITHOUT_GROUP_BY"
	ErrEvaluatorBindingDoesNotExist ErrorCode = "EVALUATOR_BINDING_DOES_NOT_EXIST"
)

// PropertyKey names an entry in an Error's property bag.
type PropertyKey string

const (
	PropLineNumber       PropertyKey = "LINE_NUMBER"
	PropColumnNumber     PropertyKey = "COLUMN_NUMBER"
	PropExpectedTokenType PropertyKey = "EXPECTED_TOKEN_TYPE"
	PropCastTo           PropertyKey = "CAST_TO"
	PropExpectedArityMin PropertyKey = "EXPECTED_ARITY_MIN"
	PropExpectedArityMax PropertyKey = "EXPECTED_ARITY_MAX"
	PropBindingName      PropertyKey = "BINDING_NAME"
	PropTokenText        PropertyKey = "TOKEN_TEXT"
)

// Error is the structured error every parse failure is reported as.
type Error struct {
	Code       ErrorCode
	Message    string
	Properties map[PropertyKey]any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (line %v, column %v)", e.Code, e.Message,
		e.Properties[PropLineNumber], e.Properties[PropColumnNumber])
}

func newError(code ErrorCode, pos token.Position, message string, extra map[PropertyKey]any) *Error {
	props := map[PropertyKey]any{
		PropLineNumber:   pos.Line,
		PropColumnNumber: pos.Column,
	}
	for k, v := range extra {
		props[k] = v
	}
	return &Error{Code: code, Message: message, Properties: props}
}

// abort is how the parser fast-fails: it panics with a *Error, which is
// recovered once at each public entry point (ParseExpression,
// ParseStatement, ParseToSexp). This keeps the grammar production
// functions free of threading (node, error) pairs through every call,
// while preserving a first-error-wins, no-partial-AST contract.
func abort(code ErrorCode, pos token.Position, message string, extra map[PropertyKey]any) {
	panic(newError(code, pos, message, extra))
}

// recoverParseError turns a panicked *Error into a returned error. Any
// other panic value is re-raised: only parser-originated aborts are
// part of the documented contract.
func recoverParseError(errp *error) {
	if r := recover(); r != nil {
		if pe, ok := r.(*Error); ok {
			*errp = pe
			return
		}
		panic(r)
	}
}
