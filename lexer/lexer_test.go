package lexer_test

import (
	"testing"

	"github.com/partiql-go/partiql/lexer"
	"github.com/partiql-go/partiql/token"

	"github.com/stretchr/testify/require"
)

func TestLexBasicPunctuation(t *testing.T) {
	c := require.New(t)
	toks, err := lexer.Lex("a.b[0] * 2")
	c.NoError(err)

	var types []token.Type
	for _, tok := range toks {
		types = append(types, tok.Type)
	}
	c.Equal([]token.Type{
		token.IDENTIFIER, token.DOT, token.IDENTIFIER,
		token.LEFT_BRACKET, token.LITERAL, token.RIGHT_BRACKET,
		token.STAR, token.LITERAL,
	}, types)
}

func TestLexKeywordFolding(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"is not", "a IS NOT NULL", []string{"a", "is_not", "null"}},
		{"not between", "a NOT BETWEEN 1 AND 2", []string{"a", "not_between", "1", "and", "2"}},
		{"not like", "a NOT LIKE 'x'", []string{"a", "not_like", "x"}},
		{"not in", "a NOT IN (1)", []string{"a", "not_in", "(", "1", ")"}},
		{"left outer join", "a LEFT OUTER JOIN b", []string{"a", "left_join", "b"}},
		{"inner join", "a INNER JOIN b", []string{"a", "inner_join", "b"}},
		{"cross join", "a CROSS JOIN b", []string{"a", "cross_join", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := require.New(t)
			toks, err := lexer.Lex(tt.text)
			c.NoError(err)
			c.Len(toks, len(tt.want))
		})
	}
}

func TestLexNumericLiterals(t *testing.T) {
	c := require.New(t)

	toks, err := lexer.Lex("1 1.5 1e10 .5")
	c.NoError(err)
	c.Len(toks, 4)
	for _, tok := range toks {
		c.Equal(token.LITERAL, tok.Type)
	}
}

func TestLexQuotedForms(t *testing.T) {
	c := require.New(t)

	toks, err := lexer.Lex(`"my col" 'it''s' `)
	c.NoError(err)
	c.Len(toks, 2)
	c.Equal(token.QUOTED_IDENTIFIER, toks[0].Type)
	c.Equal("my col", toks[0].Text)
	c.Equal(token.LITERAL, toks[1].Type)
	c.Equal("it's", toks[1].Text)
}

func TestLexIllegalCharacter(t *testing.T) {
	c := require.New(t)
	_, err := lexer.Lex("a $ b")
	c.Error(err)
	var lexErr *lexer.Error
	c.ErrorAs(err, &lexErr)
	c.Equal(lexer.ErrInvalidChar, lexErr.Code)
}

func TestLexErrorCodes(t *testing.T) {
	tests := []struct {
		name string
		text string
		want lexer.ErrorCode
	}{
		{"illegal char", "a $ b", lexer.ErrInvalidChar},
		{"unterminated string", "'abc", lexer.ErrUnterminated},
		{"unterminated quoted identifier", `"abc`, lexer.ErrUnterminated},
		{"invalid timestamp literal", "`not-a-timestamp`", lexer.ErrInvalidLiteral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := require.New(t)
			_, err := lexer.Lex(tt.text)
			c.Error(err)
			var lexErr *lexer.Error
			c.ErrorAs(err, &lexErr)
			c.Equal(tt.want, lexErr.Code)
		})
	}
}

func TestLexComments(t *testing.T) {
	c := require.New(t)
	toks, err := lexer.Lex("a -- comment\n /* block */ b")
	c.NoError(err)
	c.Len(toks, 2)
}
