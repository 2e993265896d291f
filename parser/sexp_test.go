package parser_test

import (
	"testing"

	"github.com/partiql-go/partiql/parser"

	"github.com/stretchr/testify/require"
)

func TestParseToSexp(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"literal", "1", "(lit 1)"},
		{"variable", "a", "(var a)"},
		{"binary", "1 + 2", "(+ (lit 1) (lit 2))"},
		{"negation wrapper", "a IS NOT NULL", "(not :legacy (is (var a) null))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := require.New(t)
			got, err := parser.ParseToSexp(tt.text)
			c.NoError(err)
			c.Equal(tt.want, got)
		})
	}
}

func TestParseToSexpPropagatesParseErrors(t *testing.T) {
	c := require.New(t)
	_, err := parser.ParseToSexp("1 +")
	c.Error(err)
}
