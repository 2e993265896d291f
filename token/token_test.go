package token_test

import (
	"testing"

	"github.com/partiql-go/partiql/token"

	"github.com/stretchr/testify/require"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		name string
		typ  token.Type
		want string
	}{
		{"eof", token.EOF, "EOF"},
		{"left paren", token.LEFT_PAREN, "("},
		{"dot", token.DOT, "."},
		{"double angle open", token.LEFT_DOUBLE_ANGLE_BRACKET, "<<"},
		{"unknown", token.Type(999), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := require.New(t)
			c.Equal(tt.want, tt.typ.String())
		})
	}
}
