package lexer

import (
	"strings"

	"github.com/partiql-go/partiql/token"
)

// unaryKeywords lists the single-word reserved words that fold to a
// dedicated token type. Recognition is case-insensitive; the canonical
// Token.Text is always lower case.
var unaryKeywords = map[string]token.Type{
	"as": token.AS,
	"at": token.AT,
	"for": token.FOR,

	"null":    token.NULL,
	"missing": token.MISSING,
}

// genericKeywords are single-word reserved words that fold to a plain
// KEYWORD token (as opposed to one of the dedicated tag types above).
var genericKeywords = map[string]bool{
	"true": true, "false": true,
	"select": true, "from": true, "where": true,
	"group": true, "by": true, "having": true, "limit": true,
	"order": true, "asc": true, "desc": true,
	"pivot": true, "unpivot": true, "values": true, "value": true,
	"on": true, "cast": true,
	"case": true, "when": true, "then": true, "else": true, "end": true,
	"and": true, "or": true, "not": true,
	"in": true, "is": true, "like": true, "escape": true, "between": true,
	"distinct": true, "all": true,
	"join": true, "inner": true, "left": true, "right": true, "outer": true,
	"cross": true, "full": true, "partial": true,
	"substring": true, "trim": true, "extract": true,
	"count": true, "sum": true, "min": true, "max": true, "avg": true,
}

func lowerKeywordText(tok token.Token) (string, bool) {
	if tok.Type != token.IDENTIFIER {
		return "", false
	}
	lower := strings.ToLower(tok.Text)
	if _, ok := unaryKeywords[lower]; ok {
		return lower, true
	}
	if genericKeywords[lower] {
		return lower, true
	}
	return "", false
}

// fold collapses raw identifier-shaped tokens into keyword tokens and
// merges recognized multi-word keyword sequences into a single logical
// token carrying the canonical keyword_text. It never changes token
// count for non-keyword tokens.
func fold(raw []token.Token) []token.Token {
	out := make([]token.Token, 0, len(raw))

	textAt := func(i int) (string, bool) {
		if i < 0 || i >= len(raw) {
			return "", false
		}
		return lowerKeywordText(raw[i])
	}

	for i := 0; i < len(raw); {
		word, isKeyword := textAt(i)
		if !isKeyword {
			out = append(out, raw[i])
			i++
			continue
		}

		pos := raw[i].Pos

		// IS [NOT]
		if word == "is" {
			if w, ok := textAt(i + 1); ok && w == "not" {
				out = append(out, token.Token{Type: token.KEYWORD, Text: "is_not", Pos: pos})
				i += 2
				continue
			}
		}

		// NOT BETWEEN | NOT LIKE | NOT IN
		if word == "not" {
			if w, ok := textAt(i + 1); ok {
				switch w {
				case "between":
					out = append(out, token.Token{Type: token.KEYWORD, Text: "not_between", Pos: pos})
					i += 2
					continue
				case "like":
					out = append(out, token.Token{Type: token.KEYWORD, Text: "not_like", Pos: pos})
					i += 2
					continue
				case "in":
					out = append(out, token.Token{Type: token.KEYWORD, Text: "not_in", Pos: pos})
					i += 2
					continue
				}
			}
		}

		// LEFT [OUTER] JOIN, RIGHT [OUTER] JOIN, FULL [OUTER] JOIN,
		// INNER JOIN, CROSS JOIN. CROSS JOIN keeps its own canonical
		// text so the parser can tell it apart from INNER JOIN and
		// synthesize the implicit true condition it takes instead of
		// an ON clause.
		if word == "left" || word == "right" || word == "full" {
			j := i + 1
			if w, ok := textAt(j); ok && w == "outer" {
				j++
			}
			if w, ok := textAt(j); ok && w == "join" {
				canon := map[string]string{"left": "left_join", "right": "right_join", "full": "outer_join"}[word]
				out = append(out, token.Token{Type: token.KEYWORD, Text: canon, Pos: pos})
				i = j + 1
				continue
			}
		}
		if word == "inner" {
			if w, ok := textAt(i + 1); ok && w == "join" {
				out = append(out, token.Token{Type: token.KEYWORD, Text: "inner_join", Pos: pos})
				i += 2
				continue
			}
		}
		if word == "cross" {
			if w, ok := textAt(i + 1); ok && w == "join" {
				out = append(out, token.Token{Type: token.KEYWORD, Text: "cross_join", Pos: pos})
				i += 2
				continue
			}
		}

		// Single-word fold.
		if tt, ok := unaryKeywords[word]; ok {
			out = append(out, token.Token{Type: tt, Text: word, Pos: pos})
			i++
			continue
		}
		out = append(out, token.Token{Type: token.KEYWORD, Text: word, Pos: pos})
		i++
	}
	return out
}
