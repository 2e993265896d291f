package ast

import "github.com/partiql-go/partiql/token"

// MetaTag names a known meta annotation kind. Metas are a keyed bag of
// small payloads attached to every AST node, not part of the node's
// semantic shape.
type MetaTag string

const (
	// MetaSourceLocation holds a token.Position: every node carries one.
	// A synthetic wrapper node (the NOT built for IS NOT, NOT LIKE, ...)
	// carries the position of the surface token it was built from.
	MetaSourceLocation MetaTag = "source_location"

	// MetaLegacyLogicalNot marks an NAry(NOT, ...) node that was
	// synthesized from a negated surface operator (IS NOT, NOT LIKE,
	// NOT BETWEEN, NOT IN) rather than written as an explicit NOT.
	MetaLegacyLogicalNot MetaTag = "legacy_logical_not"

	// MetaIsImplicitJoin marks a FromSourceJoin synthesized from a
	// comma-separated from-item rather than an explicit JOIN keyword.
	MetaIsImplicitJoin MetaTag = "is_implicit_join"

	// MetaOrderBy carries a parsed ORDER BY clause on a Select. It is
	// not a dedicated Select field since ordering is a presentation
	// concern layered on top of the query shape, not part of it.
	MetaOrderBy MetaTag = "order_by"
)

// Metas is the keyed annotation bag attached to every AST node.
type Metas map[MetaTag]any

// NewMetas builds the base Metas bag for a node anchored at pos.
func NewMetas(pos token.Position) Metas {
	return Metas{MetaSourceLocation: pos}
}

// SourceLocation extracts the node's source position, if any.
func (m Metas) SourceLocation() (token.Position, bool) {
	pos, ok := m[MetaSourceLocation].(token.Position)
	return pos, ok
}
