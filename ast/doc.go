// Package ast defines types for modeling the parse tree of an ANTLR-style
// grammar file.
//
// The taxonomy is closed: every node is one of the concrete types in this
// package, and consumers dispatch with type switches rather than visitors
// over an open interface. All nodes implement Node; rule bodies are built
// from Expr nodes.
//
// Comments are not nodes in the tree. The lexer accumulates comment tokens
// and the parser attaches the run of comments immediately preceding a rule
// declaration to that declaration as its Docs trivia. Comments that trail
// another construct on the same line are not part of the next rule's docs.
//
// Atom nodes carry the raw source text of their token, quotes and brackets
// included: a LiteralExpr for 'foo' has Text "'foo'". Downstream consumers
// index literal rules by exactly this raw text.
package ast
