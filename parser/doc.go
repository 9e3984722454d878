// Package parser converts ANTLR-style grammar source into an ast.GrammarFile.
//
// The lexer is hand-written so that comment tokens stay available as
// trivia: a run of comments immediately preceding a rule declaration is
// attached to that declaration, which is what the documentation extractor
// downstream consumes. Comments trailing another construct on the same
// line are discarded.
//
// The accepted language covers grammar headers (combined, lexer, parser),
// options blocks, delegate imports, tokens and channels blocks, named
// actions, modes, fragment rules, labeled alternatives and elements,
// quantifiers (greedy and non-greedy), negation sets, character ranges and
// classes, actions, semantic predicates, and lexer commands. Argument,
// returns, locals, throws, and exception-handler clauses are consumed and
// discarded.
//
// Syntax errors are reported through a reporter.Handler; the parser stops
// at the first error. Callers that received an error must treat the file
// as unusable and fall back to an empty model.
package parser
