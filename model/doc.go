// Package model defines the normalized semantic model of a grammar file:
// rule content trees, lexer and parser rules, and the Model that owns them.
//
// Content trees are built through the Seq, Alt, Opt, Plus, and Star
// constructors, which maintain the structural invariants: Sequence and
// Alternative nodes are always flattened, never hold fewer than two
// children, Maybe never wraps Maybe, and no quantifier wraps Empty.
// Construct nodes through these functions, not through struct literals,
// unless a test needs a deliberately non-canonical tree.
//
// A Model is populated once, synchronously, by its loader and is read-only
// afterwards. References between rules are resolved lazily by name lookup,
// so forward references and references into imported models need no second
// linking pass.
package model
