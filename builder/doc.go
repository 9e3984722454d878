// Package builder turns parsed grammar files into model entities.
//
// Building happens in two stages over one ast.GrammarFile. Meta applies
// the prequel declarations: delegate imports and a tokenVocab option load
// sibling grammar files through a caller-supplied hook, and declared token
// names become implicit lexer rules with empty content. BuildLexerRules
// and BuildParserRules then convert rule declarations into normalized
// content trees and register them in the model.
//
// Comment runs attached to rule declarations pass through the directive
// extractor: lines of the form `//@ command args` adjust rule presentation
// metadata, everything else becomes the rule's documentation text.
package builder
