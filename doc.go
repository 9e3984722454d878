// Package a4doc loads ANTLR-style grammar files into documentation models.
//
// The entry point is the Cache. Loading a grammar parses its source,
// resolves delegate and token-vocabulary imports relative to the file, and
// produces a model.Model holding normalized rule content trees. Results
// are memoized per path, so a grammar imported by several others is parsed
// once and the importers share one model.
//
// Anything wrong with the input degrades instead of failing the load: a
// file with syntax errors yields an empty model, a missing import yields
// an empty placeholder, and directive or import anomalies are reported as
// warnings through the configured reporter.
package a4doc
