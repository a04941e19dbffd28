// Package compiler resolves a parsed schema into the immutable IR.
//
// Resolution is a pure function of the syntax tree and the table of
// application types. It either returns a complete *ir.Module or the first
// *ast.SyntaxError it finds; there is no partial result.
//
// Passes, in order:
//  1. Symbol table: builtin primitives, application types, use imports and
//     local declarations. Every name must be unique across all four.
//  2. Declaration shells, classified as product, simple sum or compound
//     sum, so fields can refer to any declaration regardless of order.
//  3. Product fields, then sum variants with tag assignment. Shared
//     variants draw their tags from one SharedTags allocator.
//  4. Type legality: no Optional over integers or simple sums at any
//     depth, Dict keys must be strings or integers.
package compiler
