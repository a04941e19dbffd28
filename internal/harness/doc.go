// Package harness provides conformance testing for asdlc.
//
// The harness compiles one schema per scenario, runs one compiler action
// over it in-process and checks either the diagnostic the schema is
// rejected with or assertions over the generated units.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: shared_variant
//	description: "Shared variants carry one tag in every sum"
//	schema: |
//	  module shared_variant {
//	    double_quoted = (int left, string* tokens)
//	    expr = Binary(expr left, expr right) | DoubleQuoted %double_quoted
//	    word_part = Literal(string s) | DoubleQuoted %double_quoted
//	  }
//	action: static-target
//	options:
//	  pretty_print: false
//	assertions:
//	  - type: tags_agree
//	    variant: DoubleQuoted
//	    sums: [expr, word_part]
//	  - type: output_contains
//	    unit: h
//	    text: "explicit expr_t(double_quoted* v)"
//
// A rejected schema names its diagnostic instead of assertions:
//
//	expect:
//	  error: E202
//	  line: 2
//
// # Units
//
// static-target produces h, cc (only with pretty printing) and debug;
// dynamic-target produces py; enum-export produces enums; check produces
// summary. Snapshot renders every unit of a result as one text block,
// which RunWithGolden compares against testdata/golden/<name>.golden.
package harness
