package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
// A scenario compiles one schema with one action and asserts on the
// generated units, or on the diagnostic the schema is rejected with.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Schema is inline schema source. Exactly one of Schema and
	// SchemaFile must be set.
	Schema string `yaml:"schema,omitempty"`

	// SchemaFile is a path to a schema file, relative to the scenario
	// file location.
	SchemaFile string `yaml:"schema_file,omitempty"`

	// FileName is the schema file name the compiler sees. It selects the
	// generated namespace and the filename-keyed application types.
	// Defaults to the base of SchemaFile, or Name + ".asdl".
	FileName string `yaml:"file_name,omitempty"`

	// Action is one of static-target, dynamic-target, enum-export, check.
	Action string `yaml:"action"`

	// Options overrides the code generation defaults (all on).
	Options *Options `yaml:"options,omitempty"`

	// Companion is inline abbreviation source for dynamic-target.
	Companion string `yaml:"companion,omitempty"`

	// Expect names the diagnostic the schema must be rejected with.
	// If nil, the schema must compile.
	Expect *ExpectClause `yaml:"expect,omitempty"`

	// Assertions validate the generated units and the resolved module.
	// Supported types: output_contains, output_excludes, tag_equals,
	// tags_agree, decl_kind
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Options mirrors the code generation flags. Unset fields keep the
// default of true.
type Options struct {
	PrettyPrint *bool `yaml:"pretty_print,omitempty"`
	InitZero    *bool `yaml:"init_zero,omitempty"`
	InitN       *bool `yaml:"init_n,omitempty"`
}

// ExpectClause specifies an expected schema error.
type ExpectClause struct {
	// Error is the expected diagnostic code (e.g., "E102", "E010").
	Error string `yaml:"error"`

	// Line and Column, when non-zero, must match the error position.
	Line   int `yaml:"line,omitempty"`
	Column int `yaml:"column,omitempty"`
}

// Assertion validates generated output or the resolved module.
type Assertion struct {
	// Type specifies the assertion type:
	// - "output_contains": Unit text contains Text
	// - "output_excludes": Unit text does not contain Text
	// - "tag_equals": Sum.Variant has tag Tag
	// - "tags_agree": Variant has the same tag in every sum of Sums
	// - "decl_kind": Decl is classified as Kind
	Type string `yaml:"type"`

	// Unit is the generated unit name (used by output_contains, output_excludes).
	Unit string `yaml:"unit,omitempty"`

	// Text is the expected substring (used by output_contains, output_excludes).
	Text string `yaml:"text,omitempty"`

	// Sum is the sum type name (used by tag_equals).
	Sum string `yaml:"sum,omitempty"`

	// Variant is the constructor name (used by tag_equals, tags_agree).
	Variant string `yaml:"variant,omitempty"`

	// Tag is the expected tag (used by tag_equals).
	Tag *int `yaml:"tag,omitempty"`

	// Sums lists the sums sharing Variant (used by tags_agree).
	Sums []string `yaml:"sums,omitempty"`

	// Decl is the declaration name (used by decl_kind).
	Decl string `yaml:"decl,omitempty"`

	// Kind is product, simple_sum or compound_sum (used by decl_kind).
	Kind string `yaml:"kind,omitempty"`
}

// Assertion type constants.
const (
	AssertOutputContains = "output_contains"
	AssertOutputExcludes = "output_excludes"
	AssertTagEquals      = "tag_equals"
	AssertTagsAgree      = "tags_agree"
	AssertDeclKind       = "decl_kind"
)

// Action names.
const (
	ActionStaticTarget  = "static-target"
	ActionDynamicTarget = "dynamic-target"
	ActionEnumExport    = "enum-export"
	ActionCheck         = "check"
)

// LoadScenario reads and parses a scenario YAML file. A relative
// schema_file is resolved against the scenario's directory.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving schema_file relative to the provided base path.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict decoding catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.SchemaFile != "" && !filepath.IsAbs(scenario.SchemaFile) && basePath != "" {
		scenario.SchemaFile = filepath.Join(basePath, scenario.SchemaFile)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// SchemaFileName is the file name the compiler sees for this scenario.
func (s *Scenario) SchemaFileName() string {
	switch {
	case s.FileName != "":
		return s.FileName
	case s.SchemaFile != "":
		return filepath.Base(s.SchemaFile)
	default:
		return s.Name + ".asdl"
	}
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if (s.Schema == "") == (s.SchemaFile == "") {
		return fmt.Errorf("exactly one of schema and schema_file is required")
	}

	if s.SchemaFile != "" {
		if _, err := os.Stat(s.SchemaFile); os.IsNotExist(err) {
			return fmt.Errorf("schema file not found: %s", s.SchemaFile)
		}
	}

	switch s.Action {
	case ActionStaticTarget, ActionDynamicTarget, ActionEnumExport, ActionCheck:
	case "":
		return fmt.Errorf("action is required")
	default:
		return fmt.Errorf("unknown action %q", s.Action)
	}

	if s.Companion != "" && s.Action != ActionDynamicTarget {
		return fmt.Errorf("companion is only valid with %s", ActionDynamicTarget)
	}

	if s.Expect != nil {
		if s.Expect.Error == "" {
			return fmt.Errorf("expect: error is required")
		}
		if len(s.Assertions) > 0 {
			return fmt.Errorf("assertions cannot be combined with an expected error")
		}
		return nil
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required unless an error is expected")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertOutputContains, AssertOutputExcludes:
		if a.Unit == "" {
			return fmt.Errorf("assertions[%d]: unit is required for %s", index, a.Type)
		}
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for %s", index, a.Type)
		}
	case AssertTagEquals:
		if a.Sum == "" || a.Variant == "" {
			return fmt.Errorf("assertions[%d]: sum and variant are required for tag_equals", index)
		}
		if a.Tag == nil {
			return fmt.Errorf("assertions[%d]: tag is required for tag_equals", index)
		}
	case AssertTagsAgree:
		if a.Variant == "" {
			return fmt.Errorf("assertions[%d]: variant is required for tags_agree", index)
		}
		if len(a.Sums) < 2 {
			return fmt.Errorf("assertions[%d]: tags_agree needs at least two sums", index)
		}
	case AssertDeclKind:
		if a.Decl == "" {
			return fmt.Errorf("assertions[%d]: decl is required for decl_kind", index)
		}
		switch a.Kind {
		case "product", "simple_sum", "compound_sum":
		default:
			return fmt.Errorf("assertions[%d]: kind must be product, simple_sum or compound_sum, got %q", index, a.Kind)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}

// enabled returns the option value, defaulting to true.
func enabled(b *bool) bool {
	return b == nil || *b
}
