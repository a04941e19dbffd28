package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/asdlc/internal/ir"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
	Units    []string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Units) > 0 {
		fmt.Fprintf(&buf, "  Units: %s\n", strings.Join(e.Units, ", "))
	}

	return buf.String()
}

// assertOutput checks a unit for the presence (or absence) of a substring.
func assertOutput(result *Result, assertion Assertion, want bool) error {
	text, ok := result.Outputs[assertion.Unit]
	if !ok {
		return &AssertionError{
			Type:     assertion.Type,
			Expected: fmt.Sprintf("unit %s", assertion.Unit),
			Actual:   "unit not generated",
			Units:    result.Units(),
		}
	}

	if strings.Contains(text, assertion.Text) == want {
		return nil
	}

	actual := "not found"
	if !want {
		actual = "found"
	}
	return &AssertionError{
		Type:     assertion.Type,
		Expected: fmt.Sprintf("%s %s %q", assertion.Unit, verb(want), assertion.Text),
		Actual:   actual,
	}
}

func verb(want bool) string {
	if want {
		return "contains"
	}
	return "excludes"
}

// variantTag finds the tag of sum.variant in the resolved module.
func variantTag(mod *ir.Module, sum, variant string) (int, error) {
	d, ok := mod.Decl(sum)
	if !ok {
		return 0, fmt.Errorf("no declaration %s", sum)
	}

	var variants []*ir.Variant
	switch d := d.(type) {
	case *ir.SimpleSum:
		variants = d.Variants
	case *ir.CompoundSum:
		variants = d.Variants
	default:
		return 0, fmt.Errorf("%s is a %s, not a sum", sum, d.Kind())
	}

	for _, v := range variants {
		if v.Name == variant {
			return v.Tag, nil
		}
	}
	return 0, fmt.Errorf("sum %s has no variant %s", sum, variant)
}

// assertTagEquals checks the tag of one variant.
func assertTagEquals(mod *ir.Module, assertion Assertion) error {
	tag, err := variantTag(mod, assertion.Sum, assertion.Variant)
	if err != nil {
		return &AssertionError{
			Type:     AssertTagEquals,
			Expected: fmt.Sprintf("%s.%s = %d", assertion.Sum, assertion.Variant, *assertion.Tag),
			Actual:   err.Error(),
		}
	}
	if tag != *assertion.Tag {
		return &AssertionError{
			Type:     AssertTagEquals,
			Expected: fmt.Sprintf("%s.%s = %d", assertion.Sum, assertion.Variant, *assertion.Tag),
			Actual:   fmt.Sprintf("%d", tag),
		}
	}
	return nil
}

// assertTagsAgree checks that a constructor carries one tag across sums.
func assertTagsAgree(mod *ir.Module, assertion Assertion) error {
	first := -1
	for _, sum := range assertion.Sums {
		tag, err := variantTag(mod, sum, assertion.Variant)
		if err != nil {
			return &AssertionError{
				Type:     AssertTagsAgree,
				Expected: fmt.Sprintf("%s in %v", assertion.Variant, assertion.Sums),
				Actual:   err.Error(),
			}
		}
		if first == -1 {
			first = tag
			continue
		}
		if tag != first {
			return &AssertionError{
				Type:     AssertTagsAgree,
				Expected: fmt.Sprintf("%s.%s = %d", sum, assertion.Variant, first),
				Actual:   fmt.Sprintf("%d", tag),
			}
		}
	}
	return nil
}

// assertDeclKind checks how a declaration was classified.
func assertDeclKind(mod *ir.Module, assertion Assertion) error {
	d, ok := mod.Decl(assertion.Decl)
	if !ok {
		return &AssertionError{
			Type:     AssertDeclKind,
			Expected: fmt.Sprintf("%s is a %s", assertion.Decl, assertion.Kind),
			Actual:   "no such declaration",
		}
	}
	if got := d.Kind().String(); got != assertion.Kind {
		return &AssertionError{
			Type:     AssertDeclKind,
			Expected: fmt.Sprintf("%s is a %s", assertion.Decl, assertion.Kind),
			Actual:   got,
		}
	}
	return nil
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertOutputContains:
			err = assertOutput(result, assertion, true)
		case AssertOutputExcludes:
			err = assertOutput(result, assertion, false)
		case AssertTagEquals, AssertTagsAgree, AssertDeclKind:
			if result.Module == nil {
				err = fmt.Errorf("assertion[%d]: %s requires a resolved module", i, assertion.Type)
				break
			}
			switch assertion.Type {
			case AssertTagEquals:
				err = assertTagEquals(result.Module, assertion)
			case AssertTagsAgree:
				err = assertTagsAgree(result.Module, assertion)
			default:
				err = assertDeclKind(result.Module, assertion)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
