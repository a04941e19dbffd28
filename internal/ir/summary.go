package ir

import (
	"fmt"
	"strings"
)

// Summary counts the declarations of a resolved module.
type Summary struct {
	Module         string     `json:"module"`
	Products       int        `json:"products"`
	SimpleSums     int        `json:"simple_sums"`
	CompoundSums   int        `json:"compound_sums"`
	Variants       int        `json:"variants"`
	SharedVariants int        `json:"shared_variants"`
	Uses           int        `json:"uses"`
	Recursive      [][]string `json:"recursive,omitempty"` // mutually referring declarations
	Digest         string     `json:"digest"`
}

// Summarize reports the shape of m.
func Summarize(m *Module) (Summary, error) {
	s := Summary{Module: m.Name, Uses: len(m.Uses)}
	for _, d := range m.Decls {
		switch d := d.(type) {
		case *Product:
			s.Products++
		case *SimpleSum:
			s.SimpleSums++
			s.Variants += len(d.Variants)
		case *CompoundSum:
			s.CompoundSums++
			s.Variants += len(d.Variants)
			for _, v := range d.Variants {
				if v.IsShared() {
					s.SharedVariants++
				}
			}
		}
	}
	s.Recursive = RecursiveGroups(m)
	digest, err := Digest(m)
	if err != nil {
		return Summary{}, err
	}
	s.Digest = digest
	return s, nil
}

func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "module %s\n", s.Module)
	fmt.Fprintf(&b, "  products:        %d\n", s.Products)
	fmt.Fprintf(&b, "  simple sums:     %d\n", s.SimpleSums)
	fmt.Fprintf(&b, "  compound sums:   %d\n", s.CompoundSums)
	fmt.Fprintf(&b, "  variants:        %d (%d shared)\n", s.Variants, s.SharedVariants)
	fmt.Fprintf(&b, "  uses:            %d\n", s.Uses)
	fmt.Fprintf(&b, "  recursive:       %s\n", formatGroups(s.Recursive))
	fmt.Fprintf(&b, "  digest:          %s", s.Digest)
	return b.String()
}

func formatGroups(groups [][]string) string {
	if len(groups) == 0 {
		return "none"
	}
	parts := make([]string, len(groups))
	for i, g := range groups {
		parts[i] = strings.Join(g, ", ")
	}
	return strings.Join(parts, "; ")
}
