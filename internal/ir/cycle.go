package ir

import (
	"cmp"
	"slices"
)

// declGraph maps a declaration to the declarations its fields refer to,
// in field order. Every declaration of the module is a node.
type declGraph struct {
	order []string
	edges map[string][]string
}

func buildDeclGraph(m *Module) declGraph {
	g := declGraph{edges: make(map[string][]string, len(m.Decls))}

	refs := func(from string, fields []*Field) {
		for _, f := range fields {
			Walk(f.Type, func(t Type) {
				if r, ok := t.(*DeclRef); ok {
					g.edges[from] = append(g.edges[from], r.Decl.DeclName())
				}
			})
		}
	}

	for _, d := range m.Decls {
		name := d.DeclName()
		g.order = append(g.order, name)
		switch d := d.(type) {
		case *Product:
			refs(name, d.Fields)
		case *CompoundSum:
			for _, v := range d.Variants {
				if v.IsShared() {
					g.edges[name] = append(g.edges[name], v.Shared.Name)
					continue
				}
				refs(name, v.Fields)
			}
		}
	}
	return g
}

func (g declGraph) hasSelfLoop(node string) bool {
	for _, n := range g.edges[node] {
		if n == node {
			return true
		}
	}
	return false
}

// RecursiveGroups returns the sets of declarations that refer to each
// other through their fields, directly or transitively. A declaration
// that refers to itself forms a group of one. Groups and their members
// follow declaration order.
func RecursiveGroups(m *Module) [][]string {
	g := buildDeclGraph(m)

	position := make(map[string]int, len(g.order))
	for i, name := range g.order {
		position[name] = i
	}

	var groups [][]string
	for _, scc := range tarjanSCC(g) {
		if len(scc) == 1 && !g.hasSelfLoop(scc[0]) {
			continue
		}
		slices.SortFunc(scc, func(a, b string) int {
			return cmp.Compare(position[a], position[b])
		})
		groups = append(groups, scc)
	}
	slices.SortFunc(groups, func(a, b []string) int {
		return cmp.Compare(position[a[0]], position[b[0]])
	})
	return groups
}

// tarjanSCC finds the strongly connected components of g, visiting
// nodes in declaration order.
func tarjanSCC(g declGraph) [][]string {
	var (
		index   = 0
		stack   []string
		indices = make(map[string]int)
		lowlink = make(map[string]int)
		onStack = make(map[string]bool)
		sccs    [][]string
	)

	var strongConnect func(string)
	strongConnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g.edges[v] {
			if _, visited := indices[w]; !visited {
				strongConnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}

		// v is the root of a component: pop it off the stack.
		if lowlink[v] == indices[v] {
			var scc []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	for _, node := range g.order {
		if _, visited := indices[node]; !visited {
			strongConnect(node)
		}
	}
	return sccs
}
