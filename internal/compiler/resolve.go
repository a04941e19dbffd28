package compiler

import (
	"io"
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/roach88/asdlc/internal/ast"
	"github.com/roach88/asdlc/internal/config"
	"github.com/roach88/asdlc/internal/ir"
	"github.com/roach88/asdlc/internal/lexer"
	"github.com/roach88/asdlc/internal/parser"
)

// LoadSchema reads, parses and resolves one schema. Read failures are
// wrapped; schema errors are returned unwrapped so callers can match them
// with errors.As.
func LoadSchema(r io.Reader, known config.AppTypes) (*ir.Module, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read schema")
	}
	mod, err := parser.Parse(string(src))
	if err != nil {
		return nil, err
	}
	return Resolve(mod, known)
}

// Resolve turns a parsed module into IR. known holds the application
// types visible to this schema and may be nil.
func Resolve(mod *ast.Module, known config.AppTypes) (*ir.Module, error) {
	r := &resolver{
		known:    known,
		decls:    make(map[string]ir.Decl),
		imported: make(map[string]*ir.Use),
		shared:   NewSharedTags(),
	}
	return r.resolve(mod)
}

type resolver struct {
	known    config.AppTypes
	decls    map[string]ir.Decl
	imported map[string]*ir.Use
	shared   *SharedTags
}

func (r *resolver) resolve(mod *ast.Module) (*ir.Module, error) {
	out := &ir.Module{Name: mod.Name, Externals: r.known.Sorted()}

	for _, u := range mod.Uses {
		use := &ir.Use{
			ModuleParts: slices.Clone(u.ModuleParts),
			TypeNames:   slices.Clone(u.TypeNames),
		}
		for _, name := range u.TypeNames {
			if err := r.checkFreeName(name, u.Pos, "imported"); err != nil {
				return nil, err
			}
			r.imported[name] = use
		}
		out.Uses = append(out.Uses, use)
	}

	for _, d := range mod.Decls {
		decl, err := r.declare(d)
		if err != nil {
			return nil, err
		}
		out.Decls = append(out.Decls, decl)
	}

	// Products first so shared variants can copy complete field lists.
	for _, d := range mod.Decls {
		p, ok := d.(*ast.Product)
		if !ok {
			continue
		}
		fields, err := r.resolveFields(p.Name, p.Fields)
		if err != nil {
			return nil, err
		}
		r.decls[p.Name].(*ir.Product).Fields = fields
	}

	for _, d := range mod.Decls {
		s, ok := d.(*ast.Sum)
		if !ok {
			continue
		}
		if err := r.resolveSum(s); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// checkFreeName rejects a name that is already a primitive, a parametric
// kind, an application type, an import or a local declaration.
func (r *resolver) checkFreeName(name string, pos lexer.Pos, what string) error {
	switch {
	case ir.Primitives[name]:
		return ast.Errorf(ast.ErrNameConflict, pos, "%s name %q shadows a builtin type", what, name)
	case ast.ParamKinds[name] != "":
		return ast.Errorf(ast.ErrNameConflict, pos, "%s name %q shadows the parametric type %s", what, name, name)
	case r.known[name] != nil:
		return ast.Errorf(ast.ErrNameConflict, pos, "%s name %q shadows an application type", what, name)
	case r.imported[name] != nil:
		if what == "imported" {
			return ast.Errorf(ast.ErrNameConflict, pos, "type %q is imported twice", name)
		}
		return ast.Errorf(ast.ErrNameConflict, pos, "%s name %q shadows an imported type", what, name)
	case r.decls[name] != nil:
		return ast.Errorf(ast.ErrDuplicateDecl, pos, "type %q is declared twice", name)
	}
	return nil
}

// declare creates the classified shell for d.
func (r *resolver) declare(d ast.TypeDecl) (ir.Decl, error) {
	if err := r.checkFreeName(d.DeclName(), d.DeclPos(), "declaration"); err != nil {
		return nil, err
	}

	var decl ir.Decl
	switch d := d.(type) {
	case *ast.Product:
		if len(d.Generate) > 0 {
			return nil, ast.Errorf(ast.ErrGenerateNotSimple, d.Pos,
				"generate %v is only allowed on simple sums, %s is a product", d.Generate, d.Name).InDecl(d.Name)
		}
		decl = &ir.Product{Name: d.Name}
	case *ast.Sum:
		if d.IsSimple() {
			decl = &ir.SimpleSum{
				Name:     d.Name,
				Integers: slices.Contains(d.Generate, "integers"),
				Uint16:   slices.Contains(d.Generate, "uint16"),
			}
		} else {
			if len(d.Generate) > 0 {
				return nil, ast.Errorf(ast.ErrGenerateNotSimple, d.Pos,
					"generate %v is only allowed on simple sums, %s has variants with fields", d.Generate, d.Name).InDecl(d.Name)
			}
			decl = &ir.CompoundSum{Name: d.Name}
		}
	default:
		panic(errors.AssertionFailedf("unknown declaration %T", d))
	}

	r.decls[d.DeclName()] = decl
	return decl, nil
}

func (r *resolver) resolveSum(s *ast.Sum) error {
	var variants []*ir.Variant
	seen := make(map[string]bool)
	payloads := make(map[string]string)
	regular := 0
	hasShared := false

	for _, c := range s.Constructors {
		if seen[c.Name] {
			return ast.Errorf(ast.ErrDuplicateVariant, c.Pos,
				"variant %q is declared twice in %s", c.Name, s.Name).InDecl(s.Name)
		}
		seen[c.Name] = true

		v := &ir.Variant{Name: c.Name, Sum: s.Name}
		if c.SharedType != "" {
			hasShared = true
			p, err := r.sharedPayload(s, c, payloads)
			if err != nil {
				return err
			}
			tag, prev, ok := r.shared.Tag(c.Name, p.Name)
			if !ok {
				return ast.Errorf(ast.ErrBadSharedVariant, c.Pos,
					"shared variant %s aliases %s here but %s elsewhere", c.Name, p.Name, prev).InDecl(s.Name)
			}
			v.Tag = tag
			v.Shared = p
			v.Fields = p.Fields
			p.SharedIn = append(p.SharedIn, v)
		} else {
			fields, err := r.resolveFields(s.Name, c.Fields)
			if err != nil {
				return err
			}
			v.Tag = regular
			v.Fields = fields
			regular++
		}
		variants = append(variants, v)
	}

	if hasShared && regular > MaxRegularVariants {
		return ast.Errorf(ast.ErrTooManyVariants, s.Pos,
			"%s has %d regular variants; sums with shared variants allow at most %d",
			s.Name, regular, MaxRegularVariants).InDecl(s.Name)
	}

	switch d := r.decls[s.Name].(type) {
	case *ir.SimpleSum:
		d.Variants = variants
	case *ir.CompoundSum:
		d.Variants = variants
	default:
		panic(errors.AssertionFailedf("sum %s was declared as %T", s.Name, d))
	}
	return nil
}

// sharedPayload checks that c names a local product not already used as a
// payload in the same sum.
func (r *resolver) sharedPayload(s *ast.Sum, c *ast.Constructor, payloads map[string]string) (*ir.Product, error) {
	decl, ok := r.decls[c.SharedType]
	if !ok {
		return nil, ast.Errorf(ast.ErrBadSharedVariant, c.Pos,
			"shared variant %s refers to %q, which is not declared in this module", c.Name, c.SharedType).InDecl(s.Name)
	}
	p, ok := decl.(*ir.Product)
	if !ok {
		return nil, ast.Errorf(ast.ErrBadSharedVariant, c.Pos,
			"shared variant %s refers to %q, which is a sum; only products can be shared", c.Name, c.SharedType).InDecl(s.Name)
	}
	if other, dup := payloads[p.Name]; dup {
		return nil, ast.Errorf(ast.ErrBadSharedVariant, c.Pos,
			"product %s is already the payload of %s.%s", p.Name, s.Name, other).InDecl(s.Name)
	}
	payloads[p.Name] = c.Name
	return p, nil
}

func (r *resolver) resolveFields(declName string, fields []*ast.Field) ([]*ir.Field, error) {
	out := make([]*ir.Field, 0, len(fields))
	seen := make(map[string]bool)
	for _, f := range fields {
		if seen[f.Name] {
			return nil, ast.Errorf(ast.ErrDuplicateField, f.Pos,
				"field %q is declared twice", f.Name).InDecl(declName)
		}
		seen[f.Name] = true

		typ, err := r.resolveType(declName, f.Type)
		if err != nil {
			return nil, err
		}
		switch f.Quantifier {
		case ast.Optional:
			typ = &ir.Optional{Elem: typ}
		case ast.Repeated:
			typ = &ir.List{Elem: typ}
		}
		if err := checkLegal(declName, f, typ); err != nil {
			return nil, err
		}
		out = append(out, &ir.Field{Name: f.Name, Type: typ})
	}
	return out, nil
}

func (r *resolver) resolveType(declName string, ref ast.TypeRef) (ir.Type, error) {
	switch ref := ref.(type) {
	case *ast.NamedType:
		return r.resolveName(declName, ref)
	case *ast.ParameterizedType:
		args := make([]ir.Type, len(ref.Args))
		for i, a := range ref.Args {
			t, err := r.resolveType(declName, a)
			if err != nil {
				return nil, err
			}
			args[i] = t
		}
		switch ref.Kind {
		case ast.KindOptional:
			return &ir.Optional{Elem: args[0]}, nil
		case ast.KindList:
			return &ir.List{Elem: args[0]}, nil
		case ast.KindDict:
			return &ir.Dict{Key: args[0], Value: args[1]}, nil
		}
	}
	panic(errors.AssertionFailedf("unknown type reference %T", ref))
}

func (r *resolver) resolveName(declName string, n *ast.NamedType) (ir.Type, error) {
	if ir.Primitives[n.Name] {
		return &ir.Primitive{Name: n.Name}, nil
	}
	if d, ok := r.decls[n.Name]; ok {
		return &ir.DeclRef{Decl: d}, nil
	}
	if ext, ok := r.known[n.Name]; ok {
		return ext, nil
	}
	if use, ok := r.imported[n.Name]; ok {
		if !slices.Contains(use.Referenced, n.Name) {
			use.Referenced = append(use.Referenced, n.Name)
		}
		return &ir.Imported{Name: n.Name, Use: use}, nil
	}
	return nil, ast.Errorf(ast.ErrUnresolvedName, n.Pos,
		"unresolved name %q in declaration %s", n.Name, declName).InDecl(declName)
}

// checkLegal enforces the Optional and Dict rules at every nesting depth.
func checkLegal(declName string, f *ast.Field, typ ir.Type) error {
	var err error
	ir.Walk(typ, func(t ir.Type) {
		if err != nil {
			return
		}
		switch t := t.(type) {
		case *ir.Optional:
			switch {
			case ir.IsInteger(t.Elem):
				err = ast.Errorf(ast.ErrOptionalInteger, f.Pos,
					"field %s: %s cannot be optional; integers use -1 for absent", f.Name, t.Elem)
			case ir.IsSimpleSum(t.Elem):
				err = ast.Errorf(ast.ErrOptionalSimpleSum, f.Pos,
					"field %s: simple sum %s cannot be optional; declare an explicit absent variant instead", f.Name, t.Elem)
			}
		case *ir.Dict:
			if !isDictKey(t.Key) {
				err = ast.Errorf(ast.ErrBadDictKey, f.Pos,
					"field %s: Dict key must be string or an integer type, got %s", f.Name, t.Key)
			}
		}
	})
	if err != nil {
		return err.(*ast.SyntaxError).InDecl(declName)
	}
	return nil
}

func isDictKey(t ir.Type) bool {
	if p, ok := t.(*ir.Primitive); ok && p.Name == ir.PrimString {
		return true
	}
	return ir.IsInteger(t)
}
