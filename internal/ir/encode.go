package ir

// Encode converts a module to a canonical Value. Types are written in
// their schema spelling and declaration references by name, so cyclic
// schemas encode finitely.
func Encode(m *Module) Object {
	decls := make(Array, len(m.Decls))
	for i, d := range m.Decls {
		decls[i] = encodeDecl(d)
	}

	uses := make(Array, len(m.Uses))
	for i, u := range m.Uses {
		uses[i] = Object{
			"module":     Strs(u.ModuleParts),
			"types":      Strs(u.TypeNames),
			"referenced": Strs(u.Referenced),
		}
	}

	return Object{
		"name":       Str(m.Name),
		"ir_version": Str(IRVersion),
		"decls":      decls,
		"uses":       uses,
	}
}

func encodeDecl(d Decl) Object {
	obj := Object{
		"name": Str(d.DeclName()),
		"kind": Str(d.Kind().String()),
	}
	switch d := d.(type) {
	case *Product:
		obj["fields"] = encodeFields(d.Fields)
		shared := make(Array, len(d.SharedIn))
		for i, v := range d.SharedIn {
			shared[i] = Str(v.Sum + "." + v.Name)
		}
		obj["shared_in"] = shared
	case *SimpleSum:
		obj["variants"] = encodeVariants(d.Variants)
		var hints []string
		if d.Integers {
			hints = append(hints, "integers")
		}
		if d.Uint16 {
			hints = append(hints, "uint16")
		}
		obj["generate"] = Strs(hints)
	case *CompoundSum:
		obj["variants"] = encodeVariants(d.Variants)
	}
	return obj
}

func encodeVariants(vs []*Variant) Array {
	arr := make(Array, len(vs))
	for i, v := range vs {
		obj := Object{
			"name": Str(v.Name),
			"tag":  Int(v.Tag),
		}
		if v.Shared != nil {
			obj["shared"] = Str(v.Shared.Name)
		} else {
			obj["fields"] = encodeFields(v.Fields)
		}
		arr[i] = obj
	}
	return arr
}

func encodeFields(fs []*Field) Array {
	arr := make(Array, len(fs))
	for i, f := range fs {
		arr[i] = Object{
			"name": Str(f.Name),
			"type": Str(f.Type.String()),
		}
	}
	return arr
}
