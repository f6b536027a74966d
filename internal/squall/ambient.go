package squall

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed ambient.yaml
var ambientYAML []byte

// ErrUnknownLib is returned when resolved options name a lib that the
// ambient manifest does not define.
var ErrUnknownLib = errors.New("unknown lib")

// ambient is the set of declarations a unit starts from: named types
// usable in annotations, global values, and importable host modules.
type ambient struct {
	types   map[string]Type
	globals []Member
	modules map[string]*Module
}

type ambientManifest struct {
	Libs []ambientLib `yaml:"libs"`
}

type ambientLib struct {
	Name    string          `yaml:"name"`
	Types   []ambientType   `yaml:"types"`
	Values  []ambientValue  `yaml:"values"`
	Modules []ambientModule `yaml:"modules"`
}

type ambientType struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type ambientValue struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
	Type string `yaml:"type"`
}

type ambientModule struct {
	Name    string         `yaml:"name"`
	Members []ambientValue `yaml:"members"`
}

var (
	manifestOnce sync.Once
	manifest     ambientManifest
	manifestErr  error
)

func loadManifest() (*ambientManifest, error) {
	manifestOnce.Do(func() {
		manifestErr = yaml.Unmarshal(ambientYAML, &manifest)
	})
	if manifestErr != nil {
		return nil, fmt.Errorf("ambient manifest: %w", manifestErr)
	}
	return &manifest, nil
}

// loadAmbient assembles the ambient set for the requested libs. Lib
// names are matched exactly; an unknown name fails the whole load so a
// bad configuration surfaces as a build error rather than silently
// shrinking the environment.
func loadAmbient(libs []string) (*ambient, error) {
	m, err := loadManifest()
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*ambientLib, len(m.Libs))
	for i := range m.Libs {
		byName[m.Libs[i].Name] = &m.Libs[i]
	}

	var selected []*ambientLib
	for _, name := range libs {
		lib, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownLib, name)
		}
		selected = append(selected, lib)
	}

	// Named types resolve against the union of all selected libs, so a
	// lib may reference types declared by another.
	named := make(map[string]TypeExpr)
	for _, lib := range selected {
		for _, at := range lib.Types {
			te, err := parseTypeString(at.Type)
			if err != nil {
				return nil, fmt.Errorf("ambient type %q: %w", at.Name, err)
			}
			named[at.Name] = te
		}
	}

	res := &typeStringResolver{named: named, resolved: make(map[string]Type)}
	amb := &ambient{
		types:   make(map[string]Type, len(named)),
		modules: make(map[string]*Module),
	}
	for name := range named {
		amb.types[name] = res.resolveNamed(name)
	}

	for _, lib := range selected {
		for _, v := range lib.Values {
			member, err := res.member(v)
			if err != nil {
				return nil, fmt.Errorf("lib %q: %w", lib.Name, err)
			}
			amb.globals = append(amb.globals, member)
		}
		for _, mod := range lib.Modules {
			module := &Module{Name: mod.Name}
			for _, v := range mod.Members {
				member, err := res.member(v)
				if err != nil {
					return nil, fmt.Errorf("module %q: %w", mod.Name, err)
				}
				module.Members = append(module.Members, member)
			}
			amb.modules[mod.Name] = module
		}
	}
	return amb, nil
}

// parseTypeString parses a type written in Squall type syntax.
func parseTypeString(s string) (TypeExpr, error) {
	toks, diags := scan(s)
	p := &parser{src: s, toks: toks, diags: diags}
	te := p.parseType()
	if len(p.diags) > 0 {
		return nil, fmt.Errorf("bad type %q: %s", s, p.diags[0].Message)
	}
	if !p.atEOF() {
		return nil, fmt.Errorf("bad type %q: trailing tokens", s)
	}
	return te, nil
}

// typeStringResolver resolves ambient type syntax to semantic types.
// Unknown names resolve to Any and reference cycles collapse to Any,
// keeping a lenient manifest from breaking unit construction.
type typeStringResolver struct {
	named    map[string]TypeExpr
	resolved map[string]Type
	visiting map[string]bool
}

func (r *typeStringResolver) member(v ambientValue) (Member, error) {
	kind, err := elementKindFromString(v.Kind)
	if err != nil {
		return Member{}, fmt.Errorf("value %q: %w", v.Name, err)
	}
	te, err := parseTypeString(v.Type)
	if err != nil {
		return Member{}, fmt.Errorf("value %q: %w", v.Name, err)
	}
	return Member{Name: v.Name, Kind: kind, Type: r.resolve(te)}, nil
}

func (r *typeStringResolver) resolveNamed(name string) Type {
	if t, ok := r.resolved[name]; ok {
		return t
	}
	te, ok := r.named[name]
	if !ok {
		return TypAny
	}
	if r.visiting == nil {
		r.visiting = make(map[string]bool)
	}
	if r.visiting[name] {
		return TypAny
	}
	r.visiting[name] = true
	t := r.resolve(te)
	delete(r.visiting, name)
	r.resolved[name] = t
	return t
}

func (r *typeStringResolver) resolve(te TypeExpr) Type {
	switch t := te.(type) {
	case *TypeRef:
		if prim := primitiveByName(t.Name.Name); prim != nil {
			return prim
		}
		return r.resolveNamed(t.Name.Name)
	case *ArrayType:
		return &Array{Elem: r.resolve(t.Elem)}
	case *RecordType:
		rec := &Record{}
		for _, f := range t.Fields {
			rec.Fields = append(rec.Fields, Field{Name: f.Name.Name, Type: r.resolve(f.Type)})
		}
		return rec
	case *FuncType:
		fn := &Func{Result: TypVoid}
		for _, pt := range t.Params {
			fp := FuncParam{Type: r.resolve(pt.Type)}
			if pt.Name != nil {
				fp.Name = pt.Name.Name
			}
			fn.Params = append(fn.Params, fp)
		}
		if t.Result != nil {
			fn.Result = r.resolve(t.Result)
		}
		return fn
	}
	return TypAny
}

// primitiveByName maps a primitive type name to its singleton, or nil.
func primitiveByName(name string) Type {
	switch name {
	case "Int":
		return TypInt
	case "Float":
		return TypFloat
	case "Bool":
		return TypBool
	case "String":
		return TypString
	case "Void":
		return TypVoid
	case "Null":
		return TypNull
	case "Any":
		return TypAny
	}
	return nil
}

// elementKindFromString maps a manifest kind name to an ElementKind.
func elementKindFromString(s string) (ElementKind, error) {
	switch s {
	case "function":
		return KindFunction, nil
	case "var":
		return KindVar, nil
	case "const":
		return KindConst, nil
	case "getter":
		return KindGetAccessor, nil
	case "setter":
		return KindSetAccessor, nil
	case "property":
		return KindProperty, nil
	}
	return "", fmt.Errorf("unknown element kind %q", s)
}
