package squall

import (
	"fmt"
	"strings"
)

// Type is the semantic type of an expression or binding.
type Type interface {
	String() string
	typeImpl()
}

// Primitive is a built-in scalar type. The package-level singletons are
// the only instances; compare primitives by pointer.
type Primitive struct {
	name string
}

// Built-in primitive types.
var (
	TypInt    = &Primitive{name: "Int"}
	TypFloat  = &Primitive{name: "Float"}
	TypBool   = &Primitive{name: "Bool"}
	TypString = &Primitive{name: "String"}
	TypVoid   = &Primitive{name: "Void"}
	TypNull   = &Primitive{name: "Null"}
	TypAny    = &Primitive{name: "Any"}
)

func (t *Primitive) String() string { return t.name }

// Array is a homogeneous element sequence.
type Array struct {
	Elem Type
}

func (t *Array) String() string { return "[" + t.Elem.String() + "]" }

// Field is one named field of a record type.
type Field struct {
	Name string
	Type Type
}

// Record is a structural type of named fields.
type Record struct {
	Fields []Field
}

func (t *Record) String() string {
	if len(t.Fields) == 0 {
		return "{}"
	}
	parts := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		parts[i] = f.Name + ": " + f.Type.String()
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// field returns the named field, or nil.
func (t *Record) field(name string) *Field {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i]
		}
	}
	return nil
}

// FuncParam is one parameter of a function type. Name may be empty for
// types written without parameter names.
type FuncParam struct {
	Name string
	Type Type
}

// Func is a function signature.
type Func struct {
	Params []FuncParam
	Result Type
}

func (t *Func) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		if p.Name != "" {
			parts[i] = p.Name + ": " + p.Type.String()
		} else {
			parts[i] = p.Type.String()
		}
	}
	s := "fun(" + strings.Join(parts, ", ") + ")"
	if t.Result != nil && t.Result != TypVoid {
		s += ": " + t.Result.String()
	}
	return s
}

// Member is a named member of a class, interface, or module, carrying the
// element kind tooling reports for it.
type Member struct {
	Name string
	Kind ElementKind
	Type Type
}

// Class is a nominal class type. Values of this type are instances; the
// class name used as an expression denotes the constructor instead.
type Class struct {
	Name       string
	Implements []string
	Members    []Member
	Ctor       *Func // result is the class itself; nil means zero-arg
}

func (t *Class) String() string { return t.Name }

// Interface is a named set of member requirements.
type Interface struct {
	Name    string
	Members []Member
}

func (t *Interface) String() string { return t.Name }

// Enum is a named enumeration. It stands for both the member value type
// and the namespace the members are reached through.
type Enum struct {
	Name    string
	Members []string
}

func (t *Enum) String() string { return t.Name }

// Module is a host-provided namespace bound by an import declaration.
type Module struct {
	Name    string
	Members []Member
}

func (t *Module) String() string { return "module " + t.Name }

// TypeParam is a generic type parameter in scope inside its function.
type TypeParam struct {
	Name string
}

func (t *TypeParam) String() string { return t.Name }

func (*Primitive) typeImpl() {}
func (*Array) typeImpl()     {}
func (*Record) typeImpl()    {}
func (*Func) typeImpl()      {}
func (*Class) typeImpl()     {}
func (*Interface) typeImpl() {}
func (*Enum) typeImpl()      {}
func (*Module) typeImpl()    {}
func (*TypeParam) typeImpl() {}

// memberOf resolves a member access on t. It returns nil when t has no
// member of that name or does not support member access at all.
func memberOf(t Type, name string) *Member {
	for _, m := range membersOf(t) {
		if m.Name == name {
			m := m
			return &m
		}
	}
	return nil
}

// membersOf lists the accessible members of t for member completion.
func membersOf(t Type) []Member {
	switch tt := t.(type) {
	case *Class:
		return tt.Members
	case *Interface:
		return tt.Members
	case *Module:
		return tt.Members
	case *Record:
		ms := make([]Member, len(tt.Fields))
		for i, f := range tt.Fields {
			ms[i] = Member{Name: f.Name, Kind: KindProperty, Type: f.Type}
		}
		return ms
	case *Enum:
		ms := make([]Member, len(tt.Members))
		for i, name := range tt.Members {
			ms[i] = Member{Name: name, Kind: KindEnumMember, Type: tt}
		}
		return ms
	}
	return nil
}

// assignable reports whether a value of type src can be used where dst is
// expected. The returned chain explains a failure one nesting level per
// entry, outermost first.
func assignable(src, dst Type) (bool, []string) {
	if src == nil || dst == nil {
		return true, nil
	}
	if src == TypAny || dst == TypAny {
		return true, nil
	}
	if src == TypNull {
		return true, nil
	}
	if src == dst {
		return true, nil
	}
	// Numeric widening.
	if src == TypInt && dst == TypFloat {
		return true, nil
	}
	// Type parameters are not solved; treat them as compatible with
	// anything so generic calls stay quiet.
	if _, ok := src.(*TypeParam); ok {
		return true, nil
	}
	if _, ok := dst.(*TypeParam); ok {
		return true, nil
	}

	switch d := dst.(type) {
	case *Array:
		s, ok := src.(*Array)
		if !ok {
			break
		}
		if ok, chain := assignable(s.Elem, d.Elem); !ok {
			return false, append([]string{"array element types are incompatible"}, chain...)
		}
		return true, nil

	case *Record:
		s, ok := src.(*Record)
		if !ok {
			break
		}
		for _, f := range d.Fields {
			sf := s.field(f.Name)
			if sf == nil {
				return false, []string{fmt.Sprintf("property %q is missing in type %q", f.Name, src)}
			}
			if ok, chain := assignable(sf.Type, f.Type); !ok {
				cause := fmt.Sprintf("types of property %q are incompatible", f.Name)
				return false, append([]string{cause}, chain...)
			}
		}
		return true, nil

	case *Interface:
		return satisfies(src, d)

	case *Func:
		s, ok := src.(*Func)
		if !ok {
			break
		}
		if len(s.Params) != len(d.Params) {
			return false, []string{fmt.Sprintf("expected %d parameters, found %d", len(d.Params), len(s.Params))}
		}
		for i := range d.Params {
			if ok, _ := assignable(d.Params[i].Type, s.Params[i].Type); !ok {
				return false, []string{fmt.Sprintf("parameter %d types are incompatible", i+1)}
			}
		}
		if ok, chain := assignable(s.Result, d.Result); !ok {
			return false, append([]string{"result types are incompatible"}, chain...)
		}
		return true, nil
	}

	return false, nil
}

// satisfies checks src against the member requirements of iface.
func satisfies(src Type, iface *Interface) (bool, []string) {
	if c, ok := src.(*Class); ok {
		for _, name := range c.Implements {
			if name == iface.Name {
				return true, nil
			}
		}
	}
	for _, want := range iface.Members {
		got := memberOf(src, want.Name)
		if got == nil {
			return false, []string{fmt.Sprintf("member %q of interface %q is missing in type %q", want.Name, iface.Name, src)}
		}
		if ok, chain := assignable(got.Type, want.Type); !ok {
			cause := fmt.Sprintf("member %q is incompatible with interface %q", want.Name, iface.Name)
			return false, append([]string{cause}, chain...)
		}
	}
	return true, nil
}
