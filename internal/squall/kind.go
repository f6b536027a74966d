package squall

// ElementKind classifies a named program element. The set is closed;
// consumers that map kinds onto another vocabulary should fall back to a
// neutral entry for values outside this list.
type ElementKind string

const (
	KindKeyword        ElementKind = "keyword"
	KindFunction       ElementKind = "function"
	KindMemberFunction ElementKind = "member function"
	KindGetAccessor    ElementKind = "getter"
	KindSetAccessor    ElementKind = "setter"
	KindProperty       ElementKind = "property"
	KindClass          ElementKind = "class"
	KindInterface      ElementKind = "interface"
	KindEnum           ElementKind = "enum"
	KindEnumMember     ElementKind = "enum member"
	KindModule         ElementKind = "module"
	KindVar            ElementKind = "var"
	KindLocalVar       ElementKind = "local var"
	KindParameter      ElementKind = "parameter"
	KindConst          ElementKind = "const"
	KindTypeParameter  ElementKind = "type parameter"
	KindConstructor    ElementKind = "constructor"
	KindAlias          ElementKind = "alias"
)
