package squall

// Node is implemented by every syntax tree node. Pos and End are byte
// offsets into the source text; End points one past the last byte.
type Node interface {
	Pos() int
	End() int
}

// Expr is implemented by all expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by all statement and declaration nodes.
type Stmt interface {
	Node
	stmtNode()
}

// TypeExpr is implemented by all type syntax nodes.
type TypeExpr interface {
	Node
	typeNode()
}

// File is the root of a parsed source file.
type File struct {
	Stmts []Stmt
	Size  int // total byte length of the source
}

func (f *File) Pos() int { return 0 }
func (f *File) End() int { return f.Size }

// --- Expressions ---

// Ident is an identifier reference or name.
type Ident struct {
	NamePos int
	Name    string
}

func (x *Ident) Pos() int { return x.NamePos }
func (x *Ident) End() int { return x.NamePos + len(x.Name) }

// IntLit is an integer literal.
type IntLit struct {
	ValuePos int
	Raw      string
}

func (x *IntLit) Pos() int { return x.ValuePos }
func (x *IntLit) End() int { return x.ValuePos + len(x.Raw) }

// FloatLit is a floating point literal.
type FloatLit struct {
	ValuePos int
	Raw      string
}

func (x *FloatLit) Pos() int { return x.ValuePos }
func (x *FloatLit) End() int { return x.ValuePos + len(x.Raw) }

// StringLit is a string literal. Value holds the decoded text.
type StringLit struct {
	ValuePos int
	Raw      string
	Value    string
}

func (x *StringLit) Pos() int { return x.ValuePos }
func (x *StringLit) End() int { return x.ValuePos + len(x.Raw) }

// BoolLit is a true or false literal.
type BoolLit struct {
	ValuePos int
	Value    bool
}

func (x *BoolLit) Pos() int { return x.ValuePos }
func (x *BoolLit) End() int {
	if x.Value {
		return x.ValuePos + len("true")
	}
	return x.ValuePos + len("false")
}

// NullLit is the null literal.
type NullLit struct {
	ValuePos int
}

func (x *NullLit) Pos() int { return x.ValuePos }
func (x *NullLit) End() int { return x.ValuePos + len("null") }

// ThisExpr is the receiver reference inside class members.
type ThisExpr struct {
	ThisPos int
}

func (x *ThisExpr) Pos() int { return x.ThisPos }
func (x *ThisExpr) End() int { return x.ThisPos + len("this") }

// ArrayLit is an array literal.
type ArrayLit struct {
	Lbrack int
	Elems  []Expr
	Rbrack int
}

func (x *ArrayLit) Pos() int { return x.Lbrack }
func (x *ArrayLit) End() int { return x.Rbrack + 1 }

// RecordField is a single name/value pair in a record literal.
type RecordField struct {
	Name  *Ident
	Value Expr
}

// RecordLit is an anonymous record literal such as { x: 1, y: 2 }.
type RecordLit struct {
	Lbrace int
	Fields []RecordField
	Rbrace int
}

func (x *RecordLit) Pos() int { return x.Lbrace }
func (x *RecordLit) End() int { return x.Rbrace + 1 }

// UnaryExpr is a prefix operator application.
type UnaryExpr struct {
	OpPos int
	Op    string
	X     Expr
}

func (x *UnaryExpr) Pos() int { return x.OpPos }
func (x *UnaryExpr) End() int { return x.X.End() }

// BinaryExpr is an infix operator application.
type BinaryExpr struct {
	X     Expr
	OpPos int
	Op    string
	Y     Expr
}

func (x *BinaryExpr) Pos() int { return x.X.Pos() }
func (x *BinaryExpr) End() int { return x.Y.End() }

// CallExpr is a function or method invocation.
type CallExpr struct {
	Fun    Expr
	Lparen int
	Args   []Expr
	Rparen int
}

func (x *CallExpr) Pos() int { return x.Fun.Pos() }
func (x *CallExpr) End() int { return x.Rparen + 1 }

// MemberExpr is a dotted member access. Name.Name is empty when the
// source ends after the dot; the node is still produced so tooling can
// offer completions at that point.
type MemberExpr struct {
	X      Expr
	DotPos int
	Name   *Ident
}

func (x *MemberExpr) Pos() int { return x.X.Pos() }
func (x *MemberExpr) End() int {
	if x.Name != nil && x.Name.Name != "" {
		return x.Name.End()
	}
	return x.DotPos + 1
}

// IndexExpr is a bracketed element access.
type IndexExpr struct {
	X      Expr
	Lbrack int
	Index  Expr
	Rbrack int
}

func (x *IndexExpr) Pos() int { return x.X.Pos() }
func (x *IndexExpr) End() int { return x.Rbrack + 1 }

// NewExpr instantiates a class.
type NewExpr struct {
	NewPos int
	Class  *Ident
	Lparen int
	Args   []Expr
	Rparen int
}

func (x *NewExpr) Pos() int { return x.NewPos }
func (x *NewExpr) End() int { return x.Rparen + 1 }

// ParenExpr is a parenthesized expression.
type ParenExpr struct {
	Lparen int
	X      Expr
	Rparen int
}

func (x *ParenExpr) Pos() int { return x.Lparen }
func (x *ParenExpr) End() int { return x.Rparen + 1 }

// BadExpr marks a span that could not be parsed as an expression.
type BadExpr struct {
	From int
	To   int
}

func (x *BadExpr) Pos() int { return x.From }
func (x *BadExpr) End() int { return x.To }

func (*Ident) exprNode()      {}
func (*IntLit) exprNode()     {}
func (*FloatLit) exprNode()   {}
func (*StringLit) exprNode()  {}
func (*BoolLit) exprNode()    {}
func (*NullLit) exprNode()    {}
func (*ThisExpr) exprNode()   {}
func (*ArrayLit) exprNode()   {}
func (*RecordLit) exprNode()  {}
func (*UnaryExpr) exprNode()  {}
func (*BinaryExpr) exprNode() {}
func (*CallExpr) exprNode()   {}
func (*MemberExpr) exprNode() {}
func (*IndexExpr) exprNode()  {}
func (*NewExpr) exprNode()    {}
func (*ParenExpr) exprNode()  {}
func (*BadExpr) exprNode()    {}

// --- Type syntax ---

// TypeRef names a type, optionally with generic arguments.
type TypeRef struct {
	Name *Ident
	Args []TypeExpr
	Gt   int // position of the closing >, or -1 when Args is empty
}

func (t *TypeRef) Pos() int { return t.Name.Pos() }
func (t *TypeRef) End() int {
	if len(t.Args) > 0 {
		return t.Gt + 1
	}
	return t.Name.End()
}

// ArrayType is the element type wrapped in brackets, as in [Int].
type ArrayType struct {
	Lbrack int
	Elem   TypeExpr
	Rbrack int
}

func (t *ArrayType) Pos() int { return t.Lbrack }
func (t *ArrayType) End() int { return t.Rbrack + 1 }

// FieldType is a single field in a record type.
type FieldType struct {
	Name *Ident
	Type TypeExpr
}

// RecordType is a structural record type such as { x: Int, y: Int }.
type RecordType struct {
	Lbrace int
	Fields []FieldType
	Rbrace int
}

func (t *RecordType) Pos() int { return t.Lbrace }
func (t *RecordType) End() int { return t.Rbrace + 1 }

// FuncTypeParam is one parameter of a function type. Name is optional.
type FuncTypeParam struct {
	Name *Ident
	Type TypeExpr
}

// FuncType is a function type such as fun(Int, Int): Bool. Parameters
// may carry names, as in fun(url: String): Response.
type FuncType struct {
	FunPos int
	Params []FuncTypeParam
	Result TypeExpr // nil means Void
	EndPos int
}

func (t *FuncType) Pos() int { return t.FunPos }
func (t *FuncType) End() int { return t.EndPos }

// BadType marks a span that could not be parsed as a type.
type BadType struct {
	From int
	To   int
}

func (t *BadType) Pos() int { return t.From }
func (t *BadType) End() int { return t.To }

func (*TypeRef) typeNode()    {}
func (*ArrayType) typeNode()  {}
func (*RecordType) typeNode() {}
func (*FuncType) typeNode()   {}
func (*BadType) typeNode()    {}

// --- Statements and declarations ---

// LetDecl declares a binding. Const distinguishes const from let. Type
// and Value may each be nil, but not both.
type LetDecl struct {
	KwPos  int
	Const  bool
	Name   *Ident
	Type   TypeExpr
	Value  Expr
	EndPos int
}

func (s *LetDecl) Pos() int { return s.KwPos }
func (s *LetDecl) End() int { return s.EndPos }

// Param is a single function or method parameter.
type Param struct {
	Name *Ident
	Type TypeExpr
}

// FunDecl declares a function.
type FunDecl struct {
	FunPos     int
	Name       *Ident
	TypeParams []*Ident
	Params     []*Param
	Result     TypeExpr // nil means Void
	Body       *BlockStmt
}

func (s *FunDecl) Pos() int { return s.FunPos }
func (s *FunDecl) End() int { return s.Body.End() }

// ClassMember is implemented by the member forms of a class body.
type ClassMember interface {
	Node
	classMember()
}

// FieldMember is a class field declaration.
type FieldMember struct {
	LetPos int
	Name   *Ident
	Type   TypeExpr
	EndPos int
}

func (m *FieldMember) Pos() int { return m.LetPos }
func (m *FieldMember) End() int { return m.EndPos }

// CtorMember is a class constructor.
type CtorMember struct {
	NewPos int
	Params []*Param
	Body   *BlockStmt
}

func (m *CtorMember) Pos() int { return m.NewPos }
func (m *CtorMember) End() int { return m.Body.End() }

// MethodMember is a class method.
type MethodMember struct {
	FunPos int
	Name   *Ident
	Params []*Param
	Result TypeExpr
	Body   *BlockStmt
}

func (m *MethodMember) Pos() int { return m.FunPos }
func (m *MethodMember) End() int { return m.Body.End() }

// AccessorMember is a get or set accessor. Setter carries one parameter,
// getter carries a result type.
type AccessorMember struct {
	KwPos  int
	Setter bool
	Name   *Ident
	Param  *Param   // setter only
	Result TypeExpr // getter only
	Body   *BlockStmt
}

func (m *AccessorMember) Pos() int { return m.KwPos }
func (m *AccessorMember) End() int { return m.Body.End() }

func (*FieldMember) classMember()    {}
func (*CtorMember) classMember()     {}
func (*MethodMember) classMember()   {}
func (*AccessorMember) classMember() {}

// ClassDecl declares a class.
type ClassDecl struct {
	ClassPos   int
	Name       *Ident
	Implements []*Ident
	Members    []ClassMember
	Rbrace     int
}

func (s *ClassDecl) Pos() int { return s.ClassPos }
func (s *ClassDecl) End() int { return s.Rbrace + 1 }

// IfaceMember is one member of an interface: a method signature when
// Method is true, a readable property otherwise.
type IfaceMember struct {
	Pos    int
	Method bool
	Name   *Ident
	Params []*Param
	Result TypeExpr // method result or property type
	EndPos int
}

// InterfaceDecl declares an interface.
type InterfaceDecl struct {
	IfacePos int
	Name     *Ident
	Members  []IfaceMember
	Rbrace   int
}

func (s *InterfaceDecl) Pos() int { return s.IfacePos }
func (s *InterfaceDecl) End() int { return s.Rbrace + 1 }

// EnumDecl declares an enumeration of named members.
type EnumDecl struct {
	EnumPos int
	Name    *Ident
	Members []*Ident
	Rbrace  int
}

func (s *EnumDecl) Pos() int { return s.EnumPos }
func (s *EnumDecl) End() int { return s.Rbrace + 1 }

// TypeAliasDecl declares a named alias for a type.
type TypeAliasDecl struct {
	TypePos int
	Name    *Ident
	Target  TypeExpr
	EndPos  int
}

func (s *TypeAliasDecl) Pos() int { return s.TypePos }
func (s *TypeAliasDecl) End() int { return s.EndPos }

// ImportDecl binds a module name from the host environment.
type ImportDecl struct {
	ImportPos int
	Name      *Ident
	Path      *StringLit
	EndPos    int
}

func (s *ImportDecl) Pos() int { return s.ImportPos }
func (s *ImportDecl) End() int { return s.EndPos }

// ExprStmt is an expression evaluated for effect.
type ExprStmt struct {
	X Expr
}

func (s *ExprStmt) Pos() int { return s.X.Pos() }
func (s *ExprStmt) End() int { return s.X.End() }

// AssignStmt assigns a value to an addressable target.
type AssignStmt struct {
	Target Expr
	EqPos  int
	Value  Expr
}

func (s *AssignStmt) Pos() int { return s.Target.Pos() }
func (s *AssignStmt) End() int { return s.Value.End() }

// IfStmt is a conditional. Else is nil, a *BlockStmt, or another *IfStmt.
type IfStmt struct {
	IfPos int
	Cond  Expr
	Then  *BlockStmt
	Else  Stmt
}

func (s *IfStmt) Pos() int { return s.IfPos }
func (s *IfStmt) End() int {
	if s.Else != nil {
		return s.Else.End()
	}
	return s.Then.End()
}

// WhileStmt is a condition-guarded loop.
type WhileStmt struct {
	WhilePos int
	Cond     Expr
	Body     *BlockStmt
}

func (s *WhileStmt) Pos() int { return s.WhilePos }
func (s *WhileStmt) End() int { return s.Body.End() }

// ForInStmt iterates over the elements of an array.
type ForInStmt struct {
	ForPos int
	Var    *Ident
	X      Expr
	Body   *BlockStmt
}

func (s *ForInStmt) Pos() int { return s.ForPos }
func (s *ForInStmt) End() int { return s.Body.End() }

// ReturnStmt returns from the enclosing function, with or without a value.
type ReturnStmt struct {
	ReturnPos int
	Value     Expr // may be nil
	EndPos    int
}

func (s *ReturnStmt) Pos() int { return s.ReturnPos }
func (s *ReturnStmt) End() int { return s.EndPos }

// BreakStmt exits the enclosing loop.
type BreakStmt struct {
	KwPos int
}

func (s *BreakStmt) Pos() int { return s.KwPos }
func (s *BreakStmt) End() int { return s.KwPos + len("break") }

// ContinueStmt advances the enclosing loop.
type ContinueStmt struct {
	KwPos int
}

func (s *ContinueStmt) Pos() int { return s.KwPos }
func (s *ContinueStmt) End() int { return s.KwPos + len("continue") }

// BlockStmt is a braced statement list.
type BlockStmt struct {
	Lbrace int
	Stmts  []Stmt
	Rbrace int
}

func (s *BlockStmt) Pos() int { return s.Lbrace }
func (s *BlockStmt) End() int { return s.Rbrace + 1 }

// BadStmt marks a span that could not be parsed as a statement.
type BadStmt struct {
	From int
	To   int
}

func (s *BadStmt) Pos() int { return s.From }
func (s *BadStmt) End() int { return s.To }

func (*LetDecl) stmtNode()       {}
func (*FunDecl) stmtNode()       {}
func (*ClassDecl) stmtNode()     {}
func (*InterfaceDecl) stmtNode() {}
func (*EnumDecl) stmtNode()      {}
func (*TypeAliasDecl) stmtNode() {}
func (*ImportDecl) stmtNode()    {}
func (*ExprStmt) stmtNode()      {}
func (*AssignStmt) stmtNode()    {}
func (*IfStmt) stmtNode()        {}
func (*WhileStmt) stmtNode()     {}
func (*ForInStmt) stmtNode()     {}
func (*ReturnStmt) stmtNode()    {}
func (*BreakStmt) stmtNode()     {}
func (*ContinueStmt) stmtNode()  {}
func (*BlockStmt) stmtNode()     {}
func (*BadStmt) stmtNode()       {}
