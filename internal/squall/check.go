package squall

import "fmt"

// Symbol is a named binding visible in some scope. Type is the type of
// the symbol used as an expression; TypeDecl is the type it denotes in
// annotation position. Either may be nil: a type alias has no expression
// type, a plain variable denotes no type.
type Symbol struct {
	Name     string
	Kind     ElementKind
	Type     Type
	TypeDecl Type
	DeclPos  int

	reads int
	local bool // participates in unused-local analysis
}

// Scope is one lexical region. Scopes form a tree rooted at the ambient
// scope; spans are byte offsets used to find the scope a text position
// falls into.
type Scope struct {
	parent   *Scope
	start    int
	end      int
	names    map[string]*Symbol
	order    []*Symbol
	children []*Scope

	// boundary marks a function body scope; unused-local reporting
	// stops there because the body's own check already covered it.
	boundary bool
}

func newScope(parent *Scope, start, end int) *Scope {
	s := &Scope{parent: parent, start: start, end: end, names: make(map[string]*Symbol)}
	if parent != nil {
		parent.children = append(parent.children, s)
	}
	return s
}

// insert adds sym unless the name is already bound in this scope, in
// which case the existing symbol is returned.
func (s *Scope) insert(sym *Symbol) (*Symbol, bool) {
	if existing, ok := s.names[sym.Name]; ok {
		return existing, false
	}
	s.names[sym.Name] = sym
	s.order = append(s.order, sym)
	return sym, true
}

// lookup resolves name through this scope and its ancestors.
func (s *Scope) lookup(name string) *Symbol {
	for sc := s; sc != nil; sc = sc.parent {
		if sym, ok := sc.names[name]; ok {
			return sym
		}
	}
	return nil
}

// innermost returns the deepest scope whose span contains offset.
func (s *Scope) innermost(offset int) *Scope {
	for _, child := range s.children {
		if offset >= child.start && offset <= child.end {
			return child.innermost(offset)
		}
	}
	return s
}

// checkResult is everything the checker learned about a file.
type checkResult struct {
	diags     []Diagnostic
	exprTypes map[Expr]Type
	scope     *Scope // ambient root of the scope tree
	fileScope *Scope
}

// typeOf returns the recorded type of e, or nil.
func (r *checkResult) typeOf(e Expr) Type {
	return r.exprTypes[e]
}

type checker struct {
	opts Options
	amb  *ambient
	file *File
	res  *checkResult

	fnScopes       map[*FunDecl]*Scope
	aliases        map[*Symbol]*TypeAliasDecl
	aliasOrder     []*Symbol
	resolvingAlias map[*Symbol]bool

	currentClass *Class
	currentFn    *Func
	loopDepth    int
}

// checkFile runs semantic analysis. The file's syntax errors have
// already been collected by the parser; the checker works with whatever
// partial nodes it finds and never stops early.
func checkFile(file *File, amb *ambient, opts Options) *checkResult {
	root := newScope(nil, 0, file.Size)
	res := &checkResult{
		exprTypes: make(map[Expr]Type),
		scope:     root,
		fileScope: newScope(root, 0, file.Size),
	}
	c := &checker{
		opts:           opts,
		amb:            amb,
		file:           file,
		res:            res,
		fnScopes:       make(map[*FunDecl]*Scope),
		aliases:        make(map[*Symbol]*TypeAliasDecl),
		resolvingAlias: make(map[*Symbol]bool),
	}

	for name, t := range amb.types {
		root.insert(&Symbol{Name: name, Kind: KindAlias, TypeDecl: t, DeclPos: -1})
	}
	for _, g := range amb.globals {
		root.insert(&Symbol{Name: g.Name, Kind: g.Kind, Type: g.Type, DeclPos: -1})
	}

	c.declareHeaders()
	c.checkTopLevel()
	return res
}

func (c *checker) diag(start, length int, cat Category, code int, msg string, chain ...string) {
	if length <= 0 {
		length = 1
	}
	c.res.diags = append(c.res.diags, Diagnostic{
		Start:    start,
		Length:   length,
		Category: cat,
		Code:     code,
		Message:  msg,
		Chain:    chain,
	})
}

func (c *checker) diagAt(n Node, cat Category, code int, msg string, chain ...string) {
	c.diag(n.Pos(), n.End()-n.Pos(), cat, code, msg, chain...)
}

func (c *checker) setType(e Expr, t Type) Type {
	if t == nil {
		t = TypAny
	}
	c.res.exprTypes[e] = t
	return t
}

// declare binds sym in scope, reporting duplicates and shadowing.
func (c *checker) declare(scope *Scope, sym *Symbol, at Node) *Symbol {
	if scope.parent != nil && sym.Name != "" {
		if outer := scope.parent.lookup(sym.Name); outer != nil {
			c.diagAt(at, CategorySuggestion, 2302,
				fmt.Sprintf("declaration of %q shadows an earlier declaration", sym.Name))
		}
	}
	existing, ok := scope.insert(sym)
	if !ok && sym.Name != "" {
		c.diagAt(at, CategoryError, 2121, fmt.Sprintf("duplicate declaration of %q", sym.Name))
	}
	return existing
}

// --- pass one: headers ---

// declareHeaders binds every top level name before any body is checked,
// so declarations may reference each other regardless of order.
func (c *checker) declareHeaders() {
	type classWork struct {
		decl  *ClassDecl
		class *Class
	}
	type ifaceWork struct {
		decl  *InterfaceDecl
		iface *Interface
	}
	var classes []classWork
	var ifaces []ifaceWork

	// Shells first: type names must resolve before member types do.
	for _, stmt := range c.file.Stmts {
		switch d := stmt.(type) {
		case *ClassDecl:
			class := &Class{Name: d.Name.Name}
			sym := &Symbol{Name: d.Name.Name, Kind: KindClass, TypeDecl: class, DeclPos: d.Name.Pos()}
			if c.declare(c.res.fileScope, sym, d.Name) == sym {
				classes = append(classes, classWork{decl: d, class: class})
			}
		case *InterfaceDecl:
			iface := &Interface{Name: d.Name.Name}
			sym := &Symbol{Name: d.Name.Name, Kind: KindInterface, TypeDecl: iface, DeclPos: d.Name.Pos()}
			if c.declare(c.res.fileScope, sym, d.Name) == sym {
				ifaces = append(ifaces, ifaceWork{decl: d, iface: iface})
			}
		case *EnumDecl:
			enum := &Enum{Name: d.Name.Name}
			seen := make(map[string]bool)
			for _, m := range d.Members {
				if seen[m.Name] {
					c.diagAt(m, CategoryError, 2118, fmt.Sprintf("duplicate member %q", m.Name))
					continue
				}
				seen[m.Name] = true
				enum.Members = append(enum.Members, m.Name)
			}
			sym := &Symbol{Name: d.Name.Name, Kind: KindEnum, Type: enum, TypeDecl: enum, DeclPos: d.Name.Pos()}
			c.declare(c.res.fileScope, sym, d.Name)
		case *TypeAliasDecl:
			sym := &Symbol{Name: d.Name.Name, Kind: KindAlias, DeclPos: d.Name.Pos()}
			if c.declare(c.res.fileScope, sym, d.Name) == sym {
				c.aliases[sym] = d
				c.aliasOrder = append(c.aliasOrder, sym)
			}
		case *ImportDecl:
			c.declareImport(d)
		}
	}

	// Aliases next; class and interface member types may use them.
	for _, sym := range c.aliasOrder {
		c.resolveAlias(sym)
	}

	// Function signatures.
	for _, stmt := range c.file.Stmts {
		if d, ok := stmt.(*FunDecl); ok {
			c.declareFun(d, c.res.fileScope)
		}
	}

	// Member tables.
	for _, w := range classes {
		c.buildClass(w.decl, w.class)
	}
	for _, w := range ifaces {
		c.buildInterface(w.decl, w.iface)
	}

	// Interface satisfaction, now that both sides are complete.
	for _, w := range classes {
		for _, implName := range w.decl.Implements {
			sym := c.res.fileScope.lookup(implName.Name)
			if sym == nil {
				c.diagAt(implName, CategoryError, 2114, fmt.Sprintf("undefined name %q", implName.Name))
				continue
			}
			iface, ok := sym.TypeDecl.(*Interface)
			if !ok {
				c.diagAt(implName, CategoryError, 2122, fmt.Sprintf("%q is not an interface", implName.Name))
				continue
			}
			w.class.Implements = append(w.class.Implements, iface.Name)
			if ok, chain := satisfiesMembers(w.class, iface); !ok {
				c.diagAt(w.decl.Name, CategoryError, 2119,
					fmt.Sprintf("class %q does not correctly implement interface %q", w.class.Name, iface.Name),
					chain...)
			}
		}
	}
}

// satisfiesMembers checks only the member requirements, ignoring the
// nominal implements list, so a class is validated against the
// interfaces it claims.
func satisfiesMembers(c *Class, iface *Interface) (bool, []string) {
	for _, want := range iface.Members {
		got := memberOf(c, want.Name)
		if got == nil {
			return false, []string{fmt.Sprintf("member %q is missing", want.Name)}
		}
		if ok, chain := assignable(got.Type, want.Type); !ok {
			cause := fmt.Sprintf("member %q has type %q but the interface expects %q", want.Name, got.Type, want.Type)
			return false, append([]string{cause}, chain...)
		}
	}
	return true, nil
}

func (c *checker) declareImport(d *ImportDecl) {
	sym := &Symbol{Name: d.Name.Name, Kind: KindModule, Type: TypAny, DeclPos: d.Name.Pos()}

	if c.opts.Module == ModuleNone {
		c.diagAt(d, CategoryError, 2201, "import declarations are not available when module is none")
		c.declare(c.res.fileScope, sym, d.Name)
		return
	}
	module, ok := c.amb.modules[d.Path.Value]
	if !ok {
		if c.opts.ModuleResolution == ResolutionStrict {
			c.diagAt(d.Path, CategoryError, 2202, fmt.Sprintf("cannot resolve module %q", d.Path.Value))
		}
		c.declare(c.res.fileScope, sym, d.Name)
		return
	}
	sym.Type = module
	c.declare(c.res.fileScope, sym, d.Name)
}

func (c *checker) declareFun(d *FunDecl, scope *Scope) {
	sig := newScope(scope, d.Pos(), d.End())
	for _, tp := range d.TypeParams {
		t := &TypeParam{Name: tp.Name}
		c.declare(sig, &Symbol{Name: tp.Name, Kind: KindTypeParameter, TypeDecl: t, DeclPos: tp.Pos()}, tp)
	}
	fn := &Func{Result: TypVoid}
	for _, param := range d.Params {
		fn.Params = append(fn.Params, FuncParam{Name: param.Name.Name, Type: c.resolveTypeIn(param.Type, sig)})
	}
	if d.Result != nil {
		fn.Result = c.resolveTypeIn(d.Result, sig)
	}
	c.fnScopes[d] = sig
	c.declare(scope, &Symbol{Name: d.Name.Name, Kind: KindFunction, Type: fn, DeclPos: d.Name.Pos()}, d.Name)
}

func (c *checker) buildClass(d *ClassDecl, class *Class) {
	scope := c.res.fileScope
	addMember := func(at Node, m Member) {
		for i, existing := range class.Members {
			if existing.Name != m.Name {
				continue
			}
			// A getter and setter pair for one name is a single
			// property; the getter entry wins.
			if existing.Kind == KindSetAccessor && m.Kind == KindGetAccessor {
				if ok, _ := assignable(m.Type, existing.Type); !ok {
					c.diagAt(at, CategoryError, 2117,
						fmt.Sprintf("get and set accessors for %q disagree on type", m.Name))
				}
				class.Members[i] = m
				return
			}
			if existing.Kind == KindGetAccessor && m.Kind == KindSetAccessor {
				if ok, _ := assignable(existing.Type, m.Type); !ok {
					c.diagAt(at, CategoryError, 2117,
						fmt.Sprintf("get and set accessors for %q disagree on type", m.Name))
				}
				return
			}
			c.diagAt(at, CategoryError, 2118, fmt.Sprintf("duplicate member %q", m.Name))
			return
		}
		class.Members = append(class.Members, m)
	}

	for _, raw := range d.Members {
		switch m := raw.(type) {
		case *FieldMember:
			addMember(m.Name, Member{Name: m.Name.Name, Kind: KindProperty, Type: c.resolveTypeIn(m.Type, scope)})
		case *MethodMember:
			fn := &Func{Result: TypVoid}
			for _, param := range m.Params {
				fn.Params = append(fn.Params, FuncParam{Name: param.Name.Name, Type: c.resolveTypeIn(param.Type, scope)})
			}
			if m.Result != nil {
				fn.Result = c.resolveTypeIn(m.Result, scope)
			}
			addMember(m.Name, Member{Name: m.Name.Name, Kind: KindMemberFunction, Type: fn})
		case *AccessorMember:
			if c.opts.Target == TargetSQ1 {
				c.diag(m.KwPos, len("get"), CategoryError, 2200, "accessors require language target sq2")
			}
			if m.Setter {
				var t Type = TypAny
				if m.Param != nil && m.Param.Type != nil {
					t = c.resolveTypeIn(m.Param.Type, scope)
				}
				addMember(m.Name, Member{Name: m.Name.Name, Kind: KindSetAccessor, Type: t})
			} else {
				var t Type = TypAny
				if m.Result != nil {
					t = c.resolveTypeIn(m.Result, scope)
				}
				addMember(m.Name, Member{Name: m.Name.Name, Kind: KindGetAccessor, Type: t})
			}
		case *CtorMember:
			if class.Ctor != nil {
				c.diag(m.NewPos, len("new"), CategoryError, 2118, "duplicate constructor")
				continue
			}
			ctor := &Func{Result: class}
			for _, param := range m.Params {
				ctor.Params = append(ctor.Params, FuncParam{Name: param.Name.Name, Type: c.resolveTypeIn(param.Type, scope)})
			}
			class.Ctor = ctor
		}
	}
}

func (c *checker) buildInterface(d *InterfaceDecl, iface *Interface) {
	scope := c.res.fileScope
	seen := make(map[string]bool)
	for _, m := range d.Members {
		if seen[m.Name.Name] {
			c.diagAt(m.Name, CategoryError, 2118, fmt.Sprintf("duplicate member %q", m.Name.Name))
			continue
		}
		seen[m.Name.Name] = true
		if m.Method {
			fn := &Func{Result: TypVoid}
			for _, param := range m.Params {
				fn.Params = append(fn.Params, FuncParam{Name: param.Name.Name, Type: c.resolveTypeIn(param.Type, scope)})
			}
			if m.Result != nil {
				fn.Result = c.resolveTypeIn(m.Result, scope)
			}
			iface.Members = append(iface.Members, Member{Name: m.Name.Name, Kind: KindMemberFunction, Type: fn})
		} else {
			iface.Members = append(iface.Members, Member{Name: m.Name.Name, Kind: KindProperty, Type: c.resolveTypeIn(m.Result, scope)})
		}
	}
}

func (c *checker) resolveAlias(sym *Symbol) Type {
	if sym.TypeDecl != nil {
		return sym.TypeDecl
	}
	d, ok := c.aliases[sym]
	if !ok {
		return TypAny
	}
	if c.resolvingAlias[sym] {
		c.diagAt(d.Name, CategoryError, 2123, fmt.Sprintf("circular type alias %q", sym.Name))
		sym.TypeDecl = TypAny
		return TypAny
	}
	c.resolvingAlias[sym] = true
	sym.TypeDecl = c.resolveTypeIn(d.Target, c.res.fileScope)
	delete(c.resolvingAlias, sym)
	return sym.TypeDecl
}

// resolveTypeIn resolves type syntax to a semantic type against scope.
func (c *checker) resolveTypeIn(te TypeExpr, scope *Scope) Type {
	if te == nil {
		return TypAny
	}
	switch t := te.(type) {
	case *TypeRef:
		if len(t.Args) > 0 {
			c.diagAt(t, CategoryError, 2126, fmt.Sprintf("type %q does not take type arguments", t.Name.Name))
		}
		if prim := primitiveByName(t.Name.Name); prim != nil {
			return prim
		}
		sym := scope.lookup(t.Name.Name)
		if sym == nil {
			c.diagAt(t.Name, CategoryError, 2124, fmt.Sprintf("undefined type %q", t.Name.Name))
			return TypAny
		}
		if sym.Kind == KindAlias {
			return c.resolveAlias(sym)
		}
		if sym.TypeDecl == nil {
			c.diagAt(t.Name, CategoryError, 2125, fmt.Sprintf("%q is not a type", t.Name.Name))
			return TypAny
		}
		return sym.TypeDecl
	case *ArrayType:
		return &Array{Elem: c.resolveTypeIn(t.Elem, scope)}
	case *RecordType:
		rec := &Record{}
		seen := make(map[string]bool)
		for _, f := range t.Fields {
			if seen[f.Name.Name] {
				c.diagAt(f.Name, CategoryError, 2111, fmt.Sprintf("duplicate field %q", f.Name.Name))
				continue
			}
			seen[f.Name.Name] = true
			rec.Fields = append(rec.Fields, Field{Name: f.Name.Name, Type: c.resolveTypeIn(f.Type, scope)})
		}
		return rec
	case *FuncType:
		fn := &Func{Result: TypVoid}
		for _, param := range t.Params {
			fp := FuncParam{Type: c.resolveTypeIn(param.Type, scope)}
			if param.Name != nil {
				fp.Name = param.Name.Name
			}
			fn.Params = append(fn.Params, fp)
		}
		if t.Result != nil {
			fn.Result = c.resolveTypeIn(t.Result, scope)
		}
		return fn
	}
	return TypAny
}

// --- pass two: bodies and statements ---

// checkTopLevel checks top level statements in order, then function and
// class bodies. Plain statements run before any function would, so they
// may not reference bindings declared further down; bodies may.
func (c *checker) checkTopLevel() {
	for _, stmt := range c.file.Stmts {
		switch stmt.(type) {
		case *FunDecl, *ClassDecl, *InterfaceDecl, *EnumDecl, *TypeAliasDecl, *ImportDecl:
			// Declared in pass one; bodies handled below.
		default:
			c.checkStmt(stmt, c.res.fileScope)
		}
	}
	for _, stmt := range c.file.Stmts {
		switch d := stmt.(type) {
		case *FunDecl:
			c.checkFunBody(d)
		case *ClassDecl:
			c.checkClassBodies(d)
		}
	}
	c.reportUnusedLocals(c.res.fileScope)
}

func (c *checker) checkFunBody(d *FunDecl) {
	sym := c.res.fileScope.lookup(d.Name.Name)
	fn, _ := symType(sym).(*Func)
	if fn == nil {
		fn = &Func{Result: TypVoid}
	}
	sig := c.fnScopes[d]
	if sig == nil {
		sig = c.res.fileScope
	}
	c.checkBody(fn, d.Params, d.Body, sig, nil)
}

func symType(sym *Symbol) Type {
	if sym == nil {
		return nil
	}
	return sym.Type
}

func (c *checker) checkClassBodies(d *ClassDecl) {
	sym := c.res.fileScope.lookup(d.Name.Name)
	class, _ := typeDeclOf(sym).(*Class)
	if class == nil {
		return
	}
	for _, raw := range d.Members {
		switch m := raw.(type) {
		case *CtorMember:
			ctor := class.Ctor
			if ctor == nil {
				ctor = &Func{Result: class}
			}
			c.checkBody(&Func{Params: ctor.Params, Result: TypVoid}, m.Params, m.Body, c.res.fileScope, class)
		case *MethodMember:
			member := memberOf(class, m.Name.Name)
			fn, _ := memberType(member).(*Func)
			if fn == nil {
				fn = &Func{Result: TypVoid}
			}
			c.checkBody(fn, m.Params, m.Body, c.res.fileScope, class)
		case *AccessorMember:
			var result Type = TypVoid
			params := []*Param(nil)
			if m.Setter {
				if m.Param != nil {
					params = []*Param{m.Param}
				}
			} else if member := memberOf(class, m.Name.Name); member != nil {
				result = member.Type
			}
			c.checkBody(&Func{Result: result}, params, m.Body, c.res.fileScope, class)
		}
	}
}

func typeDeclOf(sym *Symbol) Type {
	if sym == nil {
		return nil
	}
	return sym.TypeDecl
}

func memberType(m *Member) Type {
	if m == nil {
		return nil
	}
	return m.Type
}

// checkBody checks one function-like body: parameters go into a fresh
// scope spanning the block, then statements are checked with the given
// return type and receiver in effect.
func (c *checker) checkBody(fn *Func, params []*Param, body *BlockStmt, parent *Scope, class *Class) {
	if body == nil {
		return
	}
	scope := newScope(parent, body.Pos(), body.End())
	scope.boundary = true
	for i, param := range params {
		var t Type = TypAny
		if i < len(fn.Params) {
			t = fn.Params[i].Type
		} else if param.Type != nil {
			t = c.resolveTypeIn(param.Type, parent)
		}
		c.declare(scope, &Symbol{
			Name:    param.Name.Name,
			Kind:    KindParameter,
			Type:    t,
			DeclPos: param.Name.Pos(),
		}, param.Name)
	}

	prevFn, prevClass, prevLoop := c.currentFn, c.currentClass, c.loopDepth
	c.currentFn, c.currentClass, c.loopDepth = fn, class, 0
	c.checkStmts(body.Stmts, scope)
	c.currentFn, c.currentClass, c.loopDepth = prevFn, prevClass, prevLoop

	c.reportUnusedLocals(scope)
}

func (c *checker) reportUnusedLocals(scope *Scope) {
	for _, sym := range scope.order {
		if sym.local && sym.reads == 0 && sym.Name != "" && sym.Name != "_" {
			c.diag(sym.DeclPos, len(sym.Name), CategoryWarning, 2301,
				fmt.Sprintf("local %q is declared but never read", sym.Name))
		}
	}
	for _, child := range scope.children {
		if child.boundary {
			continue
		}
		c.reportUnusedLocals(child)
	}
}

// checkStmts checks a statement list and flags code following a
// terminating statement.
func (c *checker) checkStmts(stmts []Stmt, scope *Scope) {
	reported := false
	terminated := false
	for _, stmt := range stmts {
		if terminated && !reported {
			c.diag(stmt.Pos(), stmt.End()-stmt.Pos(), CategoryMessage, 2303, "unreachable code")
			reported = true
		}
		c.checkStmt(stmt, scope)
		switch stmt.(type) {
		case *ReturnStmt, *BreakStmt, *ContinueStmt:
			terminated = true
		}
	}
}

func (c *checker) checkStmt(stmt Stmt, scope *Scope) {
	switch s := stmt.(type) {
	case *LetDecl:
		c.checkLetDecl(s, scope)

	case *FunDecl:
		// Nested function; the parser has already flagged it, but keep
		// analysis going so its body still gets checked.
		c.declareFun(s, scope)
		c.checkFunBodyIn(s, scope)

	case *ExprStmt:
		c.checkExpr(s.X, scope)

	case *AssignStmt:
		c.checkAssign(s, scope)

	case *IfStmt:
		c.checkCondition(s.Cond, scope)
		c.checkBlockScoped(s.Then, scope)
		if s.Else != nil {
			c.checkStmt(s.Else, scope)
		}

	case *WhileStmt:
		c.checkCondition(s.Cond, scope)
		c.loopDepth++
		c.checkBlockScoped(s.Body, scope)
		c.loopDepth--

	case *ForInStmt:
		c.checkForIn(s, scope)

	case *ReturnStmt:
		c.checkReturn(s, scope)

	case *BreakStmt:
		if c.loopDepth == 0 {
			c.diagAt(s, CategoryError, 2116, "break outside a loop")
		}

	case *ContinueStmt:
		if c.loopDepth == 0 {
			c.diagAt(s, CategoryError, 2116, "continue outside a loop")
		}

	case *BlockStmt:
		c.checkBlockScoped(s, scope)
	}
}

func (c *checker) checkFunBodyIn(d *FunDecl, scope *Scope) {
	sym := scope.lookup(d.Name.Name)
	fn, _ := symType(sym).(*Func)
	if fn == nil {
		fn = &Func{Result: TypVoid}
	}
	sig := c.fnScopes[d]
	if sig == nil {
		sig = scope
	}
	c.checkBody(fn, d.Params, d.Body, sig, c.currentClass)
}

func (c *checker) checkBlockScoped(block *BlockStmt, parent *Scope) {
	if block == nil {
		return
	}
	scope := newScope(parent, block.Pos(), block.End())
	c.checkStmts(block.Stmts, scope)
}

func (c *checker) checkLetDecl(s *LetDecl, scope *Scope) {
	var valueT Type
	if s.Value != nil {
		valueT = c.checkExpr(s.Value, scope)
	}

	var declared Type
	switch {
	case s.Type != nil:
		declared = c.resolveTypeIn(s.Type, scope)
		if s.Value != nil && c.opts.Strict {
			if ok, chain := assignable(valueT, declared); !ok {
				c.diagAt(s.Value, CategoryError, 2100,
					fmt.Sprintf("type %q is not assignable to type %q", valueT, declared), chain...)
			}
		}
	case valueT == TypVoid:
		c.diagAt(s.Value, CategoryError, 2130, "a Void expression cannot initialize a binding")
		declared = TypAny
	case valueT == TypNull:
		if !c.opts.AllowLoose {
			c.diagAt(s.Name, CategoryError, 2304,
				fmt.Sprintf("cannot infer a type for %q from a null initializer", s.Name.Name))
		}
		declared = TypAny
	default:
		declared = valueT
	}

	kind := KindLocalVar
	local := true
	if scope == c.res.fileScope {
		kind = KindVar
		local = false
	}
	if s.Const {
		kind = KindConst
		local = false
	}
	c.declare(scope, &Symbol{
		Name:    s.Name.Name,
		Kind:    kind,
		Type:    declared,
		DeclPos: s.Name.Pos(),
		local:   local,
	}, s.Name)
}

func (c *checker) checkAssign(s *AssignStmt, scope *Scope) {
	targetT := c.checkExpr(s.Target, scope)
	valueT := c.checkExpr(s.Value, scope)

	if id, ok := s.Target.(*Ident); ok {
		if sym := scope.lookup(id.Name); sym != nil {
			switch sym.Kind {
			case KindConst:
				c.diagAt(id, CategoryError, 2120, fmt.Sprintf("cannot assign to constant %q", id.Name))
			case KindFunction, KindClass, KindInterface, KindEnum, KindModule, KindAlias:
				c.diagAt(id, CategoryError, 2131, fmt.Sprintf("cannot assign to %q", id.Name))
			}
		}
	}
	if c.opts.Strict {
		if ok, chain := assignable(valueT, targetT); !ok {
			c.diagAt(s.Value, CategoryError, 2100,
				fmt.Sprintf("type %q is not assignable to type %q", valueT, targetT), chain...)
		}
	}
}

func (c *checker) checkCondition(cond Expr, scope *Scope) {
	t := c.checkExpr(cond, scope)
	if c.opts.Strict && t != TypBool && t != TypAny {
		c.diagAt(cond, CategoryError, 2104, fmt.Sprintf("condition must be Bool, found %q", t))
	}
}

func (c *checker) checkForIn(s *ForInStmt, scope *Scope) {
	if c.opts.Target == TargetSQ1 {
		c.diag(s.ForPos, len("for"), CategoryError, 2200, "for-in loops require language target sq2")
	}
	xT := c.checkExpr(s.X, scope)
	var elem Type = TypAny
	switch t := xT.(type) {
	case *Array:
		elem = t.Elem
	case *Primitive:
		if t == TypString {
			elem = TypString
		} else if t != TypAny {
			c.diagAt(s.X, CategoryError, 2115, fmt.Sprintf("for-in needs an array, found %q", xT))
		}
	default:
		c.diagAt(s.X, CategoryError, 2115, fmt.Sprintf("for-in needs an array, found %q", xT))
	}

	if s.Body == nil {
		return
	}
	bodyScope := newScope(scope, s.Body.Pos(), s.Body.End())
	c.declare(bodyScope, &Symbol{
		Name:    s.Var.Name,
		Kind:    KindLocalVar,
		Type:    elem,
		DeclPos: s.Var.Pos(),
		local:   true,
	}, s.Var)
	c.loopDepth++
	c.checkStmts(s.Body.Stmts, bodyScope)
	c.loopDepth--
}

func (c *checker) checkReturn(s *ReturnStmt, scope *Scope) {
	if c.currentFn == nil {
		c.diagAt(s, CategoryError, 2132, "return outside a function")
		if s.Value != nil {
			c.checkExpr(s.Value, scope)
		}
		return
	}
	want := c.currentFn.Result
	if want == nil {
		want = TypVoid
	}
	if s.Value == nil {
		if c.opts.Strict && want != TypVoid && want != TypAny {
			c.diagAt(s, CategoryError, 2103, fmt.Sprintf("return value of type %q expected", want))
		}
		return
	}
	got := c.checkExpr(s.Value, scope)
	if !c.opts.Strict {
		return
	}
	if want == TypVoid {
		c.diagAt(s.Value, CategoryError, 2103, "this function does not return a value")
		return
	}
	if ok, chain := assignable(got, want); !ok {
		c.diagAt(s.Value, CategoryError, 2103,
			fmt.Sprintf("type %q is not assignable to the declared return type %q", got, want), chain...)
	}
}

// --- expressions ---

func (c *checker) checkExpr(e Expr, scope *Scope) Type {
	switch x := e.(type) {
	case *Ident:
		return c.setType(e, c.checkIdent(x, scope))
	case *IntLit:
		return c.setType(e, TypInt)
	case *FloatLit:
		return c.setType(e, TypFloat)
	case *StringLit:
		return c.setType(e, TypString)
	case *BoolLit:
		return c.setType(e, TypBool)
	case *NullLit:
		return c.setType(e, TypNull)
	case *ThisExpr:
		if c.currentClass == nil {
			c.diagAt(x, CategoryError, 2112, "this can only be used inside a class member")
			return c.setType(e, TypAny)
		}
		return c.setType(e, c.currentClass)
	case *ArrayLit:
		return c.setType(e, c.checkArrayLit(x, scope))
	case *RecordLit:
		return c.setType(e, c.checkRecordLit(x, scope))
	case *UnaryExpr:
		return c.setType(e, c.checkUnary(x, scope))
	case *BinaryExpr:
		return c.setType(e, c.checkBinary(x, scope))
	case *ParenExpr:
		return c.setType(e, c.checkExpr(x.X, scope))
	case *CallExpr:
		return c.setType(e, c.checkCall(x, scope))
	case *MemberExpr:
		return c.setType(e, c.checkMember(x, scope))
	case *IndexExpr:
		return c.setType(e, c.checkIndex(x, scope))
	case *NewExpr:
		return c.setType(e, c.checkNew(x, scope))
	case *BadExpr:
		return c.setType(e, TypAny)
	}
	return c.setType(e, TypAny)
}

func (c *checker) checkIdent(x *Ident, scope *Scope) Type {
	if x.Name == "" {
		return TypAny
	}
	sym := scope.lookup(x.Name)
	if sym == nil {
		c.diagAt(x, CategoryError, 2114, fmt.Sprintf("undefined name %q", x.Name))
		return TypAny
	}
	sym.reads++
	if sym.Type != nil {
		return sym.Type
	}
	if class, ok := sym.TypeDecl.(*Class); ok {
		// A class name in value position denotes its constructor.
		if class.Ctor != nil {
			return class.Ctor
		}
		return &Func{Result: class}
	}
	c.diagAt(x, CategoryError, 2127, fmt.Sprintf("%q names a type and cannot be used as a value", x.Name))
	return TypAny
}

func (c *checker) checkArrayLit(x *ArrayLit, scope *Scope) Type {
	if len(x.Elems) == 0 {
		if !c.opts.AllowLoose {
			c.diagAt(x, CategoryError, 2304, "cannot infer the element type of an empty array")
		}
		return &Array{Elem: TypAny}
	}
	elem := c.checkExpr(x.Elems[0], scope)
	for _, el := range x.Elems[1:] {
		t := c.checkExpr(el, scope)
		if elem == TypAny {
			continue
		}
		okA, _ := assignable(t, elem)
		okB, _ := assignable(elem, t)
		switch {
		case okA:
		case okB:
			elem = t
		default:
			elem = TypAny
		}
	}
	return &Array{Elem: elem}
}

func (c *checker) checkRecordLit(x *RecordLit, scope *Scope) Type {
	rec := &Record{}
	seen := make(map[string]bool)
	for _, f := range x.Fields {
		t := c.checkExpr(f.Value, scope)
		if f.Name.Name == "" {
			continue
		}
		if seen[f.Name.Name] {
			c.diagAt(f.Name, CategoryError, 2111, fmt.Sprintf("duplicate field %q", f.Name.Name))
			continue
		}
		seen[f.Name.Name] = true
		rec.Fields = append(rec.Fields, Field{Name: f.Name.Name, Type: t})
	}
	return rec
}

func (c *checker) checkUnary(x *UnaryExpr, scope *Scope) Type {
	t := c.checkExpr(x.X, scope)
	switch x.Op {
	case "-":
		if t == TypInt || t == TypFloat || t == TypAny {
			return t
		}
		c.diagAt(x, CategoryError, 2105, fmt.Sprintf("operator %q cannot be applied to %q", x.Op, t))
		return TypAny
	case "not", "!":
		if t != TypBool && t != TypAny && c.opts.Strict {
			c.diagAt(x, CategoryError, 2105, fmt.Sprintf("operator %q cannot be applied to %q", x.Op, t))
		}
		return TypBool
	}
	return TypAny
}

func isNumeric(t Type) bool { return t == TypInt || t == TypFloat }

func (c *checker) checkBinary(x *BinaryExpr, scope *Scope) Type {
	lt := c.checkExpr(x.X, scope)
	rt := c.checkExpr(x.Y, scope)

	opDiag := func() {
		c.diagAt(x, CategoryError, 2105,
			fmt.Sprintf("operator %q cannot be applied to %q and %q", x.Op, lt, rt))
	}
	if lt == TypAny || rt == TypAny {
		switch x.Op {
		case "==", "!=", "<", "<=", ">", ">=", "and", "or":
			return TypBool
		default:
			if lt == TypAny && rt == TypAny {
				return TypAny
			}
			if lt == TypAny {
				return rt
			}
			return lt
		}
	}

	switch x.Op {
	case "+":
		if lt == TypString && rt == TypString {
			return TypString
		}
		fallthrough
	case "-", "*":
		if isNumeric(lt) && isNumeric(rt) {
			if lt == TypFloat || rt == TypFloat {
				return TypFloat
			}
			return TypInt
		}
		opDiag()
		return TypAny
	case "/":
		if isNumeric(lt) && isNumeric(rt) {
			if lt == TypFloat || rt == TypFloat {
				return TypFloat
			}
			return TypInt
		}
		opDiag()
		return TypAny
	case "%":
		if lt == TypInt && rt == TypInt {
			return TypInt
		}
		opDiag()
		return TypAny
	case "==", "!=":
		okA, _ := assignable(lt, rt)
		okB, _ := assignable(rt, lt)
		if !okA && !okB {
			c.diagAt(x, CategoryError, 2106, fmt.Sprintf("cannot compare %q with %q", lt, rt))
		}
		return TypBool
	case "<", "<=", ">", ">=":
		if (isNumeric(lt) && isNumeric(rt)) || (lt == TypString && rt == TypString) {
			return TypBool
		}
		opDiag()
		return TypBool
	case "and", "or":
		if c.opts.Strict && (lt != TypBool || rt != TypBool) {
			opDiag()
		}
		return TypBool
	}
	return TypAny
}

func (c *checker) checkCall(x *CallExpr, scope *Scope) Type {
	funT := c.checkExpr(x.Fun, scope)
	argTypes := make([]Type, len(x.Args))
	for i, arg := range x.Args {
		argTypes[i] = c.checkExpr(arg, scope)
	}

	if funT == TypAny {
		return TypAny
	}
	fn, ok := funT.(*Func)
	if !ok {
		c.diagAt(x.Fun, CategoryError, 2110, fmt.Sprintf("expression of type %q is not callable", funT))
		return TypAny
	}
	c.checkArgs(x.Args, argTypes, fn, x)
	if fn.Result == nil {
		return TypVoid
	}
	return fn.Result
}

func (c *checker) checkArgs(args []Expr, argTypes []Type, fn *Func, at Node) {
	if len(args) != len(fn.Params) {
		c.diagAt(at, CategoryError, 2101,
			fmt.Sprintf("expected %d arguments, found %d", len(fn.Params), len(args)))
		return
	}
	if !c.opts.Strict {
		return
	}
	for i, arg := range args {
		want := fn.Params[i].Type
		if ok, chain := assignable(argTypes[i], want); !ok {
			c.diagAt(arg, CategoryError, 2102,
				fmt.Sprintf("argument of type %q is not assignable to parameter of type %q", argTypes[i], want),
				chain...)
		}
	}
}

func (c *checker) checkMember(x *MemberExpr, scope *Scope) Type {
	xT := c.checkExpr(x.X, scope)
	if x.Name == nil || x.Name.Name == "" {
		// Incomplete access; the parser has already reported it.
		return TypAny
	}
	if xT == TypAny {
		return TypAny
	}
	member := memberOf(xT, x.Name.Name)
	if member == nil {
		if mod, ok := xT.(*Module); ok {
			c.diagAt(x.Name, CategoryError, 2108,
				fmt.Sprintf("module %q has no member %q", mod.Name, x.Name.Name))
		} else {
			c.diagAt(x.Name, CategoryError, 2107,
				fmt.Sprintf("property %q does not exist on type %q", x.Name.Name, xT))
		}
		return TypAny
	}
	return member.Type
}

func (c *checker) checkIndex(x *IndexExpr, scope *Scope) Type {
	xT := c.checkExpr(x.X, scope)
	idxT := c.checkExpr(x.Index, scope)
	if c.opts.Strict {
		if ok, _ := assignable(idxT, TypInt); !ok {
			c.diagAt(x.Index, CategoryError, 2129, fmt.Sprintf("index must be Int, found %q", idxT))
		}
	}
	switch t := xT.(type) {
	case *Array:
		return t.Elem
	case *Primitive:
		if t == TypString {
			return TypString
		}
		if t == TypAny {
			return TypAny
		}
	}
	c.diagAt(x, CategoryError, 2109, fmt.Sprintf("type %q cannot be indexed", xT))
	return TypAny
}

func (c *checker) checkNew(x *NewExpr, scope *Scope) Type {
	argTypes := make([]Type, len(x.Args))
	for i, arg := range x.Args {
		argTypes[i] = c.checkExpr(arg, scope)
	}

	if x.Class.Name == "" {
		return TypAny
	}
	sym := scope.lookup(x.Class.Name)
	if sym == nil {
		c.diagAt(x.Class, CategoryError, 2114, fmt.Sprintf("undefined name %q", x.Class.Name))
		return TypAny
	}
	sym.reads++
	class, ok := sym.TypeDecl.(*Class)
	if !ok {
		c.diagAt(x.Class, CategoryError, 2113, fmt.Sprintf("%q is not a class", x.Class.Name))
		return TypAny
	}
	if class.Ctor == nil {
		if len(x.Args) != 0 {
			c.diagAt(x, CategoryError, 2101, fmt.Sprintf("expected 0 arguments, found %d", len(x.Args)))
		}
		return class
	}
	c.checkArgs(x.Args, argTypes, class.Ctor, x)
	return class
}
