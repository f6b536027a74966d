package squall

import "sort"

// CompletionEntry is one completion candidate. SortText orders entries
// the way an editor should present them; it never affects membership.
type CompletionEntry struct {
	Name     string
	Kind     ElementKind
	Detail   string
	SortText string
}

// LanguageService answers editor queries against a built unit. It holds
// no mutable state; every query reads the unit's analysis products.
type LanguageService struct {
	unit *Unit
}

// NewLanguageService returns a service over u.
func NewLanguageService(u *Unit) *LanguageService {
	return &LanguageService{unit: u}
}

// CompletionsAt returns the completion entries offered at a byte offset
// in the file at path. The result is nil when the unit holds no file by
// that name, and empty when the position offers nothing.
func (ls *LanguageService) CompletionsAt(path string, offset int) []CompletionEntry {
	f := ls.unit.File(path)
	if f == nil {
		return nil
	}
	if offset < 0 {
		offset = 0
	}
	if offset > len(f.Text) {
		offset = len(f.Text)
	}

	toks, _ := scan(f.Text)
	active, prev := activeTokens(toks, offset)

	if dot, ok := memberDot(active, prev, offset); ok {
		return ls.memberEntries(dot)
	}
	if inNewContext(active, prev, offset) {
		return ls.constructorEntries(offset)
	}
	return ls.scopeEntries(offset)
}

// activeTokens returns the token the cursor touches and the one before
// it. The active token is the last one starting before the offset.
func activeTokens(toks []Token, offset int) (active, prev Token) {
	idx := -1
	for i, tok := range toks {
		if tok.Kind == TokenEOF || tok.Start >= offset {
			break
		}
		idx = i
	}
	if idx < 0 {
		return Token{Kind: TokenEOF}, Token{Kind: TokenEOF}
	}
	active = toks[idx]
	if idx > 0 {
		prev = toks[idx-1]
	} else {
		prev = Token{Kind: TokenEOF}
	}
	return active, prev
}

// memberDot reports whether the offset sits in member-access position
// and returns the byte offset of the dot.
func memberDot(active, prev Token, offset int) (int, bool) {
	if active.IsPunct(".") && offset >= active.End {
		return active.Start, true
	}
	if active.Kind == TokenIdent && offset <= active.End && prev.IsPunct(".") {
		return prev.Start, true
	}
	return 0, false
}

// inNewContext reports whether the offset follows a new keyword where a
// class name is expected.
func inNewContext(active, prev Token, offset int) bool {
	if active.IsKeyword("new") && offset > active.End {
		return true
	}
	return active.Kind == TokenIdent && offset <= active.End && prev.IsKeyword("new")
}

func (ls *LanguageService) memberEntries(dot int) []CompletionEntry {
	member := findMemberByDot(ls.unit.file, dot)
	if member == nil {
		return []CompletionEntry{}
	}
	recv := ls.unit.info.typeOf(member.X)
	if recv == nil {
		return []CompletionEntry{}
	}
	entries := make([]CompletionEntry, 0, 8)
	for _, m := range membersOf(recv) {
		entries = append(entries, CompletionEntry{
			Name:     m.Name,
			Kind:     m.Kind,
			Detail:   m.Type.String(),
			SortText: "10" + m.Name,
		})
	}
	sortEntries(entries)
	return entries
}

func (ls *LanguageService) constructorEntries(offset int) []CompletionEntry {
	entries := make([]CompletionEntry, 0, 4)
	seen := make(map[string]bool)
	for sc := ls.unit.info.scope.innermost(offset); sc != nil; sc = sc.parent {
		for _, sym := range sc.order {
			if sym.Kind != KindClass || seen[sym.Name] {
				continue
			}
			seen[sym.Name] = true
			class, _ := sym.TypeDecl.(*Class)
			entries = append(entries, CompletionEntry{
				Name:     sym.Name,
				Kind:     KindConstructor,
				Detail:   ctorDetail(class),
				SortText: "10" + sym.Name,
			})
		}
	}
	sortEntries(entries)
	return entries
}

func ctorDetail(class *Class) string {
	if class == nil {
		return ""
	}
	s := "new " + class.Name + "("
	if class.Ctor != nil {
		for i, p := range class.Ctor.Params {
			if i > 0 {
				s += ", "
			}
			if p.Name != "" {
				s += p.Name + ": "
			}
			s += p.Type.String()
		}
	}
	return s + ")"
}

func (ls *LanguageService) scopeEntries(offset int) []CompletionEntry {
	entries := make([]CompletionEntry, 0, 32)
	seen := make(map[string]bool)
	for sc := ls.unit.info.scope.innermost(offset); sc != nil; sc = sc.parent {
		for _, sym := range sc.order {
			if sym.Name == "" || seen[sym.Name] {
				continue
			}
			// Locals are invisible before their declaration.
			if sym.local && offset < sym.DeclPos {
				continue
			}
			seen[sym.Name] = true
			entries = append(entries, symbolEntry(sym))
		}
	}
	for _, kw := range Keywords() {
		if seen[kw] {
			continue
		}
		entries = append(entries, CompletionEntry{
			Name:     kw,
			Kind:     KindKeyword,
			SortText: "15" + kw,
		})
	}
	sortEntries(entries)
	return entries
}

func symbolEntry(sym *Symbol) CompletionEntry {
	entry := CompletionEntry{
		Name:     sym.Name,
		Kind:     sym.Kind,
		SortText: "10" + sym.Name,
	}
	switch sym.Kind {
	case KindClass:
		entry.Detail = "class " + sym.Name
	case KindInterface:
		entry.Detail = "interface " + sym.Name
	case KindEnum:
		entry.Detail = "enum " + sym.Name
	case KindTypeParameter:
		entry.Detail = "type parameter"
	case KindAlias:
		if sym.TypeDecl != nil {
			entry.Detail = sym.TypeDecl.String()
		}
	default:
		if sym.Type != nil {
			entry.Detail = sym.Type.String()
		}
	}
	return entry
}

func sortEntries(entries []CompletionEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].SortText != entries[j].SortText {
			return entries[i].SortText < entries[j].SortText
		}
		return entries[i].Name < entries[j].Name
	})
}

// findMemberByDot locates the member access whose dot sits at the given
// byte offset.
func findMemberByDot(file *File, dot int) *MemberExpr {
	var found *MemberExpr
	var visitExpr func(Expr)
	var visitStmt func(Stmt)

	visitExpr = func(e Expr) {
		if e == nil || found != nil {
			return
		}
		switch x := e.(type) {
		case *MemberExpr:
			if x.DotPos == dot {
				found = x
				return
			}
			visitExpr(x.X)
		case *ArrayLit:
			for _, el := range x.Elems {
				visitExpr(el)
			}
		case *RecordLit:
			for _, f := range x.Fields {
				visitExpr(f.Value)
			}
		case *UnaryExpr:
			visitExpr(x.X)
		case *BinaryExpr:
			visitExpr(x.X)
			visitExpr(x.Y)
		case *CallExpr:
			visitExpr(x.Fun)
			for _, arg := range x.Args {
				visitExpr(arg)
			}
		case *IndexExpr:
			visitExpr(x.X)
			visitExpr(x.Index)
		case *NewExpr:
			for _, arg := range x.Args {
				visitExpr(arg)
			}
		case *ParenExpr:
			visitExpr(x.X)
		}
	}

	visitBlock := func(b *BlockStmt) {
		if b == nil {
			return
		}
		for _, st := range b.Stmts {
			visitStmt(st)
		}
	}

	visitStmt = func(s Stmt) {
		if s == nil || found != nil {
			return
		}
		switch x := s.(type) {
		case *LetDecl:
			visitExpr(x.Value)
		case *FunDecl:
			visitBlock(x.Body)
		case *ClassDecl:
			for _, m := range x.Members {
				switch mm := m.(type) {
				case *CtorMember:
					visitBlock(mm.Body)
				case *MethodMember:
					visitBlock(mm.Body)
				case *AccessorMember:
					visitBlock(mm.Body)
				}
			}
		case *ExprStmt:
			visitExpr(x.X)
		case *AssignStmt:
			visitExpr(x.Target)
			visitExpr(x.Value)
		case *IfStmt:
			visitExpr(x.Cond)
			visitBlock(x.Then)
			if x.Else != nil {
				visitStmt(x.Else)
			}
		case *WhileStmt:
			visitExpr(x.Cond)
			visitBlock(x.Body)
		case *ForInStmt:
			visitExpr(x.X)
			visitBlock(x.Body)
		case *ReturnStmt:
			visitExpr(x.Value)
		case *BlockStmt:
			visitBlock(x)
		}
	}

	for _, st := range file.Stmts {
		visitStmt(st)
		if found != nil {
			break
		}
	}
	return found
}
