package squall

import "fmt"

// parser turns a token stream into a File. It is error tolerant: every
// malformed construct becomes a diagnostic plus a Bad node or a best
// effort partial node, and parsing continues at the next statement
// boundary. Tooling depends on partial nodes; in particular a dangling
// member access like "x." still yields a MemberExpr.
type parser struct {
	src   string
	toks  []Token
	pos   int
	diags []Diagnostic
}

// parseFile scans and parses src. The returned diagnostics cover both
// lexical and syntactic problems, in source order of detection.
func parseFile(src string) (*File, []Diagnostic) {
	toks, diags := scan(src)
	p := &parser{src: src, toks: toks, diags: diags}
	file := &File{Size: len(src)}
	for !p.atEOF() {
		before := p.pos
		file.Stmts = append(file.Stmts, p.statement(true))
		if p.pos == before {
			p.pos++ // never stall
		}
	}
	return file, p.diags
}

// --- token helpers ---

func (p *parser) cur() Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

func (p *parser) prev() Token {
	if p.pos == 0 {
		return p.toks[0]
	}
	if p.pos-1 >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos-1]
}

func (p *parser) next() Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) peek(n int) Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *parser) atEOF() bool { return p.cur().Kind == TokenEOF }

func (p *parser) errorAt(tok Token, code int, format string, args ...any) {
	length := tok.End - tok.Start
	if length == 0 {
		length = 1
	}
	p.diags = append(p.diags, Diagnostic{
		Start:    tok.Start,
		Length:   length,
		Category: CategoryError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
	})
}

// expectPunct consumes the given punctuation and returns its position.
// On a mismatch it reports a diagnostic and returns the current token's
// position without consuming, so callers can resynchronize.
func (p *parser) expectPunct(s string) int {
	if p.cur().IsPunct(s) {
		return p.next().Start
	}
	p.errorAt(p.cur(), 1100, "expected %q, found %s", s, describe(p.cur()))
	return p.cur().Start
}

func (p *parser) expectIdent() *Ident {
	if p.cur().Kind == TokenIdent {
		tok := p.next()
		return &Ident{NamePos: tok.Start, Name: tok.Text}
	}
	p.errorAt(p.cur(), 1101, "expected identifier, found %s", describe(p.cur()))
	return &Ident{NamePos: p.cur().Start, Name: ""}
}

func (p *parser) eatSemi() int {
	if p.cur().IsPunct(";") {
		return p.next().End
	}
	return p.prev().End
}

func describe(tok Token) string {
	switch tok.Kind {
	case TokenEOF:
		return "end of file"
	case TokenIdent, TokenKeyword, TokenOperator, TokenPunct:
		return fmt.Sprintf("%q", tok.Text)
	default:
		return tok.Kind.String()
	}
}

// sync skips ahead to the next likely statement start. At least one
// token is consumed so the caller always makes progress.
func (p *parser) sync() {
	p.next()
	for !p.atEOF() {
		tok := p.cur()
		if tok.IsPunct("}") || tok.IsPunct(";") {
			return
		}
		if tok.Kind == TokenKeyword {
			switch tok.Text {
			case "let", "const", "fun", "class", "interface", "enum",
				"type", "import", "if", "while", "for", "return",
				"break", "continue":
				return
			}
		}
		p.next()
	}
}

// --- statements ---

// statement parses one statement or declaration. topLevel gates the
// declaration forms that may only appear at the outermost scope.
func (p *parser) statement(topLevel bool) Stmt {
	tok := p.cur()

	if tok.Kind == TokenKeyword {
		switch tok.Text {
		case "let", "const":
			return p.letDecl()
		case "fun":
			p.requireTopLevel(topLevel, tok, "function")
			return p.funDecl()
		case "class":
			p.requireTopLevel(topLevel, tok, "class")
			return p.classDecl()
		case "interface":
			p.requireTopLevel(topLevel, tok, "interface")
			return p.interfaceDecl()
		case "enum":
			p.requireTopLevel(topLevel, tok, "enum")
			return p.enumDecl()
		case "type":
			p.requireTopLevel(topLevel, tok, "type alias")
			return p.typeAliasDecl()
		case "import":
			p.requireTopLevel(topLevel, tok, "import")
			return p.importDecl()
		case "if":
			return p.ifStmt()
		case "while":
			return p.whileStmt()
		case "for":
			return p.forStmt()
		case "return":
			return p.returnStmt()
		case "break":
			return &BreakStmt{KwPos: p.next().Start}
		case "continue":
			return &ContinueStmt{KwPos: p.next().Start}
		}
	}
	if tok.IsPunct("{") {
		return p.blockStmt()
	}
	if tok.IsPunct(";") {
		// Stray semicolon; swallow it as an empty bad statement.
		p.next()
		return &BadStmt{From: tok.Start, To: tok.End}
	}

	return p.simpleStmt()
}

func (p *parser) requireTopLevel(topLevel bool, tok Token, what string) {
	if !topLevel {
		p.errorAt(tok, 1102, "%s declarations are only allowed at the top level", what)
	}
}

// simpleStmt parses an expression statement or an assignment.
func (p *parser) simpleStmt() Stmt {
	start := p.cur()
	x := p.expression()
	if bad, ok := x.(*BadExpr); ok && bad.From == start.Start && p.cur().Start == start.Start {
		p.sync()
	}
	if p.cur().IsOperator("=") {
		eq := p.next().Start
		switch x.(type) {
		case *Ident, *MemberExpr, *IndexExpr:
		default:
			p.errorAt(start, 1103, "cannot assign to this expression")
		}
		value := p.expression()
		p.eatSemi()
		return &AssignStmt{Target: x, EqPos: eq, Value: value}
	}
	p.eatSemi()
	return &ExprStmt{X: x}
}

func (p *parser) letDecl() Stmt {
	kw := p.next()
	name := p.expectIdent()
	var typ TypeExpr
	var value Expr
	if p.cur().IsPunct(":") {
		p.next()
		typ = p.parseType()
	}
	if p.cur().IsOperator("=") {
		p.next()
		value = p.expression()
	}
	if typ == nil && value == nil {
		p.errorAt(kw, 1104, "declaration needs a type annotation or an initializer")
	}
	if kw.Text == "const" && value == nil {
		p.errorAt(kw, 1105, "const declaration needs an initializer")
	}
	end := p.eatSemi()
	return &LetDecl{KwPos: kw.Start, Const: kw.Text == "const", Name: name, Type: typ, Value: value, EndPos: end}
}

func (p *parser) funDecl() Stmt {
	fun := p.next()
	name := p.expectIdent()

	var typeParams []*Ident
	if p.cur().IsOperator("<") {
		p.next()
		for {
			typeParams = append(typeParams, p.expectIdent())
			if !p.cur().IsPunct(",") {
				break
			}
			p.next()
		}
		if p.cur().IsOperator(">") {
			p.next()
		} else {
			p.errorAt(p.cur(), 1100, "expected %q, found %s", ">", describe(p.cur()))
		}
	}

	params := p.paramList()
	var result TypeExpr
	if p.cur().IsPunct(":") {
		p.next()
		result = p.parseType()
	}
	body := p.blockStmt()
	return &FunDecl{FunPos: fun.Start, Name: name, TypeParams: typeParams, Params: params, Result: result, Body: body}
}

func (p *parser) paramList() []*Param {
	p.expectPunct("(")
	var params []*Param
	for !p.cur().IsPunct(")") && !p.atEOF() {
		name := p.expectIdent()
		var typ TypeExpr
		if p.cur().IsPunct(":") {
			p.next()
			typ = p.parseType()
		} else {
			p.errorAt(p.cur(), 1106, "parameter %q needs a type annotation", name.Name)
		}
		params = append(params, &Param{Name: name, Type: typ})
		if !p.cur().IsPunct(",") {
			break
		}
		p.next()
	}
	p.expectPunct(")")
	return params
}

func (p *parser) classDecl() Stmt {
	class := p.next()
	name := p.expectIdent()

	var impls []*Ident
	if p.cur().IsKeyword("implements") {
		p.next()
		for {
			impls = append(impls, p.expectIdent())
			if !p.cur().IsPunct(",") {
				break
			}
			p.next()
		}
	}

	p.expectPunct("{")
	var members []ClassMember
	for !p.cur().IsPunct("}") && !p.atEOF() {
		before := p.pos
		if m := p.classMember(); m != nil {
			members = append(members, m)
		}
		if p.pos == before {
			p.next()
		}
	}
	rbrace := p.expectPunct("}")
	return &ClassDecl{ClassPos: class.Start, Name: name, Implements: impls, Members: members, Rbrace: rbrace}
}

func (p *parser) classMember() ClassMember {
	tok := p.cur()
	switch {
	case tok.IsKeyword("let"):
		let := p.next()
		name := p.expectIdent()
		p.expectPunct(":")
		typ := p.parseType()
		end := p.eatSemi()
		return &FieldMember{LetPos: let.Start, Name: name, Type: typ, EndPos: end}

	case tok.IsKeyword("new"):
		kw := p.next()
		params := p.paramList()
		body := p.blockStmt()
		return &CtorMember{NewPos: kw.Start, Params: params, Body: body}

	case tok.IsKeyword("fun"):
		kw := p.next()
		name := p.expectIdent()
		params := p.paramList()
		var result TypeExpr
		if p.cur().IsPunct(":") {
			p.next()
			result = p.parseType()
		}
		body := p.blockStmt()
		return &MethodMember{FunPos: kw.Start, Name: name, Params: params, Result: result, Body: body}

	case tok.Kind == TokenIdent && (tok.Text == "get" || tok.Text == "set"):
		kw := p.next()
		name := p.expectIdent()
		setter := kw.Text == "set"
		m := &AccessorMember{KwPos: kw.Start, Setter: setter, Name: name}
		if setter {
			params := p.paramList()
			if len(params) == 1 {
				m.Param = params[0]
			} else {
				p.errorAt(kw, 1107, "set accessor needs exactly one parameter")
			}
		} else {
			p.expectPunct("(")
			p.expectPunct(")")
			if p.cur().IsPunct(":") {
				p.next()
				m.Result = p.parseType()
			}
		}
		m.Body = p.blockStmt()
		return m
	}

	p.errorAt(tok, 1108, "expected class member, found %s", describe(tok))
	return nil
}

func (p *parser) interfaceDecl() Stmt {
	iface := p.next()
	name := p.expectIdent()
	p.expectPunct("{")
	var members []IfaceMember
	for !p.cur().IsPunct("}") && !p.atEOF() {
		tok := p.cur()
		switch {
		case tok.IsKeyword("fun"):
			p.next()
			mname := p.expectIdent()
			params := p.paramList()
			var result TypeExpr
			if p.cur().IsPunct(":") {
				p.next()
				result = p.parseType()
			}
			end := p.eatSemi()
			members = append(members, IfaceMember{Pos: tok.Start, Method: true, Name: mname, Params: params, Result: result, EndPos: end})
		case tok.IsKeyword("let"):
			p.next()
			mname := p.expectIdent()
			p.expectPunct(":")
			typ := p.parseType()
			end := p.eatSemi()
			members = append(members, IfaceMember{Pos: tok.Start, Name: mname, Result: typ, EndPos: end})
		default:
			p.errorAt(tok, 1109, "expected interface member, found %s", describe(tok))
			p.next()
		}
	}
	rbrace := p.expectPunct("}")
	return &InterfaceDecl{IfacePos: iface.Start, Name: name, Members: members, Rbrace: rbrace}
}

func (p *parser) enumDecl() Stmt {
	enum := p.next()
	name := p.expectIdent()
	p.expectPunct("{")
	var members []*Ident
	for !p.cur().IsPunct("}") && !p.atEOF() {
		if p.cur().Kind != TokenIdent {
			p.errorAt(p.cur(), 1110, "expected enum member name, found %s", describe(p.cur()))
			p.next()
			continue
		}
		members = append(members, p.expectIdent())
		if p.cur().IsPunct(",") {
			p.next()
		}
	}
	rbrace := p.expectPunct("}")
	return &EnumDecl{EnumPos: enum.Start, Name: name, Members: members, Rbrace: rbrace}
}

func (p *parser) typeAliasDecl() Stmt {
	kw := p.next()
	name := p.expectIdent()
	if p.cur().IsOperator("=") {
		p.next()
	} else {
		p.errorAt(p.cur(), 1100, "expected %q, found %s", "=", describe(p.cur()))
	}
	target := p.parseType()
	end := p.eatSemi()
	return &TypeAliasDecl{TypePos: kw.Start, Name: name, Target: target, EndPos: end}
}

func (p *parser) importDecl() Stmt {
	kw := p.next()
	name := p.expectIdent()
	if p.cur().IsKeyword("from") {
		p.next()
	} else {
		p.errorAt(p.cur(), 1100, "expected %q, found %s", "from", describe(p.cur()))
	}
	var path *StringLit
	if p.cur().Kind == TokenString {
		tok := p.next()
		path = &StringLit{ValuePos: tok.Start, Raw: tok.Text, Value: unquote(tok.Text)}
	} else {
		p.errorAt(p.cur(), 1111, "expected module path string, found %s", describe(p.cur()))
		path = &StringLit{ValuePos: p.cur().Start}
	}
	end := p.eatSemi()
	return &ImportDecl{ImportPos: kw.Start, Name: name, Path: path, EndPos: end}
}

func (p *parser) ifStmt() Stmt {
	kw := p.next()
	cond := p.expression()
	then := p.blockStmt()
	var els Stmt
	if p.cur().IsKeyword("else") {
		p.next()
		if p.cur().IsKeyword("if") {
			els = p.ifStmt()
		} else {
			els = p.blockStmt()
		}
	}
	return &IfStmt{IfPos: kw.Start, Cond: cond, Then: then, Else: els}
}

func (p *parser) whileStmt() Stmt {
	kw := p.next()
	cond := p.expression()
	body := p.blockStmt()
	return &WhileStmt{WhilePos: kw.Start, Cond: cond, Body: body}
}

func (p *parser) forStmt() Stmt {
	kw := p.next()
	name := p.expectIdent()
	if p.cur().IsKeyword("in") {
		p.next()
	} else {
		p.errorAt(p.cur(), 1100, "expected %q, found %s", "in", describe(p.cur()))
	}
	x := p.expression()
	body := p.blockStmt()
	return &ForInStmt{ForPos: kw.Start, Var: name, X: x, Body: body}
}

func (p *parser) returnStmt() Stmt {
	kw := p.next()
	var value Expr
	// A value must start on the same line as the return keyword.
	if p.startsExpression(p.cur()) && p.cur().Line == kw.Line {
		value = p.expression()
	}
	end := p.eatSemi()
	if value != nil && end < value.End() {
		end = value.End()
	}
	if end < kw.End {
		end = kw.End
	}
	return &ReturnStmt{ReturnPos: kw.Start, Value: value, EndPos: end}
}

func (p *parser) blockStmt() *BlockStmt {
	lbrace := p.expectPunct("{")
	block := &BlockStmt{Lbrace: lbrace}
	if !p.prev().IsPunct("{") {
		// No opening brace was found; produce an empty block.
		block.Rbrace = lbrace
		return block
	}
	for !p.cur().IsPunct("}") && !p.atEOF() {
		before := p.pos
		block.Stmts = append(block.Stmts, p.statement(false))
		if p.pos == before {
			p.next()
		}
	}
	block.Rbrace = p.expectPunct("}")
	return block
}

// --- types ---

func (p *parser) parseType() TypeExpr {
	tok := p.cur()
	switch {
	case tok.IsPunct("["):
		lbrack := p.next().Start
		elem := p.parseType()
		rbrack := p.expectPunct("]")
		return &ArrayType{Lbrack: lbrack, Elem: elem, Rbrack: rbrack}

	case tok.IsPunct("{"):
		lbrace := p.next().Start
		var fields []FieldType
		for !p.cur().IsPunct("}") && !p.atEOF() {
			name := p.expectIdent()
			p.expectPunct(":")
			typ := p.parseType()
			fields = append(fields, FieldType{Name: name, Type: typ})
			if !p.cur().IsPunct(",") {
				break
			}
			p.next()
		}
		rbrace := p.expectPunct("}")
		return &RecordType{Lbrace: lbrace, Fields: fields, Rbrace: rbrace}

	case tok.IsKeyword("fun"):
		fun := p.next().Start
		p.expectPunct("(")
		var params []FuncTypeParam
		for !p.cur().IsPunct(")") && !p.atEOF() {
			var param FuncTypeParam
			if p.cur().Kind == TokenIdent && p.peek(1).IsPunct(":") {
				param.Name = p.expectIdent()
				p.next() // colon
			}
			param.Type = p.parseType()
			params = append(params, param)
			if !p.cur().IsPunct(",") {
				break
			}
			p.next()
		}
		end := p.expectPunct(")") + 1
		var result TypeExpr
		if p.cur().IsPunct(":") {
			p.next()
			result = p.parseType()
			end = result.End()
		}
		return &FuncType{FunPos: fun, Params: params, Result: result, EndPos: end}

	case tok.Kind == TokenIdent:
		name := p.expectIdent()
		ref := &TypeRef{Name: name, Gt: -1}
		if p.cur().IsOperator("<") {
			p.next()
			for {
				ref.Args = append(ref.Args, p.parseType())
				if !p.cur().IsPunct(",") {
					break
				}
				p.next()
			}
			if p.cur().IsOperator(">") {
				ref.Gt = p.next().Start
			} else {
				p.errorAt(p.cur(), 1100, "expected %q, found %s", ">", describe(p.cur()))
				ref.Gt = p.cur().Start
			}
		}
		return ref
	}

	p.errorAt(tok, 1112, "expected type, found %s", describe(tok))
	return &BadType{From: tok.Start, To: tok.End}
}

// --- expressions ---

// binaryPrec returns the precedence of an infix token, or 0.
func binaryPrec(tok Token) int {
	if tok.Kind == TokenKeyword {
		switch tok.Text {
		case "or":
			return 1
		case "and":
			return 2
		}
		return 0
	}
	if tok.Kind != TokenOperator {
		return 0
	}
	switch tok.Text {
	case "==", "!=":
		return 3
	case "<", "<=", ">", ">=":
		return 4
	case "+", "-":
		return 5
	case "*", "/", "%":
		return 6
	}
	return 0
}

func (p *parser) startsExpression(tok Token) bool {
	switch tok.Kind {
	case TokenIdent, TokenInt, TokenFloat, TokenString:
		return true
	case TokenKeyword:
		switch tok.Text {
		case "true", "false", "null", "this", "new", "not":
			return true
		}
		return false
	case TokenOperator:
		return tok.Text == "-" || tok.Text == "!"
	case TokenPunct:
		return tok.Text == "(" || tok.Text == "[" || tok.Text == "{"
	}
	return false
}

func (p *parser) expression() Expr {
	return p.binaryExpr(1)
}

func (p *parser) binaryExpr(minPrec int) Expr {
	x := p.unaryExpr()
	for {
		prec := binaryPrec(p.cur())
		if prec < minPrec {
			return x
		}
		op := p.next()
		y := p.binaryExpr(prec + 1)
		x = &BinaryExpr{X: x, OpPos: op.Start, Op: op.Text, Y: y}
	}
}

func (p *parser) unaryExpr() Expr {
	tok := p.cur()
	if tok.IsKeyword("not") || tok.IsOperator("-") || tok.IsOperator("!") {
		op := p.next()
		x := p.unaryExpr()
		return &UnaryExpr{OpPos: op.Start, Op: op.Text, X: x}
	}
	return p.postfixExpr()
}

// postfixExpr parses a primary expression followed by member, call, and
// index suffixes. Call and index suffixes must open on the same line as
// the preceding token; member dots may cross lines.
func (p *parser) postfixExpr() Expr {
	x := p.primaryExpr()
	for {
		tok := p.cur()
		switch {
		case tok.IsPunct("."):
			dot := p.next()
			var name *Ident
			if p.cur().Kind == TokenIdent {
				name = p.expectIdent()
			} else {
				p.errorAt(p.cur(), 1113, "expected member name after %q", ".")
				name = &Ident{NamePos: dot.End, Name: ""}
			}
			x = &MemberExpr{X: x, DotPos: dot.Start, Name: name}

		case tok.IsPunct("(") && tok.Line == p.prev().Line:
			lparen := p.next().Start
			args := p.argList()
			rparen := p.expectPunct(")")
			x = &CallExpr{Fun: x, Lparen: lparen, Args: args, Rparen: rparen}

		case tok.IsPunct("[") && tok.Line == p.prev().Line:
			lbrack := p.next().Start
			index := p.expression()
			rbrack := p.expectPunct("]")
			x = &IndexExpr{X: x, Lbrack: lbrack, Index: index, Rbrack: rbrack}

		default:
			return x
		}
	}
}

func (p *parser) argList() []Expr {
	var args []Expr
	for !p.cur().IsPunct(")") && !p.atEOF() {
		args = append(args, p.expression())
		if !p.cur().IsPunct(",") {
			break
		}
		p.next()
	}
	return args
}

func (p *parser) primaryExpr() Expr {
	tok := p.cur()

	switch tok.Kind {
	case TokenInt:
		p.next()
		return &IntLit{ValuePos: tok.Start, Raw: tok.Text}
	case TokenFloat:
		p.next()
		return &FloatLit{ValuePos: tok.Start, Raw: tok.Text}
	case TokenString:
		p.next()
		return &StringLit{ValuePos: tok.Start, Raw: tok.Text, Value: unquote(tok.Text)}
	case TokenIdent:
		p.next()
		return &Ident{NamePos: tok.Start, Name: tok.Text}
	}

	if tok.Kind == TokenKeyword {
		switch tok.Text {
		case "true":
			p.next()
			return &BoolLit{ValuePos: tok.Start, Value: true}
		case "false":
			p.next()
			return &BoolLit{ValuePos: tok.Start, Value: false}
		case "null":
			p.next()
			return &NullLit{ValuePos: tok.Start}
		case "this":
			p.next()
			return &ThisExpr{ThisPos: tok.Start}
		case "new":
			kw := p.next()
			class := p.expectIdent()
			lparen := p.expectPunct("(")
			args := p.argList()
			rparen := p.expectPunct(")")
			return &NewExpr{NewPos: kw.Start, Class: class, Lparen: lparen, Args: args, Rparen: rparen}
		}
	}

	switch {
	case tok.IsPunct("("):
		lparen := p.next().Start
		x := p.expression()
		rparen := p.expectPunct(")")
		return &ParenExpr{Lparen: lparen, X: x, Rparen: rparen}

	case tok.IsPunct("["):
		lbrack := p.next().Start
		var elems []Expr
		for !p.cur().IsPunct("]") && !p.atEOF() {
			elems = append(elems, p.expression())
			if !p.cur().IsPunct(",") {
				break
			}
			p.next()
		}
		rbrack := p.expectPunct("]")
		return &ArrayLit{Lbrack: lbrack, Elems: elems, Rbrack: rbrack}

	case tok.IsPunct("{"):
		lbrace := p.next().Start
		var fields []RecordField
		for !p.cur().IsPunct("}") && !p.atEOF() {
			name := p.expectIdent()
			p.expectPunct(":")
			value := p.expression()
			fields = append(fields, RecordField{Name: name, Value: value})
			if !p.cur().IsPunct(",") {
				break
			}
			p.next()
		}
		rbrace := p.expectPunct("}")
		return &RecordLit{Lbrace: lbrace, Fields: fields, Rbrace: rbrace}
	}

	p.errorAt(tok, 1114, "expected expression, found %s", describe(tok))
	return &BadExpr{From: tok.Start, To: tok.End}
}

// unquote decodes a string literal body, tolerating a missing closing
// quote. Unknown escapes decode to the escaped character itself.
func unquote(raw string) string {
	if len(raw) < 2 {
		return ""
	}
	body := raw[1:]
	if body[len(body)-1] == '"' {
		body = body[:len(body)-1]
	}
	if !containsByte(body, '\\') {
		return body
	}
	var b []byte
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			b = append(b, c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			b = append(b, '\n')
		case 't':
			b = append(b, '\t')
		case 'r':
			b = append(b, '\r')
		default:
			b = append(b, body[i])
		}
	}
	return string(b)
}

func containsByte(s string, c byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return true
		}
	}
	return false
}
