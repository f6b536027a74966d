package squall

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// lexer scans Squall source into a token stream. It never stops on bad
// input; malformed constructs become diagnostics and scanning continues,
// so the parser always sees a complete stream ending in TokenEOF.
type lexer struct {
	src   string
	pos   int
	line  int
	diags []Diagnostic
}

// scan tokenizes src and returns the tokens plus any lexical diagnostics.
// The returned slice always ends with a TokenEOF token.
func scan(src string) ([]Token, []Diagnostic) {
	lx := &lexer{src: src}
	var toks []Token
	for {
		tok := lx.next()
		toks = append(toks, tok)
		if tok.Kind == TokenEOF {
			break
		}
	}
	return toks, lx.diags
}

func (lx *lexer) next() Token {
	lx.skipTrivia()

	start := lx.pos
	line := lx.line
	if lx.pos >= len(lx.src) {
		return Token{Kind: TokenEOF, Start: start, End: start, Line: line}
	}

	r, size := utf8.DecodeRuneInString(lx.src[lx.pos:])

	switch {
	case isIdentStart(r):
		lx.pos += size
		for lx.pos < len(lx.src) {
			r, size := utf8.DecodeRuneInString(lx.src[lx.pos:])
			if !isIdentPart(r) {
				break
			}
			lx.pos += size
		}
		text := lx.src[start:lx.pos]
		kind := TokenIdent
		if keywords[text] {
			kind = TokenKeyword
		}
		return Token{Kind: kind, Text: text, Start: start, End: lx.pos, Line: line}

	case r >= '0' && r <= '9':
		return lx.scanNumber(start, line)

	case r == '"':
		return lx.scanString(start, line)
	}

	// Operators and punctuation.
	two := ""
	if lx.pos+1 < len(lx.src) {
		two = lx.src[lx.pos : lx.pos+2]
	}
	switch two {
	case "==", "!=", "<=", ">=":
		lx.pos += 2
		return Token{Kind: TokenOperator, Text: two, Start: start, End: lx.pos, Line: line}
	}

	lx.pos += size
	text := lx.src[start:lx.pos]
	switch r {
	case '+', '-', '*', '/', '%', '<', '>', '=', '!':
		return Token{Kind: TokenOperator, Text: text, Start: start, End: lx.pos, Line: line}
	case '(', ')', '{', '}', '[', ']', ',', ':', ';', '.':
		return Token{Kind: TokenPunct, Text: text, Start: start, End: lx.pos, Line: line}
	}

	lx.addDiag(start, lx.pos-start, 1001, fmt.Sprintf("unexpected character %q", r))
	return Token{Kind: TokenBad, Text: text, Start: start, End: lx.pos, Line: line}
}

func (lx *lexer) scanNumber(start, line int) Token {
	for lx.pos < len(lx.src) && isDigit(lx.src[lx.pos]) {
		lx.pos++
	}
	kind := TokenInt
	if lx.pos+1 < len(lx.src) && lx.src[lx.pos] == '.' && isDigit(lx.src[lx.pos+1]) {
		kind = TokenFloat
		lx.pos++
		for lx.pos < len(lx.src) && isDigit(lx.src[lx.pos]) {
			lx.pos++
		}
	}
	return Token{Kind: kind, Text: lx.src[start:lx.pos], Start: start, End: lx.pos, Line: line}
}

// scanString scans a double-quoted string literal. An unterminated literal
// ends at the line break or end of input and produces a diagnostic.
func (lx *lexer) scanString(start, line int) Token {
	lx.pos++ // opening quote
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		if c == '"' {
			lx.pos++
			return Token{Kind: TokenString, Text: lx.src[start:lx.pos], Start: start, End: lx.pos, Line: line}
		}
		if c == '\n' {
			break
		}
		if c == '\\' && lx.pos+1 < len(lx.src) {
			lx.pos++
		}
		lx.pos++
	}
	lx.addDiag(start, lx.pos-start, 1002, "unterminated string literal")
	return Token{Kind: TokenString, Text: lx.src[start:lx.pos], Start: start, End: lx.pos, Line: line}
}

func (lx *lexer) skipTrivia() {
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		switch {
		case c == '\n':
			lx.line++
			lx.pos++
		case c == ' ' || c == '\t' || c == '\r':
			lx.pos++
		case c == '/' && lx.pos+1 < len(lx.src) && lx.src[lx.pos+1] == '/':
			for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
				lx.pos++
			}
		case c == '/' && lx.pos+1 < len(lx.src) && lx.src[lx.pos+1] == '*':
			start := lx.pos
			lx.pos += 2
			closed := false
			for lx.pos < len(lx.src) {
				if lx.src[lx.pos] == '\n' {
					lx.line++
				}
				if lx.src[lx.pos] == '*' && lx.pos+1 < len(lx.src) && lx.src[lx.pos+1] == '/' {
					lx.pos += 2
					closed = true
					break
				}
				lx.pos++
			}
			if !closed {
				lx.addDiag(start, lx.pos-start, 1003, "unterminated block comment")
			}
		default:
			return
		}
	}
}

func (lx *lexer) addDiag(start, length int, code int, msg string) {
	lx.diags = append(lx.diags, Diagnostic{
		Start:    start,
		Length:   length,
		Category: CategoryError,
		Code:     code,
		Message:  msg,
	})
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
