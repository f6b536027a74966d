package squall

// TokenKind identifies the lexical class of a token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenIdent
	TokenInt
	TokenFloat
	TokenString
	TokenKeyword
	TokenOperator
	TokenPunct
	TokenBad
)

// Token is a single lexical token with its byte span in the source.
type Token struct {
	Kind  TokenKind
	Text  string
	Start int // byte offset of the first byte
	End   int // byte offset one past the last byte
	Line  int // zero-based line of the first byte
}

// IsKeyword reports whether the token is the given keyword.
func (t Token) IsKeyword(kw string) bool {
	return t.Kind == TokenKeyword && t.Text == kw
}

// IsPunct reports whether the token is the given punctuation.
func (t Token) IsPunct(p string) bool {
	return t.Kind == TokenPunct && t.Text == p
}

// IsOperator reports whether the token is the given operator.
func (t Token) IsOperator(op string) bool {
	return t.Kind == TokenOperator && t.Text == op
}

// keywords maps reserved words to their keyword status. Words used only in
// member position, such as get and set, stay ordinary identifiers.
var keywords = map[string]bool{
	"let":        true,
	"const":      true,
	"fun":        true,
	"class":      true,
	"interface":  true,
	"enum":       true,
	"type":       true,
	"import":     true,
	"from":       true,
	"new":        true,
	"return":     true,
	"break":      true,
	"continue":   true,
	"if":         true,
	"else":       true,
	"while":      true,
	"for":        true,
	"in":         true,
	"implements": true,
	"this":       true,
	"true":       true,
	"false":      true,
	"null":       true,
	"and":        true,
	"or":         true,
	"not":        true,
}

// Keywords returns the reserved words of the language in stable order.
// Completion uses this to offer keyword entries.
func Keywords() []string {
	return []string{
		"and", "break", "class", "const", "continue", "else", "enum",
		"false", "for", "from", "fun", "if", "implements", "import",
		"in", "interface", "let", "new", "not", "null", "or",
		"return", "this", "true", "type", "while",
	}
}

// String returns a human readable name for the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "end of file"
	case TokenIdent:
		return "identifier"
	case TokenInt:
		return "integer literal"
	case TokenFloat:
		return "float literal"
	case TokenString:
		return "string literal"
	case TokenKeyword:
		return "keyword"
	case TokenOperator:
		return "operator"
	case TokenPunct:
		return "punctuation"
	case TokenBad:
		return "invalid token"
	default:
		return "unknown"
	}
}
