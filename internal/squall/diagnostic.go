package squall

import "strings"

// Category classifies a diagnostic by the engine's native severity scale.
// The scale is wider than the two levels most editors surface; consumers
// decide how to present Suggestion and Message.
type Category int

const (
	CategoryError Category = iota
	CategoryWarning
	CategorySuggestion
	CategoryMessage
)

// String returns the lowercase name of the category.
func (c Category) String() string {
	switch c {
	case CategoryError:
		return "error"
	case CategoryWarning:
		return "warning"
	case CategorySuggestion:
		return "suggestion"
	case CategoryMessage:
		return "message"
	default:
		return "unknown"
	}
}

// Diagnostic is a single finding against the unit's root file. Start and
// Length are byte offsets into the file text. Chain holds nested causes,
// one entry per level, outermost first.
type Diagnostic struct {
	Start    int
	Length   int
	Category Category
	Code     int
	Message  string
	Chain    []string
}

// FlattenMessage renders the message and its cause chain as a single
// string. Nested causes are newline separated and indented two spaces
// per level so the structure survives as plain text.
func (d Diagnostic) FlattenMessage() string {
	if len(d.Chain) == 0 {
		return d.Message
	}
	var b strings.Builder
	b.WriteString(d.Message)
	for i, cause := range d.Chain {
		b.WriteByte('\n')
		b.WriteString(strings.Repeat("  ", i+1))
		b.WriteString(cause)
	}
	return b.String()
}
