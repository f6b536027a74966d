package mode

import (
	"errors"
	"strings"

	"github.com/yuin/gopher-lua/parse"

	"github.com/dshills/squall/internal/protocol"
)

// LuaMode is the secondary embedded-language mode. It has no
// whole-program engine behind it: validation is gopher-lua's parser and
// completion is the fixed Lua vocabulary, which is all an embedded
// script block needs for basic feedback.
type LuaMode struct{}

// NewLuaMode returns the lua mode.
func NewLuaMode() *LuaMode { return &LuaMode{} }

// ID returns the language ID this mode owns.
func (m *LuaMode) ID() string { return "lua" }

// Validate parses the document as a Lua chunk and reports the first
// syntax error, if any, at its line and column.
func (m *LuaMode) Validate(doc protocol.TextDocumentItem) ([]protocol.Diagnostic, error) {
	_, err := parse.Parse(strings.NewReader(doc.Text), string(doc.URI))
	if err == nil {
		return []protocol.Diagnostic{}, nil
	}

	var perr *parse.Error
	if !errors.As(err, &perr) {
		return nil, err
	}

	lines := strings.Split(doc.Text, "\n")
	line := perr.Pos.Line - 1
	if line < 0 || line >= len(lines) {
		line = len(lines) - 1
	}
	col := perr.Pos.Column - 1
	if col < 0 {
		col = 0
	}
	end := col + len(perr.Token)
	if end == col {
		end = col + 1
	}

	return []protocol.Diagnostic{{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: col},
			End:   protocol.Position{Line: line, Character: end},
		},
		Severity: protocol.DiagnosticSeverityError,
		Source:   "lua",
		Message:  perr.Message,
	}}, nil
}

// luaKeywords is Lua 5.1's reserved word list.
var luaKeywords = []string{
	"and", "break", "do", "else", "elseif", "end", "false", "for",
	"function", "if", "in", "local", "nil", "not", "or", "repeat",
	"return", "then", "true", "until", "while",
}

// luaGlobals is the base library surface offered in completion.
var luaGlobals = []struct {
	name string
	kind protocol.CompletionItemKind
}{
	{"assert", protocol.CompletionItemKindFunction},
	{"error", protocol.CompletionItemKindFunction},
	{"ipairs", protocol.CompletionItemKindFunction},
	{"next", protocol.CompletionItemKindFunction},
	{"pairs", protocol.CompletionItemKindFunction},
	{"pcall", protocol.CompletionItemKindFunction},
	{"print", protocol.CompletionItemKindFunction},
	{"select", protocol.CompletionItemKindFunction},
	{"setmetatable", protocol.CompletionItemKindFunction},
	{"tonumber", protocol.CompletionItemKindFunction},
	{"tostring", protocol.CompletionItemKindFunction},
	{"type", protocol.CompletionItemKindFunction},
	{"unpack", protocol.CompletionItemKindFunction},
	{"io", protocol.CompletionItemKindModule},
	{"math", protocol.CompletionItemKindModule},
	{"os", protocol.CompletionItemKindModule},
	{"string", protocol.CompletionItemKindModule},
	{"table", protocol.CompletionItemKindModule},
}

// Complete offers the Lua keywords and base globals. The list is static
// and always complete.
func (m *LuaMode) Complete(doc protocol.TextDocumentItem, pos protocol.Position) (*protocol.CompletionList, error) {
	items := make([]protocol.CompletionItem, 0, len(luaKeywords)+len(luaGlobals))
	for _, g := range luaGlobals {
		items = append(items, protocol.CompletionItem{
			Label:    g.name,
			Kind:     g.kind,
			SortText: "10" + g.name,
		})
	}
	for _, kw := range luaKeywords {
		items = append(items, protocol.CompletionItem{
			Label:    kw,
			Kind:     protocol.CompletionItemKindKeyword,
			SortText: "15" + kw,
		})
	}
	return &protocol.CompletionList{Items: items}, nil
}

// OnDocumentRemoved is a no-op; the mode keeps no per-document state.
func (m *LuaMode) OnDocumentRemoved(doc protocol.TextDocumentItem) {}

// Dispose is a no-op.
func (m *LuaMode) Dispose() {}
