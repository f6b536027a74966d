package bridge

import (
	"github.com/dshills/squall/internal/protocol"
	"github.com/dshills/squall/internal/squall"
)

// DiagnosticSource tags every diagnostic this bridge emits.
const DiagnosticSource = "squall"

// CompletionData is the opaque continuation attached to every
// completion item, identifying the originating file and byte offset for
// a later resolve step.
type CompletionData struct {
	URI    protocol.DocumentURI `json:"uri"`
	Offset int                  `json:"offset"`
}

// completionKinds joins the engine's element-kind taxonomy to the
// protocol's completion-item kinds. The table is total over the engine's
// closed set; kindFor falls back to Text for anything outside it.
var completionKinds = map[squall.ElementKind]protocol.CompletionItemKind{
	squall.KindKeyword:        protocol.CompletionItemKindKeyword,
	squall.KindFunction:       protocol.CompletionItemKindFunction,
	squall.KindMemberFunction: protocol.CompletionItemKindMethod,
	squall.KindGetAccessor:    protocol.CompletionItemKindProperty,
	squall.KindSetAccessor:    protocol.CompletionItemKindProperty,
	squall.KindProperty:       protocol.CompletionItemKindProperty,
	squall.KindClass:          protocol.CompletionItemKindClass,
	squall.KindInterface:      protocol.CompletionItemKindInterface,
	squall.KindEnum:           protocol.CompletionItemKindEnum,
	squall.KindEnumMember:     protocol.CompletionItemKindEnumMember,
	squall.KindModule:         protocol.CompletionItemKindModule,
	squall.KindVar:            protocol.CompletionItemKindVariable,
	squall.KindLocalVar:       protocol.CompletionItemKindVariable,
	squall.KindParameter:      protocol.CompletionItemKindVariable,
	squall.KindConst:          protocol.CompletionItemKindConstant,
	squall.KindTypeParameter:  protocol.CompletionItemKindTypeParameter,
	squall.KindConstructor:    protocol.CompletionItemKindConstructor,
	squall.KindAlias:          protocol.CompletionItemKindReference,
}

// kindFor maps an engine element kind to a completion-item kind.
func kindFor(kind squall.ElementKind) protocol.CompletionItemKind {
	if k, ok := completionKinds[kind]; ok {
		return k
	}
	return protocol.CompletionItemKindText
}

// severities maps the engine's native diagnostic categories onto the
// protocol scale.
var severities = map[squall.Category]protocol.DiagnosticSeverity{
	squall.CategoryError:      protocol.DiagnosticSeverityError,
	squall.CategoryWarning:    protocol.DiagnosticSeverityWarning,
	squall.CategorySuggestion: protocol.DiagnosticSeverityHint,
	squall.CategoryMessage:    protocol.DiagnosticSeverityInformation,
}

// translateDiagnostics converts engine diagnostics for the file at path
// into protocol diagnostics: syntactic first, then semantic. When the
// unit holds no file by that name the result is empty, never an error.
// With collapse set every diagnostic is promoted to error severity
// regardless of its native category.
func translateDiagnostics(unit *squall.Unit, path string, collapse bool) []protocol.Diagnostic {
	file := unit.File(path)
	if file == nil {
		return []protocol.Diagnostic{}
	}

	native := unit.SyntacticDiagnostics(path)
	native = append(native, unit.SemanticDiagnostics(path)...)

	lm := file.LineMap()
	out := make([]protocol.Diagnostic, 0, len(native))
	for _, d := range native {
		severity := protocol.DiagnosticSeverityError
		if !collapse {
			if s, ok := severities[d.Category]; ok {
				severity = s
			}
		}
		startLine, startChar := lm.Position(d.Start)
		endLine, endChar := lm.Position(d.Start + d.Length)
		out = append(out, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: startLine, Character: startChar},
				End:   protocol.Position{Line: endLine, Character: endChar},
			},
			Severity: severity,
			Code:     d.Code,
			Source:   DiagnosticSource,
			Message:  d.FlattenMessage(),
		})
	}
	return out
}

// translateCompletions queries a request-scoped language service bound
// to the unit for entries at the given position and converts them to
// protocol items. The list is always complete; a missing file or an
// empty entry set both yield an empty complete list.
func translateCompletions(unit *squall.Unit, doc protocol.TextDocumentItem, pos protocol.Position, limit int) *protocol.CompletionList {
	list := &protocol.CompletionList{Items: []protocol.CompletionItem{}}

	path := protocol.URIToFilePath(doc.URI)
	file := unit.File(path)
	if file == nil {
		return list
	}

	offset := file.LineMap().Offset(pos.Line, pos.Character)
	entries := squall.NewLanguageService(unit).CompletionsAt(path, offset)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	for _, e := range entries {
		list.Items = append(list.Items, protocol.CompletionItem{
			Label:    e.Name,
			Kind:     kindFor(e.Kind),
			Detail:   e.Detail,
			SortText: e.SortText,
			Data:     CompletionData{URI: doc.URI, Offset: offset},
		})
	}
	return list
}
