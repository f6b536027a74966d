// Package embedded extracts embedded-language regions from Markdown
// host documents. Each registered language found in fenced code blocks
// becomes one synthetic sub-document whose line and character layout
// matches the host exactly: every position in the sub-document is a
// valid host position verbatim, so no remapping table is needed.
package embedded

import (
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"

	"github.com/dshills/squall/internal/protocol"
)

// Extractor cuts registered-language regions out of Markdown text.
type Extractor struct {
	md        goldmark.Markdown
	languages []string
	known     map[string]bool
}

// New returns an Extractor for the given fence languages. Registration
// order is the order sub-documents are returned in.
func New(languages ...string) *Extractor {
	known := make(map[string]bool, len(languages))
	for _, lang := range languages {
		known[lang] = true
	}
	return &Extractor{
		md:        goldmark.New(),
		languages: languages,
		known:     known,
	}
}

// Languages returns the registered fence languages.
func (e *Extractor) Languages() []string {
	out := make([]string, len(e.languages))
	copy(out, e.languages)
	return out
}

// Region is one fenced block's byte span in the host text.
type Region struct {
	Language string
	Start    int
	End      int
}

// Extract returns one sub-document per registered language that appears
// in at least one fenced code block of the host text. Multiple blocks of
// the same language merge into a single layout-preserving document; the
// bridge analyzes them as one unit. The sub-document URI is the host URI
// with the language as fragment.
func (e *Extractor) Extract(hostURI protocol.DocumentURI, hostText string, version int) []protocol.TextDocumentItem {
	regions := e.Regions(hostText)
	if len(regions) == 0 {
		return nil
	}

	byLang := make(map[string][]Region)
	for _, r := range regions {
		byLang[r.Language] = append(byLang[r.Language], r)
	}

	var docs []protocol.TextDocumentItem
	for _, lang := range e.languages {
		rs := byLang[lang]
		if len(rs) == 0 {
			continue
		}
		docs = append(docs, protocol.TextDocumentItem{
			URI:        protocol.DocumentURI(string(hostURI) + "#" + lang),
			LanguageID: lang,
			Version:    version,
			Text:       blankOutside(hostText, rs),
		})
	}
	return docs
}

// Regions parses the host text and returns the byte spans of every
// fenced code block whose info string names a registered language, in
// document order.
func (e *Extractor) Regions(hostText string) []Region {
	source := []byte(hostText)
	root := e.md.Parser().Parse(gtext.NewReader(source))

	var regions []Region
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		lang := string(fcb.Language(source))
		if !e.known[lang] {
			return ast.WalkContinue, nil
		}
		lines := fcb.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			regions = append(regions, Region{Language: lang, Start: seg.Start, End: seg.Stop})
		}
		return ast.WalkContinue, nil
	})
	return regions
}

// RegionAt returns the language of the region containing the given byte
// offset, or "" when the offset is outside every registered region.
func (e *Extractor) RegionAt(hostText string, offset int) string {
	for _, r := range e.Regions(hostText) {
		if offset >= r.Start && offset < r.End {
			return r.Language
		}
	}
	return ""
}

// blankOutside copies the bytes inside the regions and replaces
// everything else with layout-equivalent whitespace: newlines survive,
// and every other rune becomes one space per UTF-16 code unit it
// occupies, so astral-plane runes turn into two spaces. Line count and
// per-line UTF-16 width are therefore identical to the host text.
func blankOutside(text string, regions []Region) string {
	keep := make([]bool, len(text))
	for _, r := range regions {
		for i := r.Start; i < r.End && i < len(text); i++ {
			keep[i] = true
		}
	}

	buf := make([]byte, 0, len(text))
	for i, r := range text {
		if keep[i] {
			buf = append(buf, text[i:i+utf8.RuneLen(r)]...)
			continue
		}
		switch {
		case r == '\n' || r == '\r':
			buf = append(buf, byte(r))
		case r >= 0x10000:
			buf = append(buf, ' ', ' ')
		default:
			buf = append(buf, ' ')
		}
	}
	return string(buf)
}
