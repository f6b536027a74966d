package bridge

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/squall/internal/project"
	"github.com/dshills/squall/internal/protocol"
)

// testDoc returns an embedded document rooted in its own temp directory,
// so configuration resolution never escapes into the test machine's
// real filesystem layout above the temp root.
func testDoc(t *testing.T, text string) protocol.TextDocumentItem {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.md")
	return protocol.TextDocumentItem{
		URI:        protocol.DocumentURI(string(protocol.FilePathToURI(path)) + "#squall"),
		LanguageID: "squall",
		Version:    1,
		Text:       text,
	}
}

func TestValidateReusesUnitWithinTTL(t *testing.T) {
	clock := clockwork.NewFakeClock()
	b := New(WithClock(clock))
	doc := testDoc(t, "let x = 1\n")

	_, err := b.Validate(doc)
	require.NoError(t, err)
	require.Equal(t, 1, b.Builds())

	clock.Advance(2 * time.Second)
	_, err = b.Validate(doc)
	require.NoError(t, err)
	assert.Equal(t, 1, b.Builds(), "second call inside the TTL must reuse the unit")
}

func TestValidateRebuildsAfterTTL(t *testing.T) {
	clock := clockwork.NewFakeClock()
	b := New(WithClock(clock))
	doc := testDoc(t, "let x = 1\n")

	_, err := b.Validate(doc)
	require.NoError(t, err)

	clock.Advance(6 * time.Second)
	_, err = b.Validate(doc)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Builds(), "a call past the TTL rebuilds exactly once")

	_, err = b.Validate(doc)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Builds())
}

func TestValidateSyntaxErrorOnly(t *testing.T) {
	b := New(WithClock(clockwork.NewFakeClock()))
	doc := testDoc(t, "let x = 1\n)\n")

	diags, err := b.Validate(doc)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, protocol.DiagnosticSeverityError, diags[0].Severity)
	assert.Equal(t, DiagnosticSource, diags[0].Source)
	assert.Equal(t, 1, diags[0].Range.Start.Line)
	assert.Equal(t, 0, diags[0].Range.Start.Character)
}

func TestValidateCollapsesSeverityByDefault(t *testing.T) {
	b := New(WithClock(clockwork.NewFakeClock()))
	// The unused local is natively a warning.
	doc := testDoc(t, "fun f(): Void {\n  let unused = 1\n}\n")

	diags, err := b.Validate(doc)
	require.NoError(t, err)
	require.NotEmpty(t, diags)
	for _, d := range diags {
		assert.Equal(t, protocol.DiagnosticSeverityError, d.Severity)
	}
}

func TestValidateNativeSeverity(t *testing.T) {
	b := New(WithClock(clockwork.NewFakeClock()), WithNativeSeverity())
	doc := testDoc(t, "fun f(): Void {\n  let unused = 1\n}\n")

	diags, err := b.Validate(doc)
	require.NoError(t, err)
	require.NotEmpty(t, diags)

	var sawWarning bool
	for _, d := range diags {
		if d.Severity == protocol.DiagnosticSeverityWarning {
			sawWarning = true
		}
	}
	assert.True(t, sawWarning, "native warning severity must survive when collapsing is off")
}

func TestMissingRootFileYieldsEmptyResults(t *testing.T) {
	clock := clockwork.NewFakeClock()
	b := New(WithClock(clock))

	first := testDoc(t, "let x = 1\n)\n")
	_, err := b.Validate(first)
	require.NoError(t, err)

	// A different document inside the TTL window is served the cached
	// unit, whose root does not match; both operations report "nothing"
	// rather than failing.
	other := testDoc(t, "let y = 2\n")
	diags, err := b.Validate(other)
	require.NoError(t, err)
	assert.Empty(t, diags)

	list, err := b.Complete(other, protocol.Position{Line: 0, Character: 0})
	require.NoError(t, err)
	assert.False(t, list.IsIncomplete)
	assert.Empty(t, list.Items)

	assert.Equal(t, 1, b.Builds())
}

func TestCompleteMemberAccess(t *testing.T) {
	b := New(WithClock(clockwork.NewFakeClock()))
	doc := testDoc(t, "let obj = {foo: 1, bar: 2}\nobj.\n")

	list, err := b.Complete(doc, protocol.Position{Line: 1, Character: 4})
	require.NoError(t, err)
	assert.False(t, list.IsIncomplete)

	byLabel := make(map[string]protocol.CompletionItem, len(list.Items))
	for _, item := range list.Items {
		byLabel[item.Label] = item
	}
	require.Contains(t, byLabel, "foo")
	require.Contains(t, byLabel, "bar")
	assert.Equal(t, protocol.CompletionItemKindProperty, byLabel["foo"].Kind)
	assert.Equal(t, protocol.CompletionItemKindProperty, byLabel["bar"].Kind)

	data, ok := byLabel["foo"].Data.(CompletionData)
	require.True(t, ok)
	assert.Equal(t, doc.URI, data.URI)
	assert.Positive(t, data.Offset)
}

func TestCompleteScopeIncludesBindingsAndAmbient(t *testing.T) {
	b := New(WithClock(clockwork.NewFakeClock()))
	doc := testDoc(t, "let count = 1\ncou\n")

	list, err := b.Complete(doc, protocol.Position{Line: 1, Character: 3})
	require.NoError(t, err)

	byLabel := make(map[string]protocol.CompletionItem, len(list.Items))
	for _, item := range list.Items {
		byLabel[item.Label] = item
	}
	require.Contains(t, byLabel, "count")
	assert.Equal(t, protocol.CompletionItemKindVariable, byLabel["count"].Kind)
	require.Contains(t, byLabel, "print", "ambient globals appear in scope completion")
	assert.Equal(t, protocol.CompletionItemKindFunction, byLabel["print"].Kind)
	require.Contains(t, byLabel, "let", "keywords appear in scope completion")
	assert.Equal(t, protocol.CompletionItemKindKeyword, byLabel["let"].Kind)
}

func TestCompletionLimitCapsItems(t *testing.T) {
	b := New(WithClock(clockwork.NewFakeClock()), WithCompletionLimit(3))
	doc := testDoc(t, "let count = 1\ncou\n")

	list, err := b.Complete(doc, protocol.Position{Line: 1, Character: 3})
	require.NoError(t, err)
	assert.Len(t, list.Items, 3)
	assert.False(t, list.IsIncomplete)
}

func TestBuildErrorLeavesCacheIntact(t *testing.T) {
	clock := clockwork.NewFakeClock()
	b := New(WithClock(clock))

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	doc := protocol.TextDocumentItem{
		URI:  protocol.DocumentURI(string(protocol.FilePathToURI(path)) + "#squall"),
		Text: "let x = 1\n",
	}

	diags, err := b.Validate(doc)
	require.NoError(t, err)
	assert.Empty(t, diags)
	require.Equal(t, 1, b.Builds())

	// Break the configuration, then force a rebuild.
	require.NoError(t, os.WriteFile(filepath.Join(dir, project.ConfigName), []byte("target = [broken\n"), 0o644))
	clock.Advance(6 * time.Second)

	_, err = b.Validate(doc)
	require.Error(t, err)
	var perr *project.ParseError
	assert.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, b.Builds(), "failed rebuild must not count or replace the cached unit")
}

func TestValidateNoPathURI(t *testing.T) {
	b := New(WithClock(clockwork.NewFakeClock()))
	_, err := b.Validate(protocol.TextDocumentItem{URI: "", Text: "let x = 1\n"})
	assert.ErrorIs(t, err, ErrNoPath)
}
