package squall

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionsAfter(t *testing.T, src, anchor string) []CompletionEntry {
	t.Helper()
	u, err := NewUnit("main.sq", src, DefaultOptions())
	require.NoError(t, err)
	idx := strings.Index(src, anchor)
	require.GreaterOrEqual(t, idx, 0, "anchor %q not in source", anchor)
	return NewLanguageService(u).CompletionsAt("main.sq", idx+len(anchor))
}

func findEntry(entries []CompletionEntry, name string) (CompletionEntry, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e, true
		}
	}
	return CompletionEntry{}, false
}

func TestCompletionsAtUnknownPathReturnsNil(t *testing.T) {
	u, err := NewUnit("main.sq", "let x = 1\n", DefaultOptions())
	require.NoError(t, err)
	assert.Nil(t, NewLanguageService(u).CompletionsAt("other.sq", 0))
}

func TestCompletionsAfterDanglingDot(t *testing.T) {
	// The trailing dot is a syntax error, but the partial member access
	// still identifies the receiver.
	const src = "let doc = { title: \"x\", count: 2 }\ndoc.\n"
	entries := completionsAfter(t, src, "doc.")

	title, ok := findEntry(entries, "title")
	require.True(t, ok)
	assert.Equal(t, KindProperty, title.Kind)
	assert.Equal(t, "String", title.Detail)

	count, ok := findEntry(entries, "count")
	require.True(t, ok)
	assert.Equal(t, KindProperty, count.Kind)
	assert.Equal(t, "Int", count.Detail)

	_, ok = findEntry(entries, "print")
	assert.False(t, ok, "scope names must not leak into member completion")
}

func TestCompletionsOnAmbientGetter(t *testing.T) {
	entries := completionsAfter(t, "document.\n", "document.")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.ElementsMatch(t, []string{"title", "uri"}, names)
}

func TestCompletionsOnModuleMembers(t *testing.T) {
	const src = "import h from \"host\"\nh.\n"
	entries := completionsAfter(t, src, "h.")

	fetch, ok := findEntry(entries, "fetch")
	require.True(t, ok)
	assert.Equal(t, KindFunction, fetch.Kind)

	version, ok := findEntry(entries, "version")
	require.True(t, ok)
	assert.Equal(t, KindConst, version.Kind)
}

func TestCompletionsInScope(t *testing.T) {
	const src = "let answer = 42\nfun greet(): Void {\n}\ngreet()\n"
	entries := completionsAfter(t, src, "greet()\n")

	answer, ok := findEntry(entries, "answer")
	require.True(t, ok)
	assert.Equal(t, KindVar, answer.Kind)
	assert.Equal(t, "Int", answer.Detail)

	greet, ok := findEntry(entries, "greet")
	require.True(t, ok)
	assert.Equal(t, KindFunction, greet.Kind)

	// Ambient declarations and keywords round out the scope list.
	pr, ok := findEntry(entries, "print")
	require.True(t, ok)
	assert.Equal(t, KindFunction, pr.Kind)

	kw, ok := findEntry(entries, "let")
	require.True(t, ok)
	assert.Equal(t, KindKeyword, kw.Kind)
}

func TestCompletionsAfterNewListConstructors(t *testing.T) {
	const src = "class Point {\n}\nnew \n"
	entries := completionsAfter(t, src, "new ")

	require.Len(t, entries, 1)
	assert.Equal(t, "Point", entries[0].Name)
	assert.Equal(t, KindConstructor, entries[0].Kind)
	assert.Equal(t, "new Point()", entries[0].Detail)
}

func TestCompletionsEntriesAreSorted(t *testing.T) {
	const src = "let bravo = 1\nlet alpha = 2\nprint(alpha + bravo)\n"
	entries := completionsAfter(t, src, "bravo)\n")

	var symbols []string
	for _, e := range entries {
		if e.Kind != KindKeyword {
			symbols = append(symbols, e.Name)
		}
	}
	assert.True(t, sortedStrings(symbols), "symbol entries out of order: %v", symbols)
}

func sortedStrings(s []string) bool {
	for i := 1; i < len(s); i++ {
		if s[i-1] > s[i] {
			return false
		}
	}
	return true
}

func TestCompletionsOffsetClamped(t *testing.T) {
	u, err := NewUnit("main.sq", "let x = 1\n", DefaultOptions())
	require.NoError(t, err)
	ls := NewLanguageService(u)

	assert.NotEmpty(t, ls.CompletionsAt("main.sq", 9999))
	assert.NotEmpty(t, ls.CompletionsAt("main.sq", -4))
}
