package squall

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignablePrimitives(t *testing.T) {
	ok, _ := assignable(TypInt, TypInt)
	assert.True(t, ok)

	// Int widens to Float, never the other way.
	ok, _ = assignable(TypInt, TypFloat)
	assert.True(t, ok)
	ok, _ = assignable(TypFloat, TypInt)
	assert.False(t, ok)

	ok, _ = assignable(TypNull, TypString)
	assert.True(t, ok)
	ok, _ = assignable(TypString, TypBool)
	assert.False(t, ok)
}

func TestAssignableAnyIsBidirectional(t *testing.T) {
	ok, _ := assignable(TypAny, TypInt)
	assert.True(t, ok)
	ok, _ = assignable(TypInt, TypAny)
	assert.True(t, ok)
}

func TestRecordMismatchCarriesCauseChain(t *testing.T) {
	const src = "let r: { a: Int } = { a: \"x\" }\n"
	u, err := NewUnit("main.sq", src, DefaultOptions())
	require.NoError(t, err)

	diags := u.SemanticDiagnostics("main.sq")
	require.Len(t, diags, 1)
	assert.Equal(t, 2100, diags[0].Code)
	require.NotEmpty(t, diags[0].Chain)
	assert.Contains(t, diags[0].Chain[0], `property "a"`)

	flat := diags[0].FlattenMessage()
	assert.Contains(t, flat, "not assignable")
	assert.Contains(t, flat, "\n  ")
}

func TestRecordMissingProperty(t *testing.T) {
	const src = "let r: { a: Int, b: Int } = { a: 1 }\n"
	u, err := NewUnit("main.sq", src, DefaultOptions())
	require.NoError(t, err)

	diags := u.SemanticDiagnostics("main.sq")
	require.Len(t, diags, 1)
	assert.Equal(t, 2100, diags[0].Code)
	require.NotEmpty(t, diags[0].Chain)
	assert.Contains(t, diags[0].Chain[0], `property "b" is missing`)
}

func TestArrayElementMismatch(t *testing.T) {
	const src = "let xs: [Int] = [\"a\"]\n"
	u, err := NewUnit("main.sq", src, DefaultOptions())
	require.NoError(t, err)

	diags := u.SemanticDiagnostics("main.sq")
	require.Len(t, diags, 1)
	assert.Equal(t, 2100, diags[0].Code)
}
