package squall

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkSrc builds a unit and returns its semantic diagnostics, failing
// the test on syntax errors so every case exercises the checker alone.
func checkSrc(t *testing.T, src string, opts Options) []Diagnostic {
	t.Helper()
	u, err := NewUnit("main.sq", src, opts)
	require.NoError(t, err)
	require.Empty(t, u.SyntacticDiagnostics("main.sq"), "source must parse cleanly")
	return u.SemanticDiagnostics("main.sq")
}

func TestCheckUndefinedName(t *testing.T) {
	diags := checkSrc(t, "print(nachricht)\n", DefaultOptions())
	require.Len(t, diags, 1)
	assert.Equal(t, 2114, diags[0].Code)
	assert.Equal(t, CategoryError, diags[0].Category)
	assert.Contains(t, diags[0].Message, "nachricht")
}

func TestCheckAssignToConstant(t *testing.T) {
	diags := checkSrc(t, "const limit = 8\nlimit = 9\n", DefaultOptions())
	require.Len(t, diags, 1)
	assert.Equal(t, 2120, diags[0].Code)
	assert.Contains(t, diags[0].Message, "limit")
}

func TestCheckDuplicateDeclaration(t *testing.T) {
	diags := checkSrc(t, "let x = 1\nlet x = 2\n", DefaultOptions())
	require.Len(t, diags, 1)
	assert.Equal(t, 2121, diags[0].Code)
}

func TestCheckLetTypeMismatch(t *testing.T) {
	diags := checkSrc(t, "let n: Int = \"hi\"\n", DefaultOptions())
	require.Len(t, diags, 1)
	assert.Equal(t, 2100, diags[0].Code)
	assert.Contains(t, diags[0].Message, "not assignable")
}

func TestCheckCallArity(t *testing.T) {
	diags := checkSrc(t, "print(1, 2)\n", DefaultOptions())
	require.Len(t, diags, 1)
	assert.Equal(t, 2101, diags[0].Code)
	assert.Contains(t, diags[0].Message, "expected 1 arguments, found 2")
}

func TestCheckConditionMustBeBool(t *testing.T) {
	diags := checkSrc(t, "if 1 {\n  print(1)\n}\n", DefaultOptions())
	require.Len(t, diags, 1)
	assert.Equal(t, 2104, diags[0].Code)
	assert.Contains(t, diags[0].Message, "Int")
}

func TestCheckUnusedLocalIsWarning(t *testing.T) {
	diags := checkSrc(t, "fun f(): Void {\n  let tmp = 1\n}\n", DefaultOptions())
	require.Len(t, diags, 1)
	assert.Equal(t, 2301, diags[0].Code)
	assert.Equal(t, CategoryWarning, diags[0].Category)
	assert.Contains(t, diags[0].Message, "tmp")
}

func TestCheckTopLevelLetIsNotFlaggedUnused(t *testing.T) {
	diags := checkSrc(t, "let unreferenced = 1\n", DefaultOptions())
	assert.Empty(t, diags)
}

func TestCheckShadowingIsSuggestion(t *testing.T) {
	const src = "let x = 1\nfun f(): Void {\n  let x = 2\n  print(x)\n}\n"
	diags := checkSrc(t, src, DefaultOptions())
	require.Len(t, diags, 1)
	assert.Equal(t, 2302, diags[0].Code)
	assert.Equal(t, CategorySuggestion, diags[0].Category)
}

func TestCheckUnreachableCodeIsMessage(t *testing.T) {
	const src = "fun f(): Int {\n  return 1\n  print(0)\n}\n"
	diags := checkSrc(t, src, DefaultOptions())
	require.Len(t, diags, 1)
	assert.Equal(t, 2303, diags[0].Code)
	assert.Equal(t, CategoryMessage, diags[0].Category)
}

func TestCheckClassAccessors(t *testing.T) {
	const src = "class Box {\n" +
		"  let v: Int\n" +
		"  get value(): Int {\n" +
		"    return this.v\n" +
		"  }\n" +
		"  set value(x: Int) {\n" +
		"    this.v = x\n" +
		"  }\n" +
		"}\n"
	assert.Empty(t, checkSrc(t, src, DefaultOptions()))
}

func TestCheckGetterBodyAgainstDeclaredType(t *testing.T) {
	const src = "class Box {\n" +
		"  get value(): Int {\n" +
		"    return \"s\"\n" +
		"  }\n" +
		"}\n"
	diags := checkSrc(t, src, DefaultOptions())
	require.Len(t, diags, 1)
	assert.Equal(t, 2103, diags[0].Code)
	assert.Contains(t, diags[0].Message, "Int")
}

func TestCheckAccessorPairTypeDisagreement(t *testing.T) {
	const src = "class Box {\n" +
		"  get value(): Int {\n" +
		"    return 1\n" +
		"  }\n" +
		"  set value(x: String) {\n" +
		"  }\n" +
		"}\n"
	diags := checkSrc(t, src, DefaultOptions())
	require.Len(t, diags, 1)
	assert.Equal(t, 2117, diags[0].Code)
}

func TestCheckImportRequiresModuleHost(t *testing.T) {
	opts := DefaultOptions()
	opts.Module = ModuleNone
	diags := checkSrc(t, "import h from \"host\"\n", opts)
	require.Len(t, diags, 1)
	assert.Equal(t, 2201, diags[0].Code)
}

func TestCheckUnresolvedImportLooseVsStrict(t *testing.T) {
	const src = "import ghost from \"ghost\"\n"

	assert.Empty(t, checkSrc(t, src, DefaultOptions()))

	opts := DefaultOptions()
	opts.ModuleResolution = ResolutionStrict
	diags := checkSrc(t, src, opts)
	require.Len(t, diags, 1)
	assert.Equal(t, 2202, diags[0].Code)
	assert.Contains(t, diags[0].Message, "ghost")
}

func TestCheckResolvedModuleMembers(t *testing.T) {
	const src = "import h from \"host\"\nlet r = h.fetch(\"/index\")\nprint(r.status)\n"
	diags := checkSrc(t, src, DefaultOptions())
	assert.Empty(t, diags)
}

func TestCheckForInNeedsTargetSQ2(t *testing.T) {
	const src = "for x in [1, 2] {\n  print(x)\n}\n"

	assert.Empty(t, checkSrc(t, src, DefaultOptions()))

	opts := DefaultOptions()
	opts.Target = TargetSQ1
	diags := checkSrc(t, src, opts)
	require.Len(t, diags, 1)
	assert.Equal(t, 2200, diags[0].Code)
}
