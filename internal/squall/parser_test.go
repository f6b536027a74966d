package squall

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDiags(src string) []Diagnostic {
	_, diags := parseFile(src)
	return diags
}

func TestParseLetWithoutTypeOrInitializer(t *testing.T) {
	diags := parseDiags("let x\n")
	require.Len(t, diags, 1)
	assert.Equal(t, 1104, diags[0].Code)
}

func TestParseConstWithoutInitializer(t *testing.T) {
	diags := parseDiags("const c: Int\n")
	require.Len(t, diags, 1)
	assert.Equal(t, 1105, diags[0].Code)
}

func TestParseStrayToken(t *testing.T) {
	diags := parseDiags(")\n")
	require.Len(t, diags, 1)
	assert.Equal(t, 1114, diags[0].Code)
	assert.Contains(t, diags[0].Message, "expected expression")
}

func TestParseRecoversAfterError(t *testing.T) {
	file, diags := parseFile(")\nlet ok = 1\n")
	require.Len(t, diags, 1)
	assert.Equal(t, 1114, diags[0].Code)

	var let *LetDecl
	for _, stmt := range file.Stmts {
		if d, ok := stmt.(*LetDecl); ok {
			let = d
		}
	}
	require.NotNil(t, let, "declaration after the error must survive")
	assert.Equal(t, "ok", let.Name.Name)
}

func TestParseDanglingMemberAccess(t *testing.T) {
	file, diags := parseFile("obj.\n")
	require.Len(t, diags, 1)
	assert.Equal(t, 1113, diags[0].Code)

	require.Len(t, file.Stmts, 1)
	es, ok := file.Stmts[0].(*ExprStmt)
	require.True(t, ok)
	member, ok := es.X.(*MemberExpr)
	require.True(t, ok, "a dangling dot must still produce a member access")
	recv, ok := member.X.(*Ident)
	require.True(t, ok)
	assert.Equal(t, "obj", recv.Name)
}

func TestParseImportMissingFrom(t *testing.T) {
	diags := parseDiags("import h \"host\"\n")
	require.Len(t, diags, 1)
	assert.Equal(t, 1100, diags[0].Code)
	assert.Contains(t, diags[0].Message, "from")
}

func TestParseUnexpectedCharacter(t *testing.T) {
	diags := parseDiags("let x = 1 @\n")
	require.NotEmpty(t, diags)
	assert.Equal(t, 1001, diags[0].Code)
	assert.Contains(t, diags[0].Message, "@")
}

func TestParseUnterminatedString(t *testing.T) {
	diags := parseDiags("let s = \"open\n")
	require.Len(t, diags, 1)
	assert.Equal(t, 1002, diags[0].Code)
}

func TestParseDiagnosticsInSourceOrder(t *testing.T) {
	u, err := NewUnit("main.sq", "let a\nlet b\n", DefaultOptions())
	require.NoError(t, err)

	diags := u.SyntacticDiagnostics("main.sq")
	require.Len(t, diags, 2)
	assert.Equal(t, 1104, diags[0].Code)
	assert.Equal(t, 1104, diags[1].Code)
	assert.Less(t, diags[0].Start, diags[1].Start)
}
