package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/squall/internal/squall"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolveNoConfigReturnsDefaults(t *testing.T) {
	dir := t.TempDir()

	opts, err := Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, squall.DefaultOptions(), opts)
}

func TestResolveReadsNearestConfig(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `target = "sq1"`)
	nested := filepath.Join(root, "docs", "guides")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	opts, err := Resolve(nested)
	require.NoError(t, err)
	assert.Equal(t, squall.TargetSQ1, opts.Target)
	// Unset fields keep their defaults.
	assert.True(t, opts.Strict)
	assert.True(t, opts.AllowLoose)
}

func TestResolveNearestWins(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `target = "sq1"`)
	nested := filepath.Join(root, "sub")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	writeConfig(t, nested, `target = "sq2"`)

	opts, err := Resolve(nested)
	require.NoError(t, err)
	assert.Equal(t, squall.TargetSQ2, opts.Target)
}

func TestResolveExtendsChain(t *testing.T) {
	root := t.TempDir()
	base := filepath.Join(root, "base")
	require.NoError(t, os.MkdirAll(base, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "shared.toml"), []byte(
		"target = \"sq1\"\nstrict = false\nlibs = [\"core\"]\n"), 0o644))

	work := filepath.Join(root, "work")
	require.NoError(t, os.MkdirAll(work, 0o755))
	writeConfig(t, work, "extends = \"../base/shared.toml\"\ntarget = \"sq2\"\n")

	opts, err := Resolve(work)
	require.NoError(t, err)
	// Child overrides the parent's target; untouched parent values stick.
	assert.Equal(t, squall.TargetSQ2, opts.Target)
	assert.False(t, opts.Strict)
	assert.Equal(t, []string{"core"}, opts.Libs)
}

func TestResolveExtendsCycle(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "extends = \"squall.toml\"\n")

	_, err := Resolve(root)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.ErrorIs(t, err, ErrExtendsDepth)
}

func TestResolveMalformedFile(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "target = [broken\n")

	_, err := Resolve(root)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, path, perr.Path)
}

func TestResolveUnknownValue(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `target = "sq99"`)

	_, err := Resolve(root)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Error(), "sq99")
}

func TestResolveMissingExtendsTarget(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "extends = \"nope/missing.toml\"\n")

	_, err := Resolve(root)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.True(t, errors.Is(perr.Err, os.ErrNotExist) || perr.Err != nil)
}

func TestLocateStopsAtRoot(t *testing.T) {
	dir := t.TempDir()
	_, found := Locate(dir)
	assert.False(t, found)
}
