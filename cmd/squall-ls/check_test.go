package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const cleanDoc = "# Clean\n\n```squall\nlet n = 1\nprint(n)\n```\n"

const brokenDoc = "# Broken\n\n```squall\nlet n: Int = \"hi\"\n```\n"

const warnDoc = "# Warn\n\n```squall\nfun f(): Void {\n  let tmp = 1\n}\n```\n"

func TestCheckFileClean(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "clean.md", cleanDoc)

	rep := checkFile(path)
	require.NoError(t, rep.err)
	assert.Equal(t, path, rep.path)
	assert.Empty(t, rep.diags)
}

func TestCheckFileMissing(t *testing.T) {
	rep := checkFile(filepath.Join(t.TempDir(), "absent.md"))
	assert.Error(t, rep.err)
}

func TestCheckFilesTally(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFixture(t, dir, "clean.md", cleanDoc),
		writeFixture(t, dir, "broken.md", brokenDoc),
		writeFixture(t, dir, "warn.md", warnDoc),
		filepath.Join(dir, "absent.md"),
	}

	reports := checkFiles(context.Background(), paths)
	require.Len(t, reports, len(paths))

	// Reports keep argument order regardless of completion order.
	for i, rep := range reports {
		assert.Equal(t, paths[i], rep.path)
	}

	errs, warns := tally(reports)
	assert.Equal(t, 2, errs, "one type error plus one unreadable file")
	assert.Equal(t, 1, warns, "the unused local is a warning, not an error")
}

func TestTallyDrivesExitConditions(t *testing.T) {
	dir := t.TempDir()

	errs, warns := tally(checkFiles(context.Background(), []string{
		writeFixture(t, dir, "clean.md", cleanDoc),
	}))
	assert.Zero(t, errs)
	assert.Zero(t, warns)

	// Warnings alone leave the default run passing; --strict turns the
	// same tally into a failure.
	errs, warns = tally(checkFiles(context.Background(), []string{
		writeFixture(t, dir, "warn.md", warnDoc),
	}))
	assert.Zero(t, errs)
	assert.Equal(t, 1, warns)
}
