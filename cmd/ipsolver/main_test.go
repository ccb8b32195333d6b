package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCapture invokes run with file-backed stdout/stderr so the CLI's output
// can be asserted on, the way a black-box test of a Rust `main` binary would
// capture stdout.
func runCapture(t *testing.T, args []string) (exitCode int, stdout, stderr string) {
	t.Helper()
	dir := t.TempDir()

	outFile, err := os.Create(filepath.Join(dir, "stdout"))
	require.NoError(t, err)
	defer outFile.Close()

	errFile, err := os.Create(filepath.Join(dir, "stderr"))
	require.NoError(t, err)
	defer errFile.Close()

	exitCode = run(args, outFile, errFile)

	outBytes, err := os.ReadFile(outFile.Name())
	require.NoError(t, err)
	errBytes, err := os.ReadFile(errFile.Name())
	require.NoError(t, err)

	return exitCode, string(outBytes), string(errBytes)
}

func writeInstance(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "instance.txt")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestRun_ScenarioA_Trivial(t *testing.T) {
	path := writeInstance(t, "1\n2\n5\n0 1\n")

	code, stdout, _ := runCapture(t, []string{path})
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, `"Result":5`)
	assert.Contains(t, stdout, `"Solution":"OPT"`)
	assert.Contains(t, stdout, path)
}

func TestRun_ScenarioD_Infeasible(t *testing.T) {
	path := writeInstance(t, "1\n2\n1\n1 1\n")

	code, stdout, _ := runCapture(t, []string{path})
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, `"Result":"--"`)
	assert.Contains(t, stdout, `"Solution":"--"`)
}

func TestRun_MissingArgument(t *testing.T) {
	code, _, stderr := runCapture(t, nil)
	assert.NotEqual(t, 0, code)
	assert.True(t, strings.Contains(stderr, "usage"))
}

func TestRun_NonexistentFile(t *testing.T) {
	code, _, stderr := runCapture(t, []string{"/does/not/exist.txt"})
	assert.NotEqual(t, 0, code)
	assert.NotEmpty(t, stderr)
}

func TestRun_VerboseFlag(t *testing.T) {
	path := writeInstance(t, "2\n2\n3 7\n0 1\n1 0\n")

	code, stdout, _ := runCapture(t, []string{"-v", path})
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, `"Result":3`)
}
