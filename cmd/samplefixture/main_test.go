package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/context-maximiser/sample-fixture/pkg/scipindex"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func TestGreetCommand(t *testing.T) {
	out, err := execute(t, "greet", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "Hello, Alice\nGreeting sent to Alice\n", out)
}

func TestCalcCommand(t *testing.T) {
	out, err := execute(t, "calc", "2", "3")
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)

	out, err = execute(t, "calc", "1.5", "2")
	require.NoError(t, err)
	assert.Equal(t, "3.5\n", out)

	_, err = execute(t, "calc", "two", "3")
	assert.ErrorContains(t, err, `invalid number "two"`)
}

func TestDoubleCommand(t *testing.T) {
	out, err := execute(t, "double", "1", "2", "3")
	require.NoError(t, err)
	assert.Equal(t, "[2 4 6]\n", out)

	out, err = execute(t, "double", "0.25")
	require.NoError(t, err)
	assert.Equal(t, "[0.5]\n", out)

	out, err = execute(t, "double")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestProcessCommand(t *testing.T) {
	out, err := execute(t, "process", "X", "5")
	require.NoError(t, err)
	assert.Equal(t, "X5\n", out)

	out, err = execute(t, "process", "tag-", "value")
	require.NoError(t, err)
	assert.Equal(t, "tag-value\n", out)
}

func TestRunCommand(t *testing.T) {
	out, err := execute(t, "run")
	require.NoError(t, err)
	assert.Equal(t, "Hello, world!\nResult: 8\n", out)
}

func TestCatalogCommand(t *testing.T) {
	out, err := execute(t, "catalog", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "displayName: ProcessData")

	_, err = execute(t, "catalog", "--format", "xml")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestSCIPCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.scip")

	out, err := execute(t, "scip", "--out", path, "--fixture-version", "v1.2.3")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 5 documents")

	r := scipindex.NewReader()
	require.NoError(t, r.ParseFile(path))
	symbols, err := r.ExtractSymbols()
	require.NoError(t, err)
	require.NotEmpty(t, symbols)
	assert.Equal(t, "v1.2.3", symbols[0].Symbol.Version)
}

func TestInvalidConfigRejected(t *testing.T) {
	_, err := execute(t, "run", "--neo4j-uri", "http://localhost:7474")
	assert.ErrorContains(t, err, "bolt or neo4j scheme")

	// restore for later tests
	_, err = execute(t, "run", "--neo4j-uri", "bolt://localhost:7687", "--fixture-version", "v1.0.0")
	require.NoError(t, err)
}
