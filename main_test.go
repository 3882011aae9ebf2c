package main

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-kit/log/level"
	"github.com/mcncl/jsondoc/internal/config"
	"github.com/mcncl/jsondoc/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testContext(t *testing.T, style string, logs *bytes.Buffer) *Context {
	t.Helper()
	cfg, err := config.LoadConfigWithCLI("", style, -1, false)
	require.NoError(t, err)
	return &Context{
		Debug:  true,
		Config: cfg,
		Logger: newLogger(logs, true),
	}
}

func TestRun_CompactFileToFile(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = writeTempFile(t, "in.json", `{ "b": [1, 2.5], "a": {"x": null} }`)
	CLI.Output = filepath.Join(t.TempDir(), "out.json")

	var logs bytes.Buffer
	require.NoError(t, run(testContext(t, "compact", &logs)))

	content, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":{\"x\":null},\"b\":[1,2.5]}\n", string(content))
	assert.Contains(t, logs.String(), `msg="document written"`)
	assert.Contains(t, logs.String(), "kind=object")
}

func TestRun_PrettyDefault(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = writeTempFile(t, "in.json", `{"a":[1]}`)
	CLI.Output = filepath.Join(t.TempDir(), "out.json")

	var logs bytes.Buffer
	require.NoError(t, run(testContext(t, "", &logs)))

	content, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"a\": [\n        1\n    ]\n}\n", string(content))
}

func TestRun_CheckOnly(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	outPath := filepath.Join(t.TempDir(), "out.json")
	CLI.Input = writeTempFile(t, "in.json", `[true, false]`)
	CLI.Output = outPath
	CLI.Check = true

	var logs bytes.Buffer
	require.NoError(t, run(testContext(t, "", &logs)))

	assert.Contains(t, logs.String(), `level=info msg="document is valid" kind=array`)
	_, err := os.Stat(outPath)
	assert.True(t, os.IsNotExist(err), "check mode must not write output")
}

func TestRun_SelectPath(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = writeTempFile(t, "in.json", `{"data":{"items":[1,2,3]}}`)
	CLI.Output = filepath.Join(t.TempDir(), "out.json")
	CLI.Path = "data.items"

	var logs bytes.Buffer
	require.NoError(t, run(testContext(t, "compact", &logs)))

	content, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	assert.Equal(t, "[1,2,3]\n", string(content))
}

func TestRun_SelectMissingPath(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = writeTempFile(t, "in.json", `{"data":{}}`)
	CLI.Path = "data.items"

	var logs bytes.Buffer
	err := run(testContext(t, "compact", &logs))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrEmptyValue))
	assert.Equal(t, "Document error: path 'data.items' not found", errors.UserFriendlyError(err))
}

func TestRun_SelectThroughScalar(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = writeTempFile(t, "in.json", `{"data":5}`)
	CLI.Path = "data.items"

	var logs bytes.Buffer
	err := run(testContext(t, "compact", &logs))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrNotAnObject))
}

func TestRun_SyntaxError(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = writeTempFile(t, "in.json", "{\n  \"a\": }")

	var logs bytes.Buffer
	err := run(testContext(t, "", &logs))
	require.Error(t, err)

	var syntaxErr *errors.SyntaxError
	require.True(t, stderrors.As(err, &syntaxErr))
	assert.Equal(t, 2, syntaxErr.Line)
	assert.Contains(t, errors.UserFriendlyError(err), "at line 2")
}

func TestParseInput_FromStdin(t *testing.T) {
	originalCLI := CLI
	originalStdin := os.Stdin
	defer func() {
		CLI = originalCLI
		os.Stdin = originalStdin
	}()

	// Clear input file to force stdin reading
	CLI.Input = ""

	r, w, err := os.Pipe()
	require.NoError(t, err)
	go func() {
		defer func() { _ = w.Close() }()
		_, _ = w.WriteString(`[{"item": "apple"}, {"item": "banana"}]`)
	}()
	os.Stdin = r
	defer func() { _ = r.Close() }()

	doc, err := parseInput()
	require.NoError(t, err)
	assert.True(t, doc.IsArray())
	size, err := doc.Size()
	require.NoError(t, err)
	assert.Equal(t, 2, size)
}

func TestParseInput_EmptyStdin(t *testing.T) {
	originalCLI := CLI
	originalStdin := os.Stdin
	defer func() {
		CLI = originalCLI
		os.Stdin = originalStdin
	}()

	CLI.Input = ""

	r, w, err := os.Pipe()
	require.NoError(t, err)
	go func() {
		defer func() { _ = w.Close() }()
		_, _ = w.WriteString("  \n")
	}()
	os.Stdin = r
	defer func() { _ = r.Close() }()

	_, err = parseInput()
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrEmptyInput))
}

func TestParseInput_EmptyFile(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = writeTempFile(t, "empty.json", "")

	_, err := parseInput()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestParseInput_NonExistentFile(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = "/non/existent/file.json"

	_, err := parseInput()
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrFileNotFound))
}

func TestWriteOutput_ToFile(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Output = filepath.Join(t.TempDir(), "out.json")

	require.NoError(t, writeOutput(`{"a":1}`))

	content, err := os.ReadFile(CLI.Output)
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":1}\n", string(content))
}

func TestWriteOutput_ToStdout(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Output = ""

	assert.NoError(t, writeOutput(`[]`))
}

func TestWriteOutput_FileError(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Output = "/non/existent/dir/output.json"

	err := writeOutput("{}")
	require.Error(t, err)
	assert.Contains(t, errors.UserFriendlyError(err), "Output error")
}

func TestNewLogger_FiltersDebug(t *testing.T) {
	var quiet, verbose bytes.Buffer

	_ = level.Debug(newLogger(&quiet, false)).Log("msg", "hidden")
	_ = level.Info(newLogger(&quiet, false)).Log("msg", "shown")
	_ = level.Debug(newLogger(&verbose, true)).Log("msg", "hidden")

	assert.Equal(t, "level=info msg=shown\n", quiet.String())
	assert.Equal(t, "level=debug msg=hidden\n", verbose.String())
}

func TestNewContext_UsesConfigFile(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Config = writeTempFile(t, ".jsondoc.yml", "style: compact\ndev:\n  debug: true\n")
	CLI.Indent = -1

	ctx, err := newContext()
	require.NoError(t, err)
	assert.True(t, ctx.Debug)
	assert.Equal(t, config.StyleCompact, ctx.Config.Style)
}

func TestNewContext_BadStyle(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Config = writeTempFile(t, ".jsondoc.yml", "style: pretty\n")
	CLI.Style = "wide"
	CLI.Indent = -1

	_, err := newContext()
	require.Error(t, err)
	assert.Contains(t, errors.UserFriendlyError(err), "Configuration error: unknown style 'wide'")
}
