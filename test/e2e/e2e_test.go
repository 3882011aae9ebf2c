package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI runs jsondoc with stdin and returns stdout, stderr and the run error
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := exec.Command("go", append([]string{"run", "../../main.go"}, args...)...)
	cmd.Stdin = strings.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// TestEndToEnd_ComplexNestedStructures checks that reformatting keeps the document's meaning
func TestEndToEnd_ComplexNestedStructures(t *testing.T) {
	jsonContent := `{
		"id": 12345,
		"uuid": "550e8400-e29b-41d4-a716-446655440000",
		"created_at": "2023-05-20T14:56:23Z",
		"updated_at": null,
		"config": {
			"enabled": true,
			"timeout_seconds": 30,
			"ratio": 0.75,
			"features": ["logging", "metrics", "alerting"],
			"rate_limits": {"per_second": 100, "per_minute": 1000, "burst": 150},
			"environments": {
				"development": {"debug": true, "log_level": "debug"},
				"production": {"debug": false, "log_level": "info"}
			}
		},
		"users": [
			{"id": 1, "name": "Alice", "roles": ["admin", "user"], "note": "line\nbreak \"quoted\""},
			{"id": 2, "name": "Bob", "roles": [], "note": "café 😀"}
		]
	}`

	for _, style := range []string{"compact", "pretty"} {
		t.Run(style, func(t *testing.T) {
			stdout, stderr, err := runCLI(t, jsonContent, "-s", style)
			require.NoError(t, err, "CLI command failed: %s", stderr)
			assert.JSONEq(t, jsonContent, stdout)
		})
	}
}

// TestEndToEnd_PrettyIsStable checks that formatting formatted output changes nothing
func TestEndToEnd_PrettyIsStable(t *testing.T) {
	tempDir := t.TempDir()
	jsonFile := filepath.Join(tempDir, "items.json")
	generateLargeJSON(t, jsonFile, 50)

	data, err := os.ReadFile(jsonFile)
	require.NoError(t, err)

	first, stderr, err := runCLI(t, string(data))
	require.NoError(t, err, "CLI command failed: %s", stderr)

	second, stderr, err := runCLI(t, first)
	require.NoError(t, err, "CLI command failed: %s", stderr)

	assert.Equal(t, first, second)
	assert.JSONEq(t, string(data), first)
}

// generateLargeJSON generates a large JSON file with the specified number of items
func generateLargeJSON(t testing.TB, filePath string, itemCount int) {
	// Seed random for reproducible results
	rng := rand.New(rand.NewSource(42))

	items := make([]map[string]interface{}, itemCount)

	for i := 0; i < itemCount; i++ {
		items[i] = map[string]interface{}{
			"id":          i + 1,
			"guid":        fmt.Sprintf("%x-%x-%x-%x-%x", rng.Uint32(), rng.Uint32()&0xffff, rng.Uint32()&0xffff, rng.Uint32()&0xffff, rng.Uint32()<<16|rng.Uint32()),
			"name":        fmt.Sprintf("Item %d", i+1),
			"description": fmt.Sprintf("This is item number %d in the test dataset", i+1),
			"created_at":  time.Now().Add(-time.Duration(rng.Intn(10000)) * time.Hour).Format(time.RFC3339),
			"price":       rng.Float64() * 1000,
			"quantity":    rng.Intn(100),
			"active":      rng.Intn(2) == 1,
			"tags":        []string{"tag1", "tag2", "tag3"}[0 : rng.Intn(3)+1],
			"metadata": map[string]interface{}{
				"source":    "test",
				"priority":  rng.Intn(5) + 1,
				"processed": rng.Intn(2) == 1,
				"score":     rng.Float64(),
			},
		}
	}

	jsonData, err := json.MarshalIndent(items, "", "  ")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filePath, jsonData, 0o644))
}

// TestEndToEnd_EdgeCases tests various edge cases
func TestEndToEnd_EdgeCases(t *testing.T) {
	testCases := []struct {
		name     string
		json     string
		expected string
		isError  bool
	}{
		{name: "EmptyObject", json: `{}`, expected: "{}\n"},
		{name: "EmptyArray", json: ` [ ] `, expected: "[]\n"},
		{name: "SingleString", json: `"just a string"`, expected: "\"just a string\"\n"},
		{name: "IntegralFloat", json: `5.0`, expected: "5\n"},
		{name: "Exponent", json: `1e3`, expected: "1000\n"},
		{name: "Fraction", json: `-0.5`, expected: "-0.5\n"},
		{name: "SingleBoolean", json: `true`, expected: "true\n"},
		{name: "SingleNull", json: `null`, expected: "null\n"},
		{name: "DuplicateKeys", json: `{"a":1,"a":2}`, expected: "{\"a\":1}\n"},
		{name: "DeeplyNestedArray", json: `[[[[[[42]]]]]]`, expected: "[[[[[[42]]]]]]\n"},
		{name: "TrailingComma", json: `{"name": "Invalid JSON",}`, isError: true},
		{name: "TrailingData", json: `{} {}`, isError: true},
		{name: "BadEscape", json: `"\q"`, isError: true},
		{name: "Unterminated", json: `[1, 2`, isError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stdout, stderr, err := runCLI(t, tc.json, "-s", "compact")

			if tc.isError {
				assert.Error(t, err, "Expected an error for %s", tc.name)
				assert.Contains(t, stderr, "JSON parsing error")
			} else {
				assert.NoError(t, err, "Unexpected error for %s: %s", tc.name, stderr)
				assert.Equal(t, tc.expected, stdout, "Unexpected output for %s", tc.name)
			}
		})
	}
}

// TestEndToEnd_ErrorLocation checks the reported line and column
func TestEndToEnd_ErrorLocation(t *testing.T) {
	_, stderr, err := runCLI(t, "{\n  \"a\": }")
	require.Error(t, err)
	assert.Contains(t, stderr, "at line 2, column 8")
}
