package cli

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mcncl/jsonlens/internal/errors"
	"github.com/mcncl/jsonlens/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
	"user": {"name": "Ada", "age": 30, "home_address": {"zip_code": "N1"}},
	"tags": ["math", "engines"]
}`

type result struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := Execute(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCLI_Format(t *testing.T) {
	res := run(t, "", "-i", writeJSON(t, `{"b":1,"a":[true,null]}`), "format")
	require.NoError(t, res.err)
	assert.Equal(t, "{\n  \"b\": 1,\n  \"a\": [\n    true,\n    null\n  ]\n}\n", res.stdout)
}

func TestCLI_DefaultCommandIsFormat(t *testing.T) {
	res := run(t, `[1]`)
	require.NoError(t, res.err)
	assert.Equal(t, "[\n  1\n]\n", res.stdout)
}

func TestCLI_IndentFlag(t *testing.T) {
	res := run(t, `{"a":{"b":1}}`, "--indent", "4", "format")
	require.NoError(t, res.err)
	assert.Equal(t, "{\n    \"a\": {\n        \"b\": 1\n    }\n}\n", res.stdout)
}

func TestCLI_Minify(t *testing.T) {
	res := run(t, sampleJSON, "minify")
	require.NoError(t, res.err)
	assert.Equal(t, `{"user":{"name":"Ada","age":30,"home_address":{"zip_code":"N1"}},"tags":["math","engines"]}`+"\n", res.stdout)
}

func TestCLI_Validate(t *testing.T) {
	res := run(t, sampleJSON, "validate")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Valid JSON (object)")

	res = run(t, `{"a": 1,}`, "validate")
	require.Error(t, res.err)
	assert.True(t, stderrors.Is(res.err, errors.ErrInvalidJSON))
	assert.True(t, strings.HasPrefix(errors.UserFriendlyError(res.err), "Invalid JSON:"))
	assert.Empty(t, res.stdout)
}

func TestCLI_Flatten(t *testing.T) {
	res := run(t, sampleJSON, "--indent", "0", "flatten")
	require.NoError(t, res.err)
	assert.Equal(t, `{"user.name":"Ada","user.age":30,"user.home_address.zip_code":"N1","tags":["math","engines"]}`+"\n", res.stdout)

	res = run(t, `"solo"`, "--indent", "0", "flatten", "--scalar-key", "value")
	require.NoError(t, res.err)
	assert.Equal(t, `{"value":"solo"}`+"\n", res.stdout)
}

func TestCLI_SortKeys(t *testing.T) {
	res := run(t, `{"b": 1, "a": {"d": 2, "c": 3}}`, "--indent", "0", "sort-keys")
	require.NoError(t, res.err)
	assert.Equal(t, `{"a":{"c":3,"d":2},"b":1}`+"\n", res.stdout)
}

func TestCLI_RenameKeys(t *testing.T) {
	res := run(t, sampleJSON, "--indent", "0", "rename-keys", "--style", "camel")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `"homeAddress":{"zipCode":"N1"}`)

	res = run(t, sampleJSON, "rename-keys", "--style", "shout")
	assert.Error(t, res.err)
}

func TestCLI_Search(t *testing.T) {
	res := run(t, sampleJSON, "search", "ADA")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "user.name")
	assert.Contains(t, res.stdout, "string")
	assert.Contains(t, res.stdout, "Ada")

	res = run(t, sampleJSON, "search", "ada", "-n", "1")
	require.NoError(t, res.err)
	assert.NotContains(t, res.stdout, "user.name")

	res = run(t, sampleJSON, "search", "nothing-here")
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, `No matches for "nothing-here"`)
}

func TestCLI_Eval(t *testing.T) {
	res := run(t, sampleJSON, "eval", "user.age")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "user.age")
	assert.Contains(t, res.stdout, "number")
	assert.Contains(t, res.stdout, "30")

	res = run(t, sampleJSON, "eval", "user.missing")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "error")
	assert.Contains(t, res.stdout, "Path not found or invalid")

	res = run(t, sampleJSON, "--indent", "0", "eval", "--raw", "$.tags")
	require.NoError(t, res.err)
	assert.Equal(t, `["math","engines"]`+"\n", res.stdout)

	res = run(t, sampleJSON, "eval", "--raw", "tags[9]")
	require.Error(t, res.err)
	assert.True(t, stderrors.Is(res.err, errors.ErrNotFound))
}

func TestCLI_Tree(t *testing.T) {
	res := run(t, sampleJSON, "--root-label", "doc", "tree")
	require.NoError(t, res.err)

	lines := strings.Split(res.stdout, "\n")
	assert.Equal(t, "doc", strings.TrimSpace(lines[0]))
	assert.Contains(t, res.stdout, "name: Ada")
	assert.Contains(t, res.stdout, "[1]: engines")
}

func TestCLI_GraphJSON(t *testing.T) {
	res := run(t, `{"a": [1]}`, "graph", "--format", "json")
	require.NoError(t, res.err)

	var doc struct {
		Nodes []struct {
			ID string `json:"id"`
		} `json:"nodes"`
		Links []struct {
			Source string `json:"source"`
			Target string `json:"target"`
		} `json:"links"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &doc))
	require.Len(t, doc.Nodes, 3)
	assert.Equal(t, "node2", doc.Nodes[2].ID)
	require.Len(t, doc.Links, 2)
	assert.Equal(t, "node1", doc.Links[1].Source)
}

func TestCLI_GraphDOTToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "graph.dot")
	res := run(t, `[true]`, "graph", "-o", out)
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "Graph written to")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "digraph G {")
	assert.Contains(t, string(data), `"node0" -> "node1"`)
}

func TestCLI_GraphUnknownFormat(t *testing.T) {
	res := run(t, `[true]`, "graph", "--format", "png")
	require.Error(t, res.err)
	assert.Contains(t, errors.UserFriendlyError(res.err), "unknown graph format")
}

func TestCLI_Info(t *testing.T) {
	res := run(t, sampleJSON, "info")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Nodes")
	assert.Contains(t, res.stdout, "Max depth")
	assert.Contains(t, res.stdout, "Distinct keys")
}

func TestCLI_Export(t *testing.T) {
	dir := t.TempDir()
	res := run(t, `{"a":1}`, "export", "-o", dir)
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "application/json")

	data, err := os.ReadFile(filepath.Join(dir, "data.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}\n", string(data))
}

func TestCLI_Version(t *testing.T) {
	res := run(t, "", "version")
	require.NoError(t, res.err)
	assert.Equal(t, "jsonlens version "+Version+"\n", res.stdout)
}

func TestCLI_ConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "jsonlens.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("indent: 0\nroot_label: top\n"), 0o644))

	res := run(t, `{"a": [1]}`, "--config", cfgPath, "format")
	require.NoError(t, res.err)
	assert.Equal(t, `{"a":[1]}`+"\n", res.stdout)

	res = run(t, `{"a": [1]}`, "--config", cfgPath, "tree")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "top"))
}

func TestCLI_BadConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "jsonlens.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("indent: -3\n"), 0o644))

	res := run(t, `{}`, "--config", cfgPath, "format")
	require.Error(t, res.err)
	assert.True(t, strings.HasPrefix(errors.UserFriendlyError(res.err), "Configuration error:"))
}

func TestCLI_InputErrors(t *testing.T) {
	res := run(t, "", "format")
	require.Error(t, res.err)
	assert.True(t, stderrors.Is(res.err, errors.ErrNoInput))

	res = run(t, "", "-i", filepath.Join(t.TempDir(), "missing.json"), "format")
	require.Error(t, res.err)
	assert.True(t, stderrors.Is(res.err, errors.ErrFileNotFound))

	res = run(t, "1 2", "format")
	require.Error(t, res.err)
	assert.True(t, stderrors.Is(res.err, errors.ErrMultipleJSON))
}

func TestCLI_DebugLogging(t *testing.T) {
	res := run(t, `{}`, "--debug", "format")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "Loaded document")
	assert.Equal(t, "{}\n", res.stdout)

	res = run(t, `{}`, "format")
	require.NoError(t, res.err)
	assert.NotContains(t, res.stderr, "Loaded document")
}

func TestCLI_UnknownCommand(t *testing.T) {
	res := run(t, `{}`, "explode")
	assert.Error(t, res.err)
}

func TestCLI_DeepDocument(t *testing.T) {
	const depth = 10000
	input := strings.Repeat(`{"k":`, depth) + `"bottom"` + strings.Repeat(`}`, depth)

	res := run(t, input, "minify")
	require.NoError(t, res.err)
	assert.Equal(t, input+"\n", res.stdout)

	res = run(t, input, "search", "bottom", "-n", "3")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "k.k")

	res = run(t, input, "tree")
	require.NoError(t, res.err)
	lines := strings.Split(strings.TrimRight(res.stdout, "\n"), "\n")
	assert.Len(t, lines, 65)
	assert.Contains(t, res.stdout, render.TruncatedMarker)

	res = run(t, input, "tree", "--max-depth", "3")
	require.NoError(t, res.err)
	assert.Len(t, strings.Split(strings.TrimRight(res.stdout, "\n"), "\n"), 4)
}

func TestCLI_RootLabelFlag(t *testing.T) {
	res := run(t, `{"a": 1}`, "--root-label", "top", "graph", "--format", "json")
	require.NoError(t, res.err)

	var doc struct {
		Nodes []struct {
			Label string `json:"label"`
		} `json:"nodes"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &doc))
	require.NotEmpty(t, doc.Nodes)
	assert.Equal(t, "top", doc.Nodes[0].Label)
}
