package jsonpath

import (
	stderrors "errors"
	"testing"

	"github.com/mcncl/jsonlens/internal/errors"
	"github.com/mcncl/jsonlens/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath_Valid(t *testing.T) {
	k := models.KeyStep
	i := models.IndexStep

	tests := []struct {
		input    string
		expected models.Path
	}{
		{"", models.Path{}},
		{"$", models.Path{}},
		{"a", models.Path{k("a")}},
		{"$.a", models.Path{k("a")}},
		{"a.b[0].c", models.Path{k("a"), k("b"), i(0), k("c")}},
		{"$.users[0].name", models.Path{k("users"), i(0), k("name")}},
		{"a[0][1]", models.Path{k("a"), i(0), i(1)}},
		{"[2]", models.Path{i(2)}},
		{"$[2].x", models.Path{i(2), k("x")}},
		{`a["b.c"]`, models.Path{k("a"), k("b.c")}},
		{`[""]`, models.Path{k("")}},
		{`a["say \"hi\""]`, models.Path{k("a"), k(`say "hi"`)}},
		{"$abc", models.Path{k("$abc")}},
		{"first name.0", models.Path{k("first name"), k("0")}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			path, err := ParsePath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, path)
		})
	}
}

func TestParsePath_Invalid(t *testing.T) {
	inputs := []string{
		"a[",
		"a[0",
		"a]",
		"a[x]",
		"a[-1]",
		"a[]",
		"a..b",
		"a.",
		"$.",
		"a[0]b",
		`a["open`,
		`a["x"`,
		"a[99999999999999999999999]",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ParsePath(input)
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, errors.ErrInvalidPathSyntax), "error %v should wrap ErrInvalidPathSyntax", err)
		})
	}
}

func TestFormatPath(t *testing.T) {
	k := models.KeyStep
	i := models.IndexStep

	tests := []struct {
		path     models.Path
		expected string
	}{
		{models.Path{}, "$"},
		{models.Path{k("a"), k("b"), i(0), k("c")}, "a.b[0].c"},
		{models.Path{i(0), k("a")}, "[0].a"},
		{models.Path{k("a"), k("x.y")}, `a["x.y"]`},
		{models.Path{k("")}, `[""]`},
		{models.Path{k("$")}, `["$"]`},
		{models.Path{k("a"), k("$")}, "a.$"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatPath(tt.path))
		})
	}
}

func TestFormatPath_RoundTrip(t *testing.T) {
	k := models.KeyStep
	i := models.IndexStep

	paths := []models.Path{
		{},
		{k("a")},
		{i(0)},
		{i(0), i(1), k("z")},
		{k("weird.key"), k("[x]"), k(`q"uote`), k(`back\slash`)},
		{k(""), i(3), k("")},
		{k("$"), k("$.x")},
		{k("spaces are fine"), k("0")},
	}

	for _, path := range paths {
		text := FormatPath(path)
		t.Run(text, func(t *testing.T) {
			parsed, err := ParsePath(text)
			require.NoError(t, err)
			assert.True(t, path.Equal(parsed), "round trip of %q gave %v", text, parsed)
		})
	}
}

func TestDisplayPath(t *testing.T) {
	assert.Equal(t, "/", DisplayPath(models.Path{}))
	assert.Equal(t, "user.name", DisplayPath(models.Path{models.KeyStep("user"), models.KeyStep("name")}))
}
