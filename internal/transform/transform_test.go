package transform

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/mcncl/jsonlens/internal/errors"
	"github.com/mcncl/jsonlens/internal/formatter"
	"github.com/mcncl/jsonlens/internal/models"
	"github.com/mcncl/jsonlens/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, input string) models.Value {
	t.Helper()
	v, err := parser.ParseString(input)
	require.NoError(t, err)
	return v
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "nested objects",
			input:    `{"a": {"b": 1, "c": {"d": 2}}}`,
			expected: `{"a.b":1,"a.c.d":2}`,
		},
		{
			name:     "arrays are leaves",
			input:    `{"a": {"list": [1, {"x": 2}]}, "b": []}`,
			expected: `{"a.list":[1,{"x":2}],"b":[]}`,
		},
		{
			name:     "already flat keeps entries",
			input:    `{"x": 1, "y": "two", "z": null}`,
			expected: `{"x":1,"y":"two","z":null}`,
		},
		{
			name:     "empty nested object contributes nothing",
			input:    `{"a": {}, "b": 1}`,
			expected: `{"b":1}`,
		},
		{
			name:     "colliding paths keep first position",
			input:    `{"a.b": 1, "a": {"b": 2}, "c": 3}`,
			expected: `{"a.b":2,"c":3}`,
		},
		{
			name:     "top-level array keyed by index",
			input:    `[{"a": 1}, "x"]`,
			expected: `{"0.a":1,"1":"x"}`,
		},
		{
			name:     "top-level array descends into object elements",
			input:    `[{"a": 1, "b": {"c": 2}}, "x", [3], {}]`,
			expected: `{"0.a":1,"0.b.c":2,"1":"x","2":[3]}`,
		},
		{
			name:     "top-level scalar",
			input:    `42`,
			expected: `{"":42}`,
		},
		{
			name:     "empty object",
			input:    `{}`,
			expected: `{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Flatten(mustParse(t, tt.input), "")
			assert.Equal(t, tt.expected, formatter.Minify(out))
		})
	}
}

func TestFlatten_ScalarKey(t *testing.T) {
	out := Flatten(models.String("hi"), "root")
	assert.Equal(t, `{"root":"hi"}`, formatter.Minify(out))
}

func TestSortKeys(t *testing.T) {
	input := mustParse(t, `{"b": 1, "a": {"z": [{"y": 1, "x": 2}, 3, 1], "m": null}, "B": true}`)
	out := SortKeys(input)

	assert.Equal(t, `{"B":true,"a":{"m":null,"z":[{"x":2,"y":1},3,1]},"b":1}`, formatter.Minify(out))
	assert.Equal(t, `{"b":1,"a":{"z":[{"y":1,"x":2},3,1],"m":null},"B":true}`, formatter.Minify(input), "input must be untouched")
}

func TestSortKeys_Example(t *testing.T) {
	out := SortKeys(mustParse(t, `{"b": 1, "a": 2}`))
	assert.Equal(t, `{"a":2,"b":1}`, formatter.Minify(out))
}

func TestSortKeys_Idempotent(t *testing.T) {
	once := SortKeys(mustParse(t, `{"c": {"b": [ {"d": 1, "a": 0} ], "a": 1}, "a": "x"}`))
	twice := SortKeys(once)
	assert.True(t, once.Equal(twice))
}

func TestSortKeys_Scalars(t *testing.T) {
	assert.True(t, models.Number(5).Equal(SortKeys(models.Number(5))))
	assert.True(t, models.Null().Equal(SortKeys(models.Null())))
}

func TestClone(t *testing.T) {
	input := mustParse(t, `{"a": [1, {"b": "c"}], "d": {}}`)
	out := Clone(input)

	assert.True(t, input.Equal(out))

	inArr, _ := input.Get("a")
	outArr, _ := out.Get("a")
	require.NotEmpty(t, inArr.Elements())
	assert.NotSame(t, &inArr.Elements()[0], &outArr.Elements()[0], "clone must not share element storage")
	assert.NotSame(t, &input.Members()[0], &out.Members()[0], "clone must not share member storage")
}

func TestRenameKeys(t *testing.T) {
	input := mustParse(t, `{"user_name": "ada", "homeAddress": {"zip_code": "1"}, "list": [{"item_id": 1}]}`)

	tests := []struct {
		style    KeyStyle
		expected string
	}{
		{StyleCamel, `{"userName":"ada","homeAddress":{"zipCode":"1"},"list":[{"itemId":1}]}`},
		{StylePascal, `{"UserName":"ada","HomeAddress":{"ZipCode":"1"},"List":[{"ItemId":1}]}`},
		{StyleSnake, `{"user_name":"ada","home_address":{"zip_code":"1"},"list":[{"item_id":1}]}`},
		{StyleKebab, `{"user-name":"ada","home-address":{"zip-code":"1"},"list":[{"item-id":1}]}`},
	}

	for _, tt := range tests {
		t.Run(string(tt.style), func(t *testing.T) {
			out, err := RenameKeys(input, tt.style)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, formatter.Minify(out))
		})
	}
}

func TestRenameKeys_Collision(t *testing.T) {
	out, err := RenameKeys(mustParse(t, `{"user_id": 1, "other": 2, "userId": 3}`), StyleCamel)
	require.NoError(t, err)
	assert.Equal(t, `{"userId":3,"other":2}`, formatter.Minify(out))
}

func TestRenameKeys_UnknownStyle(t *testing.T) {
	_, err := RenameKeys(models.Object(), KeyStyle("shout"))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrUnknownTransform))
}

func TestApply(t *testing.T) {
	input := mustParse(t, `{"b": {"c": 1}, "a": 2}`)

	out, err := Apply(NameFlatten, input, Options{})
	require.NoError(t, err)
	assert.Equal(t, `{"b.c":1,"a":2}`, formatter.Minify(out))

	out, err = Apply(NameSortKeys, input, Options{})
	require.NoError(t, err)
	assert.Equal(t, `{"a":2,"b":{"c":1}}`, formatter.Minify(out))

	out, err = Apply(NameMinify, input, Options{})
	require.NoError(t, err)
	assert.True(t, input.Equal(out))

	out, err = Apply(NameRenameKeys, mustParse(t, `{"a_b": 1}`), Options{Style: StyleKebab})
	require.NoError(t, err)
	assert.Equal(t, `{"a-b":1}`, formatter.Minify(out))

	_, err = Apply("custom", input, Options{})
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrUnknownTransform))
}

func TestTransforms_DeepNesting(t *testing.T) {
	const depth = 10000
	input := mustParse(t, strings.Repeat(`{"k":`, depth)+`[1]`+strings.Repeat(`}`, depth))

	flat := Flatten(input, "")
	require.Equal(t, 1, flat.Len())
	assert.Equal(t, strings.Repeat("k.", depth-1)+"k", flat.Members()[0].Key)

	sorted := SortKeys(input)
	assert.True(t, input.Equal(sorted))

	assert.True(t, input.Equal(Clone(input)))
}
