// Package transform implements structural rewrites of JSON values. Every
// function returns a new Value and leaves its input untouched.
package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/jsonlens/internal/errors"
	"github.com/mcncl/jsonlens/internal/models"
)

// Names of the transforms accepted by Apply.
const (
	NameFlatten    = "flatten"
	NameMinify     = "minify"
	NameSortKeys   = "sort-keys"
	NameRenameKeys = "rename-keys"
)

// KeyStyle selects the case convention used by RenameKeys.
type KeyStyle string

const (
	StyleCamel  KeyStyle = "camel"
	StylePascal KeyStyle = "pascal"
	StyleSnake  KeyStyle = "snake"
	StyleKebab  KeyStyle = "kebab"
)

// Options tunes transforms that need extra input.
type Options struct {
	// ScalarKey is the key Flatten uses for a top-level scalar.
	ScalarKey string
	// Style is the key style used by rename-keys.
	Style KeyStyle
}

// Apply runs the named transform. Unknown names and styles are reported as
// transform errors.
func Apply(name string, v models.Value, opts Options) (models.Value, error) {
	switch name {
	case NameFlatten:
		return Flatten(v, opts.ScalarKey), nil
	case NameMinify:
		return Clone(v), nil
	case NameSortKeys:
		return SortKeys(v), nil
	case NameRenameKeys:
		return RenameKeys(v, opts.Style)
	default:
		return models.Value{}, errors.NewTransformError(fmt.Sprintf("unknown transform %q", name), errors.ErrUnknownTransform)
	}
}

// Clone returns a deep copy of v that shares no slices with it.
func Clone(v models.Value) models.Value {
	return rebuild(v, nil)
}

// SortKeys returns a deep copy of v with the members of every object ordered
// by byte-wise key comparison. Array order is kept.
func SortKeys(v models.Value) models.Value {
	return rebuild(v, func(members []models.Member) []models.Member {
		sorted := make([]models.Member, len(members))
		copy(sorted, members)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })
		return sorted
	})
}

// RenameKeys returns a deep copy of v with every object key converted to
// style. When two keys of one object map to the same name the later value
// wins and keeps the earlier position.
func RenameKeys(v models.Value, style KeyStyle) (models.Value, error) {
	var convert func(string) string
	switch style {
	case StyleCamel:
		convert = strcase.ToLowerCamel
	case StylePascal:
		convert = strcase.ToCamel
	case StyleSnake:
		convert = strcase.ToSnake
	case StyleKebab:
		convert = strcase.ToKebab
	default:
		return models.Value{}, errors.NewTransformError(fmt.Sprintf("unknown key style %q", style), errors.ErrUnknownTransform)
	}

	return rebuild(v, func(members []models.Member) []models.Member {
		renamed := make([]models.Member, len(members))
		for i, m := range members {
			renamed[i] = models.Member{Key: convert(m.Key), Value: m.Value}
		}
		return renamed
	}), nil
}

// Flatten collapses nested objects into a single object whose keys are the
// dot-joined paths of the leaves. Arrays below the root are leaves.
// Empty nested objects contribute no entries.
//
// A top-level array is treated as an object keyed by element index ("0",
// "1", ...), so object elements are descended into. A top-level
// scalar yields a single entry under scalarKey. When two paths collide the
// later value wins and keeps the earlier position.
func Flatten(v models.Value, scalarKey string) models.Value {
	if v.Kind() == models.KindArray {
		members := make([]models.Member, 0, v.Len())
		for i, elem := range v.Elements() {
			members = append(members, models.Member{Key: strconv.Itoa(i), Value: elem})
		}
		v = models.Object(members...)
	}
	if v.Kind() != models.KindObject {
		return models.Object(models.Member{Key: scalarKey, Value: v})
	}

	type frame struct {
		key  string
		obj  models.Value
		next int
	}

	var members []models.Member
	stack := []frame{{obj: v}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == top.obj.Len() {
			stack = stack[:len(stack)-1]
			continue
		}
		m := top.obj.Members()[top.next]
		top.next++

		if m.Value.Kind() == models.KindObject {
			stack = append(stack, frame{key: m.Key, obj: m.Value})
			continue
		}
		keys := make([]string, 0, len(stack))
		for _, f := range stack[1:] {
			keys = append(keys, f.key)
		}
		members = append(members, models.Member{Key: joinKeys(append(keys, m.Key)), Value: Clone(m.Value)})
	}
	return models.Object(members...)
}

// joinKeys dot-joins keys, skipping the separator while the joined prefix is
// still empty.
func joinKeys(keys []string) string {
	var b strings.Builder
	for _, k := range keys {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(k)
	}
	return b.String()
}

// reorder maps an object's member list to the list to build. A nil reorder
// keeps members as they are.
type reorder func([]models.Member) []models.Member

type buildFrame struct {
	src     models.Value
	members []models.Member
	built   []models.Value
}

// rebuild deep-copies v bottom-up with an explicit stack, letting reorder
// rewrite each object's member list before its children are copied.
func rebuild(v models.Value, fn reorder) models.Value {
	if !v.IsContainer() {
		return v
	}

	push := func(stack []buildFrame, src models.Value) []buildFrame {
		f := buildFrame{src: src, built: make([]models.Value, 0, src.Len())}
		if src.Kind() == models.KindObject {
			f.members = src.Members()
			if fn != nil {
				f.members = fn(f.members)
			}
		}
		return append(stack, f)
	}

	var result models.Value
	stack := push(nil, v)
	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		var next models.Value
		pending := false
		if top.src.Kind() == models.KindObject {
			if i := len(top.built); i < len(top.members) {
				next, pending = top.members[i].Value, true
			}
		} else if i := len(top.built); i < top.src.Len() {
			next, pending = top.src.Elements()[i], true
		}

		if pending {
			if next.IsContainer() {
				stack = push(stack, next)
			} else {
				top.built = append(top.built, next)
			}
			continue
		}

		var done models.Value
		if top.src.Kind() == models.KindObject {
			out := make([]models.Member, len(top.members))
			for i, m := range top.members {
				out[i] = models.Member{Key: m.Key, Value: top.built[i]}
			}
			done = models.Object(out...)
		} else {
			done = models.Array(top.built...)
		}

		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			result = done
			break
		}
		parent := &stack[len(stack)-1]
		parent.built = append(parent.built, done)
	}
	return result
}
