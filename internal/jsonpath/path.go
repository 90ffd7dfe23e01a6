// Package jsonpath parses, formats and evaluates dotted/bracketed paths such
// as users[0].name or $.a["dotted.key"][2].
package jsonpath

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mcncl/jsonlens/internal/errors"
	"github.com/mcncl/jsonlens/internal/models"
)

// RootMarker is the optional leading token that names the root value.
const RootMarker = "$"

// ParsePath splits text into access steps. A leading "$" (alone, or followed
// by "." or "[") is skipped, and "" or "$" is the root path.
//
// Plain segments are keys separated by dots. Brackets hold either an array
// index made of decimal digits or a double-quoted key using JSON string
// escapes; brackets may be chained, as in a[0][1].
func ParsePath(text string) (models.Path, error) {
	p := &pathParser{src: text}
	return p.parse()
}

type pathParser struct {
	src string
	pos int
}

func (p *pathParser) fail(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return errors.NewPathError(fmt.Sprintf("%s at position %d in %q", msg, p.pos, p.src), errors.ErrInvalidPathSyntax)
}

func (p *pathParser) parse() (models.Path, error) {
	path := models.Path{}
	if strings.HasPrefix(p.src, RootMarker) {
		rest := p.src[len(RootMarker):]
		switch {
		case rest == "":
			return path, nil
		case rest[0] == '.':
			p.pos = len(RootMarker) + 1
			if p.pos == len(p.src) {
				return nil, p.fail("expected a key after '.'")
			}
		case rest[0] == '[':
			p.pos = len(RootMarker)
		}
	}

	expectKey := p.pos < len(p.src) && p.src[p.pos] != '['
	for p.pos < len(p.src) {
		if expectKey {
			key, err := p.key()
			if err != nil {
				return nil, err
			}
			path = append(path, models.KeyStep(key))
			expectKey = false
			continue
		}

		switch p.src[p.pos] {
		case '[':
			step, err := p.bracket()
			if err != nil {
				return nil, err
			}
			path = append(path, step)
		case '.':
			p.pos++
			if p.pos == len(p.src) {
				return nil, p.fail("expected a key after '.'")
			}
			expectKey = true
		default:
			return nil, p.fail("unexpected character %q", p.src[p.pos])
		}
	}
	return path, nil
}

// key reads a plain key up to the next '.' or '['.
func (p *pathParser) key() (string, error) {
	start := p.pos
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '.', '[':
			if p.pos == start {
				return "", p.fail("empty key")
			}
			return p.src[start:p.pos], nil
		case ']':
			return "", p.fail("unmatched ']'")
		}
		p.pos++
	}
	return p.src[start:], nil
}

// bracket reads "[digits]" or "[\"quoted key\"]".
func (p *pathParser) bracket() (models.PathStep, error) {
	open := p.pos
	p.pos++ // '['
	if p.pos < len(p.src) && p.src[p.pos] == '"' {
		key, err := p.quoted()
		if err != nil {
			return models.PathStep{}, err
		}
		if p.pos >= len(p.src) || p.src[p.pos] != ']' {
			p.pos = open
			return models.PathStep{}, p.fail("unmatched '['")
		}
		p.pos++
		return models.KeyStep(key), nil
	}

	end := strings.IndexByte(p.src[p.pos:], ']')
	if end < 0 {
		p.pos = open
		return models.PathStep{}, p.fail("unmatched '['")
	}
	digits := p.src[p.pos : p.pos+end]
	if digits == "" || strings.Trim(digits, "0123456789") != "" {
		return models.PathStep{}, p.fail("array index %q is not a non-negative integer", digits)
	}
	index, err := strconv.Atoi(digits)
	if err != nil {
		return models.PathStep{}, p.fail("array index %q is out of range", digits)
	}
	p.pos += end + 1
	return models.IndexStep(index), nil
}

// quoted reads a JSON string literal starting at the current '"'.
func (p *pathParser) quoted() (string, error) {
	start := p.pos
	i := p.pos + 1
	for i < len(p.src) {
		switch p.src[i] {
		case '\\':
			i += 2
			continue
		case '"':
			var key string
			if err := json.Unmarshal([]byte(p.src[start:i+1]), &key); err != nil {
				return "", p.fail("invalid quoted key")
			}
			p.pos = i + 1
			return key, nil
		}
		i++
	}
	return "", p.fail("unterminated quoted key")
}

// FormatPath renders path so that ParsePath(FormatPath(path)) yields an equal
// path. The root path renders as "$". Keys that could not be read back as a
// plain segment use the bracketed, quoted form.
func FormatPath(path models.Path) string {
	if path.IsRoot() {
		return RootMarker
	}
	var b strings.Builder
	for i, step := range path {
		if step.Kind == models.StepIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(step.Index))
			b.WriteByte(']')
			continue
		}
		if needsQuoting(step.Key, i == 0) {
			quoted, _ := json.Marshal(step.Key)
			b.WriteByte('[')
			b.Write(quoted)
			b.WriteByte(']')
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(step.Key)
	}
	return b.String()
}

// DisplayPath renders a path for result listings, using "/" for the root.
func DisplayPath(path models.Path) string {
	if path.IsRoot() {
		return "/"
	}
	return FormatPath(path)
}

func needsQuoting(key string, first bool) bool {
	if key == "" {
		return true
	}
	if first && strings.HasPrefix(key, RootMarker) {
		return true
	}
	return strings.ContainsAny(key, `.[]"\`)
}
