package formatter

import (
	"strings"
	"unicode/utf8"

	"github.com/mcncl/jsonlens/internal/models"
)

// DefaultIndent is the indentation width used when displaying documents.
const DefaultIndent = 2

// DefaultPreviewLimit is the number of characters a preview keeps before it
// is cut off with an ellipsis.
const DefaultPreviewLimit = 100

// Span is the byte range of one node within a compact serialization.
type Span struct {
	Start int
	End   int
}

// Formatter serializes Values to JSON text.
type Formatter struct {
	// Indent is the number of spaces per nesting level. Zero produces
	// compact output.
	Indent int
}

// Format serializes v using the formatter's indentation.
func (f *Formatter) Format(v models.Value) string {
	w := writer{indent: f.Indent}
	w.write(v)
	return w.buf.String()
}

// Format serializes v with indent spaces per level.
func Format(v models.Value, indent int) string {
	return (&Formatter{Indent: indent}).Format(v)
}

// Minify serializes v without any insignificant whitespace.
func Minify(v models.Value) string {
	return Format(v, 0)
}

// Annotate serializes v compactly and returns, for every node in depth-first
// pre-order, the byte span of that node's own serialization. When fold is
// non-nil it is applied to keys and string contents before they are escaped,
// and number literals are lower-cased.
//
// Compact serialization nests: the text of a subtree is exactly the span of
// its root within the text of any ancestor.
func Annotate(v models.Value, fold func(string) string) (string, []Span) {
	w := writer{fold: fold, spans: []Span{}}
	w.write(v)
	return w.buf.String(), w.spans
}

// ScalarText returns the plain string form of a scalar: string contents
// without quotes, the number literal, "true"/"false" or "null". Containers
// return their compact serialization.
func ScalarText(v models.Value) string {
	switch v.Kind() {
	case models.KindString:
		return v.AsString()
	case models.KindNumber:
		return v.NumberLiteral()
	case models.KindBool:
		if v.AsBool() {
			return "true"
		}
		return "false"
	case models.KindNull:
		return "null"
	default:
		return Minify(v)
	}
}

// Preview returns display text for v: the compact serialization for
// containers and the scalar text otherwise, cut to limit characters plus
// "..." when longer. A limit of zero or less disables truncation.
func Preview(v models.Value, limit int) string {
	return Truncate(ScalarText(v), limit)
}

// Truncate shortens s to limit runes followed by "...".
func Truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}

type frame struct {
	v    models.Value
	next int
	node int
}

// writer emits JSON text iteratively.
type writer struct {
	buf    strings.Builder
	indent int
	fold   func(string) string
	spans  []Span
	stack  []frame
}

func (w *writer) write(root models.Value) {
	w.open(root)
	for len(w.stack) > 0 {
		top := &w.stack[len(w.stack)-1]
		if top.next == top.v.Len() {
			w.newline(len(w.stack) - 1)
			if top.v.Kind() == models.KindArray {
				w.buf.WriteByte(']')
			} else {
				w.buf.WriteByte('}')
			}
			w.end(top.node)
			w.stack = w.stack[:len(w.stack)-1]
			continue
		}

		if top.next > 0 {
			w.buf.WriteByte(',')
		}
		w.newline(len(w.stack))
		key, child := top.v.Child(top.next)
		if top.v.Kind() == models.KindObject {
			w.quote(key)
			w.buf.WriteByte(':')
			if w.indent > 0 {
				w.buf.WriteByte(' ')
			}
		}
		top.next++
		w.open(child) // may grow w.stack; top is not used afterwards
	}
}

// open writes a scalar or empty container completely, or writes the opening
// delimiter of a non-empty container and pushes it.
func (w *writer) open(v models.Value) {
	node := w.begin()
	switch v.Kind() {
	case models.KindNull:
		w.buf.WriteString("null")
	case models.KindBool:
		if v.AsBool() {
			w.buf.WriteString("true")
		} else {
			w.buf.WriteString("false")
		}
	case models.KindNumber:
		lit := v.NumberLiteral()
		if w.fold != nil {
			lit = strings.ToLower(lit)
		}
		w.buf.WriteString(lit)
	case models.KindString:
		w.quote(v.AsString())
	case models.KindArray, models.KindObject:
		opening, closing := byte('['), byte(']')
		if v.Kind() == models.KindObject {
			opening, closing = '{', '}'
		}
		w.buf.WriteByte(opening)
		if v.Len() == 0 {
			w.buf.WriteByte(closing)
			break
		}
		w.stack = append(w.stack, frame{v: v, node: node})
		return
	}
	w.end(node)
}

func (w *writer) begin() int {
	if w.spans == nil {
		return -1
	}
	w.spans = append(w.spans, Span{Start: w.buf.Len()})
	return len(w.spans) - 1
}

func (w *writer) end(node int) {
	if node >= 0 {
		w.spans[node].End = w.buf.Len()
	}
}

func (w *writer) newline(depth int) {
	if w.indent <= 0 {
		return
	}
	w.buf.WriteByte('\n')
	w.buf.WriteString(strings.Repeat(" ", depth*w.indent))
}

const hex = "0123456789abcdef"

// quote writes s as a JSON string. Only quotes, backslashes and control
// characters are escaped; invalid UTF-8 is replaced with U+FFFD.
func (w *writer) quote(s string) {
	if w.fold != nil {
		s = w.fold(s)
	}
	w.buf.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch {
			case c == '"' || c == '\\':
				w.buf.WriteByte('\\')
				w.buf.WriteByte(c)
			case c == '\n':
				w.buf.WriteString(`\n`)
			case c == '\r':
				w.buf.WriteString(`\r`)
			case c == '\t':
				w.buf.WriteString(`\t`)
			case c == '\b':
				w.buf.WriteString(`\b`)
			case c == '\f':
				w.buf.WriteString(`\f`)
			case c < 0x20:
				w.buf.WriteString(`\u00`)
				w.buf.WriteByte(hex[c>>4])
				w.buf.WriteByte(hex[c&0xf])
			default:
				w.buf.WriteByte(c)
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			w.buf.WriteString("\ufffd")
		} else {
			w.buf.WriteString(s[i : i+size])
		}
		i += size
	}
	w.buf.WriteByte('"')
}
