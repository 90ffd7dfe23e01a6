package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	stderrors "errors" // Standard errors package

	"github.com/mcncl/jsonlens/internal/errors" // Custom errors package
	"github.com/mcncl/jsonlens/internal/models"
)

// Parse reads exactly one JSON document from reader.
func Parse(reader io.Reader) (models.Value, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.Value{}, errors.NewInputError("failed to read input", err)
	}
	return ParseBytes(data)
}

// ParseBytes parses a single JSON document. Objects keep their key order;
// a repeated key keeps its first position and its last value.
//
// The document is assembled from the decoder's token stream using an
// explicit stack, so nesting depth is limited only by memory.
func ParseBytes(data []byte) (models.Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return models.Value{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber() // Keep number literals intact

	var b builder
	for {
		tok, err := decoder.Token()
		if err != nil {
			return models.Value{}, syntaxFailure(data, decoder, &b, err)
		}
		if b.push(tok) {
			break
		}
	}
	end := decoder.InputOffset()

	// Anything other than whitespace after the root value is an error.
	_, err := decoder.Token()
	switch {
	case err == nil:
		if at, ok := adjacentNumber(data, b.root, end); ok {
			msg := fmt.Sprintf("invalid character %q after top-level value", rune(data[at]))
			return models.Value{}, errors.NewParsingError("JSON syntax error", errors.NewParseError(data, at, msg))
		}
		return models.Value{}, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	case stderrors.Is(err, io.EOF):
		return b.root, nil
	default:
		return models.Value{}, syntaxFailure(data, decoder, &b, err)
	}
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.Value, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.Value{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return ParseBytes([]byte(jsonString))
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string) (models.Value, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.Value{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Value{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.Value{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return models.Value{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}
	return ParseBytes(data)
}

// maxValidateDepth is the deepest nesting encoding/json's validator accepts.
const maxValidateDepth = 10000

// syntaxFailure converts a decoder error into a ParseError whose offset is
// the index of the offending byte.
func syntaxFailure(data []byte, decoder *json.Decoder, b *builder, err error) error {
	if stderrors.Is(err, io.EOF) || stderrors.Is(err, io.ErrUnexpectedEOF) {
		perr := errors.NewParseError(data, int64(len(data)), "unexpected end of JSON input")
		return errors.NewParsingError("JSON syntax error", perr)
	}

	var syntaxError *json.SyntaxError
	if !stderrors.As(err, &syntaxError) {
		return errors.NewParsingError("failed to decode JSON", err)
	}

	// Offsets reported by the token decoder are not absolute. Within the
	// validator's depth limit a whole-document pass finds the same fault.
	if b.maxDepth <= maxValidateDepth {
		var raw json.RawMessage
		var verr *json.SyntaxError
		if stderrors.As(json.Unmarshal(data, &raw), &verr) {
			perr := errors.NewParseError(data, verr.Offset-1, verr.Error())
			return errors.NewParsingError("JSON syntax error", perr)
		}
	}

	perr := errors.NewParseError(data, tokenFault(data, decoder.InputOffset()), syntaxError.Error())
	return errors.NewParsingError("JSON syntax error", perr)
}

// tokenFault locates a fault in the token starting at start. A scalar that
// fails on its own is rescanned to find the bad byte; otherwise the token
// itself is out of place.
func tokenFault(data []byte, start int64) int64 {
	if start >= int64(len(data)) {
		return int64(len(data))
	}
	var raw json.RawMessage
	var serr *json.SyntaxError
	if err := json.NewDecoder(bytes.NewReader(data[start:])).Decode(&raw); stderrors.As(err, &serr) {
		return start + serr.Offset - 1
	}
	return start
}

// adjacentNumber reports the offset of a token that follows a top-level
// number with no whitespace between them, as in "01".
func adjacentNumber(data []byte, root models.Value, end int64) (int64, bool) {
	if root.Kind() != models.KindNumber || end >= int64(len(data)) {
		return 0, false
	}
	switch data[end] {
	case ' ', '\t', '\n', '\r':
		return 0, false
	}
	return end, true
}

type frame struct {
	array   bool
	elems   []models.Value
	members []models.Member
	key     string
	haveKey bool
}

// builder assembles a Value from a token stream.
type builder struct {
	stack    []frame
	root     models.Value
	maxDepth int
}

// push consumes one token and reports whether the root value is complete.
func (b *builder) push(tok json.Token) bool {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			b.open(frame{array: true})
			return false
		case '{':
			b.open(frame{})
			return false
		default: // ']' or '}'
			f := b.stack[len(b.stack)-1]
			b.stack = b.stack[:len(b.stack)-1]
			if f.array {
				return b.add(models.Array(f.elems...))
			}
			return b.add(models.Object(f.members...))
		}
	case string:
		if n := len(b.stack); n > 0 && !b.stack[n-1].array && !b.stack[n-1].haveKey {
			b.stack[n-1].key = t
			b.stack[n-1].haveKey = true
			return false
		}
		return b.add(models.String(t))
	case json.Number:
		return b.add(models.NumberLiteral(string(t)))
	case bool:
		return b.add(models.Bool(t))
	default: // nil
		return b.add(models.Null())
	}
}

func (b *builder) open(f frame) {
	b.stack = append(b.stack, f)
	b.maxDepth = max(b.maxDepth, len(b.stack))
}

func (b *builder) add(v models.Value) bool {
	n := len(b.stack)
	if n == 0 {
		b.root = v
		return true
	}
	top := &b.stack[n-1]
	if top.array {
		top.elems = append(top.elems, v)
		return false
	}
	top.members = append(top.members, models.Member{Key: top.key, Value: v})
	top.key, top.haveKey = "", false
	return false
}
