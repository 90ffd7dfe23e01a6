package jsonpath

import (
	"strings"

	"github.com/mcncl/jsonlens/internal/models"
)

// NotFoundMessage is the text carried by error results from Query.
const NotFoundMessage = "Path not found or invalid"

// Evaluate walks path from root. A key step on a non-object, an index step on
// a non-array, an out-of-range index and a missing key all report false.
func Evaluate(root models.Value, path models.Path) (models.Value, bool) {
	current := root
	for _, step := range path {
		var ok bool
		switch step.Kind {
		case models.StepKey:
			current, ok = current.Get(step.Key)
		case models.StepIndex:
			current, ok = current.Index(step.Index)
		}
		if !ok {
			return models.Value{}, false
		}
	}
	return current, true
}

// Resolve evaluates path and packages the outcome as a SearchResult.
func Resolve(root models.Value, path models.Path) (models.SearchResult, bool) {
	v, ok := Evaluate(root, path)
	if !ok {
		return models.SearchResult{}, false
	}
	return models.SearchResult{Path: path, Value: v, Kind: v.Kind()}, true
}

// Query parses text and evaluates it against root. It always returns exactly
// one result; syntax errors and failed lookups produce a result of kind
// KindError whose Value is a human-readable message.
func Query(root models.Value, text string) []models.SearchResult {
	text = strings.TrimSpace(text)
	path, err := ParsePath(text)
	if err != nil {
		return []models.SearchResult{errorResult(NotFoundMessage + ": " + err.Error())}
	}
	result, ok := Resolve(root, path)
	if !ok {
		return []models.SearchResult{errorResult(NotFoundMessage)}
	}
	return []models.SearchResult{result}
}

func errorResult(message string) models.SearchResult {
	return models.SearchResult{Value: models.String(message), Kind: models.KindError}
}
