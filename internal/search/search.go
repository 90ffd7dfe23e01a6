// Package search finds the nodes of a JSON document whose serialized form
// contains a term.
package search

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/mcncl/jsonlens/internal/formatter"
	"github.com/mcncl/jsonlens/internal/models"
)

// Options tunes a search.
type Options struct {
	// MaxResults stops the search once this many matches are collected.
	// Zero means unlimited.
	MaxResults int
}

// Search returns every node of root whose compact serialization contains
// term, compared case-insensitively. Results are in depth-first pre-order:
// a matching container is reported before its matching descendants. An empty
// or whitespace-only term matches nothing.
func Search(root models.Value, term string) []models.SearchResult {
	return SearchWithOptions(root, term, Options{})
}

// SearchWithOptions is Search with a result limit.
func SearchWithOptions(root models.Value, term string, opts Options) []models.SearchResult {
	if strings.TrimSpace(term) == "" {
		return nil
	}

	fold := cases.Fold()
	needle := fold.String(term)
	text, spans := formatter.Annotate(root, fold.String)
	hits := occurrences(text, needle)
	if len(hits) == 0 {
		return nil
	}

	matches := func(node int) bool {
		span := spans[node]
		i := sort.SearchInts(hits, span.Start)
		return i < len(hits) && hits[i]+len(needle) <= span.End
	}

	type item struct {
		v     models.Value
		depth int
		step  models.PathStep
	}

	var (
		results   []models.SearchResult
		published int
		node      int
	)
	path := make(models.Path, 0, 16)
	stack := []item{{v: root}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if it.depth > 0 {
			at := it.depth - 1
			if at < published {
				// Earlier results share the backing array past this point.
				fresh := make(models.Path, at, it.depth+8)
				copy(fresh, path[:at])
				path, published = fresh, 0
			}
			path = append(path[:at], it.step)
		}

		current := node
		node++
		if !matches(current) {
			// Nothing below a non-matching node can match, so skip its
			// subtree while keeping the pre-order node numbering in step.
			node += countDescendants(it.v)
			continue
		}

		results = append(results, models.SearchResult{
			Path:  path[:it.depth:it.depth],
			Value: it.v,
			Kind:  it.v.Kind(),
		})
		if it.depth > published {
			published = it.depth
		}
		if opts.MaxResults > 0 && len(results) >= opts.MaxResults {
			break
		}

		for i := it.v.Len() - 1; i >= 0; i-- {
			key, child := it.v.Child(i)
			step := models.KeyStep(key)
			if it.v.Kind() == models.KindArray {
				step = models.IndexStep(i)
			}
			stack = append(stack, item{v: child, depth: it.depth + 1, step: step})
		}
	}
	return results
}

// occurrences returns the start offset of every, possibly overlapping,
// occurrence of needle in text.
func occurrences(text, needle string) []int {
	var hits []int
	for from := 0; from <= len(text)-len(needle); {
		i := strings.Index(text[from:], needle)
		if i < 0 {
			break
		}
		hits = append(hits, from+i)
		from += i + 1
	}
	return hits
}

// countDescendants returns the number of nodes below v.
func countDescendants(v models.Value) int {
	count := 0
	stack := []models.Value{v}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for i := 0; i < top.Len(); i++ {
			_, child := top.Child(i)
			count++
			stack = append(stack, child)
		}
	}
	return count
}
