// Package analyzer collects structural statistics about a JSON document.
package analyzer

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/mcncl/jsonlens/internal/formatter"
	"github.com/mcncl/jsonlens/internal/models"
)

// Format names reported in Stats.Formats.
const (
	FormatUUID          = "uuid"
	FormatDateTime      = "date-time"
	FormatDate          = "date"
	FormatUnixTimestamp = "unix-timestamp"
	FormatUnixMilli     = "unix-milli"
)

// Regex patterns for recognisable string and number formats
var (
	uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

	iso8601Regex       = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?([+-]\d{2}:\d{2}|Z|[+-]\d{4})?$`) // 2006-01-02T15:04:05Z and variants
	dateTimeRegex      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(\.\d+)?$`)                               // 2006-01-02 15:04:05
	dateOnlyRegex      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)                                                         // 2006-01-02
	unixTimestampRegex = regexp.MustCompile(`^1[0-9]{9}$`)                                                                 // seconds since 1970
	unixMilliRegex     = regexp.MustCompile(`^1[0-9]{12}$`)                                                                // milliseconds since 1970
)

// Stats summarizes a document.
type Stats struct {
	// Nodes is the total number of values, the root included.
	Nodes int
	// Kinds counts values per kind.
	Kinds map[models.Kind]int
	// MaxDepth is the deepest nesting level; a scalar root has depth 0.
	MaxDepth int
	// LargestArray and LargestObject are the biggest container sizes seen.
	LargestArray  int
	LargestObject int
	// DistinctKeys is the number of different object keys.
	DistinctKeys int
	// Bytes is the size of the compact serialization.
	Bytes int
	// Formats counts strings and numbers that look like identifiers or
	// timestamps.
	Formats map[string]int
}

// Analyze walks v once and returns its statistics.
func Analyze(v models.Value) Stats {
	stats := Stats{
		Kinds:   make(map[models.Kind]int),
		Formats: make(map[string]int),
		Bytes:   len(formatter.Minify(v)),
	}
	keys := make(map[string]struct{})

	type item struct {
		v     models.Value
		depth int
	}
	stack := []item{{v: v}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		stats.Nodes++
		stats.Kinds[it.v.Kind()]++
		if it.depth > stats.MaxDepth {
			stats.MaxDepth = it.depth
		}

		switch it.v.Kind() {
		case models.KindArray:
			stats.LargestArray = max(stats.LargestArray, it.v.Len())
		case models.KindObject:
			stats.LargestObject = max(stats.LargestObject, it.v.Len())
			for _, m := range it.v.Members() {
				keys[m.Key] = struct{}{}
			}
		case models.KindString:
			if f := stringFormat(it.v.AsString()); f != "" {
				stats.Formats[f]++
			}
		case models.KindNumber:
			if f := numberFormat(it.v.NumberLiteral()); f != "" {
				stats.Formats[f]++
			}
		}

		for i := it.v.Len() - 1; i >= 0; i-- {
			_, child := it.v.Child(i)
			stack = append(stack, item{v: child, depth: it.depth + 1})
		}
	}
	stats.DistinctKeys = len(keys)
	return stats
}

// FormatNames returns the detected format names in sorted order.
func (s Stats) FormatNames() []string {
	names := make([]string, 0, len(s.Formats))
	for name := range s.Formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func stringFormat(s string) string {
	switch {
	case uuidRegex.MatchString(s):
		return FormatUUID
	case iso8601Regex.MatchString(s), dateTimeRegex.MatchString(s):
		return FormatDateTime
	case dateOnlyRegex.MatchString(s):
		return FormatDate
	}
	return ""
}

func numberFormat(lit string) string {
	switch {
	case unixTimestampRegex.MatchString(lit):
		return FormatUnixTimestamp
	case unixMilliRegex.MatchString(lit):
		return FormatUnixMilli
	}
	return ""
}

// Describe returns the hover text for a node: the container size for arrays
// and objects, the label alone otherwise.
func Describe(label string, v models.Value) string {
	switch v.Kind() {
	case models.KindArray:
		return fmt.Sprintf("%s (Array with %d items)", label, v.Len())
	case models.KindObject:
		return fmt.Sprintf("%s (Object with %d properties)", label, v.Len())
	default:
		return label
	}
}
