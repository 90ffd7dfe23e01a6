package render

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/mcncl/jsonlens/internal/analyzer"
	"github.com/mcncl/jsonlens/internal/formatter"
	"github.com/mcncl/jsonlens/internal/models"
)

// DefaultLabelLimit is the number of value characters shown in a tree label.
const DefaultLabelLimit = 20

// TreeOptions configures tree rendering.
type TreeOptions struct {
	// LabelLimit truncates scalar values in labels. Zero uses
	// DefaultLabelLimit; a negative value disables truncation.
	LabelLimit int
	// Sizes appends the item or property count to container labels.
	Sizes bool
	// MaxDepth stops descending below this many levels. Containers at the
	// limit are drawn as leaves ending in TruncatedMarker. Zero draws every
	// level.
	MaxDepth int
}

// TruncatedMarker ends the label of a container whose children were cut off
// by TreeOptions.MaxDepth.
const TruncatedMarker = " …"

// NodeLabel returns the display label of a tree node: the bare name for
// containers and "name: value" for scalars.
func NodeLabel(node *models.TreeNode, limit int) string {
	if limit == 0 {
		limit = DefaultLabelLimit
	}
	name := node.Label
	if name == "" {
		name = strconv.Quote(name)
	}
	if node.Value.IsContainer() {
		return name
	}
	return name + ": " + formatter.Truncate(formatter.ScalarText(node.Value), limit)
}

// Tree renders a hierarchy as an indented terminal tree.
func Tree(root *models.TreeNode, opts TreeOptions) string {
	t := tree.Root(treeLabel(root, opts)).
		RootStyle(styleRoot).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(styleEnumerator)

	type item struct {
		node  *models.TreeNode
		t     *tree.Tree
		depth int
	}
	stack := []item{{root, t, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, child := range it.node.Children {
			label := treeLabel(child, opts)
			if len(child.Children) == 0 {
				it.t.Child(nodeStyle(child).Render(label))
				continue
			}
			if opts.MaxDepth > 0 && it.depth+1 >= opts.MaxDepth {
				it.t.Child(nodeStyle(child).Render(label + TruncatedMarker))
				continue
			}
			label = nodeStyle(child).Render(label)
			sub := tree.Root(label).
				Enumerator(tree.RoundedEnumerator).
				EnumeratorStyle(styleEnumerator)
			it.t.Child(sub)
			stack = append(stack, item{child, sub, it.depth + 1})
		}
	}
	return t.String()
}

func treeLabel(node *models.TreeNode, opts TreeOptions) string {
	label := NodeLabel(node, opts.LabelLimit)
	if opts.Sizes && node.Value.IsContainer() {
		return analyzer.Describe(label, node.Value)
	}
	return label
}

func nodeStyle(node *models.TreeNode) lipgloss.Style {
	switch node.Value.Kind() {
	case models.KindObject:
		return styleObject
	case models.KindArray:
		return styleArray
	default:
		return styleLeaf
	}
}
