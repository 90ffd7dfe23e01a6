package visualize

import (
	"fmt"

	"github.com/mcncl/jsonlens/internal/models"
)

// DefaultNodePrefix prefixes the generated node ids.
const DefaultNodePrefix = "node"

// GraphOptions tunes ToGraph.
type GraphOptions struct {
	// RootLabel is the label of the root node.
	RootLabel string
	// NodePrefix is prepended to the traversal counter to form node ids.
	NodePrefix string
}

// ToGraph flattens v into nodes and parent-to-child edges. Ids follow the
// depth-first pre-order traversal: the root is <prefix>0, its first child
// <prefix>1 and so on.
func ToGraph(v models.Value, opts GraphOptions) models.GraphModel {
	if opts.RootLabel == "" {
		opts.RootLabel = DefaultRootLabel
	}
	if opts.NodePrefix == "" {
		opts.NodePrefix = DefaultNodePrefix
	}

	type item struct {
		v      models.Value
		label  string
		parent string
	}

	var graph models.GraphModel
	counter := 0
	stack := []item{{v: v, label: opts.RootLabel}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		id := fmt.Sprintf("%s%d", opts.NodePrefix, counter)
		counter++

		node := models.GraphNode{ID: id, Label: it.label, Group: models.GroupContainer}
		if !it.v.IsContainer() {
			scalar := it.v
			node.Group = models.GroupScalar
			node.Scalar = &scalar
		}
		graph.Nodes = append(graph.Nodes, node)
		if it.parent != "" {
			graph.Edges = append(graph.Edges, models.GraphEdge{Source: it.parent, Target: id, Weight: 1})
		}

		for i := it.v.Len() - 1; i >= 0; i-- {
			_, child := it.v.Child(i)
			stack = append(stack, item{v: child, label: ChildLabel(it.v, i), parent: id})
		}
	}
	return graph
}
