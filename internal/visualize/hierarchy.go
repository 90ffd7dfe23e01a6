// Package visualize converts JSON values into the presentation models used by
// the tree and graph renderers.
package visualize

import (
	"fmt"

	"github.com/mcncl/jsonlens/internal/models"
)

// DefaultRootLabel names the root node when no label is given.
const DefaultRootLabel = "root"

// ChildLabel returns the label of the i-th child of a container: the key for
// object members and "[i]" for array elements.
func ChildLabel(parent models.Value, i int) string {
	key, _ := parent.Child(i)
	if parent.Kind() == models.KindArray {
		return fmt.Sprintf("[%d]", i)
	}
	return key
}

// ToHierarchy builds a labeled tree from v. Every node carries its value,
// containers included, and containers always have a non-nil Children slice
// so an empty object is distinguishable from a null leaf.
func ToHierarchy(v models.Value, rootLabel string) *models.TreeNode {
	root := newTreeNode(rootLabel, v)

	stack := []*models.TreeNode{root}
	for len(stack) > 0 {
		parent := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for i := 0; i < parent.Value.Len(); i++ {
			_, child := parent.Value.Child(i)
			node := newTreeNode(ChildLabel(parent.Value, i), child)
			parent.Children = append(parent.Children, node)
			if child.IsContainer() && child.Len() > 0 {
				stack = append(stack, node)
			}
		}
	}
	return root
}

func newTreeNode(label string, v models.Value) *models.TreeNode {
	node := &models.TreeNode{Label: label, Value: v}
	if v.IsContainer() {
		node.Children = make([]*models.TreeNode, 0, v.Len())
	}
	return node
}
