package models

// StepKind distinguishes object key steps from array index steps.
type StepKind int

const (
	StepKey StepKind = iota
	StepIndex
)

// PathStep is one access step within a Path.
type PathStep struct {
	Kind  StepKind
	Key   string
	Index int
}

// KeyStep returns a step that selects an object member.
func KeyStep(key string) PathStep { return PathStep{Kind: StepKey, Key: key} }

// IndexStep returns a step that selects an array element.
func IndexStep(i int) PathStep { return PathStep{Kind: StepIndex, Index: i} }

// Path addresses a location inside a Value. The empty Path is the root.
type Path []PathStep

// IsRoot reports whether p addresses the root value.
func (p Path) IsRoot() bool { return len(p) == 0 }

// Append returns a new Path with step added. p itself is never modified, so
// sibling paths built from the same parent do not share backing storage.
func (p Path) Append(step PathStep) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = step
	return out
}

// Equal reports whether both paths hold the same steps.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// SearchResult is a single hit produced by search or path evaluation.
// Results of kind KindError carry their message as a string Value and a nil
// Path.
type SearchResult struct {
	Path  Path
	Value Value
	Kind  Kind
}

// IsError reports whether r describes a failed lookup rather than a value.
func (r SearchResult) IsError() bool { return r.Kind == KindError }

// TreeNode is the labelled tree form of a Value used for tree layouts.
// Value is set on every node, containers included, so renderers can tell an
// empty container from a leaf and report container sizes.
type TreeNode struct {
	Label    string
	Value    Value
	Children []*TreeNode
}

// IsLeaf reports whether the node stands for a scalar.
func (n *TreeNode) IsLeaf() bool { return !n.Value.IsContainer() }

// Graph node groups used as colouring hints.
const (
	GroupContainer = 1
	GroupScalar    = 2
)

// GraphNode is a vertex of a GraphModel. Scalar is nil for containers.
type GraphNode struct {
	ID     string
	Group  int
	Label  string
	Scalar *Value
}

// GraphEdge links a parent node to one of its children.
type GraphEdge struct {
	Source string
	Target string
	Weight float64
}

// GraphModel is the node/edge form of a Value used for force-directed
// layouts. Nodes are listed in depth-first pre-order.
type GraphModel struct {
	Nodes []GraphNode
	Edges []GraphEdge
}
