package render

import (
	"bytes"
	"context"
	"fmt"
	"math"

	"github.com/goccy/go-graphviz"

	"github.com/mcncl/jsonlens/internal/formatter"
	"github.com/mcncl/jsonlens/internal/models"
)

// Graph output formats.
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// DefaultGraphLabelLimit is the number of label characters shown on a graph
// node before it is cut off.
const DefaultGraphLabelLimit = 10

// DOTOptions configures DOT generation.
type DOTOptions struct {
	// RankDir is the Graphviz layout direction (LR, TB, RL, BT).
	RankDir string
	// LabelLimit truncates node labels. Zero uses DefaultGraphLabelLimit.
	LabelLimit int
}

// ToDOT converts a graph model to Graphviz DOT format. The result can be
// rendered with RenderSVG.
func ToDOT(g models.GraphModel, opts DOTOptions) string {
	if opts.RankDir == "" {
		opts.RankDir = "LR"
	}
	if opts.LabelLimit == 0 {
		opts.LabelLimit = DefaultGraphLabelLimit
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", opts.RankDir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fixedsize=false, fontsize=10, color=\"#ffffff\"];\n")
	fmt.Fprintf(&buf, "  edge [color=%q];\n", hexEdge)
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		fmt.Fprintf(&buf, "  %q [label=%q, tooltip=%q, fillcolor=%q];\n",
			n.ID, formatter.Truncate(n.Label, opts.LabelLimit), Tooltip(n), groupColor(n.Group))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %q -> %q [penwidth=%s];\n", e.Source, e.Target, formatWeight(math.Sqrt(e.Weight)))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// Tooltip returns the hover text of a graph node: "label: value" for
// scalars and the label alone for containers.
func Tooltip(n models.GraphNode) string {
	if n.Scalar == nil {
		return n.Label
	}
	return n.Label + ": " + formatter.ScalarText(*n.Scalar)
}

func groupColor(group int) string {
	if group == models.GroupContainer {
		return hexGroupContainer
	}
	return hexGroupScalar
}

func formatWeight(w float64) string {
	return fmt.Sprintf("%g", w)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
