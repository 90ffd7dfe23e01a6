package render

import (
	"encoding/json"
	"io"

	"github.com/mcncl/jsonlens/internal/formatter"
	"github.com/mcncl/jsonlens/internal/models"
)

type graphDocument struct {
	Nodes []graphNode `json:"nodes"`
	Links []graphLink `json:"links"`
}

type graphNode struct {
	ID    string          `json:"id"`
	Group int             `json:"group"`
	Label string          `json:"label"`
	Value json.RawMessage `json:"value,omitempty"`
}

type graphLink struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Value  float64 `json:"value"`
}

// WriteGraphJSON writes the graph as a force-layout document of the form
// {"nodes": [...], "links": [...]}. Scalar nodes carry their value.
func WriteGraphJSON(w io.Writer, g models.GraphModel) error {
	doc := graphDocument{
		Nodes: make([]graphNode, 0, len(g.Nodes)),
		Links: make([]graphLink, 0, len(g.Edges)),
	}
	for _, n := range g.Nodes {
		node := graphNode{ID: n.ID, Group: n.Group, Label: n.Label}
		if n.Scalar != nil {
			node.Value = json.RawMessage(formatter.Minify(*n.Scalar))
		}
		doc.Nodes = append(doc.Nodes, node)
	}
	for _, e := range g.Edges {
		doc.Links = append(doc.Links, graphLink{Source: e.Source, Target: e.Target, Value: e.Weight})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(doc)
}
