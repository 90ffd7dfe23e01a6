// Package render draws the presentation models as terminal trees, tables,
// Graphviz diagrams and JSON graph documents.
package render

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// Color Palette
// =============================================================================

const (
	hexRoot   = "#0ea5e9" // Sky - root node
	hexObject = "#10b981" // Emerald - objects
	hexArray  = "#8b5cf6" // Violet - arrays
	hexLeaf   = "#94a3b8" // Slate - scalar values

	hexGroupContainer = "#ff7f0e"
	hexGroupScalar    = "#2ca02c"
	hexEdge           = "#999999"
)

var (
	colorRoot   = lipgloss.Color(hexRoot)
	colorObject = lipgloss.Color(hexObject)
	colorArray  = lipgloss.Color(hexArray)
	colorLeaf   = lipgloss.Color(hexLeaf)
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// =============================================================================
// Styles
// =============================================================================

var (
	styleRoot       = lipgloss.NewStyle().Bold(true).Foreground(colorRoot)
	styleObject     = lipgloss.NewStyle().Foreground(colorObject)
	styleArray      = lipgloss.NewStyle().Foreground(colorArray)
	styleLeaf       = lipgloss.NewStyle().Foreground(colorLeaf)
	styleEnumerator = lipgloss.NewStyle().Foreground(colorDim)
	styleHeader     = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleBorder     = lipgloss.NewStyle().Foreground(colorDim)
)
