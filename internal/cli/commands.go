package cli

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/mcncl/jsonlens/internal/analyzer"
	"github.com/mcncl/jsonlens/internal/errors"
	"github.com/mcncl/jsonlens/internal/formatter"
	"github.com/mcncl/jsonlens/internal/jsonpath"
	"github.com/mcncl/jsonlens/internal/render"
	"github.com/mcncl/jsonlens/internal/search"
	"github.com/mcncl/jsonlens/internal/transform"
	"github.com/mcncl/jsonlens/internal/visualize"
)

// FormatCmd pretty-prints the document.
type FormatCmd struct{}

func (c *FormatCmd) Run(app *App) error {
	if err := app.load(); err != nil {
		return err
	}
	return app.writeln(app.doc.Text(app.cfg.Indent))
}

// MinifyCmd prints the compact serialization.
type MinifyCmd struct{}

func (c *MinifyCmd) Run(app *App) error {
	return app.applyTransform(transform.NameMinify, transform.Options{}, 0)
}

// ValidateCmd checks the input.
type ValidateCmd struct{}

func (c *ValidateCmd) Run(app *App) error {
	if err := app.load(); err != nil {
		return err
	}
	v, _ := app.doc.Value()
	printSuccess(app.stdout, "Valid JSON (%s)", v.Kind())
	return nil
}

// FlattenCmd collapses nested objects.
type FlattenCmd struct {
	ScalarKey *string `help:"Key used when the document root is a scalar (default \"\")."`
}

func (c *FlattenCmd) Run(app *App) error {
	key := app.cfg.Flatten.ScalarKey
	if c.ScalarKey != nil {
		key = *c.ScalarKey
	}
	return app.applyTransform(transform.NameFlatten, transform.Options{ScalarKey: key}, app.cfg.Indent)
}

// SortKeysCmd sorts object keys.
type SortKeysCmd struct{}

func (c *SortKeysCmd) Run(app *App) error {
	return app.applyTransform(transform.NameSortKeys, transform.Options{}, app.cfg.Indent)
}

// RenameKeysCmd converts key case.
type RenameKeysCmd struct {
	Style string `help:"Key style: camel, pascal, snake or kebab." enum:"camel,pascal,snake,kebab" default:"snake" short:"s"`
}

func (c *RenameKeysCmd) Run(app *App) error {
	return app.applyTransform(transform.NameRenameKeys, transform.Options{Style: transform.KeyStyle(c.Style)}, app.cfg.Indent)
}

// SearchCmd lists matching nodes.
type SearchCmd struct {
	Term  string `arg:"" help:"Text to look for, compared case-insensitively."`
	Limit *int   `help:"Maximum number of results (0 for unlimited)." short:"n"`
}

func (c *SearchCmd) Run(app *App) error {
	if err := app.load(); err != nil {
		return err
	}
	limit := app.cfg.Search.MaxResults
	if c.Limit != nil {
		limit = *c.Limit
	}

	v, _ := app.doc.Value()
	p := newProgress(loggerFromContext(app.ctx))
	results := search.SearchWithOptions(v, c.Term, search.Options{MaxResults: limit})
	p.done("Search finished", "term", c.Term, "results", len(results))

	if len(results) == 0 {
		printWarning(app.stderr, "No matches for %q", c.Term)
		return nil
	}
	render.WriteResults(app.stdout, render.ResultRows(results, c.Term, app.cfg.PreviewLimit))
	return nil
}

// EvalCmd resolves a single path.
type EvalCmd struct {
	Path string `arg:"" help:"Path such as $.users[0].name."`
	Raw  bool   `help:"Print the resolved value as JSON instead of a table." short:"r"`
}

func (c *EvalCmd) Run(app *App) error {
	if err := app.load(); err != nil {
		return err
	}
	v, _ := app.doc.Value()
	results := jsonpath.Query(v, c.Path)

	if c.Raw {
		if results[0].IsError() {
			return errors.NewPathError(results[0].Value.AsString(), errors.ErrNotFound)
		}
		return app.writeln(formatter.Format(results[0].Value, app.cfg.Indent))
	}
	render.WriteResults(app.stdout, render.ResultRows(results, strings.TrimSpace(c.Path), app.cfg.PreviewLimit))
	return nil
}

// TreeCmd draws the hierarchy.
type TreeCmd struct {
	Sizes    bool `help:"Show item and property counts on containers."`
	MaxDepth *int `help:"Levels to draw below the root, 0 for all (default 64)."`
}

func (c *TreeCmd) Run(app *App) error {
	if err := app.load(); err != nil {
		return err
	}
	maxDepth := app.cfg.Tree.MaxDepth
	if c.MaxDepth != nil {
		maxDepth = *c.MaxDepth
	}
	v, _ := app.doc.Value()
	root := visualize.ToHierarchy(v, app.cfg.RootLabel)
	return app.writeln(render.Tree(root, render.TreeOptions{
		LabelLimit: app.cfg.Tree.LabelLimit,
		Sizes:      c.Sizes,
		MaxDepth:   maxDepth,
	}))
}

// GraphCmd exports the node-link graph.
type GraphCmd struct {
	Format string `help:"Output format: dot, svg or json (default from config, dot)." short:"f"`
	Output string `help:"Write to this file instead of stdout." short:"o" type:"path"`
}

func (c *GraphCmd) Run(app *App) error {
	if err := app.load(); err != nil {
		return err
	}
	format := app.cfg.Graph.Format
	if c.Format != "" {
		format = c.Format
	}

	v, _ := app.doc.Value()
	graph := visualize.ToGraph(v, visualize.GraphOptions{
		RootLabel:  app.cfg.RootLabel,
		NodePrefix: app.cfg.Graph.NodePrefix,
	})

	var buf bytes.Buffer
	switch format {
	case render.FormatDOT:
		buf.WriteString(render.ToDOT(graph, render.DOTOptions{RankDir: strings.ToUpper(app.cfg.Graph.RankDir)}))
	case render.FormatSVG:
		svg, err := render.RenderSVG(app.ctx, render.ToDOT(graph, render.DOTOptions{RankDir: strings.ToUpper(app.cfg.Graph.RankDir)}))
		if err != nil {
			return errors.NewRenderError("failed to render SVG", err)
		}
		buf.Write(svg)
	case render.FormatJSON:
		if err := render.WriteGraphJSON(&buf, graph); err != nil {
			return errors.NewRenderError("failed to encode graph", err)
		}
	default:
		return errors.NewRenderError(fmt.Sprintf("unknown graph format %q (want dot, svg or json)", format), nil)
	}
	loggerFromContext(app.ctx).Debug("Built graph", "nodes", len(graph.Nodes), "edges", len(graph.Edges), "format", format)

	if c.Output == "" {
		if _, err := app.stdout.Write(buf.Bytes()); err != nil {
			return errors.NewOutputError("failed to write to stdout", err)
		}
		return nil
	}
	if err := os.WriteFile(c.Output, buf.Bytes(), 0o644); err != nil {
		return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", c.Output), err)
	}
	printSuccess(app.stderr, "Graph written to %s", c.Output)
	return nil
}

// InfoCmd prints statistics.
type InfoCmd struct{}

func (c *InfoCmd) Run(app *App) error {
	if err := app.load(); err != nil {
		return err
	}
	v, _ := app.doc.Value()
	return app.writeln(render.Stats(analyzer.Analyze(v)))
}

// ExportCmd writes the document to a file.
type ExportCmd struct {
	Output string `help:"Directory to write into." short:"o" type:"path" default:"."`
	Name   string `help:"File name (default from config, data.json)."`
}

func (c *ExportCmd) Run(app *App) error {
	if err := app.load(); err != nil {
		return err
	}
	name := app.cfg.Output.ExportName
	if c.Name != "" {
		name = c.Name
	}
	v, _ := app.doc.Value()
	path, err := render.Export(c.Output, name, v, app.cfg.Indent)
	if err != nil {
		return err
	}
	printSuccess(app.stderr, "Exported %s (%s)", path, render.ExportMediaType)
	return nil
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run(app *App) error {
	return app.writeln(fmt.Sprintf("jsonlens version %s", Version))
}

// applyTransform loads the document, applies the named transform, keeps the
// result as the current document and prints it.
func (a *App) applyTransform(name string, opts transform.Options, indent int) error {
	if err := a.load(); err != nil {
		return err
	}
	v, _ := a.doc.Value()
	out, err := transform.Apply(name, v, opts)
	if err != nil {
		return err
	}
	a.doc.Replace(out, name)
	return a.writeln(a.doc.Text(indent))
}

func (a *App) writeln(s string) error {
	if _, err := fmt.Fprintln(a.stdout, s); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}
