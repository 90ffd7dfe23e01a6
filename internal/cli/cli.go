// Package cli implements the jsonlens command-line interface.
//
// Every command loads one JSON document, from --input or stdin, into a
// document.Document and prints a view derived from it. Logs go to stderr so
// stdout carries only command output; --debug enables debug-level logging.
package cli

import (
	"context"
	"io"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/mcncl/jsonlens/internal/config"
	"github.com/mcncl/jsonlens/internal/document"
	"github.com/mcncl/jsonlens/internal/errors"
)

// Version information
const (
	Version = "0.1.0"
)

// Globals are the flags shared by every command.
type Globals struct {
	Config string `help:"Path to a YAML or TOML config file. Defaults to the nearest .jsonlens.{yml,yaml,toml}." type:"path" placeholder:"FILE"`
	Debug  bool   `help:"Enable debug logging." short:"d"`
	Indent *int   `help:"Spaces per indentation level (default 2)."`
	Input  string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`

	RootLabel *string `help:"Label of the root node in tree and graph output (default \"root\")."`
}

// CLI defines the command-line interface
type CLI struct {
	Globals

	Format     FormatCmd     `cmd:"" default:"1" help:"Pretty-print the document (default command)."`
	Minify     MinifyCmd     `cmd:"" help:"Print the document without insignificant whitespace."`
	Validate   ValidateCmd   `cmd:"" help:"Check that the input is a single valid JSON value."`
	Flatten    FlattenCmd    `cmd:"" help:"Collapse nested objects into dot-joined keys."`
	SortKeys   SortKeysCmd   `cmd:"" name:"sort-keys" help:"Sort object keys at every level."`
	RenameKeys RenameKeysCmd `cmd:"" name:"rename-keys" help:"Convert every object key to a case style."`
	Search     SearchCmd     `cmd:"" help:"List every node whose JSON text contains a term."`
	Eval       EvalCmd       `cmd:"" help:"Resolve a path such as user.tags[0]."`
	Tree       TreeCmd       `cmd:"" help:"Draw the document as a tree."`
	Graph      GraphCmd      `cmd:"" help:"Export the document as a node-link graph."`
	Info       InfoCmd       `cmd:"" help:"Show document statistics."`
	Export     ExportCmd     `cmd:"" help:"Write the formatted document to a file."`
	Version    VersionCmd    `cmd:"" help:"Show version information."`
}

// App is the runtime state shared by commands.
type App struct {
	ctx    context.Context
	cfg    *config.Config
	doc    *document.Document
	input  string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// Execute parses args and runs the selected command.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("jsonlens"),
		kong.Description("Inspect, query, transform and visualize JSON documents"),
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
	)
	if err != nil {
		return err
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cli.Globals)
	if err != nil {
		return err
	}

	level := log.InfoLevel
	if cfg.Dev.Debug {
		level = log.DebugLevel
	}
	logger := newLogger(stderr, level)
	ctx = withLogger(ctx, logger)
	logger.Debug("Running command", "command", kctx.Command(), "indent", cfg.Indent)

	app := &App{
		ctx:    ctx,
		cfg:    cfg,
		doc:    document.New(logger),
		input:  cli.Input,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}
	return kctx.Run(app)
}

func loadConfig(g Globals) (*config.Config, error) {
	path := g.Config
	if path == "" {
		path = config.FindConfigFile()
	}
	cfg, err := config.LoadConfigWithCLI(path, config.Overrides{
		Indent:    g.Indent,
		RootLabel: g.RootLabel,
		Debug:     g.Debug,
	})
	if err != nil {
		return nil, errors.NewConfigError(err.Error(), err)
	}
	return cfg, nil
}
