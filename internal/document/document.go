// Package document holds the current JSON document of a session. A failed
// load never replaces the current value.
package document

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/mcncl/jsonlens/internal/errors"
	"github.com/mcncl/jsonlens/internal/formatter"
	"github.com/mcncl/jsonlens/internal/models"
	"github.com/mcncl/jsonlens/internal/parser"
)

// Document is the single source of truth that every view is derived from.
// It is safe for concurrent use.
type Document struct {
	mu         sync.Mutex
	value      models.Value
	loaded     bool
	source     string
	generation uint64
	logger     *log.Logger
}

// New returns an empty document. A nil logger discards log output.
func New(logger *log.Logger) *Document {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Document{logger: logger}
}

// Value returns the current value and whether one has been loaded.
func (d *Document) Value() (models.Value, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value, d.loaded
}

// Source names where the current value came from.
func (d *Document) Source() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.source
}

// Text returns the current value serialized with indent spaces per level,
// or the empty string when nothing is loaded.
func (d *Document) Text(indent int) string {
	v, ok := d.Value()
	if !ok {
		return ""
	}
	return formatter.Format(v, indent)
}

// Load parses text and makes it the current value. On a parse error the
// previous value is kept. A successful Load supersedes any file load still
// in flight.
func (d *Document) Load(text string) error {
	v, err := parser.ParseString(text)
	if err != nil {
		d.logger.Debug("Rejected input", "error", err)
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.generation++
	d.set(v, "input")
	return nil
}

// Replace makes v the current value, typically the output of a transform.
func (d *Document) Replace(v models.Value, source string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.generation++
	d.set(v, source)
}

func (d *Document) set(v models.Value, source string) {
	d.value = v
	d.loaded = true
	d.source = source
	d.logger.Debug("Document replaced", "source", source, "generation", d.generation)
}

// LoadFileAsync reads and parses path in the background. Only the most
// recently started load may replace the value: when a newer Load, Replace or
// LoadFileAsync has started by the time this one finishes, its result is
// dropped and ErrSuperseded is reported. The channel receives exactly one
// value and is then closed.
func (d *Document) LoadFileAsync(ctx context.Context, path string) <-chan error {
	gen := d.begin()

	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- d.loadFile(ctx, path, gen)
	}()
	return done
}

func (d *Document) begin() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.generation++
	return d.generation
}

// LoadFile is the synchronous form of LoadFileAsync.
func (d *Document) LoadFile(ctx context.Context, path string) error {
	return <-d.LoadFileAsync(ctx, path)
}

func (d *Document) loadFile(ctx context.Context, path string, gen uint64) error {
	v, err := parser.ParseFile(path)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.generation != gen {
		d.logger.Debug("Dropping stale load", "path", path, "generation", gen, "current", d.generation)
		return errors.ErrSuperseded
	}
	d.set(v, path)
	return nil
}
