package cli

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/mcncl/jsonlens/internal/errors"
)

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// load fills the document from the --input file, or from stdin otherwise.
func (a *App) load() error {
	logger := loggerFromContext(a.ctx)
	p := newProgress(logger)

	if a.input != "" {
		if err := a.doc.LoadFile(a.ctx, a.input); err != nil {
			return err
		}
		p.done("Loaded document", "source", a.input)
		return nil
	}

	var text string
	var err error
	if isTerminal(a.stdin) {
		text, err = a.readInteractive()
	} else {
		text, err = a.readPiped()
	}
	if err != nil {
		return err
	}
	if err := a.doc.Load(text); err != nil {
		return err
	}
	p.done("Loaded document", "source", "stdin", "bytes", len(text))
	return nil
}

func (a *App) readPiped() (string, error) {
	data, err := io.ReadAll(a.stdin)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return "", errors.NewInputError("no input provided", errors.ErrNoInput)
	}
	return string(data), nil
}

// readInteractive lets the user paste JSON and signal completion with
// Ctrl+D (EOF).
func (a *App) readInteractive() (string, error) {
	printInfo(a.stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(a.stdin)
	var jsonBuilder strings.Builder
	for {
		line, err := reader.ReadString('\n')
		jsonBuilder.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.NewInputError("error reading input", err)
		}
	}

	if strings.TrimSpace(jsonBuilder.String()) == "" {
		return "", errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}
	return jsonBuilder.String(), nil
}
