package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mcncl/jsonlens/internal/errors"
	"github.com/mcncl/jsonlens/internal/formatter"
	"github.com/mcncl/jsonlens/internal/models"
)

// Export defaults.
const (
	ExportMediaType = "application/json"
	ExportName      = "data.json"
)

// Export writes v, indented, to dir/name and returns the written path. An
// empty name uses ExportName.
func Export(dir, name string, v models.Value, indent int) (string, error) {
	if name == "" {
		name = ExportName
	}
	if filepath.Base(name) != name {
		return "", errors.NewOutputError(fmt.Sprintf("export name %q must not contain a directory", name), errors.ErrInvalidFilePath)
	}

	path := filepath.Join(dir, name)
	data := formatter.Format(v, indent) + "\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return "", errors.NewOutputError(fmt.Sprintf("failed to write %s", path), err)
	}
	return path, nil
}
