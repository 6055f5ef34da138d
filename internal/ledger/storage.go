package ledger

import (
	"fmt"
	"os"
	"path/filepath"
)

// ExportStorage holds generated receipt documents so a user can pick them up
// from disk after a download.
type ExportStorage interface {
	// Save writes a document artifact and returns its filename.
	Save(filename string, data []byte) (string, error)

	// Get reads a previously exported artifact.
	Get(filename string) ([]byte, error)
}

// ExportDir implements ExportStorage on a local directory.
type ExportDir struct {
	basePath string
}

// NewExportDir creates the export directory if needed.
func NewExportDir(basePath string) (*ExportDir, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}
	return &ExportDir{basePath: basePath}, nil
}

// Save writes an exported document under the base directory.
func (e *ExportDir) Save(filename string, data []byte) (string, error) {
	path := filepath.Join(e.basePath, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}
	return filename, nil
}

// Get reads an exported document back.
func (e *ExportDir) Get(filename string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(e.basePath, filename))
	if err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}
	return data, nil
}
