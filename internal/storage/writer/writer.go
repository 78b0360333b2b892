package writer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leengari/tabledb/internal/domain/table"
	"github.com/leengari/tabledb/internal/storage"
)

// SaveTable persists the table to path using temp file + atomic rename
func SaveTable(path string, t *table.Table) error {
	if t == nil || path == "" {
		return fmt.Errorf("cannot save table: nil or missing path")
	}

	out, err := storage.Encode(t)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, out, 0644); err != nil {
		return fmt.Errorf("failed to write temp file %s: %w", tmpPath, err)
	}

	// Atomic replace
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp → %s: %w", path, err)
	}

	t.MarkClean()

	slog.Info("Table saved successfully",
		slog.String("path", path),
		slog.Int("columns", t.Schema().NumColumns()),
		slog.Int("row_count", t.Len()),
	)

	return nil
}
