package storage

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/leengari/tabledb/internal/domain/table"
)

// LoadTable reads and decodes the table stored at path
func LoadTable(path string) (*table.Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read table file: %w", err)
	}

	t, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to load table from %s: %w", path, err)
	}

	slog.Info("table loaded",
		slog.String("path", path),
		slog.Int("columns", t.Schema().NumColumns()),
		slog.Int("rows", t.Len()),
	)

	return t, nil
}
