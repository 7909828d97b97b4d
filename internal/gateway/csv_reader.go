package gateway

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"wage-settlement/internal/domain"
)

// CSVRowRepository implements the RowRepository interface for CSV files.
// The first record is the header row; every later record becomes a Row
// keyed by trimmed header name. Header spellings are resolved downstream.
type CSVRowRepository struct{}

// NewCSVRowRepository creates a new repository instance.
func NewCSVRowRepository() *CSVRowRepository {
	return &CSVRowRepository{}
}

// GetRows reads and parses one CSV file into header-keyed rows.
func (r *CSVRowRepository) GetRows(ctx context.Context, path string) ([]domain.Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header from %s: %w", path, err)
	}
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		header[i] = strings.TrimSpace(name)
	}

	var rows []domain.Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record from %s: %w", path, err)
		}
		row := make(domain.Row, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(record) {
				row[name] = record[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
