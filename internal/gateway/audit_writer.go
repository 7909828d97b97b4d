package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"wage-settlement/internal/domain"
)

// FileAuditWriter persists audit records as JSON files under Dir, keyed by
// run id and the first 8 hex characters of the input hash. The run id is
// random per invocation, so identical reruns never collide on disk.
type FileAuditWriter struct {
	Dir string
}

// NewFileAuditWriter creates a writer rooted at dir (typically "logs").
func NewFileAuditWriter(dir string) *FileAuditWriter {
	return &FileAuditWriter{Dir: dir}
}

// Write persists one record and returns the path it was written to.
func (w *FileAuditWriter) Write(ctx context.Context, record domain.AuditRecord) (string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create audit directory %s: %w", w.Dir, err)
	}
	hash8 := record.InputHash
	if len(hash8) > 8 {
		hash8 = hash8[:8]
	}
	path := filepath.Join(w.Dir, fmt.Sprintf("%s_%s.json", record.RunID, hash8))

	payload, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal audit record: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("failed to write audit record %s: %w", path, err)
	}
	return path, nil
}
