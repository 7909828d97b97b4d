package usecase

import (
	"context"

	"wage-settlement/internal/domain"
)

// RowRepository defines the interface for fetching raw table rows.
// The usecase layer depends on this interface, not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_ports.go -source=interface.go RowRepository,AuditWriter
type RowRepository interface {
	GetRows(ctx context.Context, path string) ([]domain.Row, error)
}

// AuditWriter persists one audit record per settlement invocation and
// returns the path it was written to.
type AuditWriter interface {
	Write(ctx context.Context, record domain.AuditRecord) (string, error)
}
