package services

import (
	"context"

	"github.com/finpal/finpal-backend/internal/core/domain"
)

// ReportingSvcFacade computes ledger aggregates for dashboards and reports.
type ReportingSvcFacade interface {
	// GetSummary returns total income, total expenses, net balance, and the
	// per-category expense breakdown.
	GetSummary(ctx context.Context, userID string) (*domain.Summary, error)
}
