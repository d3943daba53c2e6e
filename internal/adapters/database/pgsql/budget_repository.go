package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finpal/finpal-backend/internal/apperrors"
	"github.com/finpal/finpal-backend/internal/core/domain"
	portsrepo "github.com/finpal/finpal-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const budgetColumns = `user_id, category, spending_limit, created_at, created_by, last_updated_at, last_updated_by`

type PgxBudgetRepository struct {
	BaseRepository
}

// newPgxBudgetRepository creates a new repository for budget data.
func newPgxBudgetRepository(pool *pgxpool.Pool) *PgxBudgetRepository {
	return &PgxBudgetRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

func scanBudget(row pgx.Row) (domain.Budget, error) {
	var b domain.Budget
	err := row.Scan(
		&b.UserID,
		&b.Category,
		&b.Limit,
		&b.CreatedAt,
		&b.CreatedBy,
		&b.LastUpdatedAt,
		&b.LastUpdatedBy,
	)
	return b, err
}

// UpsertBudget inserts the budget or replaces the limit of an existing one.
// (user_id, category) is the primary key.
func (r *PgxBudgetRepository) UpsertBudget(ctx context.Context, budget domain.Budget) error {
	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, category) DO UPDATE SET
			spending_limit = EXCLUDED.spending_limit,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		budget.UserID,
		budget.Category,
		budget.Limit,
		budget.CreatedAt,
		budget.CreatedBy,
		budget.LastUpdatedAt,
		budget.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert budget for %s: %w", budget.Category, err)
	}
	return nil
}

func (r *PgxBudgetRepository) FindBudgetByCategory(ctx context.Context, userID string, category string) (*domain.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE user_id = $1 AND category = $2;
	`
	b, err := scanBudget(r.Pool.QueryRow(ctx, query, userID, category))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget for %s: %w", category, err)
	}
	return &b, nil
}

func (r *PgxBudgetRepository) ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE user_id = $1
		ORDER BY category;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	budgets, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Budget, error) {
		return scanBudget(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan budgets: %w", err)
	}
	return budgets, nil
}

func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, userID string, category string) error {
	query := `DELETE FROM budgets WHERE user_id = $1 AND category = $2;`
	tag, err := r.Pool.Exec(ctx, query, userID, category)
	if err != nil {
		return fmt.Errorf("failed to delete budget for %s: %w", category, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
