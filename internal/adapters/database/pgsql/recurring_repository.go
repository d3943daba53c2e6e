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

const recurringColumns = `recurring_id, user_id, type, amount, category, description, frequency, start_date, next_due_date, day_of_week, day_of_month, created_at, created_by, last_updated_at, last_updated_by`

type PgxRecurringRepository struct {
	BaseRepository
}

// newPgxRecurringRepository creates a new repository for recurring templates.
func newPgxRecurringRepository(pool *pgxpool.Pool) *PgxRecurringRepository {
	return &PgxRecurringRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.RecurringRepositoryWithTx = (*PgxRecurringRepository)(nil)

func scanRecurring(row pgx.Row) (domain.RecurringTransaction, error) {
	var rt domain.RecurringTransaction
	err := row.Scan(
		&rt.RecurringID,
		&rt.UserID,
		&rt.Type,
		&rt.Amount,
		&rt.Category,
		&rt.Description,
		&rt.Frequency,
		&rt.StartDate,
		&rt.NextDueDate,
		&rt.DayOfWeek,
		&rt.DayOfMonth,
		&rt.CreatedAt,
		&rt.CreatedBy,
		&rt.LastUpdatedAt,
		&rt.LastUpdatedBy,
	)
	return rt, err
}

func (r *PgxRecurringRepository) SaveRecurring(ctx context.Context, rt domain.RecurringTransaction) error {
	query := `
		INSERT INTO recurring_transactions (` + recurringColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		rt.RecurringID,
		rt.UserID,
		rt.Type,
		rt.Amount,
		rt.Category,
		rt.Description,
		rt.Frequency,
		rt.StartDate,
		rt.NextDueDate,
		rt.DayOfWeek,
		rt.DayOfMonth,
		rt.CreatedAt,
		rt.CreatedBy,
		rt.LastUpdatedAt,
		rt.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save recurring transaction %s: %w", rt.RecurringID, err)
	}
	return nil
}

func (r *PgxRecurringRepository) FindRecurringByID(ctx context.Context, userID string, recurringID string) (*domain.RecurringTransaction, error) {
	query := `
		SELECT ` + recurringColumns + `
		FROM recurring_transactions
		WHERE user_id = $1 AND recurring_id = $2;
	`
	rt, err := scanRecurring(r.Pool.QueryRow(ctx, query, userID, recurringID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find recurring transaction %s: %w", recurringID, err)
	}
	return &rt, nil
}

func (r *PgxRecurringRepository) ListRecurring(ctx context.Context, userID string) ([]domain.RecurringTransaction, error) {
	query := `
		SELECT ` + recurringColumns + `
		FROM recurring_transactions
		WHERE user_id = $1
		ORDER BY next_due_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring transactions: %w", err)
	}
	defer rows.Close()

	templates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.RecurringTransaction, error) {
		return scanRecurring(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan recurring transactions: %w", err)
	}
	return templates, nil
}

func (r *PgxRecurringRepository) DeleteRecurring(ctx context.Context, userID string, recurringID string) error {
	query := `DELETE FROM recurring_transactions WHERE user_id = $1 AND recurring_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, userID, recurringID)
	if err != nil {
		return fmt.Errorf("failed to delete recurring transaction %s: %w", recurringID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ApplyRollforward commits one processor run: every materialized ledger entry
// is inserted and every advanced template written back inside a single
// database transaction.
func (r *PgxRecurringRepository) ApplyRollforward(ctx context.Context, materialized []domain.Transaction, updated []domain.RecurringTransaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	for _, txn := range materialized {
		if err := insertTransactionTx(ctx, tx, txn); err != nil {
			return err
		}
	}

	updateQuery := `
		UPDATE recurring_transactions
		SET next_due_date = $1, last_updated_at = $2, last_updated_by = $3
		WHERE recurring_id = $4;
	`
	for _, rt := range updated {
		tag, err := tx.Exec(ctx, updateQuery, rt.NextDueDate, rt.LastUpdatedAt, rt.LastUpdatedBy, rt.RecurringID)
		if err != nil {
			return fmt.Errorf("failed to advance recurring transaction %s: %w", rt.RecurringID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("recurring transaction %s disappeared during rollforward: %w", rt.RecurringID, apperrors.ErrNotFound)
		}
	}

	return r.Commit(ctx, tx)
}
