package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/finpal/finpal-backend/internal/apperrors"
	"github.com/finpal/finpal-backend/internal/core/domain"
	portsrepo "github.com/finpal/finpal-backend/internal/core/ports/repositories"
	"github.com/finpal/finpal-backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const transactionColumns = `transaction_id, user_id, type, amount, category, description, date, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger data.
func newPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var txn domain.Transaction
	err := row.Scan(
		&txn.TransactionID,
		&txn.UserID,
		&txn.Type,
		&txn.Amount,
		&txn.Category,
		&txn.Description,
		&txn.Date,
		&txn.CreatedAt,
		&txn.CreatedBy,
		&txn.LastUpdatedAt,
		&txn.LastUpdatedBy,
	)
	return txn, err
}

// insertTransactionTx inserts one ledger entry within an existing database
// transaction. Shared with the recurring and loan repositories, whose writes
// must land atomically with their own updates.
func insertTransactionTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, query,
		txn.TransactionID,
		txn.UserID,
		txn.Type,
		txn.Amount,
		txn.Category,
		txn.Description,
		txn.Date,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		txn.TransactionID,
		txn.UserID,
		txn.Type,
		txn.Amount,
		txn.Category,
		txn.Description,
		txn.Date,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND transaction_id = $2;
	`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, userID, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return &txn, nil
}

// ListTransactions pages the ledger newest-first. The cursor encodes the last
// row's (date, created_at) pair, which the ordering is unique over in
// practice.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string, params portsrepo.ListTransactionsParams) ([]domain.Transaction, string, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1`)
	args := []any{userID}

	if params.From != nil {
		args = append(args, *params.From)
		sb.WriteString(fmt.Sprintf(" AND date >= $%d", len(args)))
	}
	if params.To != nil {
		args = append(args, *params.To)
		sb.WriteString(fmt.Sprintf(" AND date <= $%d", len(args)))
	}
	if params.NextToken != "" {
		lastDate, lastCreatedAt, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, "", apperrors.NewAppError(400, "invalid nextToken", err)
		}
		args = append(args, lastDate, lastCreatedAt)
		sb.WriteString(fmt.Sprintf(" AND (date, created_at) < ($%d, $%d)", len(args)-1, len(args)))
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit+1)
	sb.WriteString(fmt.Sprintf(" ORDER BY date DESC, created_at DESC LIMIT $%d;", len(args)))

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Transaction, error) {
		return scanTransaction(row)
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to scan transactions: %w", err)
	}

	nextToken := ""
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		nextToken = pagination.EncodeToken(last.Date, last.CreatedAt)
	}
	return txns, nextToken, nil
}

func (r *PgxTransactionRepository) SumExpensesByCategory(ctx context.Context, userID string, since *time.Time) (map[string]decimal.Decimal, error) {
	query := `
		SELECT category, COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1 AND type = $2
	`
	args := []any{userID, domain.Expense}
	if since != nil {
		args = append(args, *since)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	query += " GROUP BY category;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate expenses by category: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]decimal.Decimal)
	for rows.Next() {
		var category string
		var total decimal.Decimal
		if err := rows.Scan(&category, &total); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		totals[category] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read category totals: %w", err)
	}
	return totals, nil
}

func (r *PgxTransactionRepository) SumByType(ctx context.Context, userID string, txType domain.TransactionType) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1 AND type = $2;
	`
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, userID, txType).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to total %s transactions: %w", txType, err)
	}
	return total, nil
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	query := `DELETE FROM transactions WHERE user_id = $1 AND transaction_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, userID, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
