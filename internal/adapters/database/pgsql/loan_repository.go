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

const loanColumns = `loan_id, user_id, lender, initial_amount, current_balance, interest_rate, payment_due_date, created_at, created_by, last_updated_at, last_updated_by`

type PgxLoanRepository struct {
	BaseRepository
}

// newPgxLoanRepository creates a new repository for student loans.
func newPgxLoanRepository(pool *pgxpool.Pool) *PgxLoanRepository {
	return &PgxLoanRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.LoanRepositoryWithTx = (*PgxLoanRepository)(nil)

func scanLoan(row pgx.Row) (domain.StudentLoan, error) {
	var l domain.StudentLoan
	err := row.Scan(
		&l.LoanID,
		&l.UserID,
		&l.Lender,
		&l.InitialAmount,
		&l.CurrentBalance,
		&l.InterestRate,
		&l.PaymentDueDate,
		&l.CreatedAt,
		&l.CreatedBy,
		&l.LastUpdatedAt,
		&l.LastUpdatedBy,
	)
	return l, err
}

func (r *PgxLoanRepository) SaveLoan(ctx context.Context, loan domain.StudentLoan) error {
	query := `
		INSERT INTO student_loans (` + loanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		loan.LoanID,
		loan.UserID,
		loan.Lender,
		loan.InitialAmount,
		loan.CurrentBalance,
		loan.InterestRate,
		loan.PaymentDueDate,
		loan.CreatedAt,
		loan.CreatedBy,
		loan.LastUpdatedAt,
		loan.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save loan %s: %w", loan.LoanID, err)
	}
	return nil
}

func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, userID string, loanID string) (*domain.StudentLoan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM student_loans
		WHERE user_id = $1 AND loan_id = $2;
	`
	l, err := scanLoan(r.Pool.QueryRow(ctx, query, userID, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find loan %s: %w", loanID, err)
	}
	return &l, nil
}

func (r *PgxLoanRepository) ListLoans(ctx context.Context, userID string) ([]domain.StudentLoan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM student_loans
		WHERE user_id = $1
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query loans: %w", err)
	}
	defer rows.Close()

	loans, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.StudentLoan, error) {
		return scanLoan(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan loans: %w", err)
	}
	return loans, nil
}

func (r *PgxLoanRepository) ListPayments(ctx context.Context, loanID string) ([]domain.LoanPayment, error) {
	query := `
		SELECT payment_id, loan_id, date, amount
		FROM loan_payments
		WHERE loan_id = $1
		ORDER BY date DESC;
	`
	rows, err := r.Pool.Query(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to query loan payments: %w", err)
	}
	defer rows.Close()

	payments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LoanPayment, error) {
		var p domain.LoanPayment
		err := row.Scan(&p.PaymentID, &p.LoanID, &p.Date, &p.Amount)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan loan payments: %w", err)
	}
	return payments, nil
}

// LogPayment commits one payment atomically: the loan row takes the new
// balance, the history entry is appended, and the ledger entry inserted, in
// one database transaction.
func (r *PgxLoanRepository) LogPayment(ctx context.Context, loan domain.StudentLoan, payment domain.LoanPayment, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	updateQuery := `
		UPDATE student_loans
		SET current_balance = $1, last_updated_at = $2, last_updated_by = $3
		WHERE user_id = $4 AND loan_id = $5;
	`
	tag, err := tx.Exec(ctx, updateQuery, loan.CurrentBalance, loan.LastUpdatedAt, loan.LastUpdatedBy, loan.UserID, loan.LoanID)
	if err != nil {
		return fmt.Errorf("failed to update loan balance %s: %w", loan.LoanID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	insertPaymentQuery := `
		INSERT INTO loan_payments (payment_id, loan_id, date, amount)
		VALUES ($1, $2, $3, $4);
	`
	if _, err := tx.Exec(ctx, insertPaymentQuery, payment.PaymentID, payment.LoanID, payment.Date, payment.Amount); err != nil {
		return fmt.Errorf("failed to insert loan payment %s: %w", payment.PaymentID, err)
	}

	if err := insertTransactionTx(ctx, tx, txn); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteLoan removes the loan and its payment history. Ledger entries created
// by past payments stay untouched.
func (r *PgxLoanRepository) DeleteLoan(ctx context.Context, userID string, loanID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM loan_payments WHERE loan_id = $1;`, loanID); err != nil {
		return fmt.Errorf("failed to delete payments for loan %s: %w", loanID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM student_loans WHERE user_id = $1 AND loan_id = $2;`, userID, loanID)
	if err != nil {
		return fmt.Errorf("failed to delete loan %s: %w", loanID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}
