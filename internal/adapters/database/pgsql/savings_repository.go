package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finpal/finpal-backend/internal/apperrors"
	"github.com/finpal/finpal-backend/internal/core/domain"
	portsrepo "github.com/finpal/finpal-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const savingsGoalColumns = `goal_id, user_id, name, target_amount, current_amount, deadline, created_at, created_by, last_updated_at, last_updated_by`

type PgxSavingsGoalRepository struct {
	BaseRepository
}

// newPgxSavingsGoalRepository creates a new repository for savings goals.
func newPgxSavingsGoalRepository(pool *pgxpool.Pool) *PgxSavingsGoalRepository {
	return &PgxSavingsGoalRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.SavingsGoalRepositoryFacade = (*PgxSavingsGoalRepository)(nil)

func scanSavingsGoal(row pgx.Row) (domain.SavingsGoal, error) {
	var g domain.SavingsGoal
	err := row.Scan(
		&g.GoalID,
		&g.UserID,
		&g.Name,
		&g.TargetAmount,
		&g.CurrentAmount,
		&g.Deadline,
		&g.CreatedAt,
		&g.CreatedBy,
		&g.LastUpdatedAt,
		&g.LastUpdatedBy,
	)
	return g, err
}

func (r *PgxSavingsGoalRepository) SaveGoal(ctx context.Context, goal domain.SavingsGoal) error {
	query := `
		INSERT INTO savings_goals (` + savingsGoalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		goal.GoalID,
		goal.UserID,
		goal.Name,
		goal.TargetAmount,
		goal.CurrentAmount,
		goal.Deadline,
		goal.CreatedAt,
		goal.CreatedBy,
		goal.LastUpdatedAt,
		goal.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save savings goal %s: %w", goal.GoalID, err)
	}
	return nil
}

func (r *PgxSavingsGoalRepository) FindGoalByID(ctx context.Context, userID string, goalID string) (*domain.SavingsGoal, error) {
	query := `
		SELECT ` + savingsGoalColumns + `
		FROM savings_goals
		WHERE user_id = $1 AND goal_id = $2;
	`
	g, err := scanSavingsGoal(r.Pool.QueryRow(ctx, query, userID, goalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find savings goal %s: %w", goalID, err)
	}
	return &g, nil
}

func (r *PgxSavingsGoalRepository) ListGoals(ctx context.Context, userID string) ([]domain.SavingsGoal, error) {
	query := `
		SELECT ` + savingsGoalColumns + `
		FROM savings_goals
		WHERE user_id = $1
		ORDER BY deadline, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query savings goals: %w", err)
	}
	defer rows.Close()

	goals, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.SavingsGoal, error) {
		return scanSavingsGoal(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan savings goals: %w", err)
	}
	return goals, nil
}

func (r *PgxSavingsGoalRepository) UpdateCurrentAmount(ctx context.Context, userID string, goalID string, amount decimal.Decimal, updatedBy string) error {
	query := `
		UPDATE savings_goals
		SET current_amount = $1, last_updated_at = $2, last_updated_by = $3
		WHERE user_id = $4 AND goal_id = $5;
	`
	tag, err := r.Pool.Exec(ctx, query, amount, time.Now(), updatedBy, userID, goalID)
	if err != nil {
		return fmt.Errorf("failed to update savings goal %s: %w", goalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxSavingsGoalRepository) DeleteGoal(ctx context.Context, userID string, goalID string) error {
	query := `DELETE FROM savings_goals WHERE user_id = $1 AND goal_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, userID, goalID)
	if err != nil {
		return fmt.Errorf("failed to delete savings goal %s: %w", goalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
