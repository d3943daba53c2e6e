package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finpal/finpal-backend/internal/apperrors"
	"github.com/finpal/finpal-backend/internal/core/domain"
	portsrepo "github.com/finpal/finpal-backend/internal/core/ports/repositories"
	portssvc "github.com/finpal/finpal-backend/internal/core/ports/services"
	"github.com/finpal/finpal-backend/internal/dto"
	"github.com/google/uuid"
)

// RecurringService implements template CRUD and the due-date rollforward.
type RecurringService struct {
	BaseService
	recurringRepo portsrepo.RecurringRepositoryFacade
	clock         portssvc.Clock
}

// NewRecurringService creates a new RecurringService.
func NewRecurringService(recurringRepo portsrepo.RecurringRepositoryFacade, clock portssvc.Clock) *RecurringService {
	return &RecurringService{recurringRepo: recurringRepo, clock: clock}
}

var _ portssvc.RecurringSvcFacade = (*RecurringService)(nil)

func (s *RecurringService) CreateRecurring(ctx context.Context, userID string, req dto.CreateRecurringRequest) (*domain.RecurringTransaction, error) {
	now := time.Now()
	startDate := domain.DateOnly(req.StartDate)
	rt := domain.RecurringTransaction{
		RecurringID: uuid.NewString(),
		UserID:      userID,
		Type:        domain.TransactionType(req.Type),
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Frequency:   domain.Frequency(req.Frequency),
		StartDate:   startDate,
		NextDueDate: startDate,
		DayOfWeek:   req.DayOfWeek,
		DayOfMonth:  req.DayOfMonth,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := rt.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	if err := s.recurringRepo.SaveRecurring(ctx, rt); err != nil {
		s.LogError(ctx, err, "failed to save recurring template", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to create recurring transaction: %w", err)
	}

	s.LogInfo(ctx, "recurring template created",
		slog.String("recurring_id", rt.RecurringID),
		slog.String("frequency", string(rt.Frequency)))
	return &rt, nil
}

func (s *RecurringService) ListRecurring(ctx context.Context, userID string) ([]domain.RecurringTransaction, error) {
	templates, err := s.recurringRepo.ListRecurring(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring transactions: %w", err)
	}
	if templates == nil {
		return []domain.RecurringTransaction{}, nil
	}
	return templates, nil
}

func (s *RecurringService) DeleteRecurring(ctx context.Context, userID string, recurringID string) error {
	if err := s.recurringRepo.DeleteRecurring(ctx, userID, recurringID); err != nil {
		return fmt.Errorf("failed to delete recurring transaction %s: %w", recurringID, err)
	}
	s.LogInfo(ctx, "recurring template deleted", slog.String("recurring_id", recurringID))
	return nil
}

// ProcessDue walks the user's templates and, for each one whose next due date
// has been reached, materializes a ledger entry dated at that due date and
// advances the template by exactly one period. A template that is several
// periods overdue therefore catches up one period per invocation; the
// endpoint is idempotent once nothing is due.
//
// Invalid templates are skipped and logged, never written back. The
// materialized entries and the advanced templates commit in one database
// transaction, so a crash mid-run cannot double-post.
func (s *RecurringService) ProcessDue(ctx context.Context, userID string) (*domain.RollforwardResult, error) {
	templates, err := s.recurringRepo.ListRecurring(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates for processing: %w", err)
	}

	now := s.clock.Now()
	result := &domain.RollforwardResult{
		Materialized: []domain.Transaction{},
		Updated:      []domain.RecurringTransaction{},
	}

	for _, rt := range templates {
		if err := rt.Validate(); err != nil {
			s.LogWarn(ctx, "skipping invalid recurring template",
				slog.String("recurring_id", rt.RecurringID),
				slog.String("reason", err.Error()))
			result.SkippedInvalid = append(result.SkippedInvalid, rt.RecurringID)
			continue
		}
		if !rt.IsDue(now) {
			continue
		}

		txn := rt.Materialize(uuid.NewString(), now)
		rt.NextDueDate = rt.NextDueAfter()
		rt.LastUpdatedAt = now
		rt.LastUpdatedBy = userID

		result.Materialized = append(result.Materialized, txn)
		result.Updated = append(result.Updated, rt)
	}

	if len(result.Materialized) == 0 {
		return result, nil
	}

	if err := s.recurringRepo.ApplyRollforward(ctx, result.Materialized, result.Updated); err != nil {
		s.LogError(ctx, err, "failed to commit rollforward", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to apply rollforward: %w", err)
	}

	s.LogInfo(ctx, "recurring templates processed",
		slog.String("user_id", userID),
		slog.Int("materialized", len(result.Materialized)),
		slog.Int("skipped_invalid", len(result.SkippedInvalid)))
	return result, nil
}
