package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finpal/finpal-backend/internal/apperrors"
	"github.com/finpal/finpal-backend/internal/core/domain"
	portsrepo "github.com/finpal/finpal-backend/internal/core/ports/repositories"
	portssvc "github.com/finpal/finpal-backend/internal/core/ports/services"
	"github.com/finpal/finpal-backend/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var warningPercent = decimal.NewFromInt(85)

// NotificationService evaluates the notification conditions against a user's
// current data and delivers whatever has not fired yet this session.
type NotificationService struct {
	BaseService
	budgets          portssvc.BudgetReaderSvc
	recurringRepo    portsrepo.RecurringReader
	goalRepo         portsrepo.SavingsGoalReader
	loanRepo         portsrepo.LoanReader
	settingsRepo     portsrepo.SettingsRepositoryFacade
	notificationRepo portsrepo.NotificationRepositoryFacade
	sentStore        portssvc.SentNotificationStore
	dispatcher       portssvc.NotificationDispatcher
	clock            portssvc.Clock
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(
	budgets portssvc.BudgetReaderSvc,
	recurringRepo portsrepo.RecurringReader,
	goalRepo portsrepo.SavingsGoalReader,
	loanRepo portsrepo.LoanReader,
	settingsRepo portsrepo.SettingsRepositoryFacade,
	notificationRepo portsrepo.NotificationRepositoryFacade,
	sentStore portssvc.SentNotificationStore,
	dispatcher portssvc.NotificationDispatcher,
	clock portssvc.Clock,
) *NotificationService {
	return &NotificationService{
		budgets:          budgets,
		recurringRepo:    recurringRepo,
		goalRepo:         goalRepo,
		loanRepo:         loanRepo,
		settingsRepo:     settingsRepo,
		notificationRepo: notificationRepo,
		sentStore:        sentStore,
		dispatcher:       dispatcher,
		clock:            clock,
	}
}

var _ portssvc.NotificationSvcFacade = (*NotificationService)(nil)

// CheckAll runs every enabled check, collects the candidate events, and
// delivers the ones whose dedup key has not fired this session. Evaluation is
// read-only over the user's data; the only writes are the feed entries for
// delivered events. One failing check aborts the run (its data is missing),
// but a failing write or delivery does not: a feed-persist failure skips that
// one event (left unmarked so a later run retries it) and the remaining
// candidates still fire, with the persist errors returned alongside the
// events that did.
func (s *NotificationService) CheckAll(ctx context.Context, userID string) ([]domain.NotificationEvent, error) {
	settings, err := s.loadSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := domain.DateOnly(s.clock.Now())
	var candidates []domain.NotificationEvent

	if settings.BudgetAlerts {
		events, err := s.checkBudgetAlerts(ctx, userID)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, events...)
	}
	if settings.BillReminders {
		events, err := s.checkBillReminders(ctx, userID, today)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, events...)
	}
	if settings.SavingsReminders {
		events, err := s.checkSavingsReminders(ctx, userID, today)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, events...)
	}
	if settings.LoanReminders {
		events, err := s.checkLoanReminders(ctx, userID, today)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, events...)
	}

	fired := []domain.NotificationEvent{}
	var persistErrs []error
	for _, ev := range candidates {
		if s.sentStore.AlreadySent(userID, ev.ID) {
			continue
		}

		feedEntry := domain.Notification{
			NotificationID: uuid.NewString(),
			UserID:         userID,
			DedupKey:       ev.ID,
			Title:          ev.Title,
			Body:           ev.Body,
			CreatedAt:      s.clock.Now(),
		}
		if err := s.notificationRepo.SaveNotification(ctx, feedEntry); err != nil {
			s.LogError(ctx, err, "failed to persist notification", slog.String("dedup_key", ev.ID))
			persistErrs = append(persistErrs, fmt.Errorf("persist %s: %w", ev.ID, err))
			continue
		}

		if err := s.dispatcher.Dispatch(ctx, userID, ev); err != nil {
			// Delivery is best effort; the feed entry already exists.
			s.LogWarn(ctx, "notification dispatch failed",
				slog.String("dedup_key", ev.ID),
				slog.String("error", err.Error()))
		}

		s.sentStore.MarkSent(userID, ev.ID)
		fired = append(fired, ev)
	}

	if len(fired) > 0 {
		s.LogInfo(ctx, "notifications delivered",
			slog.String("user_id", userID),
			slog.Int("count", len(fired)))
	}
	if len(persistErrs) > 0 {
		return fired, fmt.Errorf("failed to persist notifications: %w", errors.Join(persistErrs...))
	}
	return fired, nil
}

// ResetSession clears the user's dedup set so every condition may fire again.
func (s *NotificationService) ResetSession(userID string) {
	s.sentStore.Reset(userID)
}

func (s *NotificationService) ListFeed(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	feed, err := s.notificationRepo.ListNotifications(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	if feed == nil {
		return []domain.Notification{}, nil
	}
	return feed, nil
}

func (s *NotificationService) loadSettings(ctx context.Context, userID string) (*domain.NotificationSettings, error) {
	settings, err := s.settingsRepo.FindSettings(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			defaults := domain.DefaultNotificationSettings(userID)
			return &defaults, nil
		}
		return nil, fmt.Errorf("failed to load notification settings: %w", err)
	}
	return settings, nil
}

// checkBudgetAlerts fires an over-budget alert once spend reaches the limit,
// or a warning once it reaches 85% of it. The two never fire together for
// one category: over wins.
func (s *NotificationService) checkBudgetAlerts(ctx context.Context, userID string) ([]domain.NotificationEvent, error) {
	statuses, err := s.budgets.ListBudgetStatuses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate budget alerts: %w", err)
	}

	var events []domain.NotificationEvent
	for _, status := range statuses {
		switch {
		case status.Spent.GreaterThanOrEqual(status.Limit):
			overBy := status.Spent.Sub(status.Limit)
			events = append(events, domain.NotificationEvent{
				ID:    domain.BudgetOverKey(status.Category),
				Title: "Budget Alert",
				Body: fmt.Sprintf("You've gone over your KSH %s budget for %s by %s!",
					status.Limit.String(), status.Category, utils.FormatKSH(overBy)),
			})
		case status.Percentage.GreaterThanOrEqual(warningPercent):
			events = append(events, domain.NotificationEvent{
				ID:    domain.BudgetWarningKey(status.Category),
				Title: "Budget Warning",
				Body: fmt.Sprintf("You've spent %s%% of your budget for %s.",
					utils.FormatWithPrecision(status.Percentage, 0), status.Category),
			})
		}
	}
	return events, nil
}

// checkBillReminders fires for templates due within the next two days,
// today included.
func (s *NotificationService) checkBillReminders(ctx context.Context, userID string, today time.Time) ([]domain.NotificationEvent, error) {
	templates, err := s.recurringRepo.ListRecurring(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate bill reminders: %w", err)
	}

	windowEnd := today.AddDate(0, 0, 2)
	var events []domain.NotificationEvent
	for _, rt := range templates {
		due := domain.DateOnly(rt.NextDueDate)
		if due.Before(today) || due.After(windowEnd) {
			continue
		}
		events = append(events, domain.NotificationEvent{
			ID:    domain.BillReminderKey(rt.RecurringID, due),
			Title: "Upcoming Bill",
			Body: fmt.Sprintf("%s of KSH %s is due on %s.",
				rt.Description, rt.Amount.String(), due.Format(time.DateOnly)),
		})
	}
	return events, nil
}

// checkSavingsReminders fires for unfunded goals whose deadline falls within
// the next week, today included. A funded goal stays silent no matter how
// close its deadline is.
func (s *NotificationService) checkSavingsReminders(ctx context.Context, userID string, today time.Time) ([]domain.NotificationEvent, error) {
	goals, err := s.goalRepo.ListGoals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate savings reminders: %w", err)
	}

	windowEnd := today.AddDate(0, 0, 7)
	var events []domain.NotificationEvent
	for _, goal := range goals {
		deadline := domain.DateOnly(goal.Deadline)
		if deadline.Before(today) || deadline.After(windowEnd) || goal.IsFunded() {
			continue
		}
		events = append(events, domain.NotificationEvent{
			ID:    domain.SavingsReminderKey(goal.GoalID),
			Title: "Savings Goal Deadline",
			Body: fmt.Sprintf("Your deadline for %q is approaching on %s!",
				goal.Name, deadline.Format(time.DateOnly)),
		})
	}
	return events, nil
}

// checkLoanReminders fires on exactly two days each month: three days before
// the payment due day and the due day itself.
func (s *NotificationService) checkLoanReminders(ctx context.Context, userID string, today time.Time) ([]domain.NotificationEvent, error) {
	loans, err := s.loanRepo.ListLoans(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate loan reminders: %w", err)
	}

	dayOfMonth := today.Day()
	var events []domain.NotificationEvent
	for _, loan := range loans {
		reminderDay := loan.PaymentDueDate - 3
		if dayOfMonth != reminderDay && dayOfMonth != loan.PaymentDueDate {
			continue
		}
		events = append(events, domain.NotificationEvent{
			ID:    domain.LoanReminderKey(loan.LoanID, today),
			Title: "Loan Payment Due",
			Body: fmt.Sprintf("Your payment for %s is due on day %d of this month.",
				loan.Lender, loan.PaymentDueDate),
		})
	}
	return events, nil
}
