package services

import (
	portsrepo "github.com/finpal/finpal-backend/internal/core/ports/repositories"
	portssvc "github.com/finpal/finpal-backend/internal/core/ports/services"
	"github.com/finpal/finpal-backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	clock portssvc.Clock,
	sentStore portssvc.SentNotificationStore,
	dispatcher portssvc.NotificationDispatcher,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Transaction = NewTransactionService(repos.TransactionRepo)
	container.Recurring = NewRecurringService(repos.RecurringRepo, clock)
	container.Budget = NewBudgetService(repos.BudgetRepo, repos.TransactionRepo, clock, cfg.BudgetSpentWindow)
	container.SavingsGoal = NewSavingsGoalService(repos.SavingsGoalRepo)
	container.Loan = NewLoanService(repos.LoanRepo)
	container.Settings = NewSettingsService(repos.SettingsRepo)
	container.Reporting = NewReportingService(repos.TransactionRepo)
	container.User = NewUserService(repos.UserRepo)

	// The evaluator reads budget spend through the budget service so both
	// surfaces agree on the spent window.
	container.Notification = NewNotificationService(
		container.Budget,
		repos.RecurringRepo,
		repos.SavingsGoalRepo,
		repos.LoanRepo,
		repos.SettingsRepo,
		repos.NotificationRepo,
		sentStore,
		dispatcher,
		clock,
	)

	container.Token = NewTokenService(cfg, container.User)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	return container
}
