package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Transaction  TransactionSvcFacade
	Recurring    RecurringSvcFacade
	Budget       BudgetSvcFacade
	SavingsGoal  SavingsGoalSvcFacade
	Loan         LoanSvcFacade
	Notification NotificationSvcFacade
	Reporting    ReportingSvcFacade
	Settings     SettingsSvcFacade
	User         UserSvcFacade
	Token        TokenSvcFacade
	GoogleOAuth  GoogleOAuthSvcFacade
}
