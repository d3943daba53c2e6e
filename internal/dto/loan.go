package dto

import (
	"time"

	"github.com/finpal/finpal-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLoanRequest defines the data needed to register a student loan.
type CreateLoanRequest struct {
	Lender         string          `json:"lender" binding:"required"`
	InitialAmount  decimal.Decimal `json:"initialAmount" binding:"required"`
	InterestRate   decimal.Decimal `json:"interestRate"`
	PaymentDueDate int             `json:"paymentDueDate" binding:"required,min=1,max=31"`
}

// LogLoanPaymentRequest defines a payment against a loan. Date defaults to
// today when omitted.
type LogLoanPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Date   *time.Time      `json:"date" time_format:"2006-01-02"`
}

// LoanPaymentResponse defines one payment history entry.
type LoanPaymentResponse struct {
	PaymentID string          `json:"paymentID"`
	Date      string          `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
}

// LoanResponse defines the data returned for a loan.
type LoanResponse struct {
	LoanID         string                `json:"loanID"`
	Lender         string                `json:"lender"`
	InitialAmount  decimal.Decimal       `json:"initialAmount"`
	CurrentBalance decimal.Decimal       `json:"currentBalance"`
	InterestRate   decimal.Decimal       `json:"interestRate"`
	PaymentDueDate int                   `json:"paymentDueDate"`
	Payments       []LoanPaymentResponse `json:"payments,omitempty"`
}

// ToLoanResponse converts a domain.StudentLoan (and optional history) to its DTO.
func ToLoanResponse(loan *domain.StudentLoan, payments []domain.LoanPayment) LoanResponse {
	res := LoanResponse{
		LoanID:         loan.LoanID,
		Lender:         loan.Lender,
		InitialAmount:  loan.InitialAmount,
		CurrentBalance: loan.CurrentBalance,
		InterestRate:   loan.InterestRate,
		PaymentDueDate: loan.PaymentDueDate,
	}
	if len(payments) > 0 {
		res.Payments = make([]LoanPaymentResponse, len(payments))
		for i, p := range payments {
			res.Payments[i] = LoanPaymentResponse{
				PaymentID: p.PaymentID,
				Date:      p.Date.Format("2006-01-02"),
				Amount:    p.Amount,
			}
		}
	}
	return res
}
