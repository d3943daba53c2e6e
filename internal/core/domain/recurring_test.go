package domain_test

import (
	"testing"
	"time"

	"github.com/finpal/finpal-backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRecurringTransaction_Validate(t *testing.T) {
	start := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		rt      domain.RecurringTransaction
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid monthly template",
			rt: domain.RecurringTransaction{
				RecurringID: "rec_123",
				UserID:      "user_123",
				Type:        domain.Expense,
				Amount:      decimal.NewFromInt(2500),
				Category:    "Rent",
				Frequency:   domain.Monthly,
				DayOfMonth:  intPtr(5),
				StartDate:   start,
				NextDueDate: start,
			},
			wantErr: false,
		},
		{
			name: "valid weekly template",
			rt: domain.RecurringTransaction{
				RecurringID: "rec_123",
				UserID:      "user_123",
				Type:        domain.Income,
				Amount:      decimal.NewFromInt(800),
				Category:    "Allowance",
				Frequency:   domain.Weekly,
				DayOfWeek:   intPtr(1),
				StartDate:   start,
				NextDueDate: start,
			},
			wantErr: false,
		},
		{
			name: "monthly template missing dayOfMonth",
			rt: domain.RecurringTransaction{
				Type:        domain.Expense,
				Amount:      decimal.NewFromInt(2500),
				Frequency:   domain.Monthly,
				StartDate:   start,
				NextDueDate: start,
			},
			wantErr: true,
			errMsg:  "requires dayOfMonth",
		},
		{
			name: "weekly template missing dayOfWeek",
			rt: domain.RecurringTransaction{
				Type:        domain.Expense,
				Amount:      decimal.NewFromInt(120),
				Frequency:   domain.Weekly,
				StartDate:   start,
				NextDueDate: start,
			},
			wantErr: true,
			errMsg:  "requires dayOfWeek",
		},
		{
			name: "weekly template with both day fields set",
			rt: domain.RecurringTransaction{
				Type:        domain.Expense,
				Amount:      decimal.NewFromInt(120),
				Frequency:   domain.Weekly,
				DayOfWeek:   intPtr(2),
				DayOfMonth:  intPtr(15),
				StartDate:   start,
				NextDueDate: start,
			},
			wantErr: true,
			errMsg:  "must not set dayOfMonth",
		},
		{
			name: "dayOfMonth out of range",
			rt: domain.RecurringTransaction{
				Type:        domain.Expense,
				Amount:      decimal.NewFromInt(120),
				Frequency:   domain.Monthly,
				DayOfMonth:  intPtr(32),
				StartDate:   start,
				NextDueDate: start,
			},
			wantErr: true,
			errMsg:  "between 1 and 31",
		},
		{
			name: "unknown frequency",
			rt: domain.RecurringTransaction{
				Type:        domain.Expense,
				Amount:      decimal.NewFromInt(120),
				Frequency:   domain.Frequency("fortnightly"),
				StartDate:   start,
				NextDueDate: start,
			},
			wantErr: true,
			errMsg:  "frequency must be weekly or monthly",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rt.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRecurringTransaction_NextDueAfter(t *testing.T) {
	tests := []struct {
		name    string
		freq    domain.Frequency
		nextDue time.Time
		want    time.Time
	}{
		{
			name:    "monthly advances one calendar month",
			freq:    domain.Monthly,
			nextDue: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			want:    time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "weekly advances seven days",
			freq:    domain.Weekly,
			nextDue: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			want:    time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "monthly end-of-month overflow normalizes",
			freq:    domain.Monthly,
			nextDue: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			want:    time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := domain.RecurringTransaction{Frequency: tt.freq, NextDueDate: tt.nextDue}
			assert.True(t, tt.want.Equal(rt.NextDueAfter()))
		})
	}
}

func TestRecurringTransaction_IsDue(t *testing.T) {
	due := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	rt := domain.RecurringTransaction{NextDueDate: due}

	// Time-of-day is ignored on both sides.
	assert.True(t, rt.IsDue(time.Date(2024, 3, 10, 7, 30, 0, 0, time.UTC)))
	assert.True(t, rt.IsDue(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, rt.IsDue(time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC)))

	// The clock's location is ignored too: a stored UTC due date is due on
	// its calendar day even when the clock runs east of UTC, where the same
	// morning is an earlier instant than UTC midnight.
	nairobi := time.FixedZone("EAT", 3*60*60)
	assert.True(t, rt.IsDue(time.Date(2024, 3, 10, 9, 0, 0, 0, nairobi)))
	assert.False(t, rt.IsDue(time.Date(2024, 3, 9, 23, 0, 0, 0, nairobi)))
}

func TestRecurringTransaction_Materialize(t *testing.T) {
	due := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	rt := domain.RecurringTransaction{
		RecurringID: "rec_123",
		UserID:      "user_123",
		Type:        domain.Expense,
		Amount:      decimal.NewFromInt(2500),
		Category:    "Rent",
		Description: "Hostel rent",
		Frequency:   domain.Monthly,
		DayOfMonth:  intPtr(5),
		NextDueDate: due,
	}

	txn := rt.Materialize("txn_456", now)

	assert.Equal(t, "txn_456", txn.TransactionID)
	assert.Equal(t, rt.UserID, txn.UserID)
	assert.Equal(t, rt.Type, txn.Type)
	assert.True(t, rt.Amount.Equal(txn.Amount))
	assert.Equal(t, rt.Category, txn.Category)
	assert.Equal(t, "(Recurring) Hostel rent", txn.Description)
	// Dated at the due date, not at processing time.
	assert.True(t, due.Equal(txn.Date))
	assert.NoError(t, txn.Validate())
}

func intPtr(i int) *int {
	return &i
}
