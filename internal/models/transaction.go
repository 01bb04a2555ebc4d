package models

import "time"

// RecurrencePeriod is how often a recurring transaction repeats.
type RecurrencePeriod string

const (
	RecurDaily   RecurrencePeriod = "daily"
	RecurWeekly  RecurrencePeriod = "weekly"
	RecurMonthly RecurrencePeriod = "monthly"
	RecurYearly  RecurrencePeriod = "yearly"
)

// Valid reports whether p is one of the enumerated periods.
func (p RecurrencePeriod) Valid() bool {
	switch p {
	case RecurDaily, RecurWeekly, RecurMonthly, RecurYearly:
		return true
	}
	return false
}

// Transaction is a single movement of money. Date is stamped by the server.
type Transaction struct {
	ID               int64             `json:"id"`
	UserID           int64             `json:"-"`
	CategoryID       int64             `json:"category"`
	Amount           Amount            `json:"amount"`
	Date             time.Time         `json:"date"`
	Description      *string           `json:"description"`
	IsRecurring      bool              `json:"is_recurring"`
	RecurrencePeriod *RecurrencePeriod `json:"recurrence_period"`
}

const maxAmountDigits = 10

// Validate applies the recurrence cross-field rule and amount limits.
func (t Transaction) Validate() error {
	errs := ValidationErrors{}
	if t.CategoryID <= 0 {
		errs.Add("category", "this field is required")
	}
	if exceedsPrecision(t.Amount) {
		errs.Add("amount", "ensure there are no more than 10 digits in total")
	}
	switch {
	case t.IsRecurring && t.RecurrencePeriod == nil:
		errs.Add("recurrence_period", "recurrence period is required for recurring transactions")
	case t.IsRecurring && !t.RecurrencePeriod.Valid():
		errs.Add("recurrence_period", `"`+string(*t.RecurrencePeriod)+`" is not a valid choice`)
	case !t.IsRecurring && t.RecurrencePeriod != nil:
		errs.Add("recurrence_period", "recurrence period must be empty for non-recurring transactions")
	}
	return errs.Err()
}

// TransactionFilter narrows a transaction listing. From is inclusive and To
// exclusive; both are zero when unset.
type TransactionFilter struct {
	CategoryID *int64
	From       time.Time
	To         time.Time
}

// Matches reports whether t passes the filter.
func (f TransactionFilter) Matches(t Transaction) bool {
	if f.CategoryID != nil && t.CategoryID != *f.CategoryID {
		return false
	}
	if !f.From.IsZero() && t.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !t.Date.Before(f.To) {
		return false
	}
	return true
}

func exceedsPrecision(a Amount) bool {
	return len(a.Abs().Truncate(0).String()) > maxAmountDigits-2
}
