package models

// Budget caps spending over a date range, either for one category or overall
// when CategoryID is nil.
type Budget struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"-"`
	CategoryID *int64 `json:"category"`
	Amount     Amount `json:"amount"`
	StartDate  Date   `json:"start_date"`
	EndDate    Date   `json:"end_date"`
}

// Validate checks date ordering and that the amount is not negative.
func (b Budget) Validate() error {
	errs := ValidationErrors{}
	if b.StartDate.IsZero() {
		errs.Add("start_date", "this field is required")
	}
	if b.EndDate.IsZero() {
		errs.Add("end_date", "this field is required")
	}
	if !b.StartDate.IsZero() && !b.EndDate.IsZero() && b.StartDate.After(b.EndDate) {
		errs.Add("end_date", "end date must be on or after start date")
	}
	if b.Amount.IsNegative() {
		errs.Add("amount", "amount must be zero or greater")
	}
	if exceedsPrecision(b.Amount) {
		errs.Add("amount", "ensure there are no more than 10 digits in total")
	}
	return errs.Err()
}

// Covers reports whether d falls inside the budget period.
func (b Budget) Covers(d Date) bool {
	return !d.Before(b.StartDate.Time) && !d.After(b.EndDate)
}

// Applies reports whether spending in categoryID counts against the budget.
func (b Budget) Applies(categoryID int64) bool {
	return b.CategoryID == nil || *b.CategoryID == categoryID
}
